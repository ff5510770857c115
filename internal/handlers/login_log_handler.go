package handlers

import (
	"net/http"
	"strconv"

	"apartment-backend/internal/services"
	"apartment-backend/pkg/utils"
)

type LoginLogHandler struct {
	Service *services.UserService
}

func NewLoginLogHandler(s *services.UserService) *LoginLogHandler {
	return &LoginLogHandler{Service: s}
}

// ListLoginLogs returns recent logins; ?limit= caps the count
func (h *LoginLogHandler) ListLoginLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.Service.LoginLogsRecent(r.Context(), limit)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, logs)
}
