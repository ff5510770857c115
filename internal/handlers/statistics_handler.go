package handlers

import (
	"net/http"

	"apartment-backend/internal/services"
	"apartment-backend/pkg/utils"
)

type StatisticsHandler struct {
	Service *services.StatisticsService
}

func NewStatisticsHandler(s *services.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{Service: s}
}

// GetStatistics handles GET /api/statistics
func (h *StatisticsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Get(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}
