package handlers

import (
	"net/http"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/middleware"
	"apartment-backend/internal/models"
	"apartment-backend/internal/services"
	"apartment-backend/pkg/utils"
)

// UserHandler serves the authenticated operator's own account
type UserHandler struct {
	Service *services.UserService
}

func NewUserHandler(s *services.UserService) *UserHandler {
	return &UserHandler{Service: s}
}

func currentUsername(r *http.Request) (string, error) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		return "", apperr.Unauthorized("Unauthorized")
	}
	return username, nil
}

// Me returns the current user's profile
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	username, err := currentUsername(r)
	if err != nil {
		utils.Error(w, err)
		return
	}

	user, err := h.Service.Me(r.Context(), username)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// ChangePassword rotates the current user's secret
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	username, err := currentUsername(r)
	if err != nil {
		utils.Error(w, err)
		return
	}

	var req models.ChangePasswordRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	if err := h.Service.ChangePassword(r.Context(), username, &req); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Password changed successfully")
}

// UpdateInfo overwrites the current user's profile fields
func (h *UserHandler) UpdateInfo(w http.ResponseWriter, r *http.Request) {
	username, err := currentUsername(r)
	if err != nil {
		utils.Error(w, err)
		return
	}

	var req models.UpdateInfoRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	user, err := h.Service.UpdateInfo(r.Context(), username, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}
