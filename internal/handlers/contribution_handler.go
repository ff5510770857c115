package handlers

import (
	"net/http"

	"apartment-backend/internal/models"
	"apartment-backend/internal/services"
	"apartment-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ContributionHandler struct {
	Service *services.ContributionService
}

func NewContributionHandler(s *services.ContributionService) *ContributionHandler {
	return &ContributionHandler{Service: s}
}

func (h *ContributionHandler) ListContributions(w http.ResponseWriter, r *http.Request) {
	contributions, err := h.Service.List(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, contributions)
}

func (h *ContributionHandler) CreateContribution(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContributionRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	contribution, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, contribution)
}

func (h *ContributionHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.ListTypes(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, types)
}

func (h *ContributionHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContributionTypeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	ct, err := h.Service.CreateType(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, ct)
}

func (h *ContributionHandler) DeleteType(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteType(r.Context(), mux.Vars(r)["name"]); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Contribution type deleted successfully")
}
