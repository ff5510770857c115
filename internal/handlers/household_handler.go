package handlers

import (
	"net/http"

	"apartment-backend/internal/models"
	"apartment-backend/internal/services"
	"apartment-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type HouseholdHandler struct {
	Service *services.HouseholdService
}

func NewHouseholdHandler(s *services.HouseholdService) *HouseholdHandler {
	return &HouseholdHandler{Service: s}
}

func (h *HouseholdHandler) ListHouseholds(w http.ResponseWriter, r *http.Request) {
	households, err := h.Service.List(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, households)
}

func (h *HouseholdHandler) GetHousehold(w http.ResponseWriter, r *http.Request) {
	household, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, household)
}

func (h *HouseholdHandler) CreateHousehold(w http.ResponseWriter, r *http.Request) {
	var req models.CreateHouseholdRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	household, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, household)
}

// UpdateHousehold edits a household; a "nam" field also recomputes dues from that year
func (h *HouseholdHandler) UpdateHousehold(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateHouseholdRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	household, err := h.Service.Update(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, household)
}

func (h *HouseholdHandler) DeleteHousehold(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Household deleted successfully")
}
