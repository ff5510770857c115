package handlers

import (
	"net/http"

	"apartment-backend/internal/models"
	"apartment-backend/internal/services"
	"apartment-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ResidentHandler struct {
	Service *services.ResidentService
}

func NewResidentHandler(s *services.ResidentService) *ResidentHandler {
	return &ResidentHandler{Service: s}
}

func (h *ResidentHandler) ListResidents(w http.ResponseWriter, r *http.Request) {
	residents, err := h.Service.List(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, residents)
}

func (h *ResidentHandler) GetResident(w http.ResponseWriter, r *http.Request) {
	resident, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resident)
}

func (h *ResidentHandler) CreateResident(w http.ResponseWriter, r *http.Request) {
	var req models.CreateResidentRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	resident, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, resident)
}

func (h *ResidentHandler) UpdateResident(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateResidentRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	resident, err := h.Service.Update(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resident)
}

func (h *ResidentHandler) DeleteResident(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Resident deleted successfully")
}
