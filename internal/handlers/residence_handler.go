package handlers

import (
	"net/http"

	"apartment-backend/internal/models"
	"apartment-backend/internal/services"
	"apartment-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// ResidenceHandler serves one of the two logs; the router mounts one per kind.
type ResidenceHandler struct {
	Service *services.ResidenceService
	Kind    models.ResidenceKind
}

func NewResidenceHandler(s *services.ResidenceService, kind models.ResidenceKind) *ResidenceHandler {
	return &ResidenceHandler{Service: s, Kind: kind}
}

func (h *ResidenceHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.List(r.Context(), h.Kind)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, records)
}

func (h *ResidenceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateResidenceRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	record, err := h.Service.Create(r.Context(), h.Kind, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, record)
}

func (h *ResidenceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), h.Kind, mux.Vars(r)["id"]); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Record deleted successfully")
}
