package handlers

import (
	"net/http"
	"strconv"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/models"
	"apartment-backend/internal/services"
	"apartment-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type FeeHandler struct {
	Service *services.FeeService
}

func NewFeeHandler(s *services.FeeService) *FeeHandler {
	return &FeeHandler{Service: s}
}

// pathYear reads the {year} route variable
func pathYear(r *http.Request) (int, error) {
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil {
		return 0, apperr.Validation("Invalid year")
	}
	return year, nil
}

// ListFees handles GET /api/fees/{type}/{year}
func (h *FeeHandler) ListFees(w http.ResponseWriter, r *http.Request) {
	year, err := pathYear(r)
	if err != nil {
		utils.Error(w, err)
		return
	}

	records, err := h.Service.List(r.Context(), mux.Vars(r)["type"], year)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, records)
}

// PayFee handles PUT /api/fees/{type}/pay
func (h *FeeHandler) PayFee(w http.ResponseWriter, r *http.Request) {
	var req models.PayFeeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	if err := h.Service.Pay(r.Context(), mux.Vars(r)["type"], &req); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Payment recorded")
}

// UpdateUtility handles PUT /api/fees/phisinhhoat/update
func (h *FeeHandler) UpdateUtility(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateUtilityRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	update, err := h.Service.UpdateUtility(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, update)
}

// SetPrice handles PUT /api/fees/{type}/price for the area-priced categories
func (h *FeeHandler) SetPrice(w http.ResponseWriter, r *http.Request) {
	var req models.SetPriceRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	result, err := h.Service.SetPrice(r.Context(), mux.Vars(r)["type"], &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

// SetParkingPrice handles PUT /api/fees/phiguixe/price
func (h *FeeHandler) SetParkingPrice(w http.ResponseWriter, r *http.Request) {
	var req models.SetParkingPriceRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	result, err := h.Service.SetParkingPrice(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}
