package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"apartment-backend/internal/services"
	"apartment-backend/pkg/utils"

	"github.com/gorilla/mux"
)

const reportTimeout = 60 * time.Second

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// GetFeeReportPDF handles GET /api/fees/{type}/{year}/report
func (h *ReportHandler) GetFeeReportPDF(w http.ResponseWriter, r *http.Request) {
	year, err := pathYear(r)
	if err != nil {
		utils.Error(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reportTimeout)
	defer cancel()

	category := mux.Vars(r)["type"]
	data, err := h.Service.GeneratePDF(ctx, category, year)
	if err != nil {
		utils.Error(w, err)
		return
	}

	filename := fmt.Sprintf("%s_%d.pdf", category, year)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ArchiveFeeReport handles POST /api/fees/{type}/{year}/report/archive
func (h *ReportHandler) ArchiveFeeReport(w http.ResponseWriter, r *http.Request) {
	year, err := pathYear(r)
	if err != nil {
		utils.Error(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reportTimeout)
	defer cancel()

	key, err := h.Service.Archive(ctx, mux.Vars(r)["type"], year)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, map[string]string{"key": key})
}
