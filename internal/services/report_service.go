package services

import (
	"bytes"
	"context"
	"fmt"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/models"
	"apartment-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const pdfContentType = "application/pdf"

// ReportService renders fee ledger reports and archives them to object storage
type ReportService struct {
	Fees     FeeStore
	Archiver ReportArchiver
}

// NewReportService accepts a nil archiver; Archive then fails with a validation error.
func NewReportService(fees FeeStore, archiver ReportArchiver) *ReportService {
	return &ReportService{Fees: fees, Archiver: archiver}
}

// FeeReport is one category-year of the ledger with its totals
type FeeReport struct {
	Category  models.FeeCategory
	Year      int
	Records   []*models.FeeRecord
	TotalDue  decimal.Decimal
	TotalPaid decimal.Decimal
}

func (s *ReportService) load(ctx context.Context, categoryName string, year int) (*FeeReport, error) {
	category, err := models.ParseFeeCategory(categoryName)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateFeeYear(year); err != nil {
		return nil, err
	}
	records, err := s.Fees.ListByCategoryYear(ctx, category, year)
	if err != nil {
		return nil, err
	}

	report := &FeeReport{Category: category, Year: year, Records: records}
	months := decimal.NewFromInt(models.MonthsInYear)
	for _, r := range records {
		report.TotalDue = report.TotalDue.Add(r.MonthlyDue.Mul(months))
		for _, m := range r.Months {
			report.TotalPaid = report.TotalPaid.Add(m)
		}
	}
	return report, nil
}

// GeneratePDF renders the ledger of one category and year
func (s *ReportService) GeneratePDF(ctx context.Context, categoryName string, year int) ([]byte, error) {
	report, err := s.load(ctx, categoryName, year)
	if err != nil {
		return nil, err
	}
	return renderFeeReport(report)
}

// Archive uploads the rendered report and returns its object key
func (s *ReportService) Archive(ctx context.Context, categoryName string, year int) (string, error) {
	if s.Archiver == nil {
		return "", apperr.Validation("Report storage is not configured")
	}
	report, err := s.load(ctx, categoryName, year)
	if err != nil {
		return "", err
	}
	data, err := renderFeeReport(report)
	if err != nil {
		return "", err
	}

	key := ArchiveKey(report.Category, report.Year)
	if err := s.Archiver.Upload(ctx, key, pdfContentType, data); err != nil {
		return "", apperr.Internal("failed to archive report", err)
	}
	zap.L().Info("[Reports] Archived", zap.String("key", key), zap.Int("bytes", len(data)))
	return key, nil
}

// ArchiveKey is the object key a category-year report is stored under
func ArchiveKey(category models.FeeCategory, year int) string {
	return fmt.Sprintf("reports/%s/%d.pdf", category, year)
}

func renderFeeReport(report *FeeReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "") // Landscape for the 12 month columns
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(277, 10, fmt.Sprintf("%s - %d", report.Category.Label(), report.Year), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DateTimeLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Table header
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(30, 7, "Household", "1", 0, "C", true, 0, "")
	pdf.CellFormat(27, 7, "Monthly due", "1", 0, "C", true, 0, "")
	for m := 1; m <= models.MonthsInYear; m++ {
		ln := 0
		if m == models.MonthsInYear {
			ln = 1
		}
		pdf.CellFormat(18, 7, fmt.Sprintf("T%d", m), "1", ln, "C", true, 0, "")
	}

	// Rows
	pdf.SetFont("Arial", "", 8)
	for _, r := range report.Records {
		pdf.CellFormat(30, 6, r.HouseholdID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(27, 6, r.MonthlyDue.StringFixed(0), "1", 0, "R", false, 0, "")
		for i, paid := range r.Months {
			ln := 0
			if i == models.MonthsInYear-1 {
				ln = 1
			}
			cell := "-"
			if paid.IsPositive() {
				cell = paid.StringFixed(0)
			}
			pdf.CellFormat(18, 6, cell, "1", ln, "R", false, 0, "")
		}
	}
	pdf.Ln(5)

	// Summary
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(92, 8, fmt.Sprintf("Households: %d", len(report.Records)), "1", 0, "C", true, 0, "")
	pdf.CellFormat(92, 8, fmt.Sprintf("Total due: %s", report.TotalDue.StringFixed(0)), "1", 0, "C", true, 0, "")
	pdf.CellFormat(93, 8, fmt.Sprintf("Total paid: %s", report.TotalPaid.StringFixed(0)), "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperr.Internal("failed to render report", err)
	}
	return buf.Bytes(), nil
}
