package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/models"
	"apartment-backend/internal/testutil"
)

type memoryArchiver struct {
	objects map[string][]byte
}

func (a *memoryArchiver) Upload(_ context.Context, key, contentType string, body []byte) error {
	if contentType != pdfContentType {
		return errors.New("unexpected content type " + contentType)
	}
	a.objects[key] = body
	return nil
}

func TestGeneratePDF(t *testing.T) {
	db := testutil.NewDB()
	rec := models.NewFeeRecord("HK01", 2024, models.FeeService)
	rec.MonthlyDue = dec("500000")
	rec.Months[0] = dec("500000")
	db.SeedFee(rec)

	data, err := NewReportService(db.Fees(), nil).GeneratePDF(context.Background(), "phidichvu", 2024)
	if err != nil {
		t.Fatalf("GeneratePDF failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output is not a PDF")
	}
}

func TestArchiveRequiresStorage(t *testing.T) {
	_, err := NewReportService(testutil.NewDB().Fees(), nil).Archive(context.Background(), "phidichvu", 2024)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestArchiveUploadsUnderCategoryAndYear(t *testing.T) {
	archiver := &memoryArchiver{objects: map[string][]byte{}}
	key, err := NewReportService(testutil.NewDB().Fees(), archiver).Archive(context.Background(), "phiguixe", 2024)
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	if key != "reports/phiguixe/2024.pdf" {
		t.Errorf("unexpected key %q", key)
	}
	if _, ok := archiver.objects[key]; !ok {
		t.Errorf("report was not uploaded")
	}
}
