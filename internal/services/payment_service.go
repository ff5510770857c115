package services

import (
	"context"
	"strings"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/models"
	"apartment-backend/internal/timeutil"
)

type PaymentService struct {
	Repo PaymentStore
}

func NewPaymentService(repo PaymentStore) *PaymentService {
	return &PaymentService{Repo: repo}
}

func (s *PaymentService) List(ctx context.Context) ([]*models.Payment, error) {
	return s.Repo.List(ctx)
}

// Create appends a payment stamped with the server clock
func (s *PaymentService) Create(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, error) {
	householdID := strings.TrimSpace(req.MaHoKhau)
	if householdID == "" || !req.SoTienThanhToan.IsPositive() {
		return nil, apperr.Validation("Household and a positive amount are required")
	}
	p := &models.Payment{
		HouseholdID: householdID,
		Amount:      req.SoTienThanhToan,
		PaidAt:      timeutil.Now(),
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
