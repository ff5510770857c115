package services

import (
	"context"
	"strings"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/models"
	"apartment-backend/internal/timeutil"
)

// ResidenceService manages the temporary-residence and temporary-absence logs
type ResidenceService struct {
	Repo ResidenceStore
}

func NewResidenceService(repo ResidenceStore) *ResidenceService {
	return &ResidenceService{Repo: repo}
}

func (s *ResidenceService) List(ctx context.Context, kind models.ResidenceKind) ([]*models.ResidenceRecord, error) {
	return s.Repo.List(ctx, kind)
}

func (s *ResidenceService) Create(ctx context.Context, kind models.ResidenceKind, req *models.CreateResidenceRequest) (*models.ResidenceRecord, error) {
	rec := &models.ResidenceRecord{
		Kind:       kind,
		ID:         strings.TrimSpace(req.ID(kind)),
		NationalID: strings.TrimSpace(req.SoCMND_CCCD),
		Detail:     strings.TrimSpace(req.Detail(kind)),
	}
	from := strings.TrimSpace(req.TuNgay)
	to := strings.TrimSpace(req.DenNgay)
	if rec.ID == "" || rec.NationalID == "" || rec.Detail == "" || from == "" || to == "" {
		return nil, apperr.Validation("All fields are required")
	}

	var err error
	if rec.From, err = timeutil.ParseDate(from); err != nil {
		return nil, apperr.Validation("Invalid date for tuNgay")
	}
	if rec.To, err = timeutil.ParseDate(to); err != nil {
		return nil, apperr.Validation("Invalid date for denNgay")
	}
	if rec.To.Before(rec.From) {
		return nil, apperr.Validation("End date cannot be before start date")
	}

	if err := s.Repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *ResidenceService) Delete(ctx context.Context, kind models.ResidenceKind, id string) error {
	return s.Repo.Delete(ctx, kind, id)
}
