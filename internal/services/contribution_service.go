package services

import (
	"context"
	"strings"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/models"
	"apartment-backend/internal/timeutil"
)

type ContributionService struct {
	Repo ContributionStore
}

func NewContributionService(repo ContributionStore) *ContributionService {
	return &ContributionService{Repo: repo}
}

func (s *ContributionService) List(ctx context.Context) ([]*models.Contribution, error) {
	return s.Repo.List(ctx)
}

func (s *ContributionService) ListTypes(ctx context.Context) ([]*models.ContributionType, error) {
	return s.Repo.ListTypes(ctx)
}

// Create records a contribution. Records are never edited afterwards.
func (s *ContributionService) Create(ctx context.Context, req *models.CreateContributionRequest) (*models.Contribution, error) {
	householdID := strings.TrimSpace(req.MaHoKhau)
	typeName := strings.TrimSpace(req.TenPhi)
	dateValue := strings.TrimSpace(req.NgayDongGop)
	if householdID == "" || typeName == "" || dateValue == "" || !req.SoTien.IsPositive() {
		return nil, apperr.Validation("Household, contribution type, a positive amount and date are required")
	}
	date, err := timeutil.ParseDate(dateValue)
	if err != nil {
		return nil, apperr.Validation("Invalid date for ngayDongGop")
	}

	c := &models.Contribution{
		HouseholdID: householdID,
		TypeName:    typeName,
		Amount:      req.SoTien,
		Date:        date,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ContributionService) CreateType(ctx context.Context, req *models.CreateContributionTypeRequest) (*models.ContributionType, error) {
	name := strings.TrimSpace(req.TenPhi)
	if name == "" || !req.SoTienGoiY.IsPositive() {
		return nil, apperr.Validation("Name and a positive suggested amount are required")
	}
	t := &models.ContributionType{Name: name, SuggestedAmount: req.SoTienGoiY}
	if err := s.Repo.CreateType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteType is idempotent on absence. Recorded contributions keep the name.
func (s *ContributionService) DeleteType(ctx context.Context, name string) error {
	return s.Repo.DeleteType(ctx, name)
}
