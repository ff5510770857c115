package services

import (
	"context"
	"strings"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/models"
)

type ResidentService struct {
	Repo ResidentStore
}

func NewResidentService(repo ResidentStore) *ResidentService {
	return &ResidentService{Repo: repo}
}

func (s *ResidentService) List(ctx context.Context) ([]*models.Resident, error) {
	return s.Repo.List(ctx)
}

func (s *ResidentService) Get(ctx context.Context, nationalID string) (*models.Resident, error) {
	return s.Repo.Get(ctx, nationalID)
}

func (s *ResidentService) Create(ctx context.Context, req *models.CreateResidentRequest) (*models.Resident, error) {
	p := &models.Resident{
		NationalID:   strings.TrimSpace(req.SoCMND_CCCD),
		HouseholdID:  optionalID(req.MaHoKhau),
		FullName:     strings.TrimSpace(req.HoTen),
		Age:          req.Tuoi,
		Sex:          strings.TrimSpace(req.GioiTinh),
		Phone:        strings.TrimSpace(req.SoDT),
		Relationship: relationshipOrDefault(req.QuanHe),
	}
	if p.NationalID == "" {
		return nil, apperr.Validation("National ID is required")
	}
	if err := validateResident(p); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update overwrites every field except the national ID, which is immutable
func (s *ResidentService) Update(ctx context.Context, nationalID string, req *models.UpdateResidentRequest) (*models.Resident, error) {
	p := &models.Resident{
		NationalID:   nationalID,
		HouseholdID:  optionalID(req.MaHoKhau),
		FullName:     strings.TrimSpace(req.HoTen),
		Age:          req.Tuoi,
		Sex:          strings.TrimSpace(req.GioiTinh),
		Phone:        strings.TrimSpace(req.SoDT),
		Relationship: relationshipOrDefault(req.QuanHe),
	}
	if err := validateResident(p); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete is idempotent on absence
func (s *ResidentService) Delete(ctx context.Context, nationalID string) error {
	return s.Repo.Delete(ctx, nationalID)
}

func validateResident(p *models.Resident) error {
	if p.FullName == "" || p.Sex == "" || p.Phone == "" {
		return apperr.Validation("Name, age, sex, national ID and phone are required")
	}
	if p.Age <= 0 {
		return apperr.Validation("Age must be positive")
	}
	return nil
}

// optionalID maps an empty household reference to NULL
func optionalID(id string) *string {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	return &id
}

func relationshipOrDefault(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return models.DefaultReason
	}
	return v
}
