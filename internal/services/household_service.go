package services

import (
	"context"
	"strings"
	"time"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/models"
	"apartment-backend/internal/timeutil"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// billedCategories have a price basis that depends on household attributes
var billedCategories = []models.FeeCategory{models.FeeService, models.FeeManagement, models.FeeParking}

type HouseholdService struct {
	Repo HouseholdStore
	Fees FeeStore
	Tx   Transactor
}

func NewHouseholdService(repo HouseholdStore, fees FeeStore, tx Transactor) *HouseholdService {
	return &HouseholdService{Repo: repo, Fees: fees, Tx: tx}
}

func (s *HouseholdService) List(ctx context.Context) ([]*models.Household, error) {
	return s.Repo.List(ctx)
}

func (s *HouseholdService) Get(ctx context.Context, id string) (*models.Household, error) {
	return s.Repo.Get(ctx, id)
}

// Create registers a household. Dates default to today and the move-out
// reason to DefaultReason.
func (s *HouseholdService) Create(ctx context.Context, req *models.CreateHouseholdRequest) (*models.Household, error) {
	id := strings.TrimSpace(req.MaHoKhau)
	address := strings.TrimSpace(req.DiaChi)
	if id == "" || address == "" {
		return nil, apperr.Validation("Household ID and address are required")
	}
	if err := validateQuantities(req.DienTichHo, req.SoXeMay, req.SoOTo, req.SoXeDap); err != nil {
		return nil, err
	}

	today := timeutil.StartOfDay(timeutil.Now())
	registered, err := dateOrDefault(req.NgayLap, today, "ngayLap")
	if err != nil {
		return nil, err
	}
	movedOut, err := dateOrDefault(req.NgayChuyenDi, today, "ngayChuyenDi")
	if err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(req.LyDoChuyen)
	if reason == "" {
		reason = models.DefaultReason
	}

	h := &models.Household{
		ID:             id,
		Address:        address,
		RegisteredAt:   registered,
		MovedOutAt:     movedOut,
		MoveOutReason:  reason,
		Area:           req.DienTichHo,
		MotorbikeCount: req.SoXeMay,
		CarCount:       req.SoOTo,
		BicycleCount:   req.SoXeDap,
	}
	if err := s.Repo.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// Update applies the non-nil fields of req. When area or a vehicle count
// changes and req.Nam is set, every billed category that already has a row for
// that year gets its dues recomputed from Nam onwards, each row keeping its own
// price basis. Everything happens in one transaction.
func (s *HouseholdService) Update(ctx context.Context, id string, req *models.UpdateHouseholdRequest) (*models.Household, error) {
	if err := validateUpdate(req); err != nil {
		return nil, err
	}

	var updated *models.Household
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		h, err := s.Repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := applyUpdate(h, req); err != nil {
			return err
		}
		if err := s.Repo.Update(ctx, h); err != nil {
			return err
		}
		if req.ChangesBillingQuantities() && req.Nam != nil {
			if err := s.recomputeDues(ctx, h, *req.Nam); err != nil {
				return err
			}
		}
		updated = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *HouseholdService) recomputeDues(ctx context.Context, h *models.Household, fromYear int) error {
	for _, category := range billedCategories {
		exists, err := s.Fees.Exists(ctx, h.ID, fromYear, category)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}

		rows, err := s.Fees.ListForHouseholdFrom(ctx, h.ID, category, fromYear)
		if err != nil {
			return err
		}
		for _, row := range rows {
			due := category.MonthlyDue(row.PriceBasis, h)
			if err := s.Fees.UpdateMonthlyDue(ctx, h.ID, row.Year, category, due); err != nil {
				return err
			}
		}
		zap.L().Info("[Household] Recomputed dues",
			zap.String("household", h.ID),
			zap.String("category", string(category)),
			zap.Int("from_year", fromYear),
			zap.Int("rows", len(rows)))
	}
	return nil
}

// Delete removes the household only. Missing IDs are not an error.
func (s *HouseholdService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func validateQuantities(area decimal.Decimal, moto, car, bike int) error {
	if area.IsNegative() {
		return apperr.Validation("Area cannot be negative")
	}
	if moto < 0 || car < 0 || bike < 0 {
		return apperr.Validation("Vehicle counts cannot be negative")
	}
	return nil
}

func validateUpdate(req *models.UpdateHouseholdRequest) error {
	if req.DiaChi != nil && strings.TrimSpace(*req.DiaChi) == "" {
		return apperr.Validation("Address cannot be empty")
	}
	if req.DienTichHo != nil && req.DienTichHo.IsNegative() {
		return apperr.Validation("Area cannot be negative")
	}
	for _, n := range []*int{req.SoXeMay, req.SoOTo, req.SoXeDap} {
		if n != nil && *n < 0 {
			return apperr.Validation("Vehicle counts cannot be negative")
		}
	}
	if req.Nam != nil {
		return models.ValidateFeeYear(*req.Nam)
	}
	return nil
}

func applyUpdate(h *models.Household, req *models.UpdateHouseholdRequest) error {
	if req.DiaChi != nil {
		h.Address = strings.TrimSpace(*req.DiaChi)
	}
	if req.NgayLap != nil {
		t, err := dateOrDefault(*req.NgayLap, h.RegisteredAt, "ngayLap")
		if err != nil {
			return err
		}
		h.RegisteredAt = t
	}
	if req.NgayChuyenDi != nil {
		t, err := dateOrDefault(*req.NgayChuyenDi, h.MovedOutAt, "ngayChuyenDi")
		if err != nil {
			return err
		}
		h.MovedOutAt = t
	}
	if req.LyDoChuyen != nil {
		h.MoveOutReason = strings.TrimSpace(*req.LyDoChuyen)
		if h.MoveOutReason == "" {
			h.MoveOutReason = models.DefaultReason
		}
	}
	if req.DienTichHo != nil {
		h.Area = *req.DienTichHo
	}
	if req.SoXeMay != nil {
		h.MotorbikeCount = *req.SoXeMay
	}
	if req.SoOTo != nil {
		h.CarCount = *req.SoOTo
	}
	if req.SoXeDap != nil {
		h.BicycleCount = *req.SoXeDap
	}
	return nil
}

// dateOrDefault parses value, returning def when value is blank
func dateOrDefault(value string, def time.Time, field string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return def, nil
	}
	t, err := timeutil.ParseDate(value)
	if err != nil {
		return time.Time{}, apperr.Validation("Invalid date for %s", field)
	}
	return t, nil
}
