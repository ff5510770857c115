package services

import (
	"context"
	"strings"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/metrics"
	"apartment-backend/internal/models"

	"go.uber.org/zap"
)

// FeeService is the fee ledger: per-household monthly dues for each category
// and year, and the months that have been paid.
type FeeService struct {
	Fees       FeeStore
	Households HouseholdStore
	Tx         Transactor
}

func NewFeeService(fees FeeStore, households HouseholdStore, tx Transactor) *FeeService {
	return &FeeService{Fees: fees, Households: households, Tx: tx}
}

// List returns every row of a category for one year
func (s *FeeService) List(ctx context.Context, categoryName string, year int) ([]*models.FeeRecord, error) {
	category, err := models.ParseFeeCategory(categoryName)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateFeeYear(year); err != nil {
		return nil, err
	}
	return s.Fees.ListByCategoryYear(ctx, category, year)
}

// Pay marks one month paid at the row's monthly due. Paying twice is harmless.
func (s *FeeService) Pay(ctx context.Context, categoryName string, req *models.PayFeeRequest) error {
	category, err := models.ParseFeeCategory(categoryName)
	if err != nil {
		return err
	}
	if !category.Payable() {
		return apperr.Validation("Fee type %s is set through utility updates", category)
	}
	householdID := strings.TrimSpace(req.MaHoKhau)
	if householdID == "" {
		return apperr.Validation("Household ID is required")
	}
	if err := models.ValidateMonth(req.Thang); err != nil {
		return err
	}
	if err := models.ValidateFeeYear(req.Nam); err != nil {
		return err
	}

	if err := s.Fees.MarkPaid(ctx, category, householdID, req.Thang, req.Nam); err != nil {
		return err
	}
	metrics.FeePaymentsTotal.WithLabelValues(string(category)).Inc()
	return nil
}

// UpdateUtility stores the utility breakdown for a month and writes its total
// into the month slot of the household's utility row.
func (s *FeeService) UpdateUtility(ctx context.Context, req *models.UpdateUtilityRequest) (*models.UtilityUpdate, error) {
	u := &models.UtilityUpdate{
		HouseholdID: strings.TrimSpace(req.MaHoKhau),
		Month:       req.Thang,
		Year:        req.Nam,
		Electricity: req.TienDien,
		Water:       req.TienNuoc,
		Internet:    req.TienInternet,
	}
	if u.HouseholdID == "" {
		return nil, apperr.Validation("Household ID is required")
	}
	if err := models.ValidateMonth(u.Month); err != nil {
		return nil, err
	}
	if err := models.ValidateFeeYear(u.Year); err != nil {
		return nil, err
	}
	if u.Electricity.IsNegative() || u.Water.IsNegative() || u.Internet.IsNegative() {
		return nil, apperr.Validation("Utility amounts cannot be negative")
	}

	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.Fees.UpsertUtility(ctx, u); err != nil {
			return err
		}
		return s.Fees.SetMonth(ctx, models.FeeUtility, u.HouseholdID, u.Month, u.Year, u.Total())
	})
	if err != nil {
		return nil, err
	}
	metrics.UtilityUpdatesTotal.Inc()
	return u, nil
}

// SetPrice reprices an area-based category for every household from req.Nam on
func (s *FeeService) SetPrice(ctx context.Context, categoryName string, req *models.SetPriceRequest) (*models.RepriceResult, error) {
	category, err := models.ParseFeeCategory(categoryName)
	if err != nil {
		return nil, err
	}
	if !category.AreaPriced() {
		return nil, apperr.Validation("Fee type %s is not priced by area", category)
	}
	if req.GiaPhi.IsNegative() {
		return nil, apperr.Validation("Price cannot be negative")
	}
	return s.reprice(ctx, category, models.PriceBasis{UnitPrice: req.GiaPhi}, req.Nam)
}

// SetParkingPrice reprices parking for every household from req.Nam on
func (s *FeeService) SetParkingPrice(ctx context.Context, req *models.SetParkingPriceRequest) (*models.RepriceResult, error) {
	if req.GiaXeMay.IsNegative() || req.GiaOTo.IsNegative() || req.GiaXeDap.IsNegative() {
		return nil, apperr.Validation("Prices cannot be negative")
	}
	basis := models.PriceBasis{
		MotoPrice: req.GiaXeMay,
		CarPrice:  req.GiaOTo,
		BikePrice: req.GiaXeDap,
	}
	return s.reprice(ctx, models.FeeParking, basis, req.Nam)
}

// reprice fans basis out to every household: the row for year is created when
// missing, and every row from year on gets the new basis and due. Earlier
// years are untouched. Any failure rolls the whole fan-out back.
func (s *FeeService) reprice(ctx context.Context, category models.FeeCategory, basis models.PriceBasis, year int) (*models.RepriceResult, error) {
	if err := models.ValidateFeeYear(year); err != nil {
		return nil, err
	}

	var count int
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		households, err := s.Households.List(ctx)
		if err != nil {
			return err
		}
		for _, h := range households {
			due := category.MonthlyDue(basis, h)

			rec := models.NewFeeRecord(h.ID, year, category)
			rec.PriceBasis = basis
			rec.MonthlyDue = due
			if err := s.Fees.EnsureRecord(ctx, rec); err != nil {
				return err
			}
			if _, err := s.Fees.RepriceFrom(ctx, h.ID, category, year, basis, due); err != nil {
				return err
			}
		}
		count = len(households)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.FeeRepricesTotal.WithLabelValues(string(category)).Inc()
	metrics.FeeRepricedHouseholds.WithLabelValues(string(category)).Add(float64(count))
	zap.L().Info("[Fees] Repriced",
		zap.String("category", string(category)),
		zap.Int("year", year),
		zap.Int("households", count))

	return &models.RepriceResult{
		Message:    "Price updated",
		Households: count,
	}, nil
}
