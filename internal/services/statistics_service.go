package services

import (
	"context"

	"apartment-backend/internal/models"
	"apartment-backend/internal/timeutil"
)

type StatisticsService struct {
	Households HouseholdStore
	Residents  ResidentStore
	Payments   PaymentStore
	Fees       FeeStore
}

func NewStatisticsService(households HouseholdStore, residents ResidentStore, payments PaymentStore, fees FeeStore) *StatisticsService {
	return &StatisticsService{Households: households, Residents: residents, Payments: payments, Fees: fees}
}

// Get computes the dashboard snapshot as of now in the building's time zone
func (s *StatisticsService) Get(ctx context.Context) (*models.Statistics, error) {
	now := timeutil.Now()
	monthStart := timeutil.StartOfMonth(now)
	yearStart := timeutil.StartOfYear(now)

	var stats models.Statistics
	var err error

	if stats.TotalHouseholds, err = s.Households.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalResidents, err = s.Residents.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PaymentThisMonth, err = s.Payments.SumBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0)); err != nil {
		return nil, err
	}
	if stats.PaymentThisYear, err = s.Payments.SumBetween(ctx, yearStart, yearStart.AddDate(1, 0, 0)); err != nil {
		return nil, err
	}

	year, month := now.Year(), int(now.Month())
	if stats.UnpaidFees.DichVu, err = s.Fees.CountUnpaid(ctx, models.FeeService, year, month); err != nil {
		return nil, err
	}
	if stats.UnpaidFees.QuanLy, err = s.Fees.CountUnpaid(ctx, models.FeeManagement, year, month); err != nil {
		return nil, err
	}
	if stats.UnpaidFees.GuiXe, err = s.Fees.CountUnpaid(ctx, models.FeeParking, year, month); err != nil {
		return nil, err
	}

	return &stats, nil
}
