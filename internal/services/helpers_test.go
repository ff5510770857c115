package services

import (
	"context"
	"testing"

	"apartment-backend/internal/models"
	"apartment-backend/internal/testutil"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(n int) *int { return &n }

func seedHousehold(t *testing.T, db *testutil.DB, id, area string, moto, car, bike int) {
	t.Helper()
	err := db.Households().Create(context.Background(), &models.Household{
		ID:             id,
		Address:        "Toa A - " + id,
		MoveOutReason:  models.DefaultReason,
		Area:           dec(area),
		MotorbikeCount: moto,
		CarCount:       car,
		BicycleCount:   bike,
	})
	if err != nil {
		t.Fatalf("seed household %s: %v", id, err)
	}
}

func seedFee(db *testutil.DB, id string, year int, category models.FeeCategory, basis models.PriceBasis, due string) {
	rec := models.NewFeeRecord(id, year, category)
	rec.PriceBasis = basis
	rec.MonthlyDue = dec(due)
	db.SeedFee(rec)
}

func newFeeService(db *testutil.DB) *FeeService {
	return NewFeeService(db.Fees(), db.Households(), db)
}
