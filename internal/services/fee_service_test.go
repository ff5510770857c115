package services

import (
	"context"
	"errors"
	"testing"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/models"
	"apartment-backend/internal/testutil"
)

func TestSetPriceAppliesFromYearOnwards(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB()
	seedHousehold(t, db, "H1", "50", 0, 0, 0)
	oldBasis := models.PriceBasis{UnitPrice: dec("8000")}
	seedFee(db, "H1", 2023, models.FeeService, oldBasis, "400000")
	seedFee(db, "H1", 2025, models.FeeService, oldBasis, "400000")

	res, err := newFeeService(db).SetPrice(ctx, "phidichvu", &models.SetPriceRequest{GiaPhi: dec("10000"), Nam: 2024})
	if err != nil {
		t.Fatalf("SetPrice failed: %v", err)
	}
	if res.Households != 1 {
		t.Errorf("expected 1 household repriced, got %d", res.Households)
	}

	for _, year := range []int{2024, 2025} {
		rec := db.Fee("H1", year, models.FeeService)
		if rec == nil {
			t.Fatalf("expected a %d row", year)
		}
		if !rec.MonthlyDue.Equal(dec("500000")) {
			t.Errorf("year %d: expected monthly due 500000, got %s", year, rec.MonthlyDue)
		}
		if !rec.UnitPrice.Equal(dec("10000")) {
			t.Errorf("year %d: expected unit price 10000, got %s", year, rec.UnitPrice)
		}
	}

	earlier := db.Fee("H1", 2023, models.FeeService)
	if !earlier.MonthlyDue.Equal(dec("400000")) || !earlier.UnitPrice.Equal(dec("8000")) {
		t.Errorf("earlier year must be untouched, got due %s price %s", earlier.MonthlyDue, earlier.UnitPrice)
	}
}

func TestSetPriceKeepsPaidMonths(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB()
	seedHousehold(t, db, "H1", "40", 0, 0, 0)
	rec := models.NewFeeRecord("H1", 2024, models.FeeManagement)
	rec.MonthlyDue = dec("200000")
	rec.Months[0] = dec("200000")
	db.SeedFee(rec)

	if _, err := newFeeService(db).SetPrice(ctx, "phiquanly", &models.SetPriceRequest{GiaPhi: dec("7000"), Nam: 2024}); err != nil {
		t.Fatalf("SetPrice failed: %v", err)
	}

	got := db.Fee("H1", 2024, models.FeeManagement)
	if !got.MonthlyDue.Equal(dec("280000")) {
		t.Errorf("expected due 280000, got %s", got.MonthlyDue)
	}
	if !got.Months[0].Equal(dec("200000")) {
		t.Errorf("paid January must keep its recorded amount, got %s", got.Months[0])
	}
}

func TestSetPriceRejectsParkingAndUtility(t *testing.T) {
	svc := newFeeService(testutil.NewDB())
	for _, name := range []string{"phiguixe", "phisinhhoat"} {
		_, err := svc.SetPrice(context.Background(), name, &models.SetPriceRequest{GiaPhi: dec("1"), Nam: 2024})
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestSetPriceRejectsNegativePrice(t *testing.T) {
	_, err := newFeeService(testutil.NewDB()).SetPrice(context.Background(), "phidichvu",
		&models.SetPriceRequest{GiaPhi: dec("-1"), Nam: 2024})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSetPriceRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB()
	seedHousehold(t, db, "H1", "50", 0, 0, 0)
	seedHousehold(t, db, "H2", "60", 0, 0, 0)
	db.Fail["RepriceFrom:H2"] = errors.New("connection reset")

	_, err := newFeeService(db).SetPrice(ctx, "phidichvu", &models.SetPriceRequest{GiaPhi: dec("10000"), Nam: 2024})
	if err == nil {
		t.Fatalf("expected the fan-out to fail")
	}
	if rec := db.Fee("H1", 2024, models.FeeService); rec != nil {
		t.Errorf("H1 row must be rolled back, found due %s", rec.MonthlyDue)
	}
}

func TestSetParkingPrice(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB()
	seedHousehold(t, db, "H1", "50", 2, 1, 3)

	res, err := newFeeService(db).SetParkingPrice(ctx, &models.SetParkingPriceRequest{
		GiaXeMay: dec("70000"), GiaOTo: dec("1200000"), GiaXeDap: dec("20000"), Nam: 2024,
	})
	if err != nil {
		t.Fatalf("SetParkingPrice failed: %v", err)
	}
	if res.Households != 1 {
		t.Errorf("expected 1 household, got %d", res.Households)
	}

	rec := db.Fee("H1", 2024, models.FeeParking)
	// 2*70000 + 1*1200000 + 3*20000
	if rec == nil || !rec.MonthlyDue.Equal(dec("1400000")) {
		t.Fatalf("expected parking due 1400000, got %+v", rec)
	}
	if !rec.MotoPrice.Equal(dec("70000")) || !rec.CarPrice.Equal(dec("1200000")) || !rec.BikePrice.Equal(dec("20000")) {
		t.Errorf("expected vehicle prices stored on the row, got %+v", rec.PriceBasis)
	}
}

func TestPayIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB()
	seedFee(db, "H1", 2024, models.FeeService, models.PriceBasis{UnitPrice: dec("10000")}, "500000")
	svc := newFeeService(db)
	req := &models.PayFeeRequest{MaHoKhau: "H1", Thang: 3, Nam: 2024}

	for i := 0; i < 2; i++ {
		if err := svc.Pay(ctx, "phidichvu", req); err != nil {
			t.Fatalf("Pay #%d failed: %v", i+1, err)
		}
		rec := db.Fee("H1", 2024, models.FeeService)
		if !rec.Months[2].Equal(dec("500000")) {
			t.Errorf("after pay #%d expected March = 500000, got %s", i+1, rec.Months[2])
		}
	}

	rec := db.Fee("H1", 2024, models.FeeService)
	for i, m := range rec.Months {
		if i != 2 && !m.IsZero() {
			t.Errorf("month %d should be unpaid, got %s", i+1, m)
		}
	}
}

func TestPayErrors(t *testing.T) {
	ctx := context.Background()
	svc := newFeeService(testutil.NewDB())

	cases := []struct {
		name     string
		category string
		req      models.PayFeeRequest
		want     error
	}{
		{"unknown category", "phikhac", models.PayFeeRequest{MaHoKhau: "H1", Thang: 1, Nam: 2024}, apperr.ErrValidation},
		{"utility not payable", "phisinhhoat", models.PayFeeRequest{MaHoKhau: "H1", Thang: 1, Nam: 2024}, apperr.ErrValidation},
		{"month 13", "phidichvu", models.PayFeeRequest{MaHoKhau: "H1", Thang: 13, Nam: 2024}, apperr.ErrValidation},
		{"month 0", "phidichvu", models.PayFeeRequest{MaHoKhau: "H1", Thang: 0, Nam: 2024}, apperr.ErrValidation},
		{"missing household", "phidichvu", models.PayFeeRequest{Thang: 1, Nam: 2024}, apperr.ErrValidation},
		{"no row", "phidichvu", models.PayFeeRequest{MaHoKhau: "H1", Thang: 1, Nam: 2024}, apperr.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			if err := svc.Pay(ctx, tc.category, &req); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestUpdateUtilityUpserts(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB()
	svc := newFeeService(db)

	first, err := svc.UpdateUtility(ctx, &models.UpdateUtilityRequest{
		MaHoKhau: "H1", Thang: 5, Nam: 2024,
		TienDien: dec("100"), TienNuoc: dec("200"), TienInternet: dec("300"),
	})
	if err != nil {
		t.Fatalf("first UpdateUtility failed: %v", err)
	}
	if !first.Total().Equal(dec("600")) {
		t.Errorf("expected first total 600, got %s", first.Total())
	}
	if got := db.Fee("H1", 2024, models.FeeUtility).Months[4]; !got.Equal(dec("600")) {
		t.Errorf("expected May slot 600, got %s", got)
	}

	second, err := svc.UpdateUtility(ctx, &models.UpdateUtilityRequest{
		MaHoKhau: "H1", Thang: 5, Nam: 2024,
		TienDien: dec("150"), TienNuoc: dec("250"), TienInternet: dec("350"),
	})
	if err != nil {
		t.Fatalf("second UpdateUtility failed: %v", err)
	}
	if !second.Total().Equal(dec("750")) {
		t.Errorf("expected second total 750, got %s", second.Total())
	}

	stored := db.Utility("H1", 5, 2024)
	if stored == nil || !stored.Electricity.Equal(dec("150")) || !stored.Total().Equal(dec("750")) {
		t.Errorf("expected a single record with the latest amounts, got %+v", stored)
	}
	if got := db.Fee("H1", 2024, models.FeeUtility).Months[4]; !got.Equal(dec("750")) {
		t.Errorf("expected May slot 750, got %s", got)
	}
}

func TestUpdateUtilityRejectsNegativeAmounts(t *testing.T) {
	db := testutil.NewDB()
	_, err := newFeeService(db).UpdateUtility(context.Background(), &models.UpdateUtilityRequest{
		MaHoKhau: "H1", Thang: 5, Nam: 2024, TienDien: dec("-1"),
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if db.Utility("H1", 5, 2024) != nil {
		t.Errorf("nothing should be stored")
	}
}

func TestUpdateUtilityRollsBackWhenLedgerWriteFails(t *testing.T) {
	db := testutil.NewDB()
	db.Fail["SetMonth"] = errors.New("deadlock detected")

	_, err := newFeeService(db).UpdateUtility(context.Background(), &models.UpdateUtilityRequest{
		MaHoKhau: "H1", Thang: 5, Nam: 2024, TienDien: dec("100"),
	})
	if err == nil {
		t.Fatalf("expected failure")
	}
	if db.Utility("H1", 5, 2024) != nil {
		t.Errorf("utility record must be rolled back with the ledger write")
	}
}

func TestListYearBoundaries(t *testing.T) {
	ctx := context.Background()
	svc := newFeeService(testutil.NewDB())

	for _, year := range []int{1999, 2101} {
		if _, err := svc.List(ctx, "phidichvu", year); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("year %d: expected validation error, got %v", year, err)
		}
	}
	for _, year := range []int{2000, 2100} {
		rows, err := svc.List(ctx, "phidichvu", year)
		if err != nil {
			t.Errorf("year %d: unexpected error %v", year, err)
		}
		if len(rows) != 0 {
			t.Errorf("year %d: expected no rows, got %d", year, len(rows))
		}
	}
}

func TestListUnknownCategory(t *testing.T) {
	if _, err := newFeeService(testutil.NewDB()).List(context.Background(), "users", 2024); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
