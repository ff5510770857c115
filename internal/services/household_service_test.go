package services

import (
	"context"
	"errors"
	"testing"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/models"
	"apartment-backend/internal/testutil"
)

func newHouseholdService(db *testutil.DB) *HouseholdService {
	return NewHouseholdService(db.Households(), db.Fees(), db)
}

func TestCreateHouseholdDefaults(t *testing.T) {
	db := testutil.NewDB()
	h, err := newHouseholdService(db).Create(context.Background(), &models.CreateHouseholdRequest{
		MaHoKhau: "HK01", DiaChi: "P101", DienTichHo: dec("72.5"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if h.MoveOutReason != models.DefaultReason {
		t.Errorf("expected default reason, got %q", h.MoveOutReason)
	}
	if h.RegisteredAt.IsZero() || h.MovedOutAt.IsZero() {
		t.Errorf("dates should default to today")
	}
	if h.MotorbikeCount != 0 || h.CarCount != 0 || h.BicycleCount != 0 {
		t.Errorf("vehicle counts should default to zero")
	}
}

func TestCreateHouseholdValidation(t *testing.T) {
	svc := newHouseholdService(testutil.NewDB())
	ctx := context.Background()

	bad := []models.CreateHouseholdRequest{
		{DiaChi: "P101"},
		{MaHoKhau: "HK01"},
		{MaHoKhau: "HK01", DiaChi: "P101", DienTichHo: dec("-1")},
		{MaHoKhau: "HK01", DiaChi: "P101", SoXeMay: -1},
		{MaHoKhau: "HK01", DiaChi: "P101", NgayLap: "not-a-date"},
	}
	for i, req := range bad {
		if _, err := svc.Create(ctx, &req); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestCreateHouseholdDuplicate(t *testing.T) {
	svc := newHouseholdService(testutil.NewDB())
	ctx := context.Background()
	req := &models.CreateHouseholdRequest{MaHoKhau: "HK01", DiaChi: "P101"}

	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := svc.Create(ctx, req); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestUpdateHouseholdKeepsOmittedFields(t *testing.T) {
	db := testutil.NewDB()
	seedHousehold(t, db, "HK01", "50", 1, 0, 0)
	addr := "P202"

	h, err := newHouseholdService(db).Update(context.Background(), "HK01", &models.UpdateHouseholdRequest{DiaChi: &addr})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if h.Address != "P202" {
		t.Errorf("expected new address, got %q", h.Address)
	}
	if !h.Area.Equal(dec("50")) || h.MotorbikeCount != 1 {
		t.Errorf("omitted fields must keep stored values, got area %s moto %d", h.Area, h.MotorbikeCount)
	}
}

func TestUpdateHouseholdNotFound(t *testing.T) {
	addr := "P202"
	_, err := newHouseholdService(testutil.NewDB()).Update(context.Background(), "missing", &models.UpdateHouseholdRequest{DiaChi: &addr})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestUpdateHouseholdRecomputesDuesFromYear(t *testing.T) {
	db := testutil.NewDB()
	seedHousehold(t, db, "HK01", "50", 1, 0, 0)
	seedFee(db, "HK01", 2023, models.FeeService, models.PriceBasis{UnitPrice: dec("10000")}, "500000")
	seedFee(db, "HK01", 2024, models.FeeService, models.PriceBasis{UnitPrice: dec("10000")}, "500000")
	seedFee(db, "HK01", 2025, models.FeeService, models.PriceBasis{UnitPrice: dec("12000")}, "600000")
	seedFee(db, "HK01", 2024, models.FeeParking, models.PriceBasis{MotoPrice: dec("70000")}, "70000")

	area := dec("60")
	moto := 2
	_, err := newHouseholdService(db).Update(context.Background(), "HK01", &models.UpdateHouseholdRequest{
		DienTichHo: &area,
		SoXeMay:    &moto,
		Nam:        intPtr(2024),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	checks := []struct {
		year     int
		category models.FeeCategory
		due      string
	}{
		{2023, models.FeeService, "500000"},
		{2024, models.FeeService, "600000"},
		{2025, models.FeeService, "720000"}, // keeps its own 12000 basis
		{2024, models.FeeParking, "140000"},
	}
	for _, c := range checks {
		rec := db.Fee("HK01", c.year, c.category)
		if rec == nil || !rec.MonthlyDue.Equal(dec(c.due)) {
			t.Errorf("%s %d: expected due %s, got %+v", c.category, c.year, c.due, rec)
		}
	}
}

func TestUpdateHouseholdWithoutYearLeavesDues(t *testing.T) {
	db := testutil.NewDB()
	seedHousehold(t, db, "HK01", "50", 0, 0, 0)
	seedFee(db, "HK01", 2024, models.FeeService, models.PriceBasis{UnitPrice: dec("10000")}, "500000")

	area := dec("80")
	if _, err := newHouseholdService(db).Update(context.Background(), "HK01", &models.UpdateHouseholdRequest{DienTichHo: &area}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if rec := db.Fee("HK01", 2024, models.FeeService); !rec.MonthlyDue.Equal(dec("500000")) {
		t.Errorf("dues must not change without a year, got %s", rec.MonthlyDue)
	}
}

func TestUpdateHouseholdRollsBackOnRecomputeFailure(t *testing.T) {
	db := testutil.NewDB()
	seedHousehold(t, db, "HK01", "50", 0, 0, 0)
	seedFee(db, "HK01", 2024, models.FeeService, models.PriceBasis{UnitPrice: dec("10000")}, "500000")
	db.Fail["UpdateMonthlyDue:HK01"] = errors.New("serialization failure")

	area := dec("80")
	_, err := newHouseholdService(db).Update(context.Background(), "HK01", &models.UpdateHouseholdRequest{DienTichHo: &area, Nam: intPtr(2024)})
	if err == nil {
		t.Fatalf("expected failure")
	}

	h, err := db.Households().Get(context.Background(), "HK01")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !h.Area.Equal(dec("50")) {
		t.Errorf("household update must be rolled back, area is %s", h.Area)
	}
}

func TestDeleteHouseholdIsIdempotent(t *testing.T) {
	db := testutil.NewDB()
	seedHousehold(t, db, "HK01", "50", 0, 0, 0)
	svc := newHouseholdService(db)

	for i := 0; i < 2; i++ {
		if err := svc.Delete(context.Background(), "HK01"); err != nil {
			t.Fatalf("Delete #%d failed: %v", i+1, err)
		}
	}
	if _, err := svc.Get(context.Background(), "HK01"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected household to be gone, got %v", err)
	}
}
