package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"apartment-backend/internal/apperr"

	"github.com/shopspring/decimal"
)

func TestParseFeeCategory(t *testing.T) {
	for _, name := range []string{"phidichvu", "PhiQuanLy", "phiguixe", " phisinhhoat "} {
		if _, err := ParseFeeCategory(name); err != nil {
			t.Errorf("ParseFeeCategory(%q) failed: %v", name, err)
		}
	}

	_, err := ParseFeeCategory("users; DROP TABLE hokhau")
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for unknown category, got %v", err)
	}
}

func TestValidateFeeYearBounds(t *testing.T) {
	for _, year := range []int{1999, 2101} {
		if err := ValidateFeeYear(year); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("year %d: expected validation error, got %v", year, err)
		}
	}
	for _, year := range []int{2000, 2100} {
		if err := ValidateFeeYear(year); err != nil {
			t.Errorf("year %d: unexpected error %v", year, err)
		}
	}
}

func TestValidateMonthBounds(t *testing.T) {
	if ValidateMonth(0) == nil || ValidateMonth(13) == nil {
		t.Errorf("expected months 0 and 13 to be rejected")
	}
	if ValidateMonth(1) != nil || ValidateMonth(12) != nil {
		t.Errorf("expected months 1 and 12 to be accepted")
	}
}

func TestMonthlyDueAreaPriced(t *testing.T) {
	h := &Household{Area: decimal.NewFromInt(50)}
	basis := PriceBasis{UnitPrice: decimal.NewFromInt(10000)}

	due := FeeService.MonthlyDue(basis, h)
	if !due.Equal(decimal.NewFromInt(500000)) {
		t.Errorf("expected 500000, got %s", due)
	}

	h.Area = decimal.RequireFromString("45.5")
	due = FeeManagement.MonthlyDue(basis, h)
	if !due.Equal(decimal.NewFromInt(455000)) {
		t.Errorf("expected 455000 for fractional area, got %s", due)
	}
}

func TestMonthlyDueParking(t *testing.T) {
	h := &Household{MotorbikeCount: 2, CarCount: 1, BicycleCount: 3}
	basis := PriceBasis{
		MotoPrice: decimal.NewFromInt(70000),
		CarPrice:  decimal.NewFromInt(1200000),
		BikePrice: decimal.NewFromInt(20000),
	}

	due := FeeParking.MonthlyDue(basis, h)
	if !due.Equal(decimal.NewFromInt(1400000)) {
		t.Errorf("expected 1400000, got %s", due)
	}
	if !FeeUtility.MonthlyDue(basis, h).IsZero() {
		t.Errorf("utility has no price basis and should yield zero")
	}
}

func TestFeeRecordJSONUsesMonthsArray(t *testing.T) {
	r := NewFeeRecord("HK01", 2024, FeeService)
	r.MonthlyDue = decimal.NewFromInt(500000)
	r.Months[2] = decimal.NewFromInt(500000)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, `"months":[0,0,500000,0,0,0,0,0,0,0,0,0]`) {
		t.Errorf("unexpected months encoding: %s", body)
	}
	if !strings.Contains(body, `"tienNopMoiThang":500000`) {
		t.Errorf("expected numeric monthly due: %s", body)
	}
	if !r.Paid(3) || r.Paid(4) {
		t.Errorf("expected only March to be paid")
	}
}

func TestResidenceRecordJSONPerKind(t *testing.T) {
	rec := ResidenceRecord{Kind: TemporaryAbsence, ID: "TV01", NationalID: "0123", Detail: "Da Nang"}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"maTamVang":"TV01"`) || !strings.Contains(string(data), `"noiTamTru":"Da Nang"`) {
		t.Errorf("unexpected absence encoding: %s", data)
	}
}
