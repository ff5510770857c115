package models

import (
	"strings"
	"time"

	"apartment-backend/internal/apperr"

	"github.com/shopspring/decimal"
)

// FeeCategory is the closed set of fee ledgers. The value is also the wire name
// used in URLs and the value stored in fee_records.category.
type FeeCategory string

const (
	FeeService    FeeCategory = "phidichvu"
	FeeManagement FeeCategory = "phiquanly"
	FeeParking    FeeCategory = "phiguixe"
	FeeUtility    FeeCategory = "phisinhhoat"
)

// FeeCategories lists every category in display order
var FeeCategories = []FeeCategory{FeeService, FeeManagement, FeeParking, FeeUtility}

const (
	MinFeeYear   = 2000
	MaxFeeYear   = 2100
	MonthsInYear = 12
)

// ParseFeeCategory maps a wire name onto the enumeration, case-insensitively.
func ParseFeeCategory(name string) (FeeCategory, error) {
	c := FeeCategory(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range FeeCategories {
		if c == known {
			return c, nil
		}
	}
	return "", apperr.Validation("Invalid fee type")
}

// Payable reports whether a month can be marked paid at the stored monthly due.
// Utility months are set by utility updates instead.
func (c FeeCategory) Payable() bool {
	return c == FeeService || c == FeeManagement || c == FeeParking
}

// AreaPriced reports whether the monthly due is unit price x floor area.
func (c FeeCategory) AreaPriced() bool {
	return c == FeeService || c == FeeManagement
}

func (c FeeCategory) Label() string {
	switch c {
	case FeeService:
		return "Phi Dich Vu"
	case FeeManagement:
		return "Phi Quan Ly"
	case FeeParking:
		return "Phi Gui Xe"
	case FeeUtility:
		return "Phi Sinh Hoat"
	}
	return string(c)
}

func ValidateFeeYear(year int) error {
	if year < MinFeeYear || year > MaxFeeYear {
		return apperr.Validation("Year must be between %d and %d", MinFeeYear, MaxFeeYear)
	}
	return nil
}

func ValidateMonth(month int) error {
	if month < 1 || month > MonthsInYear {
		return apperr.Validation("Month must be between 1 and %d", MonthsInYear)
	}
	return nil
}

// PriceBasis holds the unit prices a monthly due was derived from. Area-priced
// categories use UnitPrice; parking uses the three vehicle prices.
type PriceBasis struct {
	UnitPrice decimal.Decimal `json:"giaPhi"`
	MotoPrice decimal.Decimal `json:"giaXeMay"`
	CarPrice  decimal.Decimal `json:"giaOTo"`
	BikePrice decimal.Decimal `json:"giaXeDap"`
}

// MonthlyDue derives the amount a household owes per month under basis.
// Utility has no price basis and always yields zero.
func (c FeeCategory) MonthlyDue(basis PriceBasis, h *Household) decimal.Decimal {
	switch {
	case c.AreaPriced():
		return basis.UnitPrice.Mul(h.Area)
	case c == FeeParking:
		return basis.MotoPrice.Mul(decimal.NewFromInt(int64(h.MotorbikeCount))).
			Add(basis.CarPrice.Mul(decimal.NewFromInt(int64(h.CarCount)))).
			Add(basis.BikePrice.Mul(decimal.NewFromInt(int64(h.BicycleCount))))
	}
	return decimal.Zero
}

// FeeRecord is one {household, year, category} row of the fee ledger.
// Months[i] holds the amount paid for month i+1; zero means unpaid.
type FeeRecord struct {
	PriceBasis

	HouseholdID string                        `json:"maHoKhau"`
	Year        int                           `json:"nam"`
	Category    FeeCategory                   `json:"loaiPhi"`
	MonthlyDue  decimal.Decimal               `json:"tienNopMoiThang"`
	Months      [MonthsInYear]decimal.Decimal `json:"months"`
	UpdatedAt   time.Time                     `json:"updated_at"`
}

// NewFeeRecord returns an unpaid row
func NewFeeRecord(householdID string, year int, category FeeCategory) *FeeRecord {
	r := &FeeRecord{HouseholdID: householdID, Year: year, Category: category}
	for i := range r.Months {
		r.Months[i] = decimal.Zero
	}
	return r
}

// Paid reports whether month (1-12) has a recorded amount
func (r *FeeRecord) Paid(month int) bool {
	return r.Months[month-1].IsPositive()
}

// UtilityUpdate is the electricity/water/internet breakdown for one household-month
type UtilityUpdate struct {
	HouseholdID string          `json:"maHoKhau"`
	Month       int             `json:"thang"`
	Year        int             `json:"nam"`
	Electricity decimal.Decimal `json:"tienDien"`
	Water       decimal.Decimal `json:"tienNuoc"`
	Internet    decimal.Decimal `json:"tienInternet"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (u *UtilityUpdate) Total() decimal.Decimal {
	return u.Electricity.Add(u.Water).Add(u.Internet)
}

// PayFeeRequest marks one month paid
type PayFeeRequest struct {
	MaHoKhau string `json:"maHoKhau"`
	Thang    int    `json:"thang"`
	Nam      int    `json:"nam"`
}

// UpdateUtilityRequest upserts the utility breakdown for one month
type UpdateUtilityRequest struct {
	MaHoKhau     string          `json:"maHoKhau"`
	Thang        int             `json:"thang"`
	Nam          int             `json:"nam"`
	TienDien     decimal.Decimal `json:"tienDien"`
	TienNuoc     decimal.Decimal `json:"tienNuoc"`
	TienInternet decimal.Decimal `json:"tienInternet"`
}

// SetPriceRequest reprices an area-based category from Nam onwards
type SetPriceRequest struct {
	GiaPhi decimal.Decimal `json:"giaPhi"`
	Nam    int             `json:"nam"`
}

// SetParkingPriceRequest reprices parking from Nam onwards
type SetParkingPriceRequest struct {
	GiaXeMay decimal.Decimal `json:"giaXeMay"`
	GiaOTo   decimal.Decimal `json:"giaOTo"`
	GiaXeDap decimal.Decimal `json:"giaXeDap"`
	Nam      int             `json:"nam"`
}

// RepriceResult reports how many households a fan-out reprice touched
type RepriceResult struct {
	Message    string `json:"message"`
	Households int    `json:"households"`
}
