package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultReason is stored when no move-out reason or relationship label is given ("none").
const DefaultReason = "Không"

// Household is a dwelling unit, the billing unit for every fee category.
type Household struct {
	ID             string          `json:"maHoKhau"`
	Address        string          `json:"diaChi"`
	RegisteredAt   time.Time       `json:"ngayLap"`
	MovedOutAt     time.Time       `json:"ngayChuyenDi"`
	MoveOutReason  string          `json:"lyDoChuyen"`
	Area           decimal.Decimal `json:"dienTichHo"`
	MotorbikeCount int             `json:"soXeMay"`
	CarCount       int             `json:"soOTo"`
	BicycleCount   int             `json:"soXeDap"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateHouseholdRequest represents the request body for creating a household
type CreateHouseholdRequest struct {
	MaHoKhau     string          `json:"maHoKhau"`
	DiaChi       string          `json:"diaChi"`
	NgayLap      string          `json:"ngayLap"`
	NgayChuyenDi string          `json:"ngayChuyenDi"`
	LyDoChuyen   string          `json:"lyDoChuyen"`
	DienTichHo   decimal.Decimal `json:"dienTichHo"`
	SoXeMay      int             `json:"soXeMay"`
	SoOTo        int             `json:"soOTo"`
	SoXeDap      int             `json:"soXeDap"`
}

// UpdateHouseholdRequest represents the request body for editing a household.
// Nil fields keep their stored value. Nam selects the fee year from which
// dues are recomputed when area or vehicle counts change.
type UpdateHouseholdRequest struct {
	DiaChi       *string          `json:"diaChi"`
	NgayLap      *string          `json:"ngayLap"`
	NgayChuyenDi *string          `json:"ngayChuyenDi"`
	LyDoChuyen   *string          `json:"lyDoChuyen"`
	DienTichHo   *decimal.Decimal `json:"dienTichHo"`
	SoXeMay      *int             `json:"soXeMay"`
	SoOTo        *int             `json:"soOTo"`
	SoXeDap      *int             `json:"soXeDap"`
	Nam          *int             `json:"nam"`
}

// ChangesBillingQuantities reports whether the request touches area or vehicle counts.
func (r *UpdateHouseholdRequest) ChangesBillingQuantities() bool {
	return r.DienTichHo != nil || r.SoXeMay != nil || r.SoOTo != nil || r.SoXeDap != nil
}
