package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a lump-sum payment made by a household. PaidAt is set by the server.
type Payment struct {
	ID          int             `json:"id"`
	HouseholdID string          `json:"maHoKhau"`
	Amount      decimal.Decimal `json:"soTienThanhToan"`
	PaidAt      time.Time       `json:"ngayThanhToan"`
}

type CreatePaymentRequest struct {
	MaHoKhau        string          `json:"maHoKhau"`
	SoTienThanhToan decimal.Decimal `json:"soTienThanhToan"`
}
