package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContributionType is a catalog entry for voluntary contributions
type ContributionType struct {
	Name            string          `json:"tenPhi"`
	SuggestedAmount decimal.Decimal `json:"soTienGoiY"`
}

// Contribution is an append-only voluntary contribution by a household
type Contribution struct {
	ID          int             `json:"id"`
	HouseholdID string          `json:"maHoKhau"`
	TypeName    string          `json:"tenPhi"`
	Amount      decimal.Decimal `json:"soTien"`
	Date        time.Time       `json:"ngayDongGop"`
}

type CreateContributionRequest struct {
	MaHoKhau    string          `json:"maHoKhau"`
	TenPhi      string          `json:"tenPhi"`
	SoTien      decimal.Decimal `json:"soTien"`
	NgayDongGop string          `json:"ngayDongGop"`
}

type CreateContributionTypeRequest struct {
	TenPhi     string          `json:"tenPhi"`
	SoTienGoiY decimal.Decimal `json:"soTienGoiY"`
}
