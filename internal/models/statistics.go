package models

import "github.com/shopspring/decimal"

// Statistics is the dashboard snapshot, recomputed on every request
type Statistics struct {
	TotalHouseholds  int64           `json:"totalHouseholds"`
	TotalResidents   int64           `json:"totalResidents"`
	PaymentThisMonth decimal.Decimal `json:"paymentThisMonth"`
	PaymentThisYear  decimal.Decimal `json:"paymentThisYear"`
	UnpaidFees       UnpaidFees      `json:"unpaidFees"`
}

// UnpaidFees counts current-year rows whose current-month slot is still zero
type UnpaidFees struct {
	DichVu int64 `json:"dichVu"`
	QuanLy int64 `json:"quanLy"`
	GuiXe  int64 `json:"guiXe"`
}
