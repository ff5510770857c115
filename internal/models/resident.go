package models

import "time"

// Resident is an individual keyed by national ID, optionally linked to a household.
type Resident struct {
	NationalID   string    `json:"soCMND_CCCD"`
	HouseholdID  *string   `json:"maHoKhau"`
	FullName     string    `json:"hoTen"`
	Age          int       `json:"tuoi"`
	Sex          string    `json:"gioiTinh"`
	Phone        string    `json:"soDT"`
	Relationship string    `json:"quanHe"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateResidentRequest represents the request body for creating a resident
type CreateResidentRequest struct {
	MaHoKhau    string `json:"maHoKhau"`
	HoTen       string `json:"hoTen"`
	Tuoi        int    `json:"tuoi"`
	GioiTinh    string `json:"gioiTinh"`
	SoCMND_CCCD string `json:"soCMND_CCCD"`
	SoDT        string `json:"soDT"`
	QuanHe      string `json:"quanHe"`
}

// UpdateResidentRequest represents the request body for updating a resident
type UpdateResidentRequest struct {
	MaHoKhau string `json:"maHoKhau"`
	HoTen    string `json:"hoTen"`
	Tuoi     int    `json:"tuoi"`
	GioiTinh string `json:"gioiTinh"`
	SoDT     string `json:"soDT"`
	QuanHe   string `json:"quanHe"`
}
