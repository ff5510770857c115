package models

import "time"

// User is an operator credential. Username never changes after creation.
type User struct {
	Username  string    `json:"username"`
	Password  string    `json:"-"` // plain or bcrypt hash, never exposed
	FullName  string    `json:"hoTen"`
	Email     string    `json:"email"`
	Phone     string    `json:"soDT"`
	Address   string    `json:"diaChi"`
	Age       int       `json:"tuoi"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// ChangePasswordRequest represents the request body for rotating a secret
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UpdateInfoRequest overwrites the profile fields of the current user
type UpdateInfoRequest struct {
	HoTen  string `json:"hoTen"`
	Email  string `json:"email"`
	SoDT   string `json:"soDT"`
	DiaChi string `json:"diaChi"`
	Tuoi   int    `json:"tuoi"`
}
