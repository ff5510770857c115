package repositories

import (
	"context"
	"fmt"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/db"
	"apartment-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: pool}
}

const userColumns = `username, password, full_name, email, phone, address, age, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	err := db.Conn(ctx, r.DB).QueryRow(ctx,
		`INSERT INTO users(username, password, full_name, email, phone, address, age)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING created_at, updated_at`,
		u.Username, u.Password, u.FullName, u.Email, u.Phone, u.Address, u.Age,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return apperr.Conflict("Username already exists")
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := db.Conn(ctx, r.DB).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username=$1`, username)

	var user models.User
	err := row.Scan(&user.Username, &user.Password, &user.FullName, &user.Email,
		&user.Phone, &user.Address, &user.Age, &user.CreatedAt, &user.UpdatedAt)
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", username, err)
	}
	return &user, nil
}

// UpdatePassword stores a new secret as given (plain or pre-hashed)
func (r *UserRepository) UpdatePassword(ctx context.Context, username, password string) error {
	tag, err := db.Conn(ctx, r.DB).Exec(ctx,
		`UPDATE users SET password=$1, updated_at=NOW() WHERE username=$2`,
		password, username)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}

// UpdateProfile overwrites every profile field
func (r *UserRepository) UpdateProfile(ctx context.Context, u *models.User) error {
	tag, err := db.Conn(ctx, r.DB).Exec(ctx,
		`UPDATE users SET full_name=$1, email=$2, phone=$3, address=$4, age=$5, updated_at=NOW()
         WHERE username=$6`,
		u.FullName, u.Email, u.Phone, u.Address, u.Age, u.Username)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}
