package repositories

import (
	"context"
	"fmt"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/db"
	"apartment-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HouseholdRepository struct {
	DB *pgxpool.Pool
}

func NewHouseholdRepository(pool *pgxpool.Pool) *HouseholdRepository {
	return &HouseholdRepository{DB: pool}
}

const householdColumns = `id, address, registered_at, moved_out_at, move_out_reason, area,
	motorbike_count, car_count, bicycle_count, created_at, updated_at`

func scanHousehold(row pgx.Row) (*models.Household, error) {
	var h models.Household
	err := row.Scan(&h.ID, &h.Address, &h.RegisteredAt, &h.MovedOutAt, &h.MoveOutReason, &h.Area,
		&h.MotorbikeCount, &h.CarCount, &h.BicycleCount, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HouseholdRepository) Create(ctx context.Context, h *models.Household) error {
	err := db.Conn(ctx, r.DB).QueryRow(ctx,
		`INSERT INTO households(id, address, registered_at, moved_out_at, move_out_reason, area,
            motorbike_count, car_count, bicycle_count)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING created_at, updated_at`,
		h.ID, h.Address, h.RegisteredAt, h.MovedOutAt, h.MoveOutReason, h.Area,
		h.MotorbikeCount, h.CarCount, h.BicycleCount,
	).Scan(&h.CreatedAt, &h.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return apperr.Conflict("Household ID already exists")
	}
	if err != nil {
		return fmt.Errorf("insert household: %w", err)
	}
	return nil
}

func (r *HouseholdRepository) Get(ctx context.Context, id string) (*models.Household, error) {
	h, err := scanHousehold(db.Conn(ctx, r.DB).QueryRow(ctx,
		`SELECT `+householdColumns+` FROM households WHERE id=$1`, id))
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("Household not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get household %s: %w", id, err)
	}
	return h, nil
}

// List returns every household ordered by id
func (r *HouseholdRepository) List(ctx context.Context) ([]*models.Household, error) {
	rows, err := db.Conn(ctx, r.DB).Query(ctx,
		`SELECT `+householdColumns+` FROM households ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list households: %w", err)
	}
	defer rows.Close()

	households := []*models.Household{}
	for rows.Next() {
		h, err := scanHousehold(rows)
		if err != nil {
			return nil, err
		}
		households = append(households, h)
	}
	return households, rows.Err()
}

// Update writes every mutable column of h
func (r *HouseholdRepository) Update(ctx context.Context, h *models.Household) error {
	err := db.Conn(ctx, r.DB).QueryRow(ctx,
		`UPDATE households
         SET address=$1, registered_at=$2, moved_out_at=$3, move_out_reason=$4, area=$5,
             motorbike_count=$6, car_count=$7, bicycle_count=$8, updated_at=NOW()
         WHERE id=$9
         RETURNING updated_at`,
		h.Address, h.RegisteredAt, h.MovedOutAt, h.MoveOutReason, h.Area,
		h.MotorbikeCount, h.CarCount, h.BicycleCount, h.ID,
	).Scan(&h.UpdatedAt)
	if db.IsNoRows(err) {
		return apperr.NotFound("Household not found")
	}
	if err != nil {
		return fmt.Errorf("update household %s: %w", h.ID, err)
	}
	return nil
}

// Delete removes the row only. Residents and fee rows are left in place.
func (r *HouseholdRepository) Delete(ctx context.Context, id string) error {
	if _, err := db.Conn(ctx, r.DB).Exec(ctx, `DELETE FROM households WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete household %s: %w", id, err)
	}
	return nil
}

func (r *HouseholdRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := db.Conn(ctx, r.DB).QueryRow(ctx, `SELECT COUNT(*) FROM households`).Scan(&n)
	return n, err
}
