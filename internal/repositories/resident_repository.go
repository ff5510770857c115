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

type ResidentRepository struct {
	DB *pgxpool.Pool
}

func NewResidentRepository(pool *pgxpool.Pool) *ResidentRepository {
	return &ResidentRepository{DB: pool}
}

const residentColumns = `national_id, household_id, full_name, age, sex, phone, relationship, created_at, updated_at`

func scanResident(row pgx.Row) (*models.Resident, error) {
	var p models.Resident
	err := row.Scan(&p.NationalID, &p.HouseholdID, &p.FullName, &p.Age, &p.Sex,
		&p.Phone, &p.Relationship, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ResidentRepository) Create(ctx context.Context, p *models.Resident) error {
	err := db.Conn(ctx, r.DB).QueryRow(ctx,
		`INSERT INTO residents(national_id, household_id, full_name, age, sex, phone, relationship)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING created_at, updated_at`,
		p.NationalID, p.HouseholdID, p.FullName, p.Age, p.Sex, p.Phone, p.Relationship,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return apperr.Conflict("Resident with this ID already exists")
	}
	if err != nil {
		return fmt.Errorf("insert resident: %w", err)
	}
	return nil
}

func (r *ResidentRepository) Get(ctx context.Context, nationalID string) (*models.Resident, error) {
	p, err := scanResident(db.Conn(ctx, r.DB).QueryRow(ctx,
		`SELECT `+residentColumns+` FROM residents WHERE national_id=$1`, nationalID))
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("Resident not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get resident: %w", err)
	}
	return p, nil
}

func (r *ResidentRepository) List(ctx context.Context) ([]*models.Resident, error) {
	rows, err := db.Conn(ctx, r.DB).Query(ctx,
		`SELECT `+residentColumns+` FROM residents ORDER BY household_id NULLS LAST, full_name`)
	if err != nil {
		return nil, fmt.Errorf("list residents: %w", err)
	}
	defer rows.Close()

	residents := []*models.Resident{}
	for rows.Next() {
		p, err := scanResident(rows)
		if err != nil {
			return nil, err
		}
		residents = append(residents, p)
	}
	return residents, rows.Err()
}

// Update overwrites everything except the national ID
func (r *ResidentRepository) Update(ctx context.Context, p *models.Resident) error {
	err := db.Conn(ctx, r.DB).QueryRow(ctx,
		`UPDATE residents
         SET household_id=$1, full_name=$2, age=$3, sex=$4, phone=$5, relationship=$6, updated_at=NOW()
         WHERE national_id=$7
         RETURNING created_at, updated_at`,
		p.HouseholdID, p.FullName, p.Age, p.Sex, p.Phone, p.Relationship, p.NationalID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if db.IsNoRows(err) {
		return apperr.NotFound("Resident not found")
	}
	if err != nil {
		return fmt.Errorf("update resident: %w", err)
	}
	return nil
}

func (r *ResidentRepository) Delete(ctx context.Context, nationalID string) error {
	if _, err := db.Conn(ctx, r.DB).Exec(ctx, `DELETE FROM residents WHERE national_id=$1`, nationalID); err != nil {
		return fmt.Errorf("delete resident: %w", err)
	}
	return nil
}

func (r *ResidentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := db.Conn(ctx, r.DB).QueryRow(ctx, `SELECT COUNT(*) FROM residents`).Scan(&n)
	return n, err
}
