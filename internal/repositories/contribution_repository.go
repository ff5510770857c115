package repositories

import (
	"context"
	"fmt"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/db"
	"apartment-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ContributionRepository struct {
	DB *pgxpool.Pool
}

func NewContributionRepository(pool *pgxpool.Pool) *ContributionRepository {
	return &ContributionRepository{DB: pool}
}

func (r *ContributionRepository) Create(ctx context.Context, c *models.Contribution) error {
	err := db.Conn(ctx, r.DB).QueryRow(ctx,
		`INSERT INTO contributions(household_id, type_name, amount, contributed_on)
         VALUES($1, $2, $3, $4)
         RETURNING id`,
		c.HouseholdID, c.TypeName, c.Amount, c.Date,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert contribution: %w", err)
	}
	return nil
}

// List returns every contribution, newest first
func (r *ContributionRepository) List(ctx context.Context) ([]*models.Contribution, error) {
	rows, err := db.Conn(ctx, r.DB).Query(ctx,
		`SELECT id, household_id, type_name, amount, contributed_on
         FROM contributions ORDER BY contributed_on DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	contributions := []*models.Contribution{}
	for rows.Next() {
		var c models.Contribution
		if err := rows.Scan(&c.ID, &c.HouseholdID, &c.TypeName, &c.Amount, &c.Date); err != nil {
			return nil, err
		}
		contributions = append(contributions, &c)
	}
	return contributions, rows.Err()
}

func (r *ContributionRepository) CreateType(ctx context.Context, t *models.ContributionType) error {
	_, err := db.Conn(ctx, r.DB).Exec(ctx,
		`INSERT INTO contribution_types(name, suggested_amount) VALUES($1, $2)`,
		t.Name, t.SuggestedAmount)
	if db.IsUniqueViolation(err) {
		return apperr.Conflict("Contribution type already exists")
	}
	if err != nil {
		return fmt.Errorf("insert contribution type: %w", err)
	}
	return nil
}

func (r *ContributionRepository) ListTypes(ctx context.Context) ([]*models.ContributionType, error) {
	rows, err := db.Conn(ctx, r.DB).Query(ctx,
		`SELECT name, suggested_amount FROM contribution_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list contribution types: %w", err)
	}
	defer rows.Close()

	types := []*models.ContributionType{}
	for rows.Next() {
		var t models.ContributionType
		if err := rows.Scan(&t.Name, &t.SuggestedAmount); err != nil {
			return nil, err
		}
		types = append(types, &t)
	}
	return types, rows.Err()
}

func (r *ContributionRepository) DeleteType(ctx context.Context, name string) error {
	if _, err := db.Conn(ctx, r.DB).Exec(ctx, `DELETE FROM contribution_types WHERE name=$1`, name); err != nil {
		return fmt.Errorf("delete contribution type: %w", err)
	}
	return nil
}
