package repositories

import (
	"context"
	"fmt"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/db"
	"apartment-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ResidenceRepository serves both the temporary-residence and the
// temporary-absence logs. The two tables share one shape.
type ResidenceRepository struct {
	DB *pgxpool.Pool
}

func NewResidenceRepository(pool *pgxpool.Pool) *ResidenceRepository {
	return &ResidenceRepository{DB: pool}
}

// table whitelists the only two table names that reach SQL
func table(kind models.ResidenceKind) (string, error) {
	switch kind {
	case models.TemporaryResidence:
		return "temporary_residences", nil
	case models.TemporaryAbsence:
		return "temporary_absences", nil
	}
	return "", fmt.Errorf("unknown residence kind %q", kind)
}

func (r *ResidenceRepository) Create(ctx context.Context, rec *models.ResidenceRecord) error {
	t, err := table(rec.Kind)
	if err != nil {
		return err
	}
	_, err = db.Conn(ctx, r.DB).Exec(ctx,
		`INSERT INTO `+t+`(id, national_id, detail, from_date, to_date) VALUES($1, $2, $3, $4, $5)`,
		rec.ID, rec.NationalID, rec.Detail, rec.From, rec.To)
	if db.IsUniqueViolation(err) {
		return apperr.Conflict("Record ID already exists")
	}
	if err != nil {
		return fmt.Errorf("insert %s: %w", t, err)
	}
	return nil
}

func (r *ResidenceRepository) List(ctx context.Context, kind models.ResidenceKind) ([]*models.ResidenceRecord, error) {
	t, err := table(kind)
	if err != nil {
		return nil, err
	}
	rows, err := db.Conn(ctx, r.DB).Query(ctx,
		`SELECT id, national_id, detail, from_date, to_date FROM `+t+` ORDER BY from_date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t, err)
	}
	defer rows.Close()

	records := []*models.ResidenceRecord{}
	for rows.Next() {
		rec := models.ResidenceRecord{Kind: kind}
		if err := rows.Scan(&rec.ID, &rec.NationalID, &rec.Detail, &rec.From, &rec.To); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

func (r *ResidenceRepository) Delete(ctx context.Context, kind models.ResidenceKind, id string) error {
	t, err := table(kind)
	if err != nil {
		return err
	}
	if _, err := db.Conn(ctx, r.DB).Exec(ctx, `DELETE FROM `+t+` WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete from %s: %w", t, err)
	}
	return nil
}
