package repositories

import (
	"context"
	"fmt"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/db"
	"apartment-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// FeeRepository stores the fee ledger (fee_records) and the utility breakdowns
// (utility_updates) that feed the utility category.
type FeeRepository struct {
	DB *pgxpool.Pool
}

func NewFeeRepository(pool *pgxpool.Pool) *FeeRepository {
	return &FeeRepository{DB: pool}
}

const feeColumns = `household_id, year, category, unit_price, moto_price, car_price, bike_price,
	monthly_due, months::text[], updated_at`

func scanFeeRecord(row pgx.Row) (*models.FeeRecord, error) {
	var (
		rec    models.FeeRecord
		months []string
	)
	err := row.Scan(&rec.HouseholdID, &rec.Year, &rec.Category,
		&rec.UnitPrice, &rec.MotoPrice, &rec.CarPrice, &rec.BikePrice,
		&rec.MonthlyDue, &months, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(months) != models.MonthsInYear {
		return nil, fmt.Errorf("fee record %s/%d/%s has %d month slots", rec.HouseholdID, rec.Year, rec.Category, len(months))
	}
	for i, m := range months {
		v, err := decimal.NewFromString(m)
		if err != nil {
			return nil, fmt.Errorf("parse month %d: %w", i+1, err)
		}
		rec.Months[i] = v
	}
	return &rec, nil
}

func collectFeeRecords(rows pgx.Rows) ([]*models.FeeRecord, error) {
	defer rows.Close()
	records := []*models.FeeRecord{}
	for rows.Next() {
		rec, err := scanFeeRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListByCategoryYear returns every row of one category for one year
func (r *FeeRepository) ListByCategoryYear(ctx context.Context, category models.FeeCategory, year int) ([]*models.FeeRecord, error) {
	rows, err := db.Conn(ctx, r.DB).Query(ctx,
		`SELECT `+feeColumns+` FROM fee_records
         WHERE category=$1 AND year=$2
         ORDER BY household_id`, category, year)
	if err != nil {
		return nil, fmt.Errorf("list %s fees for %d: %w", category, year, err)
	}
	return collectFeeRecords(rows)
}

// ListForHouseholdFrom returns the household's rows of one category with year >= fromYear
func (r *FeeRepository) ListForHouseholdFrom(ctx context.Context, householdID string, category models.FeeCategory, fromYear int) ([]*models.FeeRecord, error) {
	rows, err := db.Conn(ctx, r.DB).Query(ctx,
		`SELECT `+feeColumns+` FROM fee_records
         WHERE household_id=$1 AND category=$2 AND year >= $3
         ORDER BY year`, householdID, category, fromYear)
	if err != nil {
		return nil, fmt.Errorf("list %s fees of %s: %w", category, householdID, err)
	}
	return collectFeeRecords(rows)
}

func (r *FeeRepository) Exists(ctx context.Context, householdID string, year int, category models.FeeCategory) (bool, error) {
	var exists bool
	err := db.Conn(ctx, r.DB).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM fee_records WHERE household_id=$1 AND year=$2 AND category=$3)`,
		householdID, year, category).Scan(&exists)
	return exists, err
}

// EnsureRecord creates an unpaid row with the given basis and due unless one exists.
func (r *FeeRepository) EnsureRecord(ctx context.Context, rec *models.FeeRecord) error {
	_, err := db.Conn(ctx, r.DB).Exec(ctx,
		`INSERT INTO fee_records(household_id, year, category, unit_price, moto_price, car_price, bike_price, monthly_due)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         ON CONFLICT (household_id, year, category) DO NOTHING`,
		rec.HouseholdID, rec.Year, rec.Category,
		rec.UnitPrice, rec.MotoPrice, rec.CarPrice, rec.BikePrice, rec.MonthlyDue)
	if err != nil {
		return fmt.Errorf("ensure fee record: %w", err)
	}
	return nil
}

// RepriceFrom overwrites the basis and monthly due of every row of the household
// in category with year >= fromYear. Paid month slots are not touched.
func (r *FeeRepository) RepriceFrom(ctx context.Context, householdID string, category models.FeeCategory, fromYear int, basis models.PriceBasis, due decimal.Decimal) (int64, error) {
	tag, err := db.Conn(ctx, r.DB).Exec(ctx,
		`UPDATE fee_records
         SET unit_price=$1, moto_price=$2, car_price=$3, bike_price=$4, monthly_due=$5, updated_at=NOW()
         WHERE household_id=$6 AND category=$7 AND year >= $8`,
		basis.UnitPrice, basis.MotoPrice, basis.CarPrice, basis.BikePrice, due,
		householdID, category, fromYear)
	if err != nil {
		return 0, fmt.Errorf("reprice %s fees of %s: %w", category, householdID, err)
	}
	return tag.RowsAffected(), nil
}

// UpdateMonthlyDue rewrites the due of a single row
func (r *FeeRepository) UpdateMonthlyDue(ctx context.Context, householdID string, year int, category models.FeeCategory, due decimal.Decimal) error {
	tag, err := db.Conn(ctx, r.DB).Exec(ctx,
		`UPDATE fee_records SET monthly_due=$1, updated_at=NOW()
         WHERE household_id=$2 AND year=$3 AND category=$4`,
		due, householdID, year, category)
	if err != nil {
		return fmt.Errorf("update monthly due: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Fee record not found")
	}
	return nil
}

// MarkPaid sets the month slot to the row's monthly due. Repeating it leaves the
// same value in place.
func (r *FeeRepository) MarkPaid(ctx context.Context, category models.FeeCategory, householdID string, month, year int) error {
	tag, err := db.Conn(ctx, r.DB).Exec(ctx,
		`UPDATE fee_records SET months[$1]=monthly_due, updated_at=NOW()
         WHERE category=$2 AND household_id=$3 AND year=$4`,
		month, category, householdID, year)
	if err != nil {
		return fmt.Errorf("mark %s paid: %w", category, err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Fee record not found")
	}
	return nil
}

// SetMonth overwrites one month slot, creating the row first when missing.
func (r *FeeRepository) SetMonth(ctx context.Context, category models.FeeCategory, householdID string, month, year int, amount decimal.Decimal) error {
	conn := db.Conn(ctx, r.DB)
	if _, err := conn.Exec(ctx,
		`INSERT INTO fee_records(household_id, year, category)
         VALUES($1, $2, $3)
         ON CONFLICT (household_id, year, category) DO NOTHING`,
		householdID, year, category); err != nil {
		return fmt.Errorf("ensure %s row: %w", category, err)
	}
	if _, err := conn.Exec(ctx,
		`UPDATE fee_records SET months[$1]=$2, updated_at=NOW()
         WHERE household_id=$3 AND year=$4 AND category=$5`,
		month, amount, householdID, year, category); err != nil {
		return fmt.Errorf("set %s month: %w", category, err)
	}
	return nil
}

// CountUnpaid counts rows of the year whose slot for month is exactly zero
func (r *FeeRepository) CountUnpaid(ctx context.Context, category models.FeeCategory, year, month int) (int64, error) {
	var n int64
	err := db.Conn(ctx, r.DB).QueryRow(ctx,
		`SELECT COUNT(*) FROM fee_records WHERE category=$1 AND year=$2 AND months[$3] = 0`,
		category, year, month).Scan(&n)
	return n, err
}

// UpsertUtility stores the electricity/water/internet breakdown for one period
func (r *FeeRepository) UpsertUtility(ctx context.Context, u *models.UtilityUpdate) error {
	err := db.Conn(ctx, r.DB).QueryRow(ctx,
		`INSERT INTO utility_updates(household_id, month, year, electricity, water, internet)
         VALUES($1, $2, $3, $4, $5, $6)
         ON CONFLICT (household_id, month, year)
         DO UPDATE SET electricity=EXCLUDED.electricity, water=EXCLUDED.water,
                       internet=EXCLUDED.internet, updated_at=NOW()
         RETURNING updated_at`,
		u.HouseholdID, u.Month, u.Year, u.Electricity, u.Water, u.Internet,
	).Scan(&u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert utility update: %w", err)
	}
	return nil
}
