package repositories

import (
	"context"
	"fmt"
	"time"

	"apartment-backend/internal/db"
	"apartment-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: pool}
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	err := db.Conn(ctx, r.DB).QueryRow(ctx,
		`INSERT INTO payments(household_id, amount, paid_at) VALUES($1, $2, $3) RETURNING id`,
		p.HouseholdID, p.Amount, p.PaidAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// List returns every payment, newest first
func (r *PaymentRepository) List(ctx context.Context) ([]*models.Payment, error) {
	rows, err := db.Conn(ctx, r.DB).Query(ctx,
		`SELECT id, household_id, amount, paid_at FROM payments ORDER BY paid_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.HouseholdID, &p.Amount, &p.PaidAt); err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}

// SumBetween totals payments with from <= paid_at < to
func (r *PaymentRepository) SumBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.Conn(ctx, r.DB).QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE paid_at >= $1 AND paid_at < $2`,
		from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}
	return total, nil
}
