package services

import (
	"context"
	"time"

	"apartment-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Services depend on these narrow store interfaces. The Postgres repositories
// satisfy them in production; internal/testutil provides in-memory versions.

// Transactor runs fn atomically. Stores called with the ctx handed to fn join
// the same transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePassword(ctx context.Context, username, password string) error
	UpdateProfile(ctx context.Context, u *models.User) error
}

type LoginLogStore interface {
	CreateLoginLog(ctx context.Context, username, ipAddress, userAgent string) (int, error)
	ListRecent(ctx context.Context, limit int) ([]*models.LoginLog, error)
}

type HouseholdStore interface {
	Create(ctx context.Context, h *models.Household) error
	Get(ctx context.Context, id string) (*models.Household, error)
	List(ctx context.Context) ([]*models.Household, error)
	Update(ctx context.Context, h *models.Household) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type ResidentStore interface {
	Create(ctx context.Context, p *models.Resident) error
	Get(ctx context.Context, nationalID string) (*models.Resident, error)
	List(ctx context.Context) ([]*models.Resident, error)
	Update(ctx context.Context, p *models.Resident) error
	Delete(ctx context.Context, nationalID string) error
	Count(ctx context.Context) (int64, error)
}

type FeeStore interface {
	ListByCategoryYear(ctx context.Context, category models.FeeCategory, year int) ([]*models.FeeRecord, error)
	ListForHouseholdFrom(ctx context.Context, householdID string, category models.FeeCategory, fromYear int) ([]*models.FeeRecord, error)
	Exists(ctx context.Context, householdID string, year int, category models.FeeCategory) (bool, error)
	EnsureRecord(ctx context.Context, rec *models.FeeRecord) error
	RepriceFrom(ctx context.Context, householdID string, category models.FeeCategory, fromYear int, basis models.PriceBasis, due decimal.Decimal) (int64, error)
	UpdateMonthlyDue(ctx context.Context, householdID string, year int, category models.FeeCategory, due decimal.Decimal) error
	MarkPaid(ctx context.Context, category models.FeeCategory, householdID string, month, year int) error
	SetMonth(ctx context.Context, category models.FeeCategory, householdID string, month, year int, amount decimal.Decimal) error
	CountUnpaid(ctx context.Context, category models.FeeCategory, year, month int) (int64, error)
	UpsertUtility(ctx context.Context, u *models.UtilityUpdate) error
}

type ContributionStore interface {
	Create(ctx context.Context, c *models.Contribution) error
	List(ctx context.Context) ([]*models.Contribution, error)
	CreateType(ctx context.Context, t *models.ContributionType) error
	ListTypes(ctx context.Context) ([]*models.ContributionType, error)
	DeleteType(ctx context.Context, name string) error
}

type ResidenceStore interface {
	Create(ctx context.Context, rec *models.ResidenceRecord) error
	List(ctx context.Context, kind models.ResidenceKind) ([]*models.ResidenceRecord, error)
	Delete(ctx context.Context, kind models.ResidenceKind, id string) error
}

type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	List(ctx context.Context) ([]*models.Payment, error)
	SumBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

// ReportArchiver stores generated report files
type ReportArchiver interface {
	Upload(ctx context.Context, key, contentType string, body []byte) error
}
