package testutil

import (
	"context"
	"sort"
	"time"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Fees

type FeeStore struct{ d *DB }

func (s *FeeStore) sorted(match func(models.FeeRecord) bool) []*models.FeeRecord {
	out := []*models.FeeRecord{}
	for _, rec := range s.d.st.fees {
		if match(rec) {
			r := rec
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].HouseholdID != out[j].HouseholdID {
			return out[i].HouseholdID < out[j].HouseholdID
		}
		return out[i].Year < out[j].Year
	})
	return out
}

func (s *FeeStore) ListByCategoryYear(_ context.Context, category models.FeeCategory, year int) ([]*models.FeeRecord, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	return s.sorted(func(r models.FeeRecord) bool {
		return r.Category == category && r.Year == year
	}), nil
}

func (s *FeeStore) ListForHouseholdFrom(_ context.Context, householdID string, category models.FeeCategory, fromYear int) ([]*models.FeeRecord, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	return s.sorted(func(r models.FeeRecord) bool {
		return r.HouseholdID == householdID && r.Category == category && r.Year >= fromYear
	}), nil
}

func (s *FeeStore) Exists(_ context.Context, householdID string, year int, category models.FeeCategory) (bool, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	_, ok := s.d.st.fees[feeKey{householdID, year, category}]
	return ok, nil
}

func (s *FeeStore) EnsureRecord(_ context.Context, rec *models.FeeRecord) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.d.failure("EnsureRecord", rec.HouseholdID); err != nil {
		return err
	}
	key := feeKey{rec.HouseholdID, rec.Year, rec.Category}
	if _, ok := s.d.st.fees[key]; !ok {
		s.d.st.fees[key] = *rec
	}
	return nil
}

func (s *FeeStore) RepriceFrom(_ context.Context, householdID string, category models.FeeCategory, fromYear int, basis models.PriceBasis, due decimal.Decimal) (int64, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.d.failure("RepriceFrom", householdID); err != nil {
		return 0, err
	}
	var n int64
	for key, rec := range s.d.st.fees {
		if key.household == householdID && key.category == category && key.year >= fromYear {
			rec.PriceBasis = basis
			rec.MonthlyDue = due
			rec.UpdatedAt = s.d.now()
			s.d.st.fees[key] = rec
			n++
		}
	}
	return n, nil
}

func (s *FeeStore) UpdateMonthlyDue(_ context.Context, householdID string, year int, category models.FeeCategory, due decimal.Decimal) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.d.failure("UpdateMonthlyDue", householdID); err != nil {
		return err
	}
	key := feeKey{householdID, year, category}
	rec, ok := s.d.st.fees[key]
	if !ok {
		return apperr.NotFound("Fee record not found")
	}
	rec.MonthlyDue = due
	s.d.st.fees[key] = rec
	return nil
}

func (s *FeeStore) MarkPaid(_ context.Context, category models.FeeCategory, householdID string, month, year int) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	key := feeKey{householdID, year, category}
	rec, ok := s.d.st.fees[key]
	if !ok {
		return apperr.NotFound("Fee record not found")
	}
	rec.Months[month-1] = rec.MonthlyDue
	s.d.st.fees[key] = rec
	return nil
}

func (s *FeeStore) SetMonth(_ context.Context, category models.FeeCategory, householdID string, month, year int, amount decimal.Decimal) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.d.failure("SetMonth", householdID); err != nil {
		return err
	}
	key := feeKey{householdID, year, category}
	rec, ok := s.d.st.fees[key]
	if !ok {
		rec = *models.NewFeeRecord(householdID, year, category)
	}
	rec.Months[month-1] = amount
	s.d.st.fees[key] = rec
	return nil
}

func (s *FeeStore) CountUnpaid(_ context.Context, category models.FeeCategory, year, month int) (int64, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	var n int64
	for key, rec := range s.d.st.fees {
		if key.category == category && key.year == year && rec.Months[month-1].IsZero() {
			n++
		}
	}
	return n, nil
}

func (s *FeeStore) UpsertUtility(_ context.Context, u *models.UtilityUpdate) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	u.UpdatedAt = s.d.now()
	s.d.st.utilities[utilityKey{u.HouseholdID, u.Month, u.Year}] = *u
	return nil
}

// Contributions

type ContributionStore struct{ d *DB }

func (s *ContributionStore) Create(_ context.Context, c *models.Contribution) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.st.nextID++
	c.ID = s.d.st.nextID
	s.d.st.contributions = append(s.d.st.contributions, *c)
	return nil
}

func (s *ContributionStore) List(_ context.Context) ([]*models.Contribution, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	out := []*models.Contribution{}
	for i := len(s.d.st.contributions) - 1; i >= 0; i-- {
		c := s.d.st.contributions[i]
		out = append(out, &c)
	}
	return out, nil
}

func (s *ContributionStore) CreateType(_ context.Context, t *models.ContributionType) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if _, ok := s.d.st.contributionTypes[t.Name]; ok {
		return apperr.Conflict("Contribution type already exists")
	}
	s.d.st.contributionTypes[t.Name] = *t
	return nil
}

func (s *ContributionStore) ListTypes(_ context.Context) ([]*models.ContributionType, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	names := make([]string, 0, len(s.d.st.contributionTypes))
	for name := range s.d.st.contributionTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	out := []*models.ContributionType{}
	for _, name := range names {
		t := s.d.st.contributionTypes[name]
		out = append(out, &t)
	}
	return out, nil
}

func (s *ContributionStore) DeleteType(_ context.Context, name string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	delete(s.d.st.contributionTypes, name)
	return nil
}

// Temporary residence / absence

type ResidenceStore struct{ d *DB }

func (s *ResidenceStore) Create(_ context.Context, rec *models.ResidenceRecord) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	log := s.d.st.residences[rec.Kind]
	if log == nil {
		log = map[string]models.ResidenceRecord{}
		s.d.st.residences[rec.Kind] = log
	}
	if _, ok := log[rec.ID]; ok {
		return apperr.Conflict("Record ID already exists")
	}
	log[rec.ID] = *rec
	return nil
}

func (s *ResidenceStore) List(_ context.Context, kind models.ResidenceKind) ([]*models.ResidenceRecord, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	out := []*models.ResidenceRecord{}
	for _, rec := range s.d.st.residences[kind] {
		r := rec
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *ResidenceStore) Delete(_ context.Context, kind models.ResidenceKind, id string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	delete(s.d.st.residences[kind], id)
	return nil
}

// Payments

type PaymentStore struct{ d *DB }

func (s *PaymentStore) Create(_ context.Context, p *models.Payment) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.st.nextID++
	p.ID = s.d.st.nextID
	s.d.st.payments = append(s.d.st.payments, *p)
	return nil
}

func (s *PaymentStore) List(_ context.Context) ([]*models.Payment, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	out := []*models.Payment{}
	for _, p := range s.d.st.payments {
		pay := p
		out = append(out, &pay)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaidAt.After(out[j].PaidAt) })
	return out, nil
}

func (s *PaymentStore) SumBetween(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	total := decimal.Zero
	for _, p := range s.d.st.payments {
		if !p.PaidAt.Before(from) && p.PaidAt.Before(to) {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

// Test helpers

// SeedFee stores rec as is, replacing any existing row
func (d *DB) SeedFee(rec *models.FeeRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.st.fees[feeKey{rec.HouseholdID, rec.Year, rec.Category}] = *rec
}

// Fee returns a copy of the stored row, or nil
func (d *DB) Fee(householdID string, year int, category models.FeeCategory) *models.FeeRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec, ok := d.st.fees[feeKey{householdID, year, category}]
	if !ok {
		return nil
	}
	return &rec
}

// Utility returns a copy of the stored utility breakdown, or nil
func (d *DB) Utility(householdID string, month, year int) *models.UtilityUpdate {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.st.utilities[utilityKey{householdID, month, year}]
	if !ok {
		return nil
	}
	return &u
}

// SeedPayment stores p with its PaidAt unchanged
func (d *DB) SeedPayment(p models.Payment) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.st.nextID++
	p.ID = d.st.nextID
	d.st.payments = append(d.st.payments, p)
}
