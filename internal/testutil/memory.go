// Package testutil holds in-memory stores for exercising services and
// handlers without Postgres.
package testutil

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"apartment-backend/internal/apperr"
	"apartment-backend/internal/models"
)

type feeKey struct {
	household string
	year      int
	category  models.FeeCategory
}

type utilityKey struct {
	household   string
	month, year int
}

type state struct {
	users             map[string]models.User
	loginLogs         []models.LoginLog
	households        map[string]models.Household
	residents         map[string]models.Resident
	fees              map[feeKey]models.FeeRecord
	utilities         map[utilityKey]models.UtilityUpdate
	contributionTypes map[string]models.ContributionType
	contributions     []models.Contribution
	payments          []models.Payment
	residences        map[models.ResidenceKind]map[string]models.ResidenceRecord
	nextID            int
}

func (s *state) clone() *state {
	c := *s
	c.users = maps.Clone(s.users)
	c.loginLogs = append([]models.LoginLog(nil), s.loginLogs...)
	c.households = maps.Clone(s.households)
	c.residents = maps.Clone(s.residents)
	c.fees = maps.Clone(s.fees)
	c.utilities = maps.Clone(s.utilities)
	c.contributionTypes = maps.Clone(s.contributionTypes)
	c.contributions = append([]models.Contribution(nil), s.contributions...)
	c.payments = append([]models.Payment(nil), s.payments...)
	c.residences = make(map[models.ResidenceKind]map[string]models.ResidenceRecord, len(s.residences))
	for k, v := range s.residences {
		c.residences[k] = maps.Clone(v)
	}
	return &c
}

// DB is an in-memory database. Its WithinTx restores the previous state when
// fn fails, so rollback behaviour can be asserted.
type DB struct {
	mu sync.Mutex
	st *state

	// Fail makes an operation return the given error. Keys are an operation
	// name ("RepriceFrom") or an operation and household ("RepriceFrom:H2").
	Fail map[string]error
	// Now stamps server-assigned times when set
	Now func() time.Time
}

func NewDB() *DB {
	return &DB{
		st: &state{
			users:             map[string]models.User{},
			households:        map[string]models.Household{},
			residents:         map[string]models.Resident{},
			fees:              map[feeKey]models.FeeRecord{},
			utilities:         map[utilityKey]models.UtilityUpdate{},
			contributionTypes: map[string]models.ContributionType{},
			residences:        map[models.ResidenceKind]map[string]models.ResidenceRecord{},
		},
		Fail: map[string]error{},
	}
}

func (d *DB) failure(op, id string) error {
	if err, ok := d.Fail[op+":"+id]; ok {
		return err
	}
	return d.Fail[op]
}

func (d *DB) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// WithinTx implements the services' Transactor
func (d *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	d.mu.Lock()
	snapshot := d.st.clone()
	d.mu.Unlock()

	if err := fn(ctx); err != nil {
		d.mu.Lock()
		d.st = snapshot
		d.mu.Unlock()
		return err
	}
	return nil
}

func (d *DB) Users() *UserStore                 { return &UserStore{d} }
func (d *DB) LoginLogs() *LoginLogStore         { return &LoginLogStore{d} }
func (d *DB) Households() *HouseholdStore       { return &HouseholdStore{d} }
func (d *DB) Residents() *ResidentStore         { return &ResidentStore{d} }
func (d *DB) Fees() *FeeStore                   { return &FeeStore{d} }
func (d *DB) Contributions() *ContributionStore { return &ContributionStore{d} }
func (d *DB) Residences() *ResidenceStore       { return &ResidenceStore{d} }
func (d *DB) Payments() *PaymentStore           { return &PaymentStore{d} }

// Users

type UserStore struct{ d *DB }

func (s *UserStore) Create(_ context.Context, u *models.User) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if _, ok := s.d.st.users[u.Username]; ok {
		return apperr.Conflict("Username already exists")
	}
	u.CreatedAt, u.UpdatedAt = s.d.now(), s.d.now()
	s.d.st.users[u.Username] = *u
	return nil
}

func (s *UserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	u, ok := s.d.st.users[username]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	return &u, nil
}

func (s *UserStore) UpdatePassword(_ context.Context, username, password string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	u, ok := s.d.st.users[username]
	if !ok {
		return apperr.NotFound("User not found")
	}
	u.Password = password
	s.d.st.users[username] = u
	return nil
}

func (s *UserStore) UpdateProfile(_ context.Context, u *models.User) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	stored, ok := s.d.st.users[u.Username]
	if !ok {
		return apperr.NotFound("User not found")
	}
	stored.FullName, stored.Email, stored.Phone, stored.Address, stored.Age = u.FullName, u.Email, u.Phone, u.Address, u.Age
	s.d.st.users[u.Username] = stored
	return nil
}

type LoginLogStore struct{ d *DB }

func (s *LoginLogStore) CreateLoginLog(_ context.Context, username, ipAddress, userAgent string) (int, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if err := s.d.failure("CreateLoginLog", username); err != nil {
		return 0, err
	}
	s.d.st.nextID++
	s.d.st.loginLogs = append(s.d.st.loginLogs, models.LoginLog{
		ID: s.d.st.nextID, Username: username, LoginTime: s.d.now(), IPAddress: ipAddress, UserAgent: userAgent,
	})
	return s.d.st.nextID, nil
}

func (s *LoginLogStore) ListRecent(_ context.Context, limit int) ([]*models.LoginLog, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	out := []*models.LoginLog{}
	for i := len(s.d.st.loginLogs) - 1; i >= 0 && len(out) < limit; i-- {
		l := s.d.st.loginLogs[i]
		out = append(out, &l)
	}
	return out, nil
}

// Households

type HouseholdStore struct{ d *DB }

func (s *HouseholdStore) Create(_ context.Context, h *models.Household) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if _, ok := s.d.st.households[h.ID]; ok {
		return apperr.Conflict("Household ID already exists")
	}
	h.CreatedAt, h.UpdatedAt = s.d.now(), s.d.now()
	s.d.st.households[h.ID] = *h
	return nil
}

func (s *HouseholdStore) Get(_ context.Context, id string) (*models.Household, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	h, ok := s.d.st.households[id]
	if !ok {
		return nil, apperr.NotFound("Household not found")
	}
	return &h, nil
}

func (s *HouseholdStore) List(_ context.Context) ([]*models.Household, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	ids := make([]string, 0, len(s.d.st.households))
	for id := range s.d.st.households {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := []*models.Household{}
	for _, id := range ids {
		h := s.d.st.households[id]
		out = append(out, &h)
	}
	return out, nil
}

func (s *HouseholdStore) Update(_ context.Context, h *models.Household) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if _, ok := s.d.st.households[h.ID]; !ok {
		return apperr.NotFound("Household not found")
	}
	h.UpdatedAt = s.d.now()
	s.d.st.households[h.ID] = *h
	return nil
}

func (s *HouseholdStore) Delete(_ context.Context, id string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	delete(s.d.st.households, id)
	return nil
}

func (s *HouseholdStore) Count(_ context.Context) (int64, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	return int64(len(s.d.st.households)), nil
}

// Residents

type ResidentStore struct{ d *DB }

func (s *ResidentStore) Create(_ context.Context, p *models.Resident) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if _, ok := s.d.st.residents[p.NationalID]; ok {
		return apperr.Conflict("Resident with this ID already exists")
	}
	p.CreatedAt, p.UpdatedAt = s.d.now(), s.d.now()
	s.d.st.residents[p.NationalID] = *p
	return nil
}

func (s *ResidentStore) Get(_ context.Context, nationalID string) (*models.Resident, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	p, ok := s.d.st.residents[nationalID]
	if !ok {
		return nil, apperr.NotFound("Resident not found")
	}
	return &p, nil
}

func (s *ResidentStore) List(_ context.Context) ([]*models.Resident, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	ids := make([]string, 0, len(s.d.st.residents))
	for id := range s.d.st.residents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := []*models.Resident{}
	for _, id := range ids {
		p := s.d.st.residents[id]
		out = append(out, &p)
	}
	return out, nil
}

func (s *ResidentStore) Update(_ context.Context, p *models.Resident) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	stored, ok := s.d.st.residents[p.NationalID]
	if !ok {
		return apperr.NotFound("Resident not found")
	}
	p.CreatedAt, p.UpdatedAt = stored.CreatedAt, s.d.now()
	s.d.st.residents[p.NationalID] = *p
	return nil
}

func (s *ResidentStore) Delete(_ context.Context, nationalID string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	delete(s.d.st.residents, nationalID)
	return nil
}

func (s *ResidentStore) Count(_ context.Context) (int64, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	return int64(len(s.d.st.residents)), nil
}
