package checkin

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fatflowers/frontdesk/internal/models"
	"github.com/fatflowers/frontdesk/pkg/tool"
	"github.com/samber/lo"
)

// memDB is a transactional in-memory Store. Transactions are serialized by txMu, which stands in
// for the member row lock and the conditional day-pass update; a failed transaction restores the
// snapshot taken at its start.
type memDB struct {
	txMu sync.Mutex
	mu   sync.Mutex
	loc  *time.Location

	members   map[string]models.Member
	dayPasses map[string]models.DayPass
	checkIns  []models.CheckIn
	payments  []models.Payment

	// failOn makes the named method return the error.
	failOn map[string]error
	// lockDelay widens the race window inside a transaction.
	lockDelay time.Duration
}

func newMemDB(loc *time.Location) *memDB {
	return &memDB{
		loc:       loc,
		members:   map[string]models.Member{},
		dayPasses: map[string]models.DayPass{},
		failOn:    map[string]error{},
	}
}

type memStore struct {
	db *memDB
}

func (d *memDB) store() *memStore { return &memStore{db: d} }

func (d *memDB) fail(method string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.failOn[method]
}

func (d *memDB) member(id string) models.Member {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.members[id]
}

func (d *memDB) dayPass(id string) models.DayPass {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dayPasses[id]
}

func (d *memDB) checkInsOf(memberID string) []models.CheckIn {
	d.mu.Lock()
	defer d.mu.Unlock()
	return lo.Filter(d.checkIns, func(c models.CheckIn, _ int) bool {
		return lo.FromPtr(c.MemberID) == memberID
	})
}

func (d *memDB) allCheckIns() []models.CheckIn {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.CheckIn(nil), d.checkIns...)
}

func matches(email, passport *string, identifier string) bool {
	return lo.FromPtr(email) == tool.NormalizeEmail(identifier) ||
		lo.FromPtr(passport) == tool.NormalizePassport(identifier)
}

func (s *memStore) FindMemberByIdentifier(_ context.Context, identifier string) (*models.Member, error) {
	if err := s.db.fail("FindMemberByIdentifier"); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, m := range s.db.members {
		if m.DeletedAt.Valid {
			continue
		}
		if matches(m.Email, m.PassportID, identifier) {
			cp := m
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) FindUnusedDayPass(_ context.Context, identifier string) (*models.DayPass, error) {
	if err := s.db.fail("FindUnusedDayPass"); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, p := range s.db.dayPasses {
		if !p.IsUsed && matches(p.Email, p.PassportID, identifier) {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) LockMember(_ context.Context, memberID string) (*models.Member, error) {
	if err := s.db.fail("LockMember"); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	m, ok := s.db.members[memberID]
	if !ok || m.DeletedAt.Valid {
		return nil, nil
	}
	return &m, nil
}

func (s *memStore) FindTodaysCheckIns(_ context.Context, memberID string, now time.Time) ([]*models.CheckIn, error) {
	if err := s.db.fail("FindTodaysCheckIns"); err != nil {
		return nil, err
	}
	if s.db.lockDelay > 0 {
		time.Sleep(s.db.lockDelay)
	}
	start, end := tool.DayWindow(now, s.db.loc)
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []*models.CheckIn
	for _, c := range s.db.checkIns {
		if lo.FromPtr(c.MemberID) == memberID && !c.CheckInTime.Before(start) && c.CheckInTime.Before(end) {
			cp := c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memStore) AppendCheckIn(_ context.Context, entry *models.CheckIn) error {
	if err := s.db.fail("AppendCheckIn"); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.checkIns = append(s.db.checkIns, *entry)
	return nil
}

func (s *memStore) UpdateMemberVisits(_ context.Context, memberID string, usedVisits int) error {
	if err := s.db.fail("UpdateMemberVisits"); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	m, ok := s.db.members[memberID]
	if !ok {
		return fmt.Errorf("member %s not found", memberID)
	}
	m.UsedVisits = lo.ToPtr(usedVisits)
	s.db.members[memberID] = m
	return nil
}

func (s *memStore) MarkDayPassUsed(_ context.Context, dayPassID string, now time.Time) (bool, error) {
	if err := s.db.fail("MarkDayPassUsed"); err != nil {
		return false, err
	}
	if s.db.lockDelay > 0 {
		time.Sleep(s.db.lockDelay)
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.dayPasses[dayPassID]
	if !ok || p.IsUsed {
		return false, nil
	}
	p.IsUsed = true
	p.UsedAt = lo.ToPtr(now)
	s.db.dayPasses[dayPassID] = p
	return true, nil
}

func (s *memStore) GetLastPayment(_ context.Context, memberID string) (*models.Payment, error) {
	if err := s.db.fail("GetLastPayment"); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var last *models.Payment
	for _, p := range s.db.payments {
		if lo.FromPtr(p.MemberID) == memberID && (last == nil || p.PaidAt.After(last.PaidAt)) {
			cp := p
			last = &cp
		}
	}
	return last, nil
}

func (s *memStore) RecentCheckIns(_ context.Context, memberID string, limit int) ([]*models.CheckIn, error) {
	rows := s.db.checkInsOf(memberID)
	sort.Slice(rows, func(i, j int) bool { return rows[i].CheckInTime.After(rows[j].CheckInTime) })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return lo.Map(rows, func(c models.CheckIn, _ int) *models.CheckIn { return &c }), nil
}

func (s *memStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	s.db.txMu.Lock()
	defer s.db.txMu.Unlock()

	s.db.mu.Lock()
	members := cloneMap(s.db.members)
	dayPasses := cloneMap(s.db.dayPasses)
	checkIns := append([]models.CheckIn(nil), s.db.checkIns...)
	s.db.mu.Unlock()

	err := fn(s)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.db.mu.Lock()
		s.db.members, s.db.dayPasses, s.db.checkIns = members, dayPasses, checkIns
		s.db.mu.Unlock()
	}
	return err
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
