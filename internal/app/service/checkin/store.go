package checkin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatflowers/frontdesk/internal/models"
	"github.com/fatflowers/frontdesk/pkg/config"
	"github.com/fatflowers/frontdesk/pkg/tool"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the persistence contract of the orchestrator. Lookups return (nil, nil) on a miss.
type Store interface {
	// FindMemberByIdentifier matches the lower-cased email or upper-cased passport id of a live member.
	FindMemberByIdentifier(ctx context.Context, identifier string) (*models.Member, error)
	// FindUnusedDayPass applies the same identifier match to day passes not yet used.
	FindUnusedDayPass(ctx context.Context, identifier string) (*models.DayPass, error)
	// LockMember re-reads the member holding a row lock until the transaction ends.
	LockMember(ctx context.Context, memberID string) (*models.Member, error)
	FindTodaysCheckIns(ctx context.Context, memberID string, now time.Time) ([]*models.CheckIn, error)
	AppendCheckIn(ctx context.Context, entry *models.CheckIn) error
	UpdateMemberVisits(ctx context.Context, memberID string, usedVisits int) error
	// MarkDayPassUsed flips is_used only if it is still false; false means another request won.
	MarkDayPassUsed(ctx context.Context, dayPassID string, now time.Time) (bool, error)
	GetLastPayment(ctx context.Context, memberID string) (*models.Payment, error)
	RecentCheckIns(ctx context.Context, memberID string, limit int) ([]*models.CheckIn, error)
	// Transaction runs fn against a store bound to one database transaction.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type GormStore struct {
	db  *gorm.DB
	loc *time.Location
}

func NewGormStore(db *gorm.DB, cfg *config.Config) *GormStore {
	return &GormStore{db: db, loc: cfg.Facility.Location()}
}

func identifierScope(identifier string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("lower(email) = ? OR upper(passport_id) = ?",
			tool.NormalizeEmail(identifier), tool.NormalizePassport(identifier))
	}
}

// unusedScope runs after identifierScope so the where clause order is stable.
func unusedScope(db *gorm.DB) *gorm.DB {
	return db.Where("is_used = ?", false)
}

func (s *GormStore) FindMemberByIdentifier(ctx context.Context, identifier string) (*models.Member, error) {
	var m models.Member
	err := s.db.WithContext(ctx).Scopes(identifierScope(identifier)).Order("created_at desc").First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) FindUnusedDayPass(ctx context.Context, identifier string) (*models.DayPass, error) {
	var p models.DayPass
	err := s.db.WithContext(ctx).Scopes(identifierScope(identifier), unusedScope).
		Order("created_at").First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) LockMember(ctx context.Context, memberID string) (*models.Member, error) {
	var m models.Member
	err := s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", memberID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) FindTodaysCheckIns(ctx context.Context, memberID string, now time.Time) ([]*models.CheckIn, error) {
	start, end := tool.DayWindow(now, s.loc)
	var rows []*models.CheckIn
	err := s.db.WithContext(ctx).
		Where("member_id = ? AND check_in_time >= ? AND check_in_time < ?", memberID, start, end).
		Order("check_in_time").Find(&rows).Error
	return rows, err
}

func (s *GormStore) AppendCheckIn(ctx context.Context, entry *models.CheckIn) error {
	if entry.ID == "" {
		entry.ID = tool.GenerateUUIDV7()
	}
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *GormStore) UpdateMemberVisits(ctx context.Context, memberID string, usedVisits int) error {
	res := s.db.WithContext(ctx).Model(&models.Member{}).Where("id = ?", memberID).Update("used_visits", usedVisits)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return fmt.Errorf("member %s: %d rows updated", memberID, res.RowsAffected)
	}
	return nil
}

func (s *GormStore) MarkDayPassUsed(ctx context.Context, dayPassID string, now time.Time) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.DayPass{}).
		Where("id = ? AND is_used = ?", dayPassID, false).
		Updates(map[string]any{"is_used": true, "used_at": now})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *GormStore) GetLastPayment(ctx context.Context, memberID string) (*models.Payment, error) {
	var p models.Payment
	err := s.db.WithContext(ctx).Where("member_id = ?", memberID).Order("paid_at desc").First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) RecentCheckIns(ctx context.Context, memberID string, limit int) ([]*models.CheckIn, error) {
	var rows []*models.CheckIn
	err := s.db.WithContext(ctx).Where("member_id = ?", memberID).
		Order("check_in_time desc").Limit(limit).Find(&rows).Error
	return rows, err
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, loc: s.loc})
	})
}
