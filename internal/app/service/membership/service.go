package membership

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatflowers/frontdesk/internal/app/service/access"
	"github.com/fatflowers/frontdesk/internal/app/service/catalog"
	"github.com/fatflowers/frontdesk/internal/models"
	"github.com/fatflowers/frontdesk/pkg/config"
	"github.com/fatflowers/frontdesk/pkg/logctx"
	"github.com/fatflowers/frontdesk/pkg/metrics"
	"github.com/fatflowers/frontdesk/pkg/tool"
	"github.com/fatflowers/frontdesk/pkg/types"
	"github.com/samber/lo"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrDuplicateMember  = errors.New("a member with this email or passport id already exists")
	ErrMissingIdentity  = errors.New("email or passport id is required")
	ErrMissingName      = errors.New("full name is required")
	ErrDropInPlan       = errors.New("drop-in plans are sold as day passes")
	ErrInvalidPassType  = errors.New("invalid day pass type")
	ErrPauseNotAllowed  = errors.New("pause not allowed")
	ErrResumeNotAllowed = errors.New("resume not allowed")
	ErrInvalidPauseDays = errors.New("invalid pause days")
	ErrNoEndDate        = errors.New("membership has no end date")
)

// Service performs staff-driven member mutations. Every mutation locks the member row and writes a
// MemberLog in the same transaction.
type Service struct {
	db       *gorm.DB
	catalog  *catalog.Catalog
	facility *config.FacilityConfig
	log      *zap.SugaredLogger
}

func NewService(db *gorm.DB, c *catalog.Catalog, cfg *config.Config, log *zap.SugaredLogger) *Service {
	return &Service{db: db, catalog: c, facility: &cfg.Facility, log: log}
}

type RegisterRequest struct {
	FullName   string     `json:"full_name"`
	Email      string     `json:"email"`
	PassportID string     `json:"passport_id"`
	Phone      string     `json:"phone"`
	PlanType   string     `json:"plan_type"`
	StartDate  *time.Time `json:"start_date"`
	OperatorID string     `json:"operator_id"`
}

// Register creates a member and computes the plan window from the catalog.
func (s *Service) Register(ctx context.Context, req RegisterRequest, now time.Time) (*models.Member, error) {
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return nil, ErrMissingName
	}
	email := tool.NormalizeEmail(req.Email)
	passport := tool.NormalizePassport(req.PassportID)
	if email == "" && passport == "" {
		return nil, ErrMissingIdentity
	}

	m := &models.Member{
		ID:       tool.GenerateUUIDV7(),
		FullName: name,
		IsActive: true,
	}
	if email != "" {
		m.Email = &email
	}
	if passport != "" {
		m.PassportID = &passport
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		m.Phone = &phone
	}

	if strings.TrimSpace(req.PlanType) != "" {
		plan, err := s.catalog.Get(req.PlanType)
		if err != nil {
			return nil, err
		}
		if plan.IsDropIn {
			return nil, ErrDropInPlan
		}
		start := now
		if req.StartDate != nil {
			start = *req.StartDate
		}
		applyPlan(m, plan, start)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.Member{})
		switch {
		case email != "" && passport != "":
			q = q.Where("lower(email) = ? OR upper(passport_id) = ?", email, passport)
		case email != "":
			q = q.Where("lower(email) = ?", email)
		default:
			q = q.Where("upper(passport_id) = ?", passport)
		}
		var count int64
		if err := q.Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check duplicate member: %w", err)
		}
		if count > 0 {
			return ErrDuplicateMember
		}
		if err := tx.Create(m).Error; err != nil {
			return fmt.Errorf("failed to create member: %w", err)
		}
		return s.writeLog(tx, types.MemberChangeReasonRegister, nil, m, datatypes.JSONMap{"operator_id": req.OperatorID})
	})
	if err != nil {
		return nil, err
	}
	logctx.FromCtx(ctx, s.log).Infow("member registered", "member_id", m.ID, "plan", m.GetPlanType())
	return m, nil
}

func applyPlan(m *models.Member, plan *types.Plan, start time.Time) {
	m.PlanType = lo.ToPtr(plan.ID)
	m.StartDate = lo.ToPtr(start)
	var end *time.Time
	switch {
	case plan.IsPassBased():
		m.UsedVisits = lo.ToPtr(0)
		if plan.ValidityDays != nil {
			end = lo.ToPtr(tool.AddDays(start, *plan.ValidityDays))
		}
	case plan.IsTimeBased():
		m.PlanDuration = lo.ToPtr(*plan.DurationMonths)
		end = lo.ToPtr(start.AddDate(0, *plan.DurationMonths, 0))
	}
	m.CurrentEndDate = end
	if end != nil {
		m.OriginalEndDate = lo.ToPtr(*end)
	}
}

// SetActive flips the staff kill switch.
func (s *Service) SetActive(ctx context.Context, memberID string, active bool, operatorID string) (*models.Member, error) {
	reason := types.MemberChangeReasonDeactivate
	if active {
		reason = types.MemberChangeReasonActivate
	}
	return s.mutate(ctx, memberID, reason, datatypes.JSONMap{"operator_id": operatorID}, func(m *models.Member) error {
		m.IsActive = active
		return nil
	})
}

// Delete soft-deletes the member so payments and check-ins keep their references.
func (s *Service) Delete(ctx context.Context, memberID, operatorID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := lockMember(tx, memberID)
		if err != nil {
			return err
		}
		if err := tx.Delete(m).Error; err != nil {
			return fmt.Errorf("failed to delete member: %w", err)
		}
		return s.writeLog(tx, types.MemberChangeReasonDelete, m, nil, datatypes.JSONMap{"operator_id": operatorID})
	})
}

type PauseRequest struct {
	Days       int    `json:"days"`
	OperatorID string `json:"operator_id"`
}

// Pause suspends a time-based membership and extends its end date by the pause length.
func (s *Service) Pause(ctx context.Context, memberID string, req PauseRequest, now time.Time) (*models.Member, error) {
	if req.Days < 1 || req.Days > s.facility.MaxPauseDays {
		return nil, fmt.Errorf("%w: must be between 1 and %d", ErrInvalidPauseDays, s.facility.MaxPauseDays)
	}
	extra := datatypes.JSONMap{"operator_id": req.OperatorID, "days": req.Days}
	return s.mutate(ctx, memberID, types.MemberChangeReasonPause, extra, func(m *models.Member) error {
		decision := ValidatePauseAction(s.snapshot(m))
		if !decision.CanPause {
			return fmt.Errorf("%w: %s", ErrPauseNotAllowed, decision.Reason)
		}
		if m.CurrentEndDate == nil {
			return ErrNoEndDate
		}
		m.IsPaused = true
		m.PausedAt = lo.ToPtr(now)
		m.PauseDays = req.Days
		m.PauseCount++
		m.CurrentEndDate = lo.ToPtr(tool.AddDays(*m.CurrentEndDate, req.Days))
		return nil
	})
}

// Resume ends a pause. Days of the pause not yet elapsed are taken back off the end date.
func (s *Service) Resume(ctx context.Context, memberID, operatorID string, now time.Time) (*models.Member, error) {
	extra := datatypes.JSONMap{"operator_id": operatorID}
	return s.mutate(ctx, memberID, types.MemberChangeReasonResume, extra, func(m *models.Member) error {
		decision := ValidatePauseAction(s.snapshot(m))
		if !decision.CanUnpause {
			reason := decision.Reason
			if reason == "" {
				reason = "Membership is not paused."
			}
			return fmt.Errorf("%w: %s", ErrResumeNotAllowed, reason)
		}
		if m.PausedAt != nil && m.CurrentEndDate != nil {
			used := min(m.PauseDays, max(tool.CeilDays(*m.PausedAt, now), 0))
			if unused := m.PauseDays - used; unused > 0 {
				m.CurrentEndDate = lo.ToPtr(tool.AddDays(*m.CurrentEndDate, -unused))
				extra["returned_days"] = unused
			}
		}
		m.IsPaused = false
		m.PausedAt = nil
		m.PauseDays = 0
		return nil
	})
}

type StatusView struct {
	Member     *models.Member       `json:"member"`
	Plan       *types.Plan          `json:"plan,omitempty"`
	Verdict    Verdict              `json:"verdict"`
	Pause      PauseDecision        `json:"pause"`
	Facilities []types.FacilityType `json:"facilities"`
	Warnings   []string             `json:"warnings,omitempty"`
}

// Status evaluates a member for staff views without touching the row.
func (s *Service) Status(ctx context.Context, memberID string, now time.Time) (*StatusView, error) {
	var m models.Member
	if err := s.db.WithContext(ctx).Where("id = ?", memberID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	snap := s.snapshot(&m)
	view := &StatusView{
		Member:     &m,
		Plan:       snap.Plan,
		Verdict:    EvaluateWithin(snap, now, s.facility.ExpiringSoonDays),
		Pause:      ValidatePauseAction(snap),
		Facilities: access.Facilities(snap.Plan),
	}
	view.Warnings = Anomalies(snap)
	for range view.Warnings {
		metrics.RecordDataIntegrityWarning("member")
	}
	return view, nil
}

// Anomalies lists member data that the evaluator tolerates but staff should fix.
func Anomalies(s Snapshot) []string {
	var out []string
	if s.PlanType != "" && s.Plan == nil {
		out = append(out, fmt.Sprintf("plan type %q is not in the catalog", s.PlanType))
	}
	if s.Plan != nil && !s.isPassBased() && s.PlanDuration != nil {
		if _, ok := MaxPauses(*s.PlanDuration); !ok {
			out = append(out, fmt.Sprintf("plan duration %d months is not a supported tier", *s.PlanDuration))
		}
	}
	if s.isPassBased() && s.UsedVisits > s.Plan.TotalVisits() {
		out = append(out, fmt.Sprintf("used visits %d exceed the plan allowance %d", s.UsedVisits, s.Plan.TotalVisits()))
	}
	return out
}

type DayPassRequest struct {
	CustomerName string            `json:"customer_name"`
	Email        string            `json:"email"`
	PassportID   string            `json:"passport_id"`
	PassType     types.DayPassType `json:"pass_type"`
}

// IssueDayPass sells a single-entry walk-in credential.
func (s *Service) IssueDayPass(ctx context.Context, req DayPassRequest) (*models.DayPass, error) {
	if !req.PassType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPassType, req.PassType)
	}
	email := tool.NormalizeEmail(req.Email)
	passport := tool.NormalizePassport(req.PassportID)
	if email == "" && passport == "" {
		return nil, ErrMissingIdentity
	}
	p := &models.DayPass{
		ID:       tool.GenerateUUIDV7(),
		PassType: req.PassType,
	}
	if name := strings.TrimSpace(req.CustomerName); name != "" {
		p.CustomerName = &name
	}
	if email != "" {
		p.Email = &email
	}
	if passport != "" {
		p.PassportID = &passport
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create day pass: %w", err)
	}
	return p, nil
}

func (s *Service) snapshot(m *models.Member) Snapshot {
	plan, _ := s.catalog.Resolve(m.GetPlanType())
	return SnapshotOf(m, plan)
}

// mutate runs fn on the locked member row and persists the result with a MemberLog.
func (s *Service) mutate(ctx context.Context, memberID string, reason types.MemberChangeReason, extra datatypes.JSONMap, fn func(m *models.Member) error) (*models.Member, error) {
	var after *models.Member
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := lockMember(tx, memberID)
		if err != nil {
			return err
		}
		before := *m
		if err := fn(m); err != nil {
			return err
		}
		if err := tx.Save(m).Error; err != nil {
			return fmt.Errorf("failed to update member: %w", err)
		}
		after = m
		return s.writeLog(tx, reason, &before, m, extra)
	})
	if err != nil {
		return nil, err
	}
	logctx.FromCtx(ctx, s.log).Infow("member updated", "member_id", memberID, "reason", reason)
	return after, nil
}

func lockMember(tx *gorm.DB, memberID string) (*models.Member, error) {
	var m models.Member
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", memberID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to lock member: %w", err)
	}
	return &m, nil
}

func (s *Service) writeLog(tx *gorm.DB, reason types.MemberChangeReason, before, after *models.Member, extra datatypes.JSONMap) error {
	memberID := ""
	if after != nil {
		memberID = after.ID
	} else if before != nil {
		memberID = before.ID
	}
	log := &models.MemberLog{
		ID:       tool.GenerateUUIDV7(),
		MemberID: memberID,
		Reason:   reason,
		Before:   datatypes.NewJSONType(before),
		After:    datatypes.NewJSONType(after),
		Extra:    extra,
	}
	if err := tx.Create(log).Error; err != nil {
		return fmt.Errorf("failed to write member log: %w", err)
	}
	return nil
}

var Module = fx.Options(
	fx.Provide(NewService),
)
