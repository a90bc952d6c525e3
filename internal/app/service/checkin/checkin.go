// Package checkin decides front desk entry and records its side effects.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatflowers/frontdesk/internal/app/service/access"
	"github.com/fatflowers/frontdesk/internal/app/service/catalog"
	"github.com/fatflowers/frontdesk/internal/app/service/membership"
	"github.com/fatflowers/frontdesk/internal/app/service/visit"
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
)

var (
	ErrMissingIdentifier = errors.New("identifier is required")
	ErrInvalidFacility   = errors.New("invalid facility type")
)

const (
	MessageNotFound        = "No valid membership or day pass found. Please contact reception."
	MessageSystemError     = "System error. Please contact reception."
	MessageDayPassConsumed = "This day pass has already been used."

	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

type Outcome string

const (
	OutcomeGranted  Outcome = "GRANTED"
	OutcomeDenied   Outcome = "DENIED"
	OutcomeNotFound Outcome = "NOT_FOUND"
	OutcomeError    Outcome = "ERROR"
)

type Flow string

const (
	FlowMember  Flow = "member"
	FlowDayPass Flow = "day_pass"
	FlowNone    Flow = "none"
)

type Request struct {
	Identifier   string             `json:"identifier"`
	FacilityType types.FacilityType `json:"facility_type"`
}

// MemberInfo is returned with grants and denials alike so staff can see why.
type MemberInfo struct {
	ID              string                 `json:"id"`
	FullName        string                 `json:"full_name"`
	PlanType        string                 `json:"plan_type,omitempty"`
	PlanName        string                 `json:"plan_name,omitempty"`
	Status          types.MembershipStatus `json:"status"`
	EndDate         *time.Time             `json:"end_date,omitempty"`
	DaysRemaining   int                    `json:"days_remaining"`
	Advisory        string                 `json:"advisory,omitempty"`
	Facilities      []types.FacilityType   `json:"facilities"`
	UsedVisits      *int                   `json:"used_visits,omitempty"`
	TotalVisits     *int                   `json:"total_visits,omitempty"`
	RemainingVisits *int                   `json:"remaining_visits,omitempty"`
	LastPayment     *types.LastPaymentInfo `json:"last_payment,omitempty"`
}

type DayPassInfo struct {
	ID           string            `json:"id"`
	CustomerName string            `json:"customer_name,omitempty"`
	PassType     types.DayPassType `json:"pass_type"`
	UsedAt       *time.Time        `json:"used_at,omitempty"`
}

type Result struct {
	Success     bool         `json:"success"`
	Outcome     Outcome      `json:"outcome"`
	Flow        Flow         `json:"flow"`
	Message     string       `json:"message"`
	MemberInfo  *MemberInfo  `json:"member_info,omitempty"`
	DayPassInfo *DayPassInfo `json:"day_pass_info,omitempty"`
	// Warnings carry data anomalies for staff; they never change the outcome.
	Warnings []string `json:"warnings,omitempty"`
}

type Service struct {
	store    Store
	catalog  *catalog.Catalog
	facility *config.FacilityConfig
	log      *zap.SugaredLogger
}

func NewService(store Store, c *catalog.Catalog, cfg *config.Config, log *zap.SugaredLogger) *Service {
	return &Service{store: store, catalog: c, facility: &cfg.Facility, log: log}
}

// CheckIn validates an entry at the current time.
func (s *Service) CheckIn(ctx context.Context, req Request) (*Result, error) {
	return s.CheckInAt(ctx, req, time.Now())
}

// CheckInAt validates an entry at now. The returned error is reserved for malformed input;
// denials and store failures are reported through Result.
func (s *Service) CheckInAt(ctx context.Context, req Request, now time.Time) (*Result, error) {
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" {
		return nil, ErrMissingIdentifier
	}
	if !req.FacilityType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFacility, req.FacilityType)
	}

	res := s.dispatch(ctx, identifier, req.FacilityType, now)
	metrics.RecordCheckIn(string(res.Flow), string(res.Outcome), string(req.FacilityType))
	logctx.FromCtx(ctx, s.log).Infow("check-in",
		"flow", res.Flow, "outcome", res.Outcome, "facility", req.FacilityType)
	return res, nil
}

func (s *Service) dispatch(ctx context.Context, identifier string, facility types.FacilityType, now time.Time) *Result {
	member, err := s.store.FindMemberByIdentifier(ctx, identifier)
	if err != nil {
		return s.systemError(ctx, FlowNone, fmt.Errorf("failed to find member: %w", err))
	}
	if member != nil {
		return s.memberFlow(ctx, member.ID, facility, now)
	}

	pass, err := s.store.FindUnusedDayPass(ctx, identifier)
	if err != nil {
		return s.systemError(ctx, FlowNone, fmt.Errorf("failed to find day pass: %w", err))
	}
	if pass != nil {
		return s.dayPassFlow(ctx, pass, facility, now)
	}
	return &Result{Outcome: OutcomeNotFound, Flow: FlowNone, Message: MessageNotFound}
}

// memberFlow evaluates and records the entry on the locked member row, so concurrent entries by the
// same member serialize and the visit deduction commits together with its check-in row.
func (s *Service) memberFlow(ctx context.Context, memberID string, facility types.FacilityType, now time.Time) *Result {
	var res *Result
	err := s.store.Transaction(ctx, func(tx Store) error {
		m, err := tx.LockMember(ctx, memberID)
		if err != nil {
			return fmt.Errorf("failed to lock member: %w", err)
		}
		if m == nil {
			// deleted between lookup and lock
			res = &Result{Outcome: OutcomeNotFound, Flow: FlowNone, Message: MessageNotFound}
			return nil
		}

		plan, _ := s.catalog.Resolve(m.GetPlanType())
		snap := membership.SnapshotOf(m, plan)
		verdict := membership.EvaluateWithin(snap, now, s.facility.ExpiringSoonDays)
		if verdict.Status == types.MembershipStatusVisitsExhausted {
			if verdict, err = reentryVerdict(ctx, tx, m, verdict, now); err != nil {
				return err
			}
		}
		info := newMemberInfo(m, plan, verdict)
		warnings := membership.Anomalies(snap)

		if !verdict.IsValid {
			res = denied(FlowMember, verdict.Reason, info, warnings)
			return nil
		}
		if !access.CanAccessFacility(plan, facility) {
			msg := fmt.Sprintf("Your %s plan does not include %s access.", plan.DisplayName(), facility.Label())
			res = denied(FlowMember, msg, info, warnings)
			return nil
		}

		extra := &models.CheckInExtra{PlanType: plan.ID}
		message := fmt.Sprintf("Welcome, %s! Enjoy your %s session.", m.FullName, facility.Label())
		if plan.IsPassBased() {
			out, err := visit.RecordVisit(ctx, tx, m, plan.TotalVisits(), now)
			if err != nil {
				return fmt.Errorf("failed to record visit: %w", err)
			}
			extra.VisitDeducted = out.Deducted
			extra.UsedVisits = lo.ToPtr(out.UsedVisits)
			info.UsedVisits = lo.ToPtr(out.UsedVisits)
			info.RemainingVisits = lo.ToPtr(out.Remaining)
			message = out.Message
			if out.Deducted {
				metrics.RecordVisitDeduction(plan.ID)
			}
		}

		entry := &models.CheckIn{
			ID:           tool.GenerateUUIDV7(),
			MemberID:     lo.ToPtr(m.ID),
			FacilityType: facility,
			CheckInTime:  now,
			Extra:        datatypes.NewJSONType(extra),
		}
		if err := tx.AppendCheckIn(ctx, entry); err != nil {
			return fmt.Errorf("failed to append check-in: %w", err)
		}
		res = &Result{Success: true, Outcome: OutcomeGranted, Flow: FlowMember, Message: message, MemberInfo: info, Warnings: warnings}
		return nil
	})
	if err != nil {
		return s.systemError(ctx, FlowMember, err)
	}

	for range res.Warnings {
		metrics.RecordDataIntegrityWarning("member")
	}
	if res.MemberInfo != nil {
		s.attachLastPayment(ctx, res.MemberInfo)
	}
	return res
}

// reentryVerdict lets a member whose last visit was deducted today back in the same day. The visit is
// already paid for, so only the pass window can still deny the entry.
func reentryVerdict(ctx context.Context, tx Store, m *models.Member, v membership.Verdict, now time.Time) (membership.Verdict, error) {
	deduct, err := visit.ShouldDeductVisit(ctx, tx, m.ID, now)
	if err != nil {
		return v, fmt.Errorf("failed to check today's visits: %w", err)
	}
	if deduct {
		return v, nil
	}
	if m.CurrentEndDate != nil && v.DaysRemaining <= 0 {
		return membership.Verdict{Status: types.MembershipStatusExpired, Reason: membership.ReasonPassExpired}, nil
	}
	return membership.Verdict{IsValid: true, Status: types.MembershipStatusActive, DaysRemaining: v.DaysRemaining}, nil
}

func (s *Service) dayPassFlow(ctx context.Context, pass *models.DayPass, facility types.FacilityType, now time.Time) *Result {
	info := &DayPassInfo{ID: pass.ID, PassType: pass.PassType}
	if pass.CustomerName != nil {
		info.CustomerName = *pass.CustomerName
	}
	if !access.DayPassCovers(pass.PassType, facility) {
		msg := fmt.Sprintf("This %s day pass does not cover %s access.", pass.PassType, facility.Label())
		return &Result{Outcome: OutcomeDenied, Flow: FlowDayPass, Message: msg, DayPassInfo: info}
	}

	var res *Result
	err := s.store.Transaction(ctx, func(tx Store) error {
		ok, err := tx.MarkDayPassUsed(ctx, pass.ID, now)
		if err != nil {
			return fmt.Errorf("failed to mark day pass used: %w", err)
		}
		if !ok {
			res = &Result{Outcome: OutcomeDenied, Flow: FlowDayPass, Message: MessageDayPassConsumed, DayPassInfo: info}
			return nil
		}
		entry := &models.CheckIn{
			ID:           tool.GenerateUUIDV7(),
			DayPassID:    lo.ToPtr(pass.ID),
			FacilityType: facility,
			CheckInTime:  now,
		}
		if err := tx.AppendCheckIn(ctx, entry); err != nil {
			return fmt.Errorf("failed to append check-in: %w", err)
		}
		info.UsedAt = lo.ToPtr(now)
		res = &Result{
			Success:     true,
			Outcome:     OutcomeGranted,
			Flow:        FlowDayPass,
			Message:     fmt.Sprintf("Day pass accepted. Enjoy your %s session.", facility.Label()),
			DayPassInfo: info,
		}
		return nil
	})
	if err != nil {
		return s.systemError(ctx, FlowDayPass, err)
	}
	if res.Success {
		metrics.RecordDayPassConsumed(string(pass.PassType))
	}
	return res
}

// attachLastPayment is display-only; a failure here never turns a decision into an error.
func (s *Service) attachLastPayment(ctx context.Context, info *MemberInfo) {
	p, err := s.store.GetLastPayment(ctx, info.ID)
	if err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("failed to load last payment", "member_id", info.ID, "err", err)
		return
	}
	if p == nil {
		return
	}
	info.LastPayment = &types.LastPaymentInfo{
		Amount: p.Amount.StringFixed(2),
		PlanID: lo.FromPtr(p.PlanType),
		PaidAt: p.PaidAt,
	}
}

func (s *Service) systemError(ctx context.Context, flow Flow, err error) *Result {
	logctx.FromCtx(ctx, s.log).Errorw("check-in failed", "flow", flow, "err", err)
	return &Result{Outcome: OutcomeError, Flow: flow, Message: MessageSystemError}
}

// History returns the member's most recent check-ins, newest first.
func (s *Service) History(ctx context.Context, memberID string, limit int) ([]*models.CheckIn, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	limit = min(limit, maxHistoryLimit)
	rows, err := s.store.RecentCheckIns(ctx, memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get check-in history: %w", err)
	}
	return rows, nil
}

func newMemberInfo(m *models.Member, plan *types.Plan, v membership.Verdict) *MemberInfo {
	info := &MemberInfo{
		ID:            m.ID,
		FullName:      m.FullName,
		PlanType:      m.GetPlanType(),
		Status:        v.Status,
		EndDate:       m.CurrentEndDate,
		DaysRemaining: v.DaysRemaining,
		Advisory:      v.Advisory,
		Facilities:    access.Facilities(plan),
	}
	if plan != nil {
		info.PlanName = plan.DisplayName()
	}
	if plan.IsPassBased() {
		used := m.GetUsedVisits()
		info.UsedVisits = lo.ToPtr(used)
		info.TotalVisits = lo.ToPtr(plan.TotalVisits())
		info.RemainingVisits = lo.ToPtr(max(plan.TotalVisits()-used, 0))
	}
	return info
}

func denied(flow Flow, reason string, info *MemberInfo, warnings []string) *Result {
	return &Result{Outcome: OutcomeDenied, Flow: flow, Message: reason, MemberInfo: info, Warnings: warnings}
}

var Module = fx.Options(
	fx.Provide(
		fx.Annotate(NewGormStore, fx.As(new(Store))),
		NewService,
	),
)
