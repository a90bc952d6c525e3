package membership

import (
	"fmt"
	"time"

	"github.com/fatflowers/frontdesk/internal/models"
	"github.com/fatflowers/frontdesk/pkg/tool"
	"github.com/fatflowers/frontdesk/pkg/types"
)

const DefaultExpiringSoonDays = 30

// Snapshot is the read-only view of a member that the evaluator and the pause policy decide on.
type Snapshot struct {
	// PlanType is the raw plan string stored on the member.
	PlanType string
	// Plan is the catalog entry PlanType resolved to; nil when unresolvable.
	Plan           *types.Plan
	PlanDuration   *int
	CurrentEndDate *time.Time
	IsActive       bool
	IsPaused       bool
	PauseCount     int
	UsedVisits     int
}

// SnapshotOf copies the decision-relevant fields of m. plan may be nil.
func SnapshotOf(m *models.Member, plan *types.Plan) Snapshot {
	s := Snapshot{
		PlanType:       m.GetPlanType(),
		Plan:           plan,
		PlanDuration:   m.PlanDuration,
		CurrentEndDate: m.CurrentEndDate,
		IsActive:       m.IsActive,
		IsPaused:       m.IsPaused,
		PauseCount:     m.PauseCount,
		UsedVisits:     m.GetUsedVisits(),
	}
	if s.PlanDuration == nil && plan != nil {
		s.PlanDuration = plan.DurationMonths
	}
	return s
}

func (s Snapshot) isPassBased() bool {
	return s.Plan.IsPassBased()
}

func (s Snapshot) isTimeBased() bool {
	return !s.isPassBased() && s.PlanDuration != nil
}

// daysRemaining is ceil((CurrentEndDate - now) / 1 day). A missing end date counts as elapsed.
func (s Snapshot) daysRemaining(now time.Time) int {
	if s.CurrentEndDate == nil {
		return 0
	}
	return tool.CeilDays(now, *s.CurrentEndDate)
}

type Verdict struct {
	IsValid bool                   `json:"is_valid"`
	Status  types.MembershipStatus `json:"status"`
	// DaysRemaining is clamped at zero.
	DaysRemaining int    `json:"days_remaining"`
	Reason        string `json:"reason,omitempty"`
	// Advisory is a non-blocking note on a valid membership.
	Advisory string `json:"advisory,omitempty"`
}

const (
	ReasonInactive    = "Membership is inactive."
	ReasonPaused      = "Membership is paused."
	ReasonNoPlan      = "No plan associated."
	ReasonExpired     = "Membership expired."
	ReasonPassExpired = "Pass expired by date."
)

// Evaluate decides whether s may enter at now, with the default expiring-soon threshold.
func Evaluate(s Snapshot, now time.Time) Verdict {
	return EvaluateWithin(s, now, DefaultExpiringSoonDays)
}

// EvaluateWithin is Evaluate with a configurable expiring-soon threshold.
// The first matching rule wins.
func EvaluateWithin(s Snapshot, now time.Time, expiringSoonDays int) Verdict {
	days := s.daysRemaining(now)
	v := Verdict{DaysRemaining: max(days, 0)}

	switch {
	case !s.IsActive:
		return deny(v, types.MembershipStatusInactive, ReasonInactive)
	case s.IsPaused:
		return deny(v, types.MembershipStatusPaused, ReasonPaused)
	case s.PlanType == "":
		return deny(v, types.MembershipStatusNoPlan, ReasonNoPlan)
	case s.Plan == nil:
		return deny(v, types.MembershipStatusUnknownPlan, fmt.Sprintf("Unrecognized plan type %q.", s.PlanType))
	case s.isTimeBased() && days <= 0:
		return deny(v, types.MembershipStatusExpired, ReasonExpired)
	}

	if s.isPassBased() {
		total := s.Plan.TotalVisits()
		if s.UsedVisits >= total {
			return deny(v, types.MembershipStatusVisitsExhausted, fmt.Sprintf("All %d visits used.", total))
		}
		// a pass without a configured window only expires by visits
		if s.CurrentEndDate != nil && days <= 0 {
			return deny(v, types.MembershipStatusExpired, ReasonPassExpired)
		}
	}

	v.IsValid = true
	v.Status = types.MembershipStatusActive
	if s.CurrentEndDate != nil && days > 0 && days <= expiringSoonDays {
		v.Status = types.MembershipStatusExpiringSoon
		v.Advisory = fmt.Sprintf("Membership expires in %d %s.", days, plural(days, "day"))
	}
	return v
}

func deny(v Verdict, status types.MembershipStatus, reason string) Verdict {
	v.IsValid = false
	v.Status = status
	v.Reason = reason
	return v
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
