package membership

import "fmt"

const ReasonPauseUnsupported = "Plan does not support pausing."

// PauseDecision is the gate for staff pause and resume actions.
type PauseDecision struct {
	CanPause      bool   `json:"can_pause"`
	CanUnpause    bool   `json:"can_unpause"`
	MaxPauses     int    `json:"max_pauses"`
	CurrentPauses int    `json:"current_pauses"`
	Reason        string `json:"reason,omitempty"`
}

var maxPausesByDuration = map[int]int{
	1:  1,
	3:  2,
	6:  3,
	12: 4,
}

// MaxPauses returns the pause allowance of a duration tier in months.
func MaxPauses(durationMonths int) (int, bool) {
	n, ok := maxPausesByDuration[durationMonths]
	return n, ok
}

// ValidatePauseAction decides, without mutating anything, whether s may be paused or resumed.
func ValidatePauseAction(s Snapshot) PauseDecision {
	d := PauseDecision{CurrentPauses: s.PauseCount}

	if s.PlanType == "" {
		d.Reason = ReasonPauseUnsupported
		return d
	}
	if s.Plan == nil {
		d.Reason = fmt.Sprintf("Unrecognized plan type %q.", s.PlanType)
		return d
	}
	if s.isPassBased() {
		d.Reason = fmt.Sprintf("%d-pass plans cannot be paused.", s.Plan.TotalVisits())
		return d
	}
	if s.PlanDuration == nil {
		d.Reason = ReasonPauseUnsupported
		return d
	}
	maxPauses, ok := MaxPauses(*s.PlanDuration)
	if !ok {
		d.Reason = "Invalid plan duration."
		return d
	}
	d.MaxPauses = maxPauses

	if s.IsPaused {
		d.CanUnpause = true
		d.Reason = fmt.Sprintf("Membership is paused (%d of %d pauses used).", s.PauseCount, maxPauses)
		return d
	}
	d.CanPause = s.PauseCount < maxPauses
	if !d.CanPause {
		d.Reason = fmt.Sprintf("Maximum pause limit reached (%d).", maxPauses)
	}
	return d
}
