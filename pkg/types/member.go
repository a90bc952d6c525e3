package types

import "time"

type MembershipStatus string

const (
	MembershipStatusActive          MembershipStatus = "active"
	MembershipStatusExpiringSoon    MembershipStatus = "expiring_soon"
	MembershipStatusInactive        MembershipStatus = "inactive"
	MembershipStatusPaused          MembershipStatus = "paused"
	MembershipStatusExpired         MembershipStatus = "expired"
	MembershipStatusNoPlan          MembershipStatus = "no_plan"
	MembershipStatusUnknownPlan     MembershipStatus = "unknown_plan"
	MembershipStatusVisitsExhausted MembershipStatus = "visits_exhausted"
)

type MemberChangeReason string

const (
	MemberChangeReasonRegister   MemberChangeReason = "register"
	MemberChangeReasonPause      MemberChangeReason = "pause"
	MemberChangeReasonResume     MemberChangeReason = "resume"
	MemberChangeReasonActivate   MemberChangeReason = "activate"
	MemberChangeReasonDeactivate MemberChangeReason = "deactivate"
	MemberChangeReasonDelete     MemberChangeReason = "delete"
)

type Business string

const (
	BusinessGym      Business = "gym"
	BusinessCrossfit Business = "crossfit"
)

type LastPaymentInfo struct {
	Amount string    `json:"amount"`
	PlanID string    `json:"plan_id,omitempty"`
	PaidAt time.Time `json:"paid_at"`
}
