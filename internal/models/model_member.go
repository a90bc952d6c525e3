package models

import (
	"time"

	"gorm.io/gorm"
)

// Member is a person registered at the front desk. At least one of Email / PassportID makes
// the member reachable by check-in. Rows are soft-deleted only, so payments and check-ins keep
// their references.
type Member struct {
	ID         string  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FullName   string  `gorm:"column:full_name;type:varchar(255);not null" json:"full_name"`
	Email      *string `gorm:"column:email;type:varchar(255);index" json:"email,omitempty"`
	PassportID *string `gorm:"column:passport_id;type:varchar(64);index" json:"passport_id,omitempty"`
	Phone      *string `gorm:"column:phone;type:varchar(64)" json:"phone,omitempty"`
	// PlanType is the catalog id (or a legacy alias) of the current plan.
	PlanType *string `gorm:"column:plan_type;type:varchar(64)" json:"plan_type,omitempty"`
	// PlanDuration in months; nil for pass-based plans.
	PlanDuration *int       `gorm:"column:plan_duration" json:"plan_duration,omitempty"`
	StartDate    *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	// CurrentEndDate moves with pauses; OriginalEndDate never changes after registration.
	CurrentEndDate  *time.Time `gorm:"column:current_end_date" json:"current_end_date,omitempty"`
	OriginalEndDate *time.Time `gorm:"column:original_end_date" json:"original_end_date,omitempty"`
	IsActive        bool       `gorm:"column:is_active;not null" json:"is_active"`
	IsPaused        bool       `gorm:"column:is_paused;not null" json:"is_paused"`
	// PauseCount only ever grows.
	PauseCount int `gorm:"column:pause_count;not null" json:"pause_count"`
	// PausedAt / PauseDays describe the pause in progress, if any.
	PausedAt  *time.Time `gorm:"column:paused_at" json:"paused_at,omitempty"`
	PauseDays int        `gorm:"column:pause_days;not null" json:"pause_days"`
	// UsedVisits is meaningful for pass-based plans only.
	UsedVisits *int `gorm:"column:used_visits" json:"used_visits,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Member) TableName() string {
	return "member"
}

func (m *Member) GetPlanType() string {
	if m == nil || m.PlanType == nil {
		return ""
	}
	return *m.PlanType
}

func (m *Member) GetUsedVisits() int {
	if m == nil || m.UsedVisits == nil {
		return 0
	}
	return *m.UsedVisits
}
