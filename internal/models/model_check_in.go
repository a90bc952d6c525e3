package models

import (
	"time"

	"github.com/fatflowers/frontdesk/pkg/types"
	"gorm.io/datatypes"
)

type CheckInExtra struct {
	// VisitDeducted is true on the check-in that consumed a pass visit.
	VisitDeducted bool   `json:"visit_deducted,omitempty"`
	UsedVisits    *int   `json:"used_visits,omitempty"`
	PlanType      string `json:"plan_type,omitempty"`
}

// CheckIn is an append-only record of a granted entry. It doubles as the source of truth for
// "has this member already used today's visit".
type CheckIn struct {
	ID           string                            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	MemberID     *string                           `gorm:"column:member_id;type:uuid;index:idx_member_check_in_time,priority:1" json:"member_id,omitempty"`
	DayPassID    *string                           `gorm:"column:day_pass_id;type:uuid;index" json:"day_pass_id,omitempty"`
	FacilityType types.FacilityType                `gorm:"column:facility_type;type:varchar(32);not null" json:"facility_type"`
	CheckInTime  time.Time                         `gorm:"column:check_in_time;not null;index:idx_member_check_in_time,priority:2" json:"check_in_time"`
	Extra        datatypes.JSONType[*CheckInExtra] `gorm:"column:extra;type:jsonb" json:"extra"`
	CreatedAt    time.Time                         `json:"created_at"`
}

func (CheckIn) TableName() string {
	return "check_in"
}
