package models

import (
	"time"

	"github.com/fatflowers/frontdesk/pkg/types"
	"gorm.io/datatypes"
)

// MemberLog records staff-driven changes to a member, written in the same transaction as the change.
// Use case: troubleshooting disputed end dates and pause counts.
type MemberLog struct {
	ID       string                      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	MemberID string                      `gorm:"column:member_id;type:uuid;index;not null" json:"member_id"`
	Reason   types.MemberChangeReason    `gorm:"column:reason;type:varchar(64);not null" json:"reason"`
	Before   datatypes.JSONType[*Member] `gorm:"column:before;type:jsonb" json:"before"`
	After    datatypes.JSONType[*Member] `gorm:"column:after;type:jsonb" json:"after"`
	// Extra stores operator id and action parameters.
	Extra     datatypes.JSONMap `gorm:"column:extra;type:jsonb" json:"extra"`
	CreatedAt time.Time         `json:"created_at"`
}

func (MemberLog) TableName() string {
	return "member_log"
}
