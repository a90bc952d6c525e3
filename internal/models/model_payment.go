package models

import (
	"time"

	"github.com/fatflowers/frontdesk/pkg/types"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type PaymentExtra struct {
	OperatorID string `json:"operator_id,omitempty"`
	// PlanSnapshot freezes the catalog entry at payment time.
	PlanSnapshot *types.Plan `json:"plan_snapshot,omitempty"`
	// SplitSource records which rule produced the share amounts.
	SplitSource string   `json:"split_source,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

// Payment records money received. Only the share amounts may be written after creation
// (back-fill of legacy rows).
type Payment struct {
	ID        string  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	MemberID  *string `gorm:"column:member_id;type:uuid;index:idx_member_paid_at,priority:1" json:"member_id,omitempty"`
	DayPassID *string `gorm:"column:day_pass_id;type:uuid" json:"day_pass_id,omitempty"`
	PlanType  *string `gorm:"column:plan_type;type:varchar(64)" json:"plan_type,omitempty"`
	// LegacyType carries the free-form category of rows written before the catalog existed.
	LegacyType *string         `gorm:"column:legacy_type;type:varchar(64)" json:"legacy_type,omitempty"`
	Amount     decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	Method     string          `gorm:"column:method;type:varchar(32)" json:"method,omitempty"`
	PaidAt     time.Time       `gorm:"column:paid_at;not null;index:idx_member_paid_at,priority:2,sort:desc" json:"paid_at"`

	GymShareAmount      *decimal.Decimal `gorm:"column:gym_share_amount;type:numeric(12,2)" json:"gym_share_amount,omitempty"`
	CrossfitShareAmount *decimal.Decimal `gorm:"column:crossfit_share_amount;type:numeric(12,2)" json:"crossfit_share_amount,omitempty"`

	Extra     datatypes.JSONType[*PaymentExtra] `gorm:"column:extra;type:jsonb" json:"extra"`
	CreatedAt time.Time                         `json:"created_at"`
	UpdatedAt time.Time                         `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payment"
}

func (p *Payment) GetPlanSnapshot() *types.Plan {
	if p == nil || p.Extra.Data() == nil {
		return nil
	}
	return p.Extra.Data().PlanSnapshot
}
