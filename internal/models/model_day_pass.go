package models

import (
	"time"

	"github.com/fatflowers/frontdesk/pkg/types"
)

// DayPass is a one-shot walk-in credential. Once IsUsed is true it is never reset.
type DayPass struct {
	ID           string            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CustomerName *string           `gorm:"column:customer_name;type:varchar(255)" json:"customer_name,omitempty"`
	Email        *string           `gorm:"column:email;type:varchar(255);index" json:"email,omitempty"`
	PassportID   *string           `gorm:"column:passport_id;type:varchar(64);index" json:"passport_id,omitempty"`
	PassType     types.DayPassType `gorm:"column:pass_type;type:varchar(64);not null" json:"pass_type"`
	IsUsed       bool              `gorm:"column:is_used;not null;index" json:"is_used"`
	UsedAt       *time.Time        `gorm:"column:used_at" json:"used_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func (DayPass) TableName() string {
	return "day_pass"
}
