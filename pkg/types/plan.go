package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type PlanCategory string

const (
	PlanCategoryGym      PlanCategory = "gym"
	PlanCategoryCrossfit PlanCategory = "crossfit"
	PlanCategoryFitness  PlanCategory = "fitness"
	PlanCategoryCombo    PlanCategory = "combo"
)

func (c PlanCategory) Valid() bool {
	switch c {
	case PlanCategoryGym, PlanCategoryCrossfit, PlanCategoryFitness, PlanCategoryCombo:
		return true
	}
	return false
}

// Plan is a catalog entry. Plan semantics live in explicit fields; nothing downstream of the
// catalog inspects the plan id string.
type Plan struct {
	ID       string       `json:"id" mapstructure:"id"`
	Name     string       `json:"name" mapstructure:"name"`
	Aliases  []string     `json:"aliases,omitempty" mapstructure:"aliases"`
	Category PlanCategory `json:"category" mapstructure:"category"`
	// 时长类套餐的月数，次卡与单次票为nil
	DurationMonths *int `json:"duration_months,omitempty" mapstructure:"duration_months"`
	// VisitLimit is set only for pass-based plans (5-pass, 10-pass).
	VisitLimit *int `json:"visit_limit,omitempty" mapstructure:"visit_limit"`
	// ValidityDays is the date window of a pass-based plan.
	ValidityDays *int `json:"validity_days,omitempty" mapstructure:"validity_days"`
	IsDropIn     bool `json:"is_drop_in" mapstructure:"is_drop_in"`

	Price           decimal.Decimal  `json:"price" mapstructure:"price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty" mapstructure:"discounted_price"`
	// Explicit revenue split percentages (0-100). When both are nil the category rule applies.
	GymSharePercent      *decimal.Decimal `json:"gym_share_percent,omitempty" mapstructure:"gym_share_percent"`
	CrossfitSharePercent *decimal.Decimal `json:"crossfit_share_percent,omitempty" mapstructure:"crossfit_share_percent"`
}

func (p *Plan) IsPassBased() bool {
	return p != nil && p.VisitLimit != nil
}

func (p *Plan) IsTimeBased() bool {
	return p != nil && p.DurationMonths != nil
}

func (p *Plan) TotalVisits() int {
	if p == nil || p.VisitLimit == nil {
		return 0
	}
	return *p.VisitLimit
}

func (p *Plan) EffectivePrice() decimal.Decimal {
	if p.DiscountedPrice != nil && p.DiscountedPrice.IsPositive() {
		return *p.DiscountedPrice
	}
	return p.Price
}

func (p *Plan) HasShareOverride() bool {
	return p != nil && (p.GymSharePercent != nil || p.CrossfitSharePercent != nil)
}

func (p *Plan) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

func (p *Plan) String() string {
	return fmt.Sprintf("%s(%s)", p.ID, p.Category)
}
