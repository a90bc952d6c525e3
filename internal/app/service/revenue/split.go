// Package revenue attributes payment amounts between the gym and the CrossFit business.
package revenue

import (
	"fmt"

	"github.com/fatflowers/frontdesk/pkg/types"
	"github.com/shopspring/decimal"
)

type Source string

const (
	SourcePaymentOverride Source = "payment_override"
	SourcePlanPercentages Source = "plan_percentages"
	SourceCategory        Source = "category"
)

var (
	hundred          = decimal.NewFromInt(100)
	crossfitGymShare = decimal.RequireFromString("0.20")
)

// Override is a manually corrected split carried on a payment.
type Override struct {
	Gym      *decimal.Decimal
	Crossfit *decimal.Decimal
}

func (o *Override) active() bool {
	if o == nil {
		return false
	}
	return (o.Gym != nil && !o.Gym.IsZero()) || (o.Crossfit != nil && !o.Crossfit.IsZero())
}

// Percentages is a plan-level split in percent (0-100).
type Percentages struct {
	Gym      *decimal.Decimal
	Crossfit *decimal.Decimal
}

// PercentagesOf returns the plan's explicit split, or nil when the plan has none.
func PercentagesOf(plan *types.Plan) *Percentages {
	if !plan.HasShareOverride() {
		return nil
	}
	return &Percentages{Gym: plan.GymSharePercent, Crossfit: plan.CrossfitSharePercent}
}

type Shares struct {
	Gym      decimal.Decimal `json:"gym"`
	Crossfit decimal.Decimal `json:"crossfit"`
	Source   Source          `json:"source"`
	// Warnings flag inconsistent inputs; the split is still returned.
	Warnings []string `json:"warnings,omitempty"`
}

// Split applies, in order: non-zero payment overrides verbatim, plan percentages, then the
// category rule (crossfit 20/80, every other category 100/0).
func Split(amount decimal.Decimal, category types.PlanCategory, percents *Percentages, override *Override) Shares {
	var warnings []string
	if amount.IsNegative() {
		warnings = append(warnings, fmt.Sprintf("payment amount %s is negative", amount))
	}

	if override.active() {
		s := Shares{Gym: zeroIfNil(override.Gym), Crossfit: zeroIfNil(override.Crossfit), Source: SourcePaymentOverride}
		s.Warnings = append(warnings, checkOverride(amount, s.Gym, s.Crossfit)...)
		return s
	}

	if percents != nil {
		if s, ok := splitByPercent(amount, percents); ok {
			s.Warnings = warnings
			return s
		}
		warnings = append(warnings, fmt.Sprintf("plan share percentages %s/%s are invalid; category split used",
			fmtPercent(percents.Gym), fmtPercent(percents.Crossfit)))
	}

	s := splitByCategory(amount, category)
	s.Warnings = warnings
	return s
}

func splitByCategory(amount decimal.Decimal, category types.PlanCategory) Shares {
	if category == types.PlanCategoryCrossfit {
		gym := amount.Mul(crossfitGymShare)
		return Shares{Gym: gym, Crossfit: amount.Sub(gym), Source: SourceCategory}
	}
	return Shares{Gym: amount, Crossfit: decimal.Zero, Source: SourceCategory}
}

func splitByPercent(amount decimal.Decimal, p *Percentages) (Shares, bool) {
	var gymPct decimal.Decimal
	switch {
	case p.Gym != nil && p.Crossfit != nil:
		if !p.Gym.Add(*p.Crossfit).Equal(hundred) {
			return Shares{}, false
		}
		gymPct = *p.Gym
	case p.Gym != nil:
		gymPct = *p.Gym
	case p.Crossfit != nil:
		gymPct = hundred.Sub(*p.Crossfit)
	default:
		return Shares{}, false
	}
	if gymPct.IsNegative() || gymPct.GreaterThan(hundred) {
		return Shares{}, false
	}
	gym := amount.Mul(gymPct).Div(hundred)
	return Shares{Gym: gym, Crossfit: amount.Sub(gym), Source: SourcePlanPercentages}, true
}

func checkOverride(amount, gym, crossfit decimal.Decimal) []string {
	var out []string
	if gym.IsNegative() || crossfit.IsNegative() {
		out = append(out, fmt.Sprintf("override shares %s/%s contain a negative amount", gym, crossfit))
	}
	sum := gym.Add(crossfit)
	switch sum.Cmp(amount) {
	case 1:
		out = append(out, fmt.Sprintf("override shares sum to %s, exceeding payment amount %s", sum, amount))
	case -1:
		out = append(out, fmt.Sprintf("override shares sum to %s, short of payment amount %s", sum, amount))
	}
	return out
}

func zeroIfNil(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func fmtPercent(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.String()
}
