package catalog

import (
	"github.com/fatflowers/frontdesk/pkg/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// DefaultPlans is the catalog used when the config has no plans section.
func DefaultPlans() []*types.Plan {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return []*types.Plan{
		{ID: "gym_1m", Name: "Gym 1 Month", Aliases: []string{"gym_monthly", "gym_only"}, Category: types.PlanCategoryGym, DurationMonths: lo.ToPtr(1), Price: price("49.00")},
		{ID: "gym_3m", Name: "Gym 3 Months", Category: types.PlanCategoryGym, DurationMonths: lo.ToPtr(3), Price: price("135.00")},
		{ID: "gym_6m", Name: "Gym 6 Months", Category: types.PlanCategoryGym, DurationMonths: lo.ToPtr(6), Price: price("249.00")},
		{ID: "gym_12m", Name: "Gym 12 Months", Category: types.PlanCategoryGym, DurationMonths: lo.ToPtr(12), Price: price("449.00"), DiscountedPrice: lo.ToPtr(price("399.00"))},
		{ID: "gym_5pass", Name: "Gym 5-Pass", Category: types.PlanCategoryGym, VisitLimit: lo.ToPtr(5), ValidityDays: lo.ToPtr(30), Price: price("40.00")},
		{ID: "gym_10pass", Name: "Gym 10-Pass", Category: types.PlanCategoryGym, VisitLimit: lo.ToPtr(10), ValidityDays: lo.ToPtr(60), Price: price("75.00")},
		{ID: "crossfit_only", Name: "CrossFit 1 Month", Aliases: []string{"crossfit_monthly"}, Category: types.PlanCategoryCrossfit, DurationMonths: lo.ToPtr(1), Price: price("99.00")},
		{ID: "crossfit_5pass", Name: "CrossFit 5-Pass", Category: types.PlanCategoryCrossfit, VisitLimit: lo.ToPtr(5), ValidityDays: lo.ToPtr(30), Price: price("70.00")},
		{ID: "crossfit_10pass", Name: "CrossFit 10-Pass", Category: types.PlanCategoryCrossfit, VisitLimit: lo.ToPtr(10), ValidityDays: lo.ToPtr(60), Price: price("130.00")},
		{ID: "gym_crossfit", Name: "Gym + CrossFit 1 Month", Aliases: []string{"gym+crossfit", "combo"}, Category: types.PlanCategoryCombo, DurationMonths: lo.ToPtr(1), Price: price("129.00")},
		{ID: "fitness_class", Name: "Fitness Classes 1 Month", Category: types.PlanCategoryFitness, DurationMonths: lo.ToPtr(1), Price: price("59.00")},
		{ID: "gym_dropin", Name: "Gym Drop-In", Category: types.PlanCategoryGym, IsDropIn: true, Price: price("12.00")},
		{ID: "crossfit_dropin", Name: "CrossFit Drop-In", Category: types.PlanCategoryCrossfit, IsDropIn: true, Price: price("20.00")},
	}
}
