// Package access decides which facilities a plan or a day pass unlocks.
package access

import (
	"github.com/fatflowers/frontdesk/pkg/types"
	"github.com/samber/lo"
)

// CanAccessFacility reports whether a member holding plan may enter facility.
// CrossFit plans include gym access; combo plans unlock every facility.
func CanAccessFacility(plan *types.Plan, facility types.FacilityType) bool {
	if plan == nil || !facility.Valid() {
		return false
	}
	switch facility {
	case types.FacilityGym:
		return plan.Category == types.PlanCategoryGym ||
			plan.Category == types.PlanCategoryCrossfit ||
			plan.Category == types.PlanCategoryCombo
	case types.FacilityCrossfit:
		return plan.Category == types.PlanCategoryCrossfit ||
			plan.Category == types.PlanCategoryCombo
	case types.FacilityFitnessClass:
		return plan.Category == types.PlanCategoryFitness ||
			plan.Category == types.PlanCategoryCombo
	}
	return false
}

// Facilities lists the facilities plan unlocks, in display order.
func Facilities(plan *types.Plan) []types.FacilityType {
	return lo.Filter(types.FacilityTypes, func(f types.FacilityType, _ int) bool {
		return CanAccessFacility(plan, f)
	})
}

// DayPassCovers maps the drop-in vocabulary onto facilities.
func DayPassCovers(passType types.DayPassType, facility types.FacilityType) bool {
	switch passType {
	case types.DayPassGymDropIn, types.DayPassOpenGym:
		return facility == types.FacilityGym
	case types.DayPassCrossfitDropIn:
		return facility == types.FacilityCrossfit
	case types.DayPassFitnessClass:
		return facility == types.FacilityFitnessClass
	}
	return false
}
