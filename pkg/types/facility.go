package types

type FacilityType string

const (
	FacilityGym          FacilityType = "gym"
	FacilityCrossfit     FacilityType = "crossfit"
	FacilityFitnessClass FacilityType = "fitness_class"
)

var FacilityTypes = []FacilityType{FacilityGym, FacilityCrossfit, FacilityFitnessClass}

func (f FacilityType) Valid() bool {
	switch f {
	case FacilityGym, FacilityCrossfit, FacilityFitnessClass:
		return true
	}
	return false
}

func (f FacilityType) Label() string {
	switch f {
	case FacilityGym:
		return "gym"
	case FacilityCrossfit:
		return "CrossFit"
	case FacilityFitnessClass:
		return "fitness class"
	}
	return string(f)
}

// DayPassType is the drop-in vocabulary used by day passes, distinct from plan ids.
type DayPassType string

const (
	DayPassGymDropIn      DayPassType = "gym_dropin"
	DayPassCrossfitDropIn DayPassType = "crossfit_dropin"
	DayPassOpenGym        DayPassType = "open_gym"
	DayPassFitnessClass   DayPassType = "fitness_class"
)

func (t DayPassType) Valid() bool {
	switch t {
	case DayPassGymDropIn, DayPassCrossfitDropIn, DayPassOpenGym, DayPassFitnessClass:
		return true
	}
	return false
}
