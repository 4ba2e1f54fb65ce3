package labplanner

import "github.com/askiada/go-labplanner/pkg/labplanner/model"

// Exists reports whether a sample of construct at conc was already generated
// in this run or is held by prior. A run-local match only needs the construct
// and the concentration.
func Exists(construct string, conc model.Concentration, current []model.Sample, prior *model.Inventory) bool {
	for _, s := range current {
		if s.Construct == construct && s.Concentration == conc {
			return true
		}
	}

	if prior == nil {
		return false
	}

	for loc := range prior.ConstructToLocations[construct] {
		if prior.LocToConc[loc] == conc {
			return true
		}
	}

	return false
}

// ExistsWithCloneCulture reports whether prior holds a sample of construct
// matching conc, culture and clone.
func ExistsWithCloneCulture(construct string, conc model.Concentration, culture model.Culture, clone string, prior *model.Inventory) bool {
	if prior == nil {
		return false
	}

	for loc := range prior.ConstructToLocations[construct] {
		if prior.LocToConc[loc] == conc && prior.LocToClone[loc] == clone && prior.LocToCulture[loc] == culture {
			return true
		}
	}

	return false
}
