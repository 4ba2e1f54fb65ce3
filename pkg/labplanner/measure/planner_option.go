package measure

import (
	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

type plannerMeasure struct {
	Measure
}

func (pm *plannerMeasure) New() error {
	return nil
}

func (pm *plannerMeasure) OnStep(step model.Step, samples []model.Sample) error {
	pm.AddMetric(step.Operation()).AddStep(len(samples))

	return nil
}

func (pm *plannerMeasure) OnSequences(samples []model.Sample) error {
	if len(samples) == 0 {
		return nil
	}

	pm.AddMetric(OperationSequences).AddStep(len(samples))

	return nil
}

func (pm *plannerMeasure) OnPlace(_ model.Sample, loc model.Location) error {
	pm.AddSlot(loc.Box)

	return nil
}

func (pm *plannerMeasure) Finish(_ *model.Experiment) error {
	return nil
}

// PlannerMeasure feeds msr with the steps and placements of a run.
func PlannerMeasure(msr Measure) model.PlannerOption {
	return &plannerMeasure{msr}
}
