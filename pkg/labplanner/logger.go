package labplanner

import (
	"github.com/sirupsen/logrus"

	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

type plannerLogger struct {
	logger  *logrus.Logger
	steps   int
	samples int
	placed  int
}

func (pl *plannerLogger) New() error {
	pl.steps, pl.samples, pl.placed = 0, 0, 0

	return nil
}

func (pl *plannerLogger) OnStep(step model.Step, samples []model.Sample) error {
	pl.steps++
	pl.samples += len(samples)
	pl.logger.WithFields(logrus.Fields{
		"operation": step.Operation(),
		"output":    step.Output(),
		"samples":   len(samples),
	}).Debug("step planned")

	return nil
}

func (pl *plannerLogger) OnSequences(samples []model.Sample) error {
	pl.samples += len(samples)
	pl.logger.WithField("samples", len(samples)).Debug("sequences planned")

	return nil
}

func (pl *plannerLogger) OnPlace(sample model.Sample, loc model.Location) error {
	pl.placed++
	pl.logger.WithFields(logrus.Fields{
		"construct": sample.Construct,
		"box":       loc.Box,
		"well":      loc.Well(),
	}).Trace("sample placed")

	return nil
}

func (pl *plannerLogger) Finish(exp *model.Experiment) error {
	pl.logger.WithFields(logrus.Fields{
		"experiment": exp.Name,
		"id":         exp.ID,
		"steps":      pl.steps,
		"samples":    pl.samples,
		"placed":     pl.placed,
		"boxes":      len(exp.Inventory.Boxes),
	}).Info("experiment planned")

	return nil
}

// PlannerLogger logs the progress of a run to logger.
func PlannerLogger(logger *logrus.Logger) model.PlannerOption {
	return &plannerLogger{logger: logger}
}
