package drawer

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

type plannerDrawer struct {
	Drawer
	tubes map[string]int
}

func (pd *plannerDrawer) New() error {
	pd.tubes = make(map[string]int)

	return nil
}

func (pd *plannerDrawer) OnStep(step model.Step, _ []model.Sample) error {
	err := pd.AddConstruct(step.Output(), step.Operation())
	if err != nil {
		return errors.Wrapf(err, "unable to add construct %s", step.Output())
	}

	for _, input := range step.Inputs() {
		if input == step.Output() {
			continue
		}

		err := pd.AddConstruct(input, "")
		if err != nil {
			return errors.Wrapf(err, "unable to add construct %s", input)
		}

		err = pd.AddLink(input, step.Output(), step.Operation())
		if err != nil {
			return err
		}
	}

	return nil
}

func (pd *plannerDrawer) OnSequences(samples []model.Sample) error {
	for _, sample := range samples {
		if sample.Concentration != model.ConcGene {
			continue
		}

		err := pd.AddConstruct(sample.Construct, "")
		if err != nil {
			return errors.Wrapf(err, "unable to add sequence %s", sample.Construct)
		}

		err = pd.MarkSequence(sample.Construct)
		if err != nil {
			return err
		}
	}

	return nil
}

func (pd *plannerDrawer) OnPlace(sample model.Sample, _ model.Location) error {
	pd.tubes[sample.Construct]++

	return nil
}

func (pd *plannerDrawer) Finish(_ *model.Experiment) error {
	constructs := make([]string, 0, len(pd.tubes))
	for construct := range pd.tubes {
		constructs = append(constructs, construct)
	}
	sort.Strings(constructs)

	for _, construct := range constructs {
		// a tube can hold a construct no step mentions, e.g. a template dilution
		err := pd.AddConstruct(construct, "")
		if err != nil {
			return errors.Wrapf(err, "unable to add construct %s", construct)
		}

		err = pd.SetTubes(construct, pd.tubes[construct])
		if err != nil {
			return errors.Wrap(err, "unable to set tubes")
		}
	}

	err := pd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw construct graph")
	}

	return nil
}

// PlannerDrawer draws the constructs of a run once it is planned.
func PlannerDrawer(drawer Drawer) model.PlannerOption {
	return &plannerDrawer{Drawer: drawer}
}
