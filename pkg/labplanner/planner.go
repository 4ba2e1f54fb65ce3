package labplanner

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

// Planner turns construction files into an experiment.
type Planner struct {
	opts []model.PlannerOption
}

// New creates a new planner.
func New(opts ...model.PlannerOption) (*Planner, error) {
	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply planner option")
		}
	}

	return &Planner{opts: opts}, nil
}

// Run plans experiment name with id over cfs. prior is the inventory the
// lab already holds; it may be nil and is never modified. Any failure aborts
// the run without a partial result.
func (p *Planner) Run(name, id string, cfs []model.ConstructionFile, prior *model.Inventory) (*model.Experiment, error) {
	if name == "" {
		return nil, ErrExperimentNameMustBeSet
	}

	if id == "" {
		return nil, ErrExperimentIDMustBeSet
	}

	if prior != nil {
		if err := prior.Check(); err != nil {
			return nil, errors.Wrap(err, "invalid prior inventory")
		}
	}

	if err := Validate(cfs); err != nil {
		return nil, err
	}

	if _, err := BuildConstructGraph(cfs); err != nil {
		return nil, err
	}

	samples, err := p.generate(id, cfs, prior)
	if err != nil {
		return nil, err
	}

	inv, err := allocate(name, samples, prior, p.onPlace)
	if err != nil {
		return nil, errors.Wrap(err, "unable to allocate samples")
	}

	exp := &model.Experiment{
		Name:              name,
		ID:                id,
		ConstructionFiles: cfs,
		Sequences:         model.MergeSequences(cfs),
		Oligos:            Oligos(cfs),
		Inventory:         inv,
	}

	for _, opt := range p.opts {
		if err := opt.Finish(exp); err != nil {
			return nil, errors.Wrap(err, "unable to finish planner option")
		}
	}

	return exp, nil
}

func (p *Planner) generate(id string, cfs []model.ConstructionFile, prior *model.Inventory) ([]model.Sample, error) {
	gen := NewGenerator(id, prior)

	for i, cf := range cfs {
		for j, step := range cf.Steps {
			samples, err := gen.AddStep(step)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to add step %d of construction file %d", j, i)
			}

			for _, opt := range p.opts {
				if err := opt.OnStep(step, samples); err != nil {
					return nil, errors.Wrap(err, "unable to run step hook")
				}
			}
		}

		samples := gen.AddSequences(cf.Sequences)
		for _, opt := range p.opts {
			if err := opt.OnSequences(samples); err != nil {
				return nil, errors.Wrap(err, "unable to run sequences hook")
			}
		}
	}

	return gen.Samples(), nil
}

func (p *Planner) onPlace(sample model.Sample, loc model.Location) error {
	for _, opt := range p.opts {
		if err := opt.OnPlace(sample, loc); err != nil {
			return err
		}
	}

	return nil
}

// Oligos returns the sorted names of the oligos PCR steps use.
func Oligos(cfs []model.ConstructionFile) []string {
	seen := make(map[string]struct{})

	for _, cf := range cfs {
		for _, step := range cf.Steps {
			pcr, ok := step.(model.PCR)
			if !ok {
				continue
			}

			seen[pcr.ForwardOligo] = struct{}{}
			seen[pcr.ReverseOligo] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for oligo := range seen {
		out = append(out, oligo)
	}

	sort.Strings(out)

	return out
}
