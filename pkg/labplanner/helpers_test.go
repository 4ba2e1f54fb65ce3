package labplanner_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-labplanner/pkg/labplanner"
	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

func pcr(fwd, rev, template, product string) model.PCR {
	return model.PCR{ForwardOligo: fwd, ReverseOligo: rev, Template: template, Product: product}
}

func oligoSamples(name string) []model.Sample {
	return []model.Sample{
		{Label: name, Concentration: model.ConcUM100, Construct: name},
		{Label: "10uM-" + name, SideLabel: "10uM-" + name, Concentration: model.ConcUM10, Construct: name},
	}
}

func fillerSamples(n int) []model.Sample {
	out := make([]model.Sample, n)
	for i := range out {
		name := "s" + strconv.Itoa(i)
		out[i] = model.Sample{Label: name, Concentration: model.ConcGene, Construct: name}
	}

	return out
}

func priorInventory(t *testing.T, samples []model.Sample) *model.Inventory {
	t.Helper()

	inv, err := labplanner.Allocate("old", samples, nil)
	require.NoError(t, err)

	return inv
}

func countSamples(samples []model.Sample, construct string, conc model.Concentration) int {
	n := 0
	for _, s := range samples {
		if s.Construct == construct && s.Concentration == conc {
			n++
		}
	}

	return n
}

type recordingOption struct {
	news     int
	steps    []model.Operation
	stepNew  int
	seqNew   int
	placed   []model.Location
	finished *model.Experiment
	failOn   string
}

func (r *recordingOption) New() error {
	r.news++

	return nil
}

func (r *recordingOption) OnStep(step model.Step, samples []model.Sample) error {
	if r.failOn == "step" {
		return assert.AnError
	}

	r.steps = append(r.steps, step.Operation())
	r.stepNew += len(samples)

	return nil
}

func (r *recordingOption) OnSequences(samples []model.Sample) error {
	r.seqNew += len(samples)

	return nil
}

func (r *recordingOption) OnPlace(_ model.Sample, loc model.Location) error {
	if r.failOn == "place" {
		return assert.AnError
	}

	r.placed = append(r.placed, loc)

	return nil
}

func (r *recordingOption) Finish(exp *model.Experiment) error {
	r.finished = exp

	return nil
}
