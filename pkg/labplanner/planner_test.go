package labplanner_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-labplanner/pkg/labplanner"
	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

func sampleFiles() []model.ConstructionFile {
	return []model.ConstructionFile{
		{
			Steps: []model.Step{
				pcr("F", "R", "T", "P"),
				model.Digest{Product: "D", DNA: "P", Enzymes: []model.Reagent{model.BsaI}},
				model.Ligate{Product: "L", DNAs: []string{"D"}},
				model.Transform{Product: "pX", DNA: "L", Strain: "Mach1", Antibiotics: []string{"Amp"}},
			},
			Sequences: map[string]model.Polynucleotide{"T": model.NewPolynucleotide("ACGT")},
		},
		{
			Steps:     []model.Step{pcr("R", "F2", "G", "P2")},
			Sequences: map[string]model.Polynucleotide{"T": model.NewPolynucleotide("GGGG")},
		},
	}
}

func TestPlannerRun(t *testing.T) {
	t.Parallel()

	rec := &recordingOption{}
	planner, err := labplanner.New(rec)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.news)

	exp, err := planner.Run("exp", "A", sampleFiles(), nil)
	require.NoError(t, err)

	assert.Equal(t, "exp", exp.Name)
	assert.Equal(t, "A", exp.ID)
	assert.Equal(t, []string{"F", "F2", "R"}, exp.Oligos)
	assert.Equal(t, "GGGG", exp.Sequences["T"].Sequence)
	require.NoError(t, exp.Inventory.Check())

	assert.Equal(t, []model.Operation{
		model.OperationPCR, model.OperationDigest, model.OperationLigate, model.OperationTransform, model.OperationPCR,
	}, rec.steps)

	// 6 + 1 + 1 + 4 from the first file, T gene order, then Gdil, F2, 10uM-F2, zA-P2.
	assert.Equal(t, 16, rec.stepNew)
	assert.Equal(t, 1, rec.seqNew)
	assert.Len(t, rec.placed, 17)
	assert.Same(t, exp, rec.finished)

	loc, err := exp.Inventory.Locate("pX", model.ConcMiniprep)
	require.NoError(t, err)
	assert.Equal(t, "pX-AA", loc.Label)

	_, err = exp.Inventory.Locate("nothing", model.ConcZymo)
	var missing *model.MissingLocationError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "nothing", missing.Construct)
}

func TestPlannerRunDeterministic(t *testing.T) {
	t.Parallel()

	prior := priorInventory(t, oligoSamples("F"))
	planner, err := labplanner.New()
	require.NoError(t, err)

	first, err := planner.Run("exp", "A", sampleFiles(), prior)
	require.NoError(t, err)

	second, err := planner.Run("exp", "A", sampleFiles(), prior)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPlannerRunWithPrior(t *testing.T) {
	t.Parallel()

	prior := priorInventory(t, oligoSamples("F"))
	snapshot := prior.Clone()

	planner, err := labplanner.New()
	require.NoError(t, err)

	exp, err := planner.Run("exp", "B", []model.ConstructionFile{
		{Steps: []model.Step{pcr("F", "R", "T", "P")}},
	}, prior)
	require.NoError(t, err)

	assert.Equal(t, snapshot, prior)
	require.Len(t, exp.Inventory.Boxes, 2)
	assert.Equal(t, 4, exp.Inventory.Boxes[1].Occupied())
	assert.Equal(t, prior.Locations("F"), exp.Inventory.Locations("F"))
}

func TestPlannerRunErrors(t *testing.T) {
	t.Parallel()

	broken := priorInventory(t, oligoSamples("F"))
	broken.LocToConc[model.Location{Box: "ghost"}] = model.ConcZymo

	tests := map[string]struct {
		name, id string
		cfs      []model.ConstructionFile
		prior    *model.Inventory
		opts     []model.PlannerOption
		wantErr  error
	}{
		"missing name":      {id: "A", wantErr: labplanner.ErrExperimentNameMustBeSet},
		"missing id":        {name: "exp", wantErr: labplanner.ErrExperimentIDMustBeSet},
		"inconsistent":      {name: "exp", id: "A", prior: broken, wantErr: model.ErrInconsistentInventory},
		"box name conflict": {name: "old", id: "A", prior: priorInventory(t, oligoSamples("F")), wantErr: labplanner.ErrBoxNameConflict},
		"step hook":         {name: "exp", id: "A", cfs: sampleFiles(), opts: []model.PlannerOption{&recordingOption{failOn: "step"}}, wantErr: assert.AnError},
		"place hook":        {name: "exp", id: "A", cfs: sampleFiles(), opts: []model.PlannerOption{&recordingOption{failOn: "place"}}, wantErr: assert.AnError},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			planner, err := labplanner.New(tc.opts...)
			require.NoError(t, err)

			exp, err := planner.Run(tc.name, tc.id, tc.cfs, tc.prior)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, exp)
		})
	}
}

func TestPlannerRunMalformedStep(t *testing.T) {
	t.Parallel()

	planner, err := labplanner.New()
	require.NoError(t, err)

	_, err = planner.Run("exp", "A", []model.ConstructionFile{
		{Steps: []model.Step{model.Digest{Product: "D", DNA: "P"}}},
	}, nil)

	var malformed *labplanner.MalformedStepError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, model.OperationDigest, malformed.Operation)
}

func TestPlannerLogger(t *testing.T) {
	t.Parallel()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	planner, err := labplanner.New(labplanner.PlannerLogger(logger))
	require.NoError(t, err)

	_, err = planner.Run("exp", "A", []model.ConstructionFile{
		{Steps: []model.Step{pcr("F", "R", "T", "P")}},
	}, nil)
	require.NoError(t, err)

	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "step planned", entries[0].Message)
	assert.Equal(t, 6, entries[0].Data["samples"])
	assert.Equal(t, "sequences planned", entries[1].Message)

	last := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, last.Level)
	assert.Equal(t, "experiment planned", last.Message)
	assert.Equal(t, 6, last.Data["placed"])
	assert.Equal(t, 1, last.Data["boxes"])
}

func TestPlannerRunGelOnProduct(t *testing.T) {
	t.Parallel()

	planner, err := labplanner.New()
	require.NoError(t, err)

	exp, err := planner.Run("exp", "A", []model.ConstructionFile{{Steps: []model.Step{
		pcr("F", "R", "T", "P"),
		model.Gel{Product: "P", Sample: "P", Size: 900},
	}}}, nil)
	require.NoError(t, err)
	assert.Len(t, exp.Inventory.LocationsAt("P", model.ConcZymo), 1)
}
