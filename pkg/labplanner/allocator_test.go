package labplanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-labplanner/pkg/labplanner"
	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

func TestAllocateScenarioA(t *testing.T) {
	t.Parallel()

	samples, err := labplanner.GenerateSamples("A", []model.ConstructionFile{
		{Steps: []model.Step{pcr("F", "R", "T", "P")}},
	}, nil)
	require.NoError(t, err)
	require.Len(t, samples, 6)

	inv, err := labplanner.Allocate("exp", samples, nil)
	require.NoError(t, err)
	require.Len(t, inv.Boxes, 1)

	box := inv.Boxes[0]
	assert.Equal(t, "expBox0", box.Name)
	assert.Equal(t, "materials for exp", box.Description)
	assert.Equal(t, "minus20", box.Location)
	assert.Equal(t, 6, box.Occupied())

	for col, sample := range samples {
		require.NotNil(t, box.Samples[0][col])
		assert.Equal(t, sample, *box.Samples[0][col])

		loc := model.Location{Box: "expBox0", Row: 0, Col: col, Label: sample.Label, SideLabel: sample.SideLabel}
		assert.Contains(t, inv.ConstructToLocations[sample.Construct], loc)
		assert.Equal(t, sample.Concentration, inv.LocToConc[loc])
		assert.Equal(t, sample.Clone, inv.LocToClone[loc])
		assert.Equal(t, sample.Culture, inv.LocToCulture[loc])
	}

	require.NoError(t, inv.Check())
}

func TestAllocateRollover(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		samples   int
		wantBoxes int
	}{
		"empty":          {samples: 0, wantBoxes: 1},
		"one":            {samples: 1, wantBoxes: 1},
		"exactly full":   {samples: model.BoxCapacity, wantBoxes: 1},
		"one over":       {samples: model.BoxCapacity + 1, wantBoxes: 2},
		"two full boxes": {samples: 2 * model.BoxCapacity, wantBoxes: 2},
		"third box":      {samples: 2*model.BoxCapacity + 5, wantBoxes: 3},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			inv, err := labplanner.Allocate("exp", fillerSamples(tc.samples), nil)
			require.NoError(t, err)
			require.Len(t, inv.Boxes, tc.wantBoxes)
			require.NoError(t, inv.Check())

			for i, box := range inv.Boxes {
				assert.Equal(t, labplanner.BoxName("exp", i), box.Name)

				if i < len(inv.Boxes)-1 {
					assert.Equal(t, model.BoxCapacity, box.Occupied())
				}

				for k := 0; k < model.GridSize; k++ {
					assert.Nil(t, box.Samples[model.BoxSize][k], "row 9 of %s", box.Name)
					assert.Nil(t, box.Samples[k][model.BoxSize], "column 9 of %s", box.Name)
				}
			}
		})
	}
}

func TestAllocateScenarioD(t *testing.T) {
	t.Parallel()

	samples := fillerSamples(82)
	inv, err := labplanner.Allocate("exp", samples, nil)
	require.NoError(t, err)
	require.Len(t, inv.Boxes, 2)

	last := samples[81]
	require.NotNil(t, inv.Boxes[1].Samples[0][0])
	assert.Equal(t, last, *inv.Boxes[1].Samples[0][0])
	assert.Equal(t, 1, inv.Boxes[1].Occupied())

	locs := inv.Locations(last.Construct)
	require.Len(t, locs, 1)
	assert.Equal(t, model.Location{Box: "expBox1", Row: 0, Col: 0, Label: last.Label}, locs[0])

	require.NotNil(t, inv.Boxes[0].Samples[8][8])
	assert.Equal(t, samples[80], *inv.Boxes[0].Samples[8][8])
}

func TestAllocateKeepsPriorUntouched(t *testing.T) {
	t.Parallel()

	prior := priorInventory(t, oligoSamples("F"))
	snapshot := prior.Clone()

	inv, err := labplanner.Allocate("exp", oligoSamples("R"), prior)
	require.NoError(t, err)

	assert.Equal(t, snapshot, prior)
	require.Len(t, inv.Boxes, 2)
	assert.Equal(t, "oldBox0", inv.Boxes[0].Name)
	assert.Equal(t, "expBox0", inv.Boxes[1].Name)
	assert.Equal(t, prior.Locations("F"), inv.Locations("F"))
	assert.Len(t, inv.Locations("R"), 2)
	require.NoError(t, inv.Check())
}

func TestAllocateBoxNameConflict(t *testing.T) {
	t.Parallel()

	prior := priorInventory(t, oligoSamples("F"))

	_, err := labplanner.Allocate("old", oligoSamples("R"), prior)
	require.ErrorIs(t, err, labplanner.ErrBoxNameConflict)
}

func TestAllocateDeterministic(t *testing.T) {
	t.Parallel()

	samples := fillerSamples(100)

	first, err := labplanner.Allocate("exp", samples, nil)
	require.NoError(t, err)

	second, err := labplanner.Allocate("exp", samples, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAllocatorPlace(t *testing.T) {
	t.Parallel()

	alloc, err := labplanner.NewAllocator("exp", nil)
	require.NoError(t, err)

	for i, want := range []struct{ row, col int }{{0, 0}, {0, 1}} {
		loc, err := alloc.Place(fillerSamples(2)[i])
		require.NoError(t, err)
		assert.Equal(t, want.row, loc.Row)
		assert.Equal(t, want.col, loc.Col)
		assert.Equal(t, "A"+string(rune('1'+i)), loc.Well())
	}

	inv := alloc.Inventory()
	require.Len(t, inv.Boxes, 1)
	assert.Equal(t, 2, inv.Boxes[0].Occupied())
}
