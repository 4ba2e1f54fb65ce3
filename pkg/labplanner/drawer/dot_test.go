package drawer_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-labplanner/pkg/labplanner"
	"github.com/askiada/go-labplanner/pkg/labplanner/drawer"
	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

func constructionFiles() []model.ConstructionFile {
	return []model.ConstructionFile{{
		Steps: []model.Step{
			model.PCR{Product: "P", ForwardOligo: "F", ReverseOligo: "R", Template: "T", ProductSize: 900},
			model.Digest{Product: "D", DNA: "P", Enzymes: []model.Reagent{model.BsaI}},
		},
		Sequences: map[string]model.Polynucleotide{"T": model.NewPolynucleotide("ACGT")},
	}}
}

func draw(t *testing.T) string {
	t.Helper()

	var buf bytes.Buffer

	planner, err := labplanner.New(drawer.PlannerDrawer(drawer.NewDOTWriter(&buf)))
	require.NoError(t, err)

	_, err = planner.Run("exp", "A", constructionFiles(), nil)
	require.NoError(t, err)

	return buf.String()
}

func TestPlannerDrawer(t *testing.T) {
	t.Parallel()

	got := draw(t)

	assert.True(t, strings.HasPrefix(got, "strict digraph {"))
	assert.Contains(t, got, `"F" -> "P" [ label="PCR",`)
	assert.Contains(t, got, `"R" -> "P" [ label="PCR",`)
	assert.Contains(t, got, `"T" -> "P" [ label="PCR",`)
	assert.Contains(t, got, `"P" -> "D" [ label="Digest",`)
	assert.Contains(t, got, `label=<F <BR /> <FONT POINT-SIZE="10">2 tubes</FONT>>`)
	assert.Contains(t, got, `shape="box"`)
	assert.NotContains(t, got, "xlabel")

	pcrColour, err := drawer.OperationColor(model.OperationPCR)
	require.NoError(t, err)
	assert.Contains(t, got, `fillcolor="`+pcrColour+`"`)
	assert.Contains(t, got, `tooltip="PCR"`)
}

func TestPlannerDrawerDeterministic(t *testing.T) {
	t.Parallel()

	first := draw(t)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, draw(t))
	}
}

func TestOperationColor(t *testing.T) {
	t.Parallel()

	raw, err := drawer.OperationColor("")
	require.NoError(t, err)
	assert.Equal(t, "#d3d3d3", raw)

	seen := map[string]model.Operation{}
	for _, op := range []model.Operation{
		model.OperationPCR, model.OperationDigest, model.OperationLigate, model.OperationGoldenGate,
		model.OperationGibson, model.OperationTransform, model.OperationPick, model.OperationMiniprep,
		model.OperationGel, model.OperationZymo,
	} {
		colour, err := drawer.OperationColor(op)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(colour, "#"), op)
		assert.NotContains(t, seen, colour, "%s shares a colour with %s", op, seen[colour])
		seen[colour] = op
	}
}

func TestDOTDrawerFile(t *testing.T) {
	t.Parallel()

	fileName := filepath.Join(t.TempDir(), "constructs.dot")
	d := drawer.NewDOTDrawer(fileName)

	require.NoError(t, d.AddConstruct("A", ""))
	require.NoError(t, d.AddConstruct("B", model.OperationGel))
	require.NoError(t, d.AddLink("A", "B", model.OperationGel))
	require.NoError(t, d.AddLink("A", "B", model.OperationGel))
	require.NoError(t, d.SetTubes("B", 1))
	require.Error(t, d.SetTubes("C", 1))
	require.Error(t, d.MarkSequence("C"))
	require.NoError(t, d.Draw())

	content, err := os.ReadFile(fileName)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"A" -> "B" [ label="Gel",`)
	assert.Contains(t, string(content), "1 tube</FONT>")
	assert.Equal(t, 1, strings.Count(string(content), `"A" -> "B"`))

	require.Error(t, drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "missing", "x.dot")).Draw())
}

func TestPlannerDrawerGelOnProduct(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	planner, err := labplanner.New(drawer.PlannerDrawer(drawer.NewDOTWriter(&buf)))
	require.NoError(t, err)

	_, err = planner.Run("exp", "A", []model.ConstructionFile{{Steps: []model.Step{
		model.PCR{Product: "P", ForwardOligo: "F", ReverseOligo: "R", Template: "T"},
		model.Gel{Product: "P", Sample: "P"},
	}}}, nil)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), `"P" -> "P"`)
}
