package labplanner

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

// NumMinipreps is the number of clones picked from every transformation.
const NumMinipreps = 4

// Generator derives the samples a run needs. It accumulates every sample it
// emits so later steps, and later construction files, see them as existing.
type Generator struct {
	experimentID string
	prior        *model.Inventory
	samples      []model.Sample
}

// NewGenerator creates a generator for experimentID. prior may be nil.
func NewGenerator(experimentID string, prior *model.Inventory) *Generator {
	return &Generator{
		experimentID: experimentID,
		prior:        prior,
	}
}

// Samples returns the samples emitted so far, in emission order.
func (g *Generator) Samples() []model.Sample {
	return append([]model.Sample(nil), g.samples...)
}

// AddStep derives the missing samples step needs, records them and returns
// them. Steps that do not produce inventory return nothing.
func (g *Generator) AddStep(step model.Step) ([]model.Sample, error) {
	var out []model.Sample

	switch s := step.(type) {
	case model.PCR:
		out = g.pcr(s)
	case model.Digest:
		out = g.product(s.Product, "d")
	case model.Ligate:
		out = g.product(s.Product, "l")
	case model.Transform:
		out = g.transform(s)
	case model.GoldenGate, model.Gibson, model.Pick, model.Miniprep, model.Gel, model.Zymo:
	case nil:
		return nil, errors.New("step must be set")
	default:
		return nil, errors.Errorf("unsupported step %T", step)
	}

	g.samples = append(g.samples, out...)

	return out, nil
}

// AddSequences derives the gene order and its 20x dilution for every named
// sequence, in ascending name order.
func (g *Generator) AddSequences(sequences map[string]model.Polynucleotide) []model.Sample {
	var out []model.Sample

	for _, name := range (model.ConstructionFile{Sequences: sequences}).SequenceNames() {
		if !g.exists(name, model.ConcGene, out) {
			out = append(out, model.Sample{
				Label:         name,
				SideLabel:     name,
				Concentration: model.ConcGene,
				Construct:     name,
			})
		}

		if !g.exists(name, model.ConcDil20x, out) {
			out = append(out, dilution(name))
		}
	}

	g.samples = append(g.samples, out...)

	return out
}

// AddConstructionFile runs every step of cf, then its sequences.
func (g *Generator) AddConstructionFile(cf model.ConstructionFile) ([]model.Sample, error) {
	var out []model.Sample

	for i, step := range cf.Steps {
		samples, err := g.AddStep(step)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to add step %d", i)
		}

		out = append(out, samples...)
	}

	return append(out, g.AddSequences(cf.Sequences)...), nil
}

// GenerateSamples returns the new samples a run over cfs needs.
func GenerateSamples(experimentID string, cfs []model.ConstructionFile, prior *model.Inventory) ([]model.Sample, error) {
	g := NewGenerator(experimentID, prior)

	for i, cf := range cfs {
		if _, err := g.AddConstructionFile(cf); err != nil {
			return nil, errors.Wrapf(err, "unable to generate samples of construction file %d", i)
		}
	}

	return g.Samples(), nil
}

// exists checks the samples pending for the current step before the run
// accumulator and the prior inventory.
func (g *Generator) exists(construct string, conc model.Concentration, pending []model.Sample) bool {
	return Exists(construct, conc, pending, nil) || Exists(construct, conc, g.samples, g.prior)
}

func (g *Generator) pcr(step model.PCR) []model.Sample {
	var out []model.Sample

	if !g.exists(step.Template, model.ConcDil20x, out) {
		out = append(out, dilution(step.Template))
	}

	for _, oligo := range []string{step.ForwardOligo, step.ReverseOligo} {
		if !g.exists(oligo, model.ConcUM100, out) {
			out = append(out, model.Sample{
				Label:         oligo,
				Concentration: model.ConcUM100,
				Construct:     oligo,
			})
		}

		if !g.exists(oligo, model.ConcUM10, out) {
			out = append(out, model.Sample{
				Label:         "10uM-" + oligo,
				SideLabel:     "10uM-" + oligo,
				Concentration: model.ConcUM10,
				Construct:     oligo,
			})
		}
	}

	return append(out, g.product(step.Product, "z")...)
}

// product derives the purified output of a reaction, labelled with prefix
// and the experiment id.
func (g *Generator) product(construct, prefix string) []model.Sample {
	if g.exists(construct, model.ConcZymo, nil) {
		return nil
	}

	label := prefix + g.experimentID

	return []model.Sample{{
		Label:         label,
		SideLabel:     label + "-" + construct,
		Concentration: model.ConcZymo,
		Construct:     construct,
	}}
}

func (g *Generator) transform(step model.Transform) []model.Sample {
	var out []model.Sample

	for i := 0; i < NumMinipreps; i++ {
		clone := g.experimentID + string(rune('A'+i))
		if g.cloneGenerated(step.Product, clone) ||
			ExistsWithCloneCulture(step.Product, model.ConcMiniprep, model.CulturePrimary, clone, g.prior) {
			continue
		}

		label := step.Product + "-" + clone
		out = append(out, model.Sample{
			Label:         label,
			SideLabel:     label,
			Concentration: model.ConcMiniprep,
			Construct:     step.Product,
			Culture:       model.CulturePrimary,
			Clone:         clone,
		})
	}

	return out
}

func (g *Generator) cloneGenerated(construct, clone string) bool {
	for _, s := range g.samples {
		if s.Construct == construct && s.Concentration == model.ConcMiniprep &&
			s.Culture == model.CulturePrimary && s.Clone == clone {
			return true
		}
	}

	return false
}

func dilution(construct string) model.Sample {
	return model.Sample{
		Label:         construct + "dil",
		SideLabel:     construct + "dil",
		Concentration: model.ConcDil20x,
		Construct:     construct,
	}
}
