// Package labsheet compiles the bench instructions of an experiment into a
// packet of lab sheets, one or more per kind of operation.
package labsheet

import (
	"strings"

	linq "github.com/ahmetb/go-linq"
	"github.com/pkg/errors"

	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

var ErrInventoryMustBeSet = errors.New("inventory must be set")

const (
	enzymeNote = "Never let enzymes warm up! Only take the enzyme cooler out of the freezer when you " +
		"are actively using it, and only take the tubes out of it when actively dispensing."
	pcrEnzymeNote = enzymeNote + " Hold the enzyme tube by the top of the tube while dispensing " +
		"and do not place it in a rack."
	cellsNote        = "Be gentle when mixing the cells or you will kill them. Never let cells warm up! They should never leave the cold block."
	previousStepNote = "Instrument from previous step."
	pickProtocol     = "Pick 4 colonies into 4mL of 2YT + antibiotic in a 24-well block."

	pcrZymoVolume    = 10
	digestZymoVolume = 50
)

// DefaultDNAPreference is the order in which concentrations are tried when a
// sheet needs a DNA input.
var DefaultDNAPreference = []model.Concentration{
	model.ConcZymo, model.ConcMiniprep, model.ConcDil20x, model.ConcGene,
}

// Factory builds lab packets.
type Factory struct {
	dnaPreference []model.Concentration
}

// NewFactory creates a factory looking DNA inputs up in DefaultDNAPreference order.
func NewFactory() *Factory {
	return &Factory{dnaPreference: DefaultDNAPreference}
}

// Run builds the lab packet of exp.
func (f *Factory) Run(exp *model.Experiment) (model.LabPacket, error) {
	if exp == nil {
		return model.LabPacket{}, errors.New("experiment must be set")
	}

	return f.Build(exp.Name, exp.ConstructionFiles, exp.Inventory)
}

// Build groups the steps of cfs by operation, keeping their order, and emits
// the sheets of each group. Every sample a sheet names is looked up in inv; a
// missing one fails the build with a *model.MissingLocationError.
func (f *Factory) Build(name string, cfs []model.ConstructionFile, inv *model.Inventory) (model.LabPacket, error) {
	if inv == nil {
		return model.LabPacket{}, ErrInventoryMustBeSet
	}

	for i, cf := range cfs {
		for j, step := range cf.Steps {
			if step == nil {
				return model.LabPacket{}, errors.Errorf("step %d of construction file %d must be set", j, i)
			}
		}
	}

	var steps []model.Step
	linq.From(cfs).SelectManyT(func(cf model.ConstructionFile) linq.Query {
		return linq.From(cf.Steps)
	}).ToSlice(&steps)

	b := &builder{name: name, inv: inv, dnaPreference: f.dnaPreference}

	if pcrs := stepsOf[model.PCR](steps); len(pcrs) > 0 {
		b.pcr(pcrs)
		b.zymo(asSteps(pcrs), pcrZymoVolume)
		b.gel(pcrs)
	}

	if digests := stepsOf[model.Digest](steps); len(digests) > 0 {
		b.digest(digests)
		b.zymo(asSteps(digests), digestZymoVolume)
	}

	if ligates := stepsOf[model.Ligate](steps); len(ligates) > 0 {
		b.ligate(ligates)
	}

	if ggs := stepsOf[model.GoldenGate](steps); len(ggs) > 0 {
		b.goldenGate(ggs)
	}

	if gibsons := stepsOf[model.Gibson](steps); len(gibsons) > 0 {
		b.gibson(gibsons)
	}

	if transforms := stepsOf[model.Transform](steps); len(transforms) > 0 {
		b.transform(transforms)
	}

	if b.err != nil {
		return model.LabPacket{}, b.err
	}

	return model.LabPacket{Sheets: b.sheets}, nil
}

// stepsOf keeps the steps of variant S, in order.
func stepsOf[S model.Step](steps []model.Step) []S {
	var out []S

	linq.From(steps).WhereT(func(step model.Step) bool {
		_, ok := step.(S)

		return ok
	}).SelectT(func(step model.Step) S {
		return step.(S) //nolint:forcetypeassert
	}).ToSlice(&out)

	return out
}

func asSteps[S model.Step](steps []S) []model.Step {
	out := make([]model.Step, len(steps))
	for i, s := range steps {
		out[i] = s
	}

	return out
}

// builder accumulates sheets and stops at the first lookup failure.
type builder struct {
	name          string
	inv           *model.Inventory
	dnaPreference []model.Concentration
	sheets        []model.LabSheet
	err           error
}

func (b *builder) title(suffix string) string {
	return b.name + ": " + suffix
}

func (b *builder) locate(construct string, concs ...model.Concentration) model.SheetEntry {
	if b.err != nil {
		return model.SheetEntry{}
	}

	loc, err := b.inv.Locate(construct, concs...)
	if err != nil {
		b.err = errors.Wrapf(err, "unable to build sheets of %s", b.name)

		return model.SheetEntry{}
	}

	return model.SheetEntry{Location: loc, Construct: construct, Concentration: b.inv.LocToConc[loc]}
}

func (b *builder) dna(construct string) model.SheetEntry {
	return b.locate(construct, b.dnaPreference...)
}

func (b *builder) add(sheet model.LabSheet) {
	if b.err != nil {
		return
	}

	b.sheets = append(b.sheets, sheet)
}

func (b *builder) pcr(steps []model.PCR) {
	sheet := model.LabSheet{
		Title:      b.title("PCR"),
		Operation:  model.OperationPCR,
		Steps:      asSteps(steps),
		Program:    "PG3K55",
		Protocol:   "PrimeSTAR",
		Instrument: "Thermocycler 2A",
		Notes:      []string{pcrEnzymeNote},
		Recipe:     pcrRecipe(len(steps)),
	}

	for _, step := range steps {
		sheet.Sources = append(sheet.Sources,
			b.locate(step.ForwardOligo, model.ConcUM10),
			b.locate(step.ReverseOligo, model.ConcUM10),
			b.locate(step.Template, model.ConcDil20x),
		)
	}

	b.add(sheet)
}

// zymo emits the cleanup of the products of steps, eluted in volume µL.
func (b *builder) zymo(steps []model.Step, volume float64) {
	sheet := model.LabSheet{
		Title:     b.title("Zymo Cleanup"),
		Operation: model.OperationZymo,
		Notes:     []string{previousStepNote},
	}

	for _, step := range steps {
		sheet.Steps = append(sheet.Steps, model.Zymo{Product: step.Output(), Volume: volume})
		sheet.Destinations = append(sheet.Destinations, b.locate(step.Output(), model.ConcZymo))
	}

	b.add(sheet)
}

func (b *builder) gel(steps []model.PCR) {
	sheet := model.LabSheet{
		Title:     b.title("Gel"),
		Operation: model.OperationGel,
		Steps:     asSteps(steps),
		Notes:     []string{previousStepNote},
	}

	for _, step := range steps {
		entry := b.locate(step.Product, model.ConcZymo)
		entry.ProductSize = step.ProductSize
		sheet.Destinations = append(sheet.Destinations, entry)
	}

	b.add(sheet)
}

func enzymeKey(enzymes []model.Reagent) string {
	names := make([]string, len(enzymes))
	for i, e := range enzymes {
		names[i] = string(e)
	}

	return strings.Join(names, "/")
}

// digest emits one sheet per distinct enzyme list, in order of first use.
func (b *builder) digest(steps []model.Digest) {
	var keys []string
	linq.From(steps).SelectT(func(step model.Digest) string {
		return enzymeKey(step.Enzymes)
	}).Distinct().ToSlice(&keys)

	for _, key := range keys {
		var group []model.Digest
		linq.From(steps).WhereT(func(step model.Digest) bool {
			return enzymeKey(step.Enzymes) == key
		}).ToSlice(&group)

		sheet := model.LabSheet{
			Title:      b.title("Digestion"),
			Operation:  model.OperationDigest,
			Steps:      asSteps(group),
			Program:    "main/dig",
			Instrument: "Thermocycler 1A",
			Notes:      []string{enzymeNote},
			Recipe:     digestRecipe(len(group), group[0].Enzymes),
		}

		for _, step := range group {
			sheet.Sources = append(sheet.Sources, b.dna(step.DNA))
			sheet.Destinations = append(sheet.Destinations, b.locate(step.Product, model.ConcZymo))
		}

		b.add(sheet)
	}
}

func (b *builder) ligate(steps []model.Ligate) {
	sheet := model.LabSheet{
		Title:      b.title("Ligation"),
		Operation:  model.OperationLigate,
		Steps:      asSteps(steps),
		Program:    "main/LIGATE",
		Instrument: "Thermocycler 1A",
		Notes:      []string{enzymeNote},
		Recipe:     ligateRecipe(len(steps)),
	}

	for _, step := range steps {
		for _, dna := range step.DNAs {
			sheet.Sources = append(sheet.Sources, b.dna(dna))
		}

		sheet.Destinations = append(sheet.Destinations, b.locate(step.Product, model.ConcZymo))
	}

	b.add(sheet)
}

// goldenGate emits one sheet per enzyme, in order of first use.
func (b *builder) goldenGate(steps []model.GoldenGate) {
	var enzymes []model.Reagent
	linq.From(steps).SelectT(func(step model.GoldenGate) model.Reagent {
		return step.Enzyme
	}).Distinct().ToSlice(&enzymes)

	for _, enzyme := range enzymes {
		var group []model.GoldenGate
		linq.From(steps).WhereT(func(step model.GoldenGate) bool {
			return step.Enzyme == enzyme
		}).ToSlice(&group)

		sheet := model.LabSheet{
			Title:      b.title("Golden Gate Assembly"),
			Operation:  model.OperationGoldenGate,
			Steps:      asSteps(group),
			Program:    "main/GG1",
			Protocol:   "Golden Gate Assembly",
			Instrument: "Thermocycler 1A",
			Recipe:     goldenGateRecipe(len(group), enzyme),
		}

		for _, step := range group {
			for _, dna := range step.DNAs {
				sheet.Sources = append(sheet.Sources, b.dna(dna))
			}
		}

		b.add(sheet)
	}
}

func (b *builder) gibson(steps []model.Gibson) {
	sheet := model.LabSheet{
		Title:      b.title("Gibson Assembly"),
		Operation:  model.OperationGibson,
		Steps:      asSteps(steps),
		Program:    "main/GG1",
		Protocol:   "Gibson Assembly",
		Instrument: "Thermocycler 1A",
		Recipe:     gibsonRecipe(len(steps)),
	}

	for _, step := range steps {
		for _, dna := range step.DNAs {
			sheet.Sources = append(sheet.Sources, b.dna(dna))
		}
	}

	b.add(sheet)
}

// transform emits the transformation, colony picking and miniprep sheets.
func (b *builder) transform(steps []model.Transform) {
	var sources, plates, minipreps []model.SheetEntry

	for _, step := range steps {
		source := b.dna(step.DNA)
		sources = append(sources, source)

		plate := source
		plate.Strain = step.Strain
		plate.Antibiotics = step.Antibiotics
		plate.Temperature = step.Temperature
		plates = append(plates, plate)

		locs := b.inv.LocationsAt(step.Product, model.ConcMiniprep)
		if len(locs) == 0 && b.err == nil {
			b.err = errors.Wrapf(
				&model.MissingLocationError{Construct: step.Product, Concentrations: []model.Concentration{model.ConcMiniprep}},
				"unable to build sheets of %s", b.name,
			)
		}

		for _, loc := range locs {
			minipreps = append(minipreps, model.SheetEntry{
				Location:      loc,
				Construct:     step.Product,
				Concentration: model.ConcMiniprep,
				Clone:         b.inv.LocToClone[loc],
			})
		}
	}

	base := model.LabSheet{
		Steps:   asSteps(steps),
		Sources: sources,
		Notes:   []string{cellsNote},
	}

	sheet := base
	sheet.Title = b.title("Transformation")
	sheet.Operation = model.OperationTransform
	sheet.Destinations = plates
	b.add(sheet)

	sheet = base
	sheet.Title = b.title("Pick")
	sheet.Operation = model.OperationPick
	sheet.Protocol = pickProtocol
	sheet.Destinations = plates
	b.add(sheet)

	sheet = base
	sheet.Title = b.title("Miniprep")
	sheet.Operation = model.OperationMiniprep
	sheet.Destinations = minipreps
	b.add(sheet)
}
