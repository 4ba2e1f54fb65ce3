// Package planfile reads experiment plans written in YAML.
//
// A plan names the experiment and lists its construction files:
//
//	name: exp
//	id: A
//	constructionFiles:
//	  - steps:
//	      - {operation: PCR, output: P, forwardOligo: F, reverseOligo: R, template: T, productSize: 1000}
//	    sequences:
//	      T: {sequence: ACGT}
//
// A gel may name its sample as output, as in {operation: Gel, output: P,
// sample: P}; any other step producing one of its inputs is rejected.
package planfile

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

// Plan is the raw content of a plan file.
type Plan struct {
	Name              string `yaml:"name"`
	ID                string `yaml:"id"`
	Prior             string `yaml:"prior"` // blob key of the inventory to extend
	ConstructionFiles []File `yaml:"constructionFiles"`
}

// File is a construction file before its steps are typed.
type File struct {
	Steps     []map[string]interface{}          `yaml:"steps"`
	Sequences map[string]map[string]interface{} `yaml:"sequences"`
}

// Read parses a plan.
func Read(r io.Reader) (*Plan, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read plan")
	}

	plan := &Plan{}
	if err := yaml.UnmarshalStrict(data, plan); err != nil {
		return nil, errors.Wrap(err, "unable to parse plan")
	}

	return plan, nil
}

// Load parses the plan stored at path.
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open plan %s", path)
	}
	defer f.Close()

	return Read(f)
}

// Files types the steps and sequences of every construction file.
func (p *Plan) Files() ([]model.ConstructionFile, error) {
	cfs := make([]model.ConstructionFile, 0, len(p.ConstructionFiles))

	for i, raw := range p.ConstructionFiles {
		cf := model.ConstructionFile{Steps: make([]model.Step, 0, len(raw.Steps))}

		for j, rawStep := range raw.Steps {
			step, err := DecodeStep(rawStep)
			if err != nil {
				return nil, errors.Wrapf(err, "construction file %d, step %d", i, j)
			}

			cf.Steps = append(cf.Steps, step)
		}

		if len(raw.Sequences) > 0 {
			cf.Sequences = make(map[string]model.Polynucleotide, len(raw.Sequences))
		}

		for name, rawPoly := range raw.Sequences {
			poly, err := DecodePolynucleotide(rawPoly)
			if err != nil {
				return nil, errors.Wrapf(err, "construction file %d, sequence %s", i, name)
			}

			cf.Sequences[name] = poly
		}

		cfs = append(cfs, cf)
	}

	return cfs, nil
}
