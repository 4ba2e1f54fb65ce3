package codec

import (
	"io"

	"github.com/Jeffail/gabs"
	"github.com/pkg/errors"

	"github.com/askiada/go-labplanner/pkg/labplanner/model"
	"github.com/askiada/go-labplanner/pkg/labplanner/planfile"
)

// Keys of the experiment document.
const (
	keyName              = "name"
	keyID                = "id"
	keyOligos            = "oligos"
	keySequences         = "sequences"
	keyConstructionFiles = "constructionFiles"
	keySteps             = "steps"
)

// ExperimentDocument describes exp as a JSON container. Steps are encoded
// the way plan files write them. The inventory is left out, it has its own
// file.
func ExperimentDocument(exp *model.Experiment) (*gabs.Container, error) {
	doc := gabs.New()

	oligos := exp.Oligos
	if oligos == nil {
		oligos = []string{}
	}

	sequences := exp.Sequences
	if sequences == nil {
		sequences = map[string]model.Polynucleotide{}
	}

	for key, value := range map[string]interface{}{
		keyName:      exp.Name,
		keyID:        exp.ID,
		keyOligos:    oligos,
		keySequences: sequences,
	} {
		if _, err := doc.Set(value, key); err != nil {
			return nil, errors.Wrapf(err, "unable to set %s", key)
		}
	}

	if _, err := doc.Array(keyConstructionFiles); err != nil {
		return nil, errors.Wrapf(err, "unable to set %s", keyConstructionFiles)
	}

	for i, cf := range exp.ConstructionFiles {
		steps := make([]interface{}, 0, len(cf.Steps))
		for j, step := range cf.Steps {
			raw, err := planfile.EncodeStep(step)
			if err != nil {
				return nil, errors.Wrapf(err, "construction file %d, step %d", i, j)
			}
			steps = append(steps, raw)
		}

		file := map[string]interface{}{keySteps: steps}
		if len(cf.Sequences) > 0 {
			file[keySequences] = cf.Sequences
		}

		if err := doc.ArrayAppend(file, keyConstructionFiles); err != nil {
			return nil, errors.Wrapf(err, "unable to append construction file %d", i)
		}
	}

	return doc, nil
}

// WriteExperiment writes the experiment document as indented JSON.
func WriteExperiment(w io.Writer, exp *model.Experiment) error {
	doc, err := ExperimentDocument(exp)
	if err != nil {
		return err
	}

	_, err = w.Write(append(doc.BytesIndent("", "    "), '\n'))

	return errors.Wrap(err, "unable to write experiment")
}

// ReadExperiment parses an experiment written by WriteExperiment. The
// returned experiment has no inventory.
func ReadExperiment(r io.Reader) (*model.Experiment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read experiment")
	}

	doc, err := gabs.ParseJSON(data)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse experiment")
	}

	exp := &model.Experiment{}
	exp.Name, _ = doc.Path(keyName).Data().(string)
	exp.ID, _ = doc.Path(keyID).Data().(string)

	if exp.Name == "" {
		return nil, errors.New("experiment has no name")
	}

	oligos, _ := doc.Path(keyOligos).Children()
	for _, oligo := range oligos {
		name, ok := oligo.Data().(string)
		if !ok {
			return nil, errors.Errorf("oligo %v is not a string", oligo.Data())
		}
		exp.Oligos = append(exp.Oligos, name)
	}

	exp.Sequences, err = readSequences(doc.Path(keySequences))
	if err != nil {
		return nil, err
	}

	files, _ := doc.Path(keyConstructionFiles).Children()
	for i, file := range files {
		cf := model.ConstructionFile{}

		steps, _ := file.Path(keySteps).Children()
		for j, step := range steps {
			raw, ok := step.Data().(map[string]interface{})
			if !ok {
				return nil, errors.Errorf("construction file %d, step %d is not an object", i, j)
			}

			decoded, err := planfile.DecodeStep(raw)
			if err != nil {
				return nil, errors.Wrapf(err, "construction file %d, step %d", i, j)
			}
			cf.Steps = append(cf.Steps, decoded)
		}

		if file.Exists(keySequences) {
			cf.Sequences, err = readSequences(file.Path(keySequences))
			if err != nil {
				return nil, errors.Wrapf(err, "construction file %d", i)
			}
		}

		exp.ConstructionFiles = append(exp.ConstructionFiles, cf)
	}

	return exp, nil
}

func readSequences(container *gabs.Container) (map[string]model.Polynucleotide, error) {
	out := make(map[string]model.Polynucleotide)

	children, err := container.ChildrenMap()
	if err != nil {
		return out, nil //nolint:nilerr // an absent or empty object holds no sequence
	}

	for name, child := range children {
		raw, ok := child.Data().(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("sequence %s is not an object", name)
		}

		poly, err := planfile.DecodePolynucleotide(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "sequence %s", name)
		}
		out[name] = poly
	}

	return out, nil
}
