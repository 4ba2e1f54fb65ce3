package planfile

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

// OperationKey is the map key naming the variant of an encoded step.
const OperationKey = "operation"

var ErrUnknownOperation = errors.New("unknown operation")

type stepDecoder func(raw map[string]interface{}) (model.Step, error)

var decoders = map[model.Operation]stepDecoder{
	model.OperationPCR:        decodeAs[model.PCR],
	model.OperationDigest:     decodeAs[model.Digest],
	model.OperationLigate:     decodeAs[model.Ligate],
	model.OperationGoldenGate: decodeAs[model.GoldenGate],
	model.OperationGibson:     decodeAs[model.Gibson],
	model.OperationTransform:  decodeAs[model.Transform],
	model.OperationPick:       decodeAs[model.Pick],
	model.OperationMiniprep:   decodeAs[model.Miniprep],
	model.OperationGel:        decodeAs[model.Gel],
	model.OperationZymo:       decodeAs[model.Zymo],
}

func decode(raw interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Wrap(err, "unable to create decoder")
	}

	return decoder.Decode(raw)
}

func decodeAs[S model.Step](raw map[string]interface{}) (model.Step, error) {
	var step S
	if err := decode(raw, &step); err != nil {
		return nil, err
	}

	return step, nil
}

// DecodeStep builds the step variant named by raw[OperationKey] from the
// other keys of raw. Unknown keys are rejected.
func DecodeStep(raw map[string]interface{}) (model.Step, error) {
	op, _ := raw[OperationKey].(string)

	decoder, ok := decoders[model.Operation(op)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownOperation, "%q", op)
	}

	fields := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		if k != OperationKey {
			fields[k] = v
		}
	}

	step, err := decoder(fields)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode %s step", op)
	}

	return step, nil
}

// EncodeStep is the inverse of DecodeStep.
func EncodeStep(step model.Step) (map[string]interface{}, error) {
	if step == nil {
		return nil, errors.New("step must be set")
	}

	raw := make(map[string]interface{})
	if err := mapstructure.Decode(step, &raw); err != nil {
		return nil, errors.Wrapf(err, "unable to encode %s step", step.Operation())
	}

	raw[OperationKey] = string(step.Operation())

	return raw, nil
}

// DecodePolynucleotide builds a polynucleotide from raw. Ends default to
// hydroxyl.
func DecodePolynucleotide(raw map[string]interface{}) (model.Polynucleotide, error) {
	poly := model.NewPolynucleotide("")
	if err := decode(raw, &poly); err != nil {
		return model.Polynucleotide{}, errors.Wrap(err, "unable to decode polynucleotide")
	}

	return poly, nil
}
