package labplanner

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

var validate = validator.New()

// Validate checks every step and sequence of cfs. The first failure is
// returned as a *MalformedStepError.
func Validate(cfs []model.ConstructionFile) error {
	for i, cf := range cfs {
		for j, step := range cf.Steps {
			if step == nil {
				return &MalformedStepError{File: i, Index: j, Reason: "step must be set"}
			}

			if err := validate.Struct(step); err != nil {
				return &MalformedStepError{
					File:      i,
					Index:     j,
					Operation: step.Operation(),
					Output:    step.Output(),
					Reason:    reason(err),
				}
			}
		}

		for _, name := range cf.SequenceNames() {
			if name == "" {
				return &MalformedStepError{File: i, Index: -1, Reason: "sequence name must be set"}
			}

			if err := validate.Struct(cf.Sequences[name]); err != nil {
				return &MalformedStepError{File: i, Index: -1, Reason: "sequence " + name + ": " + reason(err)}
			}
		}
	}

	return nil
}

func reason(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))

			continue
		}

		msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
	}

	return strings.Join(msgs, ", ")
}
