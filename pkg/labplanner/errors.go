package labplanner

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

var (
	ErrExperimentNameMustBeSet = errors.New("experiment name must be set")
	ErrExperimentIDMustBeSet   = errors.New("experiment id must be set")
	ErrBoxNameConflict         = errors.New("box name already used by the prior inventory")
)

// MalformedStepError is returned when a step of a construction file cannot be
// planned. File and Index locate the step; Index is -1 when the failure is not
// tied to a single step.
type MalformedStepError struct {
	File      int
	Index     int
	Operation model.Operation
	Output    string
	Reason    string
}

func (e *MalformedStepError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("construction file %d: %s", e.File, e.Reason)
	}

	return fmt.Sprintf("construction file %d, step %d (%s %s): %s", e.File, e.Index, e.Operation, e.Output, e.Reason)
}
