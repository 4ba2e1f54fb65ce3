package model

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrInconsistentInventory is returned when the indexes of an inventory do
// not match its box contents.
var ErrInconsistentInventory = errors.New("inconsistent inventory")

// MissingLocationError is returned when an inventory holds no sample of
// Construct at any of Concentrations.
type MissingLocationError struct {
	Construct      string
	Concentrations []Concentration
}

func (e *MissingLocationError) Error() string {
	concs := make([]string, len(e.Concentrations))
	for i, c := range e.Concentrations {
		concs[i] = string(c)
	}

	return fmt.Sprintf("missing location for %s at %s", e.Construct, strings.Join(concs, "|"))
}
