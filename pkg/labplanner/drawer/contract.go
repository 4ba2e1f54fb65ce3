// Package drawer draws the construct graph of an experiment.
package drawer

import "github.com/askiada/go-labplanner/pkg/labplanner/model"

// Drawer is an interface that defines the methods for drawing a construct graph.
type Drawer interface {
	// AddConstruct adds a construct. op is the operation producing it, empty
	// when no step does.
	AddConstruct(name string, op model.Operation) error
	// AddLink adds a link from a step input to the construct the step produces.
	AddLink(input, output string, op model.Operation) error
	// MarkSequence flags a construct ordered as synthesized DNA.
	MarkSequence(name string) error
	// SetTubes annotates a construct with the number of new tubes holding it.
	SetTubes(name string, tubes int) error
	// Draw writes the graph.
	Draw() error
}
