// Package measure tallies the work and the box space an experiment needs.
package measure

import "github.com/askiada/go-labplanner/pkg/labplanner/model"

// Measure collects one Metric per operation and the slots used in each box.
type Measure interface {
	AddMetric(op model.Operation) Metric
	GetMetric(op model.Operation) Metric
	AllMetrics() map[model.Operation]Metric
	AddSlot(box string)
	Slots() map[string]int
}

// Metric counts the steps of one operation and the new samples they need.
type Metric interface {
	AddStep(newSamples int)
	Steps() int
	Samples() int
}
