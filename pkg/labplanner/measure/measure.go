package measure

import (
	"sync"

	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

// OperationSequences is the metric of the gene orders and dilutions derived
// from construction file sequences.
const OperationSequences model.Operation = "Sequences"

type DefaultMeasure struct {
	mu    sync.Mutex
	Steps map[model.Operation]Metric
	slots map[string]int
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Steps: make(map[model.Operation]Metric),
		slots: make(map[string]int),
	}
}

// AddMetric returns the metric of op, creating it on first use.
func (m *DefaultMeasure) AddMetric(op model.Operation) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mt, ok := m.Steps[op]; ok {
		return mt
	}

	mt := &DefaultMetric{}
	m.Steps[op] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(op model.Operation) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Steps[op]
}

func (m *DefaultMeasure) AllMetrics() map[model.Operation]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[model.Operation]Metric, len(m.Steps))
	for op, mt := range m.Steps {
		out[op] = mt
	}

	return out
}

func (m *DefaultMeasure) AddSlot(box string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[box]++
}

func (m *DefaultMeasure) Slots() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]int, len(m.slots))
	for box, n := range m.slots {
		out[box] = n
	}

	return out
}

var _ Measure = (*DefaultMeasure)(nil)
