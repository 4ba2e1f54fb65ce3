package measure

import "sync"

type DefaultMetric struct {
	mu      sync.Mutex
	steps   int
	samples int
}

func (mt *DefaultMetric) AddStep(newSamples int) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.steps++
	mt.samples += newSamples
}

func (mt *DefaultMetric) Steps() int {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.steps
}

func (mt *DefaultMetric) Samples() int {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.samples
}

var _ Metric = (*DefaultMetric)(nil)
