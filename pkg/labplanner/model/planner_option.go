package model

// PlannerOption defines the interface for planner options. The planner calls
// the hooks synchronously, in order, during a run.
type PlannerOption interface {
	// New initialises the planner option.
	New() error
	// OnStep runs after the samples a step needs have been derived. samples
	// only holds the ones that did not exist yet.
	OnStep(step Step, samples []Sample) error
	// OnSequences runs after the gene orders and dilutions of a construction
	// file's sequences have been derived.
	OnSequences(samples []Sample) error
	// OnPlace runs everytime a new sample is placed in a box.
	OnPlace(sample Sample, loc Location) error
	// Finish runs after the experiment is assembled.
	Finish(exp *Experiment) error
}
