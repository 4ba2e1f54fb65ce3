// Package labplanner plans molecular biology experiments.
//
// A run walks the construction files of an experiment, derives the physical
// samples each step needs but that neither the run nor a prior inventory
// already holds, and places them in new storage boxes. Hooks implementing
// model.PlannerOption observe every derived sample and every placement.
//
// Basic usage:
//
//	planner, err := labplanner.New(labplanner.PlannerLogger(logger))
//	if err != nil {
//		return err
//	}
//	exp, err := planner.Run("exp", "A", cfs, prior)
package labplanner
