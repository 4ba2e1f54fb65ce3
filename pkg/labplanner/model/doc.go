// Package model provides the data structures shared by the labplanner packages.
// It defines the construction steps, the physical samples and their storage
// locations, the inventory indexes, the experiment aggregate, the lab sheets
// and the hooks a planner run notifies.
package model
