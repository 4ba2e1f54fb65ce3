package model

// Experiment is the result of one planning run.
type Experiment struct {
	Name              string
	ID                string
	ConstructionFiles []ConstructionFile
	Sequences         map[string]Polynucleotide
	Oligos            []string
	Inventory         *Inventory
}
