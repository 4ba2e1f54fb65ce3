package model

import "sort"

// ModHydroxyl is the default chemical group at a strand end.
const ModHydroxyl = "hydroxyl"

// Polynucleotide is a raw DNA definition, typically a gene synthesis order.
type Polynucleotide struct {
	Sequence       string `mapstructure:"sequence" json:"sequence" validate:"required"`
	Ext5           string `mapstructure:"ext5" json:"ext5,omitempty"`
	Ext3           string `mapstructure:"ext3" json:"ext3,omitempty"`
	DoubleStranded bool   `mapstructure:"doubleStranded" json:"doubleStranded"`
	Circular       bool   `mapstructure:"circular" json:"circular"`
	ModExt5        string `mapstructure:"modExt5" json:"modExt5,omitempty"`
	ModExt3        string `mapstructure:"modExt3" json:"modExt3,omitempty"`
}

// NewPolynucleotide returns a linear single-stranded sequence with hydroxyl ends.
func NewPolynucleotide(sequence string) Polynucleotide {
	return Polynucleotide{Sequence: sequence, ModExt5: ModHydroxyl, ModExt3: ModHydroxyl}
}

// ConstructionFile is an ordered list of steps together with the sequences
// that are ordered as synthesized DNA rather than produced by a step.
type ConstructionFile struct {
	Steps     []Step
	Sequences map[string]Polynucleotide
}

// SequenceNames returns the names of the file's sequences in ascending order.
func (cf ConstructionFile) SequenceNames() []string {
	names := make([]string, 0, len(cf.Sequences))
	for name := range cf.Sequences {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// MergeSequences combines the sequence maps of all files. Later files win on
// a name collision.
func MergeSequences(cfs []ConstructionFile) map[string]Polynucleotide {
	merged := make(map[string]Polynucleotide)
	for _, cf := range cfs {
		for name, poly := range cf.Sequences {
			merged[name] = poly
		}
	}

	return merged
}
