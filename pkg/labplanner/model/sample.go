package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// Concentration is the categorical stage of the DNA held in a tube.
type Concentration string

const (
	ConcMiniprep Concentration = "miniprep" // plasmid miniprep
	ConcZymo     Concentration = "zymo"     // purified DNA product
	ConcUM100    Concentration = "uM100"    // oligo stock
	ConcUM10     Concentration = "uM10"     // oligo working dilution for PCR
	ConcUM266    Concentration = "uM266"    // oligo for sequencing
	ConcDil20x   Concentration = "dil20x"   // diluted plasmid or other DNA
	ConcGene     Concentration = "gene"     // gene synthesis order
)

var concentrations = map[Concentration]struct{}{
	ConcMiniprep: {}, ConcZymo: {}, ConcUM100: {}, ConcUM10: {}, ConcUM266: {}, ConcDil20x: {}, ConcGene: {},
}

// ParseConcentration returns the Concentration named s.
func ParseConcentration(s string) (Concentration, error) {
	c := Concentration(s)
	if _, ok := concentrations[c]; !ok {
		return "", errors.Errorf("unknown concentration %q", s)
	}

	return c, nil
}

// Culture is the number of isolation rounds of a miniprep. The zero value
// means not applicable.
type Culture string

const (
	NoCulture        Culture = ""
	CultureLibrary   Culture = "library"
	CulturePrimary   Culture = "primary"
	CultureSecondary Culture = "secondary"
	CultureTertiary  Culture = "tertiary"
)

// ParseCulture returns the Culture named s; an empty string is NoCulture.
func ParseCulture(s string) (Culture, error) {
	switch c := Culture(s); c {
	case NoCulture, CultureLibrary, CulturePrimary, CultureSecondary, CultureTertiary:
		return c, nil
	default:
		return "", errors.Errorf("unknown culture %q", s)
	}
}

// Sample is a physical tube.
type Sample struct {
	Label         string        `json:"label"`     // written on the top of the tube
	SideLabel     string        `json:"sidelabel"` // written on the side of the tube
	Concentration Concentration `json:"concentration"`
	Construct     string        `json:"construct"`
	Culture       Culture       `json:"culture,omitempty"`
	Clone         string        `json:"clone,omitempty"`
}

// Location is a grid cell of a box together with the labels visible there.
// Two locations are equal only when all five fields are.
type Location struct {
	Box       string `json:"box"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Label     string `json:"label"`
	SideLabel string `json:"sidelabel"`
}

// Well returns the A1-style coordinate of the location.
func (l Location) Well() string {
	return WellName(l.Row, l.Col)
}

func (l Location) String() string {
	return fmt.Sprintf("%s/%s %s", l.Box, l.Well(), l.Label)
}

// WellName renders a 0-indexed row and column as a letter and a 1-based number.
func WellName(row, col int) string {
	return fmt.Sprintf("%c%d", 'A'+rune(row), col+1)
}

// ParseWell is the inverse of WellName.
func ParseWell(well string) (row, col int, err error) {
	var letter rune
	_, err = fmt.Sscanf(well, "%c%d", &letter, &col)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid well %q", well)
	}
	row = int(letter - 'A')
	col--
	if row < 0 || row >= GridSize || col < 0 || col >= GridSize {
		return 0, 0, errors.Errorf("well %q outside of the box grid", well)
	}

	return row, col, nil
}
