package model

import (
	"sort"

	"github.com/pkg/errors"
)

const (
	// GridSize is the number of rows and columns of a box grid.
	GridSize = 10
	// BoxSize is the side of the region of a grid the allocator fills.
	BoxSize = 9
	// BoxCapacity is the number of samples a box holds.
	BoxCapacity = BoxSize * BoxSize
)

// Grid holds the samples of a box; nil cells are empty.
type Grid [GridSize][GridSize]*Sample

// Box is a storage container with a grid of tube slots.
type Box struct {
	Name        string
	Description string
	Location    string // which freezer
	Samples     Grid
}

// Occupied returns the number of filled cells.
func (b *Box) Occupied() int {
	n := 0
	for row := range b.Samples {
		for col := range b.Samples[row] {
			if b.Samples[row][col] != nil {
				n++
			}
		}
	}

	return n
}

// LocationSet is a set of locations.
type LocationSet map[Location]struct{}

// Inventory is the set of boxes plus the indexes downstream consumers use to
// find samples. Every location in the indexes matches an occupied cell of
// exactly one box, and every occupied cell has an entry in all four indexes.
// An Inventory is treated as a value: planner runs never modify one they are
// given.
type Inventory struct {
	Boxes                []Box
	ConstructToLocations map[string]LocationSet
	LocToConc            map[Location]Concentration
	LocToClone           map[Location]string
	LocToCulture         map[Location]Culture
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{
		ConstructToLocations: make(map[string]LocationSet),
		LocToConc:            make(map[Location]Concentration),
		LocToClone:           make(map[Location]string),
		LocToCulture:         make(map[Location]Culture),
	}
}

// Clone returns a deep copy of the inventory. Samples are shared since they
// are never modified.
func (inv *Inventory) Clone() *Inventory {
	out := NewInventory()
	if inv == nil {
		return out
	}
	out.Boxes = append(make([]Box, 0, len(inv.Boxes)), inv.Boxes...)
	for construct, locs := range inv.ConstructToLocations {
		set := make(LocationSet, len(locs))
		for loc := range locs {
			set[loc] = struct{}{}
		}
		out.ConstructToLocations[construct] = set
	}
	for loc, conc := range inv.LocToConc {
		out.LocToConc[loc] = conc
	}
	for loc, clone := range inv.LocToClone {
		out.LocToClone[loc] = clone
	}
	for loc, culture := range inv.LocToCulture {
		out.LocToCulture[loc] = culture
	}

	return out
}

// Add records sample at loc in the four indexes. The caller places the
// sample in the box grid.
func (inv *Inventory) Add(loc Location, sample Sample) {
	inv.LocToConc[loc] = sample.Concentration
	inv.LocToClone[loc] = sample.Clone
	inv.LocToCulture[loc] = sample.Culture
	set, ok := inv.ConstructToLocations[sample.Construct]
	if !ok {
		set = make(LocationSet)
		inv.ConstructToLocations[sample.Construct] = set
	}
	set[loc] = struct{}{}
}

// BoxIndex returns the position of the named box in Boxes, or -1.
func (inv *Inventory) BoxIndex(name string) int {
	for i := range inv.Boxes {
		if inv.Boxes[i].Name == name {
			return i
		}
	}

	return -1
}

// Locations returns the locations holding construct, ordered by the box
// position in Boxes, then row, column, label and side label.
func (inv *Inventory) Locations(construct string) []Location {
	set := inv.ConstructToLocations[construct]
	if len(set) == 0 {
		return nil
	}
	order := make(map[string]int, len(inv.Boxes))
	for i, box := range inv.Boxes {
		order[box.Name] = i
	}
	locs := make([]Location, 0, len(set))
	for loc := range set {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool {
		a, b := locs[i], locs[j]
		if order[a.Box] != order[b.Box] {
			return order[a.Box] < order[b.Box]
		}
		if a.Box != b.Box {
			return a.Box < b.Box
		}
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		if a.Label != b.Label {
			return a.Label < b.Label
		}

		return a.SideLabel < b.SideLabel
	})

	return locs
}

// LocationsAt returns the locations of construct stored at conc.
func (inv *Inventory) LocationsAt(construct string, conc Concentration) []Location {
	var out []Location
	for _, loc := range inv.Locations(construct) {
		if inv.LocToConc[loc] == conc {
			out = append(out, loc)
		}
	}

	return out
}

// Locate returns the first location of construct stored at one of concs,
// trying the concentrations in order. It fails with a *MissingLocationError
// when none exists.
func (inv *Inventory) Locate(construct string, concs ...Concentration) (Location, error) {
	if inv != nil {
		for _, conc := range concs {
			if locs := inv.LocationsAt(construct, conc); len(locs) > 0 {
				return locs[0], nil
			}
		}
	}

	return Location{}, &MissingLocationError{Construct: construct, Concentrations: concs}
}

// Sample returns the sample stored at loc.
func (inv *Inventory) Sample(loc Location) (Sample, bool) {
	idx := inv.BoxIndex(loc.Box)
	if idx < 0 || loc.Row < 0 || loc.Row >= GridSize || loc.Col < 0 || loc.Col >= GridSize {
		return Sample{}, false
	}
	s := inv.Boxes[idx].Samples[loc.Row][loc.Col]
	if s == nil {
		return Sample{}, false
	}

	return *s, true
}

// Check verifies that the indexes and the box grids describe the same samples.
func (inv *Inventory) Check() error {
	seen := make(map[string]struct{}, len(inv.Boxes))
	cells := 0
	for i := range inv.Boxes {
		box := &inv.Boxes[i]
		if _, dup := seen[box.Name]; dup {
			return errors.Wrapf(ErrInconsistentInventory, "box %s listed twice", box.Name)
		}
		seen[box.Name] = struct{}{}
		for row := range box.Samples {
			for col, sample := range box.Samples[row] {
				if sample == nil {
					continue
				}
				cells++
				loc := Location{Box: box.Name, Row: row, Col: col, Label: sample.Label, SideLabel: sample.SideLabel}
				if err := inv.checkIndexed(loc, *sample); err != nil {
					return err
				}
			}
		}
	}
	if len(inv.LocToConc) != cells || len(inv.LocToClone) != cells || len(inv.LocToCulture) != cells {
		return errors.Wrapf(ErrInconsistentInventory, "%d occupied cells but indexes hold %d/%d/%d locations",
			cells, len(inv.LocToConc), len(inv.LocToClone), len(inv.LocToCulture))
	}
	indexed := 0
	for _, set := range inv.ConstructToLocations {
		indexed += len(set)
	}
	if indexed != cells {
		return errors.Wrapf(ErrInconsistentInventory, "%d occupied cells but %d construct locations", cells, indexed)
	}

	return nil
}

func (inv *Inventory) checkIndexed(loc Location, sample Sample) error {
	if _, ok := inv.ConstructToLocations[sample.Construct][loc]; !ok {
		return errors.Wrapf(ErrInconsistentInventory, "%s missing from locations of %s", loc, sample.Construct)
	}
	if conc, ok := inv.LocToConc[loc]; !ok || conc != sample.Concentration {
		return errors.Wrapf(ErrInconsistentInventory, "concentration of %s is not indexed", loc)
	}
	if clone, ok := inv.LocToClone[loc]; !ok || clone != sample.Clone {
		return errors.Wrapf(ErrInconsistentInventory, "clone of %s is not indexed", loc)
	}
	if culture, ok := inv.LocToCulture[loc]; !ok || culture != sample.Culture {
		return errors.Wrapf(ErrInconsistentInventory, "culture of %s is not indexed", loc)
	}

	return nil
}
