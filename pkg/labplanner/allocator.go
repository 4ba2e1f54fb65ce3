package labplanner

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

const (
	boxStorage         = "minus20"
	boxDescriptionHead = "materials for "
)

// BoxName returns the name of the index-th box of an experiment.
func BoxName(experimentName string, index int) string {
	return experimentName + "Box" + strconv.Itoa(index)
}

// cursor walks the 9x9 region of consecutive box grids row by row.
type cursor struct {
	box, row, col int
}

func (c *cursor) advance() {
	c.col++
	if c.col < model.BoxSize {
		return
	}

	c.col = 0
	c.row++

	if c.row == model.BoxSize {
		c.row = 0
		c.box++
	}
}

// Allocator places new samples in fresh boxes appended to a copy of a prior
// inventory. onPlace, when set, is called after every placement.
type Allocator struct {
	experimentName string
	inv            *model.Inventory
	grids          []*model.Grid
	cur            cursor
	onPlace        func(model.Sample, model.Location) error
}

// NewAllocator starts an allocation for experimentName. prior is copied and
// never modified; it may be nil.
func NewAllocator(experimentName string, prior *model.Inventory) (*Allocator, error) {
	a := &Allocator{
		experimentName: experimentName,
		inv:            prior.Clone(),
	}

	// The first grid is reserved even when no sample is placed.
	if err := a.openGrid(); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Allocator) openGrid() error {
	name := BoxName(a.experimentName, len(a.grids))
	if a.inv.BoxIndex(name) >= 0 {
		return errors.Wrapf(ErrBoxNameConflict, "box %s", name)
	}

	a.grids = append(a.grids, &model.Grid{})

	return nil
}

// Place stores sample at the cursor and records it in the four indexes.
func (a *Allocator) Place(sample model.Sample) (model.Location, error) {
	if a.cur.box == len(a.grids) {
		if err := a.openGrid(); err != nil {
			return model.Location{}, err
		}
	}

	s := sample
	a.grids[a.cur.box][a.cur.row][a.cur.col] = &s

	loc := model.Location{
		Box:       BoxName(a.experimentName, a.cur.box),
		Row:       a.cur.row,
		Col:       a.cur.col,
		Label:     sample.Label,
		SideLabel: sample.SideLabel,
	}
	a.inv.Add(loc, sample)
	a.cur.advance()

	if a.onPlace != nil {
		if err := a.onPlace(sample, loc); err != nil {
			return model.Location{}, errors.Wrapf(err, "unable to run place hook for %s", loc)
		}
	}

	return loc, nil
}

// Inventory wraps the grids into boxes, after the prior ones, and returns
// the result. The allocator must not be used afterwards.
func (a *Allocator) Inventory() *model.Inventory {
	for i, grid := range a.grids {
		a.inv.Boxes = append(a.inv.Boxes, model.Box{
			Name:        BoxName(a.experimentName, i),
			Description: boxDescriptionHead + a.experimentName,
			Location:    boxStorage,
			Samples:     *grid,
		})
	}

	a.grids = nil

	return a.inv
}

// Allocate places samples in order in new boxes named after experimentName
// and returns the extended inventory.
func Allocate(experimentName string, samples []model.Sample, prior *model.Inventory) (*model.Inventory, error) {
	return allocate(experimentName, samples, prior, nil)
}

func allocate(
	experimentName string,
	samples []model.Sample,
	prior *model.Inventory,
	onPlace func(model.Sample, model.Location) error,
) (*model.Inventory, error) {
	a, err := NewAllocator(experimentName, prior)
	if err != nil {
		return nil, err
	}

	a.onPlace = onPlace

	for i, sample := range samples {
		if _, err := a.Place(sample); err != nil {
			return nil, errors.Wrapf(err, "unable to place sample %d (%s)", i, sample.Label)
		}
	}

	return a.Inventory(), nil
}
