package codec

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

type inventoryDoc struct {
	Boxes   []boxDoc   `json:"boxes"`
	Entries []entryDoc `json:"entries"`
}

type boxDoc struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Wells       []wellDoc `json:"wells"`
}

type wellDoc struct {
	Well   string       `json:"well"`
	Sample model.Sample `json:"sample"`
}

// entryDoc is one location of the inventory indexes.
type entryDoc struct {
	Location      model.Location      `json:"location"`
	Construct     string              `json:"construct"`
	Concentration model.Concentration `json:"concentration"`
	Clone         string              `json:"clone"`
	Culture       model.Culture       `json:"culture"`
}

// WriteInventory writes inv as indented JSON. The boxes and the four indexes
// are both written so that ReadInventory restores them exactly.
func WriteInventory(w io.Writer, inv *model.Inventory) error {
	doc := inventoryDoc{
		Boxes:   make([]boxDoc, 0, len(inv.Boxes)),
		Entries: []entryDoc{},
	}

	for _, box := range inv.Boxes {
		bd := boxDoc{Name: box.Name, Description: box.Description, Location: box.Location, Wells: []wellDoc{}}
		for row := range box.Samples {
			for col, sample := range box.Samples[row] {
				if sample != nil {
					bd.Wells = append(bd.Wells, wellDoc{Well: model.WellName(row, col), Sample: *sample})
				}
			}
		}
		doc.Boxes = append(doc.Boxes, bd)
	}

	constructs := make([]string, 0, len(inv.ConstructToLocations))
	for construct := range inv.ConstructToLocations {
		constructs = append(constructs, construct)
	}
	sort.Strings(constructs)

	for _, construct := range constructs {
		for _, loc := range inv.Locations(construct) {
			doc.Entries = append(doc.Entries, entryDoc{
				Location:      loc,
				Construct:     construct,
				Concentration: inv.LocToConc[loc],
				Clone:         inv.LocToClone[loc],
				Culture:       inv.LocToCulture[loc],
			})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")

	return errors.Wrap(enc.Encode(doc), "unable to encode inventory")
}

// ReadInventory parses an inventory written by WriteInventory and checks that
// its indexes agree with its boxes.
func ReadInventory(r io.Reader) (*model.Inventory, error) {
	var doc inventoryDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "unable to decode inventory")
	}

	inv := model.NewInventory()

	for _, bd := range doc.Boxes {
		box := model.Box{Name: bd.Name, Description: bd.Description, Location: bd.Location}

		for _, wd := range bd.Wells {
			row, col, err := model.ParseWell(wd.Well)
			if err != nil {
				return nil, errors.Wrapf(err, "box %s", bd.Name)
			}
			sample := wd.Sample
			box.Samples[row][col] = &sample
		}

		inv.Boxes = append(inv.Boxes, box)
	}

	for _, e := range doc.Entries {
		inv.Add(e.Location, model.Sample{
			Construct:     e.Construct,
			Concentration: e.Concentration,
			Clone:         e.Clone,
			Culture:       e.Culture,
		})
	}

	if err := inv.Check(); err != nil {
		return nil, err
	}

	return inv, nil
}
