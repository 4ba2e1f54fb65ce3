// Package codec renders inventories, experiments and lab packets to the
// files a lab works from, and parses the ones that feed later runs.
package codec

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

const (
	headerName        = ">name"
	headerDescription = ">description"
	headerLocation    = ">location"
	headerSamples     = ">samples"
)

type boxRow struct {
	Well          string `csv:"Well"`
	Label         string `csv:"Label"`
	SideLabel     string `csv:"SideLabel"`
	Concentration string `csv:"Concentration"`
	Construct     string `csv:"Construct"`
	Culture       string `csv:"Culture"`
	Clone         string `csv:"Clone"`
}

// WriteBox writes box in row form: three header lines, then one tab
// separated line per occupied well in row-major order.
func WriteBox(w io.Writer, box *model.Box) error {
	_, err := fmt.Fprintf(w, "%s %s\n%s %s\n%s %s\n%s\n",
		headerName, box.Name, headerDescription, box.Description, headerLocation, box.Location, headerSamples)
	if err != nil {
		return errors.Wrapf(err, "unable to write header of box %s", box.Name)
	}

	rows := make([]boxRow, 0, box.Occupied())
	for row := range box.Samples {
		for col, sample := range box.Samples[row] {
			if sample == nil {
				continue
			}
			rows = append(rows, boxRow{
				Well:          model.WellName(row, col),
				Label:         sample.Label,
				SideLabel:     sample.SideLabel,
				Concentration: string(sample.Concentration),
				Construct:     sample.Construct,
				Culture:       string(sample.Culture),
				Clone:         sample.Clone,
			})
		}
	}

	writer := csv.NewWriter(w)
	writer.Comma = '\t'

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return errors.Wrapf(err, "unable to write samples of box %s", box.Name)
	}

	return nil
}

// ReadBox parses a box written by WriteBox.
func ReadBox(r io.Reader) (*model.Box, error) {
	br := bufio.NewReader(r)
	box := &model.Box{}

	for {
		line, err := br.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return nil, errors.Wrap(err, "box has no samples section")
		}

		line = strings.TrimRight(line, "\r\n")
		key, value, _ := strings.Cut(line, " ")

		switch key {
		case headerName:
			box.Name = value
		case headerDescription:
			box.Description = value
		case headerLocation:
			box.Location = value
		case headerSamples:
			if err := readSamples(br, box); err != nil {
				return nil, errors.Wrapf(err, "box %s", box.Name)
			}

			return box, nil
		default:
			return nil, errors.Errorf("unexpected box header %q", line)
		}
	}
}

func readSamples(r io.Reader, box *model.Box) error {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true

	var rows []boxRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil
		}

		return errors.Wrap(err, "unable to parse samples")
	}

	for _, r := range rows {
		row, col, err := model.ParseWell(r.Well)
		if err != nil {
			return err
		}

		if box.Samples[row][col] != nil {
			return errors.Errorf("well %s listed twice", r.Well)
		}

		conc, err := model.ParseConcentration(r.Concentration)
		if err != nil {
			return errors.Wrapf(err, "well %s", r.Well)
		}

		culture, err := model.ParseCulture(r.Culture)
		if err != nil {
			return errors.Wrapf(err, "well %s", r.Well)
		}

		box.Samples[row][col] = &model.Sample{
			Label:         r.Label,
			SideLabel:     r.SideLabel,
			Concentration: conc,
			Construct:     r.Construct,
			Culture:       culture,
			Clone:         r.Clone,
		}
	}

	return nil
}

// IndexBoxes builds an inventory whose indexes describe exactly the samples
// of boxes.
func IndexBoxes(boxes []model.Box) *model.Inventory {
	inv := model.NewInventory()
	inv.Boxes = append(inv.Boxes, boxes...)

	for _, box := range boxes {
		for row := range box.Samples {
			for col, sample := range box.Samples[row] {
				if sample == nil {
					continue
				}
				inv.Add(model.Location{
					Box: box.Name, Row: row, Col: col, Label: sample.Label, SideLabel: sample.SideLabel,
				}, *sample)
			}
		}
	}

	return inv
}
