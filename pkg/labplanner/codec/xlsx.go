package codec

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

const maxSheetName = 31

var sheetNameReplacer = strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_")

// SheetName returns the worksheet name of the box at position i.
func SheetName(i int, box string) string {
	name := []rune(strconv.Itoa(i) + "_" + sheetNameReplacer.Replace(box))
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}

	return string(name)
}

// BoxMap returns a workbook with one worksheet per box. Each worksheet is a
// map of the fillable region of the grid: row letters down the first column,
// column numbers across the first row and the label of every sample in its
// well.
func BoxMap(boxes []model.Box) (*excelize.File, error) {
	f := excelize.NewFile()
	defaultSheet := f.GetSheetList()[0]

	for i := range boxes {
		box := &boxes[i]
		sheet := SheetName(i, box.Name)

		if _, err := f.NewSheet(sheet); err != nil {
			return nil, errors.Wrapf(err, "unable to add sheet for box %s", box.Name)
		}

		if err := writeBoxMap(f, sheet, box); err != nil {
			return nil, errors.Wrapf(err, "unable to fill sheet for box %s", box.Name)
		}
	}

	if len(boxes) > 0 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, errors.Wrap(err, "unable to delete default sheet")
		}
	}

	return f, nil
}

func writeBoxMap(f *excelize.File, sheet string, box *model.Box) error {
	if err := f.SetCellValue(sheet, "A1", box.Name); err != nil {
		return err
	}

	for i := 0; i < model.BoxSize; i++ {
		colHeader, err := excelize.CoordinatesToCellName(i+2, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, colHeader, i+1); err != nil {
			return err
		}

		rowHeader, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, rowHeader, string(rune('A'+i))); err != nil {
			return err
		}
	}

	for row := 0; row < model.BoxSize; row++ {
		for col := 0; col < model.BoxSize; col++ {
			sample := box.Samples[row][col]
			if sample == nil {
				continue
			}

			cell, err := excelize.CoordinatesToCellName(col+2, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, sample.Label); err != nil {
				return err
			}
		}
	}

	return nil
}

// WriteBoxMap writes the workbook built by BoxMap.
func WriteBoxMap(w io.Writer, boxes []model.Box) error {
	f, err := BoxMap(boxes)
	if err != nil {
		return err
	}
	defer f.Close()

	return errors.Wrap(f.Write(w), "unable to write box map")
}
