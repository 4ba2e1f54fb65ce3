package codec

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

// textWriter keeps the first write error so that a document can be written
// line by line and checked once.
type textWriter struct {
	w   io.Writer
	err error
}

func (tw *textWriter) printf(format string, args ...interface{}) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

func (tw *textWriter) row(fields ...string) {
	tw.printf("%s\n", strings.Join(fields, "\t"))
}

// WriteMetadata writes the experiment name, its oligos and its sequences.
func WriteMetadata(w io.Writer, exp *model.Experiment) error {
	tw := &textWriter{w: w}

	tw.printf("Experiment Name: %s\n", exp.Name)
	tw.printf("Experiment ID: %s\n", exp.ID)
	tw.printf("Oligos: %s\n", strings.Join(exp.Oligos, ", "))
	tw.printf("Polynucleotides:\n")

	names := make([]string, 0, len(exp.Sequences))
	for name := range exp.Sequences {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		tw.printf("%s: %s\n", name, exp.Sequences[name].Sequence)
	}

	return errors.Wrap(tw.err, "unable to write metadata")
}

// WriteLabSheet writes sheet as text. Sources and destinations are written
// one per line, tab separated.
func WriteLabSheet(w io.Writer, sheet *model.LabSheet) error {
	tw := &textWriter{w: w}

	tw.printf("%s: %s\n", sheet.Title, sheet.Operation)

	for _, field := range []struct{ name, value string }{
		{"Program", sheet.Program},
		{"Instrument", sheet.Instrument},
		{"Protocol", sheet.Protocol},
	} {
		if field.value != "" {
			tw.printf("%s: %s\n", field.name, field.value)
		}
	}

	if len(sheet.Sources) > 0 {
		tw.printf("Sources:\n")
		for _, entry := range sheet.Sources {
			tw.row(entryFields(entry)...)
		}
	}

	if len(sheet.Destinations) > 0 {
		tw.printf("Destinations:\n")
		for _, entry := range sheet.Destinations {
			tw.row(entryFields(entry)...)
		}
	}

	if sheet.Recipe != nil {
		writeIngredients(tw, "Mastermix", sheet.Recipe.Mastermix)
		writeIngredients(tw, "Reaction", sheet.Recipe.Reaction)
	}

	if len(sheet.Notes) > 0 {
		tw.printf("Notes:\n%s\n", strings.Join(sheet.Notes, "\n"))
	}

	return errors.Wrapf(tw.err, "unable to write lab sheet %s", sheet.Title)
}

func writeIngredients(tw *textWriter, title string, ingredients []model.Ingredient) {
	if len(ingredients) == 0 {
		return
	}

	tw.printf("%s:\n", title)
	for _, ing := range ingredients {
		tw.row(string(ing.Reagent), ing.Volume.String()+"uL")
	}
}

func entryFields(entry model.SheetEntry) []string {
	loc := entry.Location
	fields := []string{loc.Box, loc.Well(), loc.Label, loc.SideLabel, entry.Construct, string(entry.Concentration)}

	if entry.Clone != "" {
		fields = append(fields, "clone "+entry.Clone)
	}
	if entry.Strain != "" {
		fields = append(fields, entry.Strain)
	}
	if len(entry.Antibiotics) > 0 {
		fields = append(fields, strings.Join(entry.Antibiotics, "+"))
	}
	if entry.Temperature > 0 {
		fields = append(fields, strconv.Itoa(entry.Temperature)+"C")
	}
	if entry.ProductSize > 0 {
		fields = append(fields, strconv.Itoa(entry.ProductSize)+"bp")
	}

	return fields
}
