package measure

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

// Fill returns the share of a box used by slots, as a percentage with one
// decimal.
func Fill(slots int) string {
	share := decimal.NewFromInt(int64(slots)).Div(decimal.NewFromInt(model.BoxCapacity))

	return share.Shift(2).StringFixed(1) + "%"
}

// Report writes one row per operation, then one row per box, both sorted by
// name.
func Report(w io.Writer, msr Measure) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	metrics := msr.AllMetrics()
	ops := make([]model.Operation, 0, len(metrics))
	for op := range metrics {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })

	fmt.Fprintln(tw, "operation\tsteps\tsamples")
	for _, op := range ops {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", op, metrics[op].Steps(), metrics[op].Samples())
	}

	slots := msr.Slots()
	boxes := make([]string, 0, len(slots))
	for box := range slots {
		boxes = append(boxes, box)
	}
	sort.Strings(boxes)

	fmt.Fprintln(tw, "box\tslots\tfill")
	for _, box := range boxes {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", box, slots[box], Fill(slots[box]))
	}

	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "unable to write report")
	}

	return nil
}
