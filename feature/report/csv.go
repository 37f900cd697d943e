package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"bom-merger/core/reconcile"
)

// WriteCSV writes aggregated lines with the Internal BOM columns.
func WriteCSV(w io.Writer, lines []reconcile.Line) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(internalBOMHeaders); err != nil {
		return err
	}
	for _, l := range lines {
		if err := cw.Write([]string{l.PartNumber, l.Description, l.Value, l.Manufacturer, l.Location, strconv.Itoa(l.Quantity)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
