package report

import (
	"sort"
	"strconv"

	"bom-merger/core/reconcile"
	"bom-merger/core/utils"
)

// Sheet names in workbook order.
const (
	SheetInternalBOM = "Internal BOM"
	SheetXYData      = "XY Data"
	SheetXYTop       = "XY Data Top"
	SheetXYBottom    = "XY Data Bottom"
	SheetTopBOM      = "Top BOM"
	SheetBottomBOM   = "Bottom BOM"
)

var (
	internalBOMHeaders = []string{"Part Number", "Description", "Value", "Manufacturer", "Location", "Qty"}
	xyHeaders          = []string{"Designator", "Layer", "Mid Y", "Mid X", "Rotation"}
	xyMergedHeaders    = []string{"Part Number", "Designator", "Mid X", "Mid Y", "Rotation", "Description", "Layer"}
	layerBOMHeaders    = []string{"Part Number", "Description", "Location", "Qty"}
)

// Sheet is a rendered table: a header row and string cells.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Build lays out the six production sheets for records.
func Build(records []reconcile.Record) []Sheet {
	p := reconcile.PartitionByLayer(records)

	return []Sheet{
		{Name: SheetInternalBOM, Headers: internalBOMHeaders, Rows: internalBOMRows(reconcile.Aggregate(p.Parts))},
		{Name: SheetXYData, Headers: xyHeaders, Rows: xyRows(p.Placements)},
		{Name: SheetXYTop, Headers: xyMergedHeaders, Rows: xyMergedRows(p.Top)},
		{Name: SheetXYBottom, Headers: xyMergedHeaders, Rows: xyMergedRows(p.Bottom)},
		{Name: SheetTopBOM, Headers: layerBOMHeaders, Rows: layerBOMRows(reconcile.Aggregate(p.Top))},
		{Name: SheetBottomBOM, Headers: layerBOMHeaders, Rows: layerBOMRows(reconcile.Aggregate(p.Bottom))},
	}
}

func internalBOMRows(lines []reconcile.Line) [][]string {
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{l.PartNumber, l.Description, l.Value, l.Manufacturer, l.Location, strconv.Itoa(l.Quantity)})
	}
	return rows
}

func layerBOMRows(lines []reconcile.Line) [][]string {
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{l.PartNumber, l.Description, l.Location, strconv.Itoa(l.Quantity)})
	}
	return rows
}

func xyRows(records []reconcile.Record) [][]string {
	sorted := byDesignator(records)
	rows := make([][]string, 0, len(sorted))
	for _, r := range sorted {
		rows = append(rows, []string{
			r.Designator, r.LayerRaw, utils.FormatFloat(r.Y), utils.FormatFloat(r.X), utils.FormatFloat(r.Rotation),
		})
	}
	return rows
}

func xyMergedRows(records []reconcile.Record) [][]string {
	sorted := byDesignator(records)
	rows := make([][]string, 0, len(sorted))
	for _, r := range sorted {
		rows = append(rows, []string{
			r.PartNumber, r.Designator, utils.FormatFloat(r.X), utils.FormatFloat(r.Y),
			utils.FormatFloat(r.Rotation), r.Description, r.LayerRaw,
		})
	}
	return rows
}

func byDesignator(records []reconcile.Record) []reconcile.Record {
	out := make([]reconcile.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Designator < out[j].Designator
	})
	return out
}
