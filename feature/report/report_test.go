package report

import (
	"bytes"
	"strings"
	"testing"

	"bom-merger/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func ptr(v float64) *float64 { return &v }

func reportRecords() []reconcile.Record {
	return []reconcile.Record{
		{Designator: "R2", Status: reconcile.StatusMatched, LayerRaw: "Top", Layer: reconcile.LayerTop,
			X: ptr(10), Y: ptr(5.5), Rotation: ptr(90), PartNumber: "RES-10K", Description: "Resistor", Value: "10k", SourceOrder: 0},
		{Designator: "R10", Status: reconcile.StatusMatched, LayerRaw: "Bot", Layer: reconcile.LayerBottom,
			X: ptr(1), Y: ptr(2), Rotation: ptr(0), PartNumber: "RES-10K", Description: "Resistor", Value: "10k", SourceOrder: 0},
		{Designator: "C1", Status: reconcile.StatusMatched, LayerRaw: "Top", Layer: reconcile.LayerTop,
			X: ptr(3), Y: ptr(4), PartNumber: "CAP", Description: "Cap", Manufacturer: "Murata", SourceOrder: 1},
		{Designator: "U1", Status: reconcile.StatusPartsOnly, PartNumber: "MCU", Description: "Micro", SourceOrder: 2},
		{Designator: "TP1", Status: reconcile.StatusPlacementOnly, LayerRaw: "Top", Layer: reconcile.LayerTop,
			X: ptr(0), Y: ptr(0), Suppressed: true, SourceOrder: reconcile.NoSourceOrder},
	}
}

func sheetByName(t *testing.T, sheets []Sheet, name string) Sheet {
	t.Helper()
	for _, s := range sheets {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("sheet %q not found", name)
	return Sheet{}
}

func TestBuild(t *testing.T) {
	sheets := Build(reportRecords())
	require.Len(t, sheets, 6)

	names := make([]string, 0, len(sheets))
	for _, s := range sheets {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{SheetInternalBOM, SheetXYData, SheetXYTop, SheetXYBottom, SheetTopBOM, SheetBottomBOM}, names)

	internal := sheetByName(t, sheets, SheetInternalBOM)
	assert.Equal(t, [][]string{
		{"RES-10K", "Resistor", "10k", "", "R10, R2", "2"},
		{"CAP", "Cap", "", "Murata", "C1", "1"},
		{"MCU", "Micro", "", "", "U1", "1"},
	}, internal.Rows)

	xy := sheetByName(t, sheets, SheetXYData)
	assert.Equal(t, [][]string{
		{"C1", "Top", "4", "3", ""},
		{"R10", "Bot", "2", "1", "0"},
		{"R2", "Top", "5.5", "10", "90"},
	}, xy.Rows)

	top := sheetByName(t, sheets, SheetXYTop)
	assert.Equal(t, [][]string{
		{"CAP", "C1", "3", "4", "", "Cap", "Top"},
		{"RES-10K", "R2", "10", "5.5", "90", "Resistor", "Top"},
	}, top.Rows)

	bottom := sheetByName(t, sheets, SheetXYBottom)
	require.Len(t, bottom.Rows, 1)
	assert.Equal(t, "R10", bottom.Rows[0][1])

	topBOM := sheetByName(t, sheets, SheetTopBOM)
	assert.Equal(t, [][]string{
		{"RES-10K", "Resistor", "R2", "1"},
		{"CAP", "Cap", "C1", "1"},
	}, topBOM.Rows)

	bottomBOM := sheetByName(t, sheets, SheetBottomBOM)
	assert.Equal(t, [][]string{{"RES-10K", "Resistor", "R10", "1"}}, bottomBOM.Rows)
}

func TestBuild_Empty(t *testing.T) {
	sheets := Build(nil)
	require.Len(t, sheets, 6)
	for _, s := range sheets {
		assert.NotEmpty(t, s.Headers, s.Name)
		assert.Empty(t, s.Rows, s.Name)
	}
}

// TestRenderXLSX tests the workbook layout by reading it back.
func TestRenderXLSX(t *testing.T) {
	data, err := RenderXLSX(reportRecords())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetInternalBOM, SheetXYData, SheetXYTop, SheetXYBottom, SheetTopBOM, SheetBottomBOM}, f.GetSheetList())

	rows, err := f.GetRows(SheetInternalBOM)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, internalBOMHeaders, rows[0])
	assert.Equal(t, "R10, R2", rows[1][4])

	styleID, err := f.GetCellStyle(SheetXYData, "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)

	// "Description" is wider than any value in column B.
	width, err := f.GetColWidth(SheetInternalBOM, "B")
	require.NoError(t, err)
	assert.Equal(t, float64(len("Description")+widthPadding), width)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	lines := reconcile.Aggregate(reportRecords())
	require.NoError(t, WriteCSV(&buf, lines))

	out := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, out, 4)
	assert.Equal(t, "Part Number,Description,Value,Manufacturer,Location,Qty", out[0])
	assert.Equal(t, `RES-10K,Resistor,10k,,"R10, R2",2`, out[1])
}
