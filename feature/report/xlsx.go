package report

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"bom-merger/core/reconcile"

	"github.com/xuri/excelize/v2"
)

const (
	headerFill   = "#D3D3D3"
	widthPadding = 2
	maxWidth     = 80
)

// WriteXLSX writes sheets as a workbook to w.
func WriteXLSX(w io.Writer, sheets []Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Border: []excelize.Border{
			{Type: "left", Style: 1, Color: "000000"},
			{Type: "right", Style: 1, Color: "000000"},
			{Type: "top", Style: 1, Color: "000000"},
			{Type: "bottom", Style: 1, Color: "000000"},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return err
		}
		if err := writeSheet(f, sheet, headerStyle); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", sheet.Name, err)
		}
	}
	f.SetActiveSheet(0)

	_, err = f.WriteTo(w)
	return err
}

// RenderXLSX builds and writes the production workbook for records.
func RenderXLSX(records []reconcile.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, Build(records)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle int) error {
	header := make([]any, len(sheet.Headers))
	widths := make([]int, len(sheet.Headers))
	for i, h := range sheet.Headers {
		header[i] = h
		widths[i] = utf8.RuneCountInString(h)
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return err
	}

	for r, cells := range sheet.Rows {
		row := make([]any, len(cells))
		for i, c := range cells {
			row[i] = c
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(c))
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
			return err
		}
	}

	if len(sheet.Headers) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(sheet.Headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.Name, col, col, float64(min(w+widthPadding, maxWidth))); err != nil {
			return err
		}
	}
	return nil
}
