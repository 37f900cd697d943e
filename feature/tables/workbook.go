package tables

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	merged, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, err
	}
	for _, mc := range merged {
		if rows, err = fillMerged(rows, mc.GetStartAxis(), mc.GetEndAxis(), mc.GetCellValue()); err != nil {
			return nil, err
		}
	}

	return rows, nil
}

// fillMerged writes value into every cell of the start:end range, growing
// rows as needed since GetRows trims trailing empty cells.
func fillMerged(rows [][]string, start, end, value string) ([][]string, error) {
	c1, r1, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return nil, fmt.Errorf("invalid merge range %s:%s: %w", start, end, err)
	}
	c2, r2, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return nil, fmt.Errorf("invalid merge range %s:%s: %w", start, end, err)
	}

	for len(rows) < r2 {
		rows = append(rows, nil)
	}
	for r := r1; r <= r2; r++ {
		for len(rows[r-1]) < c2 {
			rows[r-1] = append(rows[r-1], "")
		}
		for c := c1; c <= c2; c++ {
			rows[r-1][c-1] = value
		}
	}
	return rows, nil
}
