package tables

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"bom-merger/core/reconcile"
)

// Format identifies an input file type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTXT  Format = "txt"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat is returned for file extensions that cannot be read.
var ErrUnsupportedFormat = errors.New("tables: unsupported file format")

const (
	headerScanRows   = 20
	headerMinMatches = 2
	unnamedColumn    = "Unnamed"
)

var headerKeywords = []string{
	"ref", "reference", "designator", "part", "component",
	"value", "qty", "quantity", "description", "footprint",
}

// FormatFromName returns the format implied by a file name's extension.
func FormatFromName(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".txt":
		return FormatTXT, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// ReadFile reads the table stored at path.
func ReadFile(path string) (reconcile.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return reconcile.Table{}, err
	}
	defer f.Close()
	return Read(f, filepath.Base(path))
}

// Read parses r as the format implied by name.
func Read(r io.Reader, name string) (reconcile.Table, error) {
	format, err := FormatFromName(name)
	if err != nil {
		return reconcile.Table{}, err
	}

	var raw [][]string
	switch format {
	case FormatCSV:
		raw, err = readDelimited(r, ',')
	case FormatTXT:
		raw, err = readDelimited(r, '\t')
	case FormatXLSX:
		raw, err = readWorkbook(r)
	}
	if err != nil {
		return reconcile.Table{}, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return BuildTable(raw), nil
}

// BuildTable promotes the detected header row of raw and converts the rows
// below it into a Table. Fully blank rows are dropped; cells beyond the
// header width are ignored and missing cells read as "".
func BuildTable(raw [][]string) reconcile.Table {
	raw = dropBlankRows(raw)
	if len(raw) == 0 {
		return reconcile.Table{}
	}

	idx := DetectHeader(raw)
	if idx < 0 {
		idx = 0
	}
	columns := DedupHeaders(raw[idx])

	rows := make([]reconcile.Row, 0, len(raw)-idx-1)
	for _, cells := range raw[idx+1:] {
		row := make(reconcile.Row, len(columns))
		for i, col := range columns {
			if i < len(cells) {
				row[col] = strings.TrimSpace(cells[i])
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return reconcile.Table{Columns: columns, Rows: rows}
}

// DetectHeader returns the index of the first row within the scan window that
// contains at least two header keywords, or -1.
func DetectHeader(raw [][]string) int {
	for i, cells := range raw {
		if i >= headerScanRows {
			break
		}
		joined := strings.ToLower(strings.Join(cells, " "))
		matches := 0
		for _, kw := range headerKeywords {
			if strings.Contains(joined, kw) {
				matches++
			}
		}
		if matches >= headerMinMatches {
			return i
		}
	}
	return -1
}

// DedupHeaders trims header names and makes them unique.
func DedupHeaders(header []string) []string {
	seen := make(map[string]int, len(header))
	out := make([]string, 0, len(header))
	for _, name := range header {
		name = strings.TrimSpace(name)
		if name == "" || strings.EqualFold(name, "nan") {
			name = unnamedColumn
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			out = append(out, name+"."+strconv.Itoa(n+1))
			continue
		}
		seen[name] = 0
		out = append(out, name)
	}
	return out
}

func dropBlankRows(raw [][]string) [][]string {
	out := raw[:0:0]
	for _, cells := range raw {
		for _, c := range cells {
			if strings.TrimSpace(c) != "" {
				out = append(out, cells)
				break
			}
		}
	}
	return out
}
