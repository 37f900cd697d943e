// Package tables reads parts and placement tables exported by CAD and ERP tools.
//
// Supported inputs are comma-separated .csv, tab-separated .txt and .xlsx
// workbooks (first active sheet). Text inputs are decoded from UTF-8, UTF-16
// (with byte order mark) or Windows-1252. Workbook merged cells are filled with
// their top-left value so every covered row carries it.
//
// # Header Detection
//
// Exports often start with title blocks ("Customer", "Board rev", ...). The
// first row among the first 20 that mentions at least two header keywords
// (ref, designator, part, value, qty, ...) becomes the header; rows above it
// are discarded. Header names are trimmed and made unique: blanks become
// "Unnamed" and repeats get ".1", ".2" suffixes.
//
// # Usage
//
//	table, err := tables.ReadFile("bom.xlsx")
//	result, err := reconcile.Reconcile(table, placements, mapping, opts)
package tables
