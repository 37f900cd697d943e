// Package report renders reconciled records into production documents.
//
// Build lays out the six sheets handed to the assembly house:
//
//   - Internal BOM: every part line, aggregated by part identity
//   - XY Data: every placement
//   - XY Data Top / XY Data Bottom: placements with their part per side
//   - Top BOM / Bottom BOM: part lines aggregated per side
//
// Suppressed records never appear. Placement sheets are sorted by designator
// and BOM sheets follow the order of the original parts list. Records with an
// unknown side are assembled from the top.
//
// WriteXLSX writes the sheets as a workbook with a bold grey header row and
// fitted column widths. WriteCSV writes a single aggregated BOM.
package report
