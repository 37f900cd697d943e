// Package reconciliation exposes BOM/placement reconciliation over HTTP.
//
// A run is created from an uploaded parts table and placement file (or from
// objects already in the bucket), reconciled with a mapping profile and
// stored with its records. Reviewers then suppress non-actionable
// placement-only records, add remarks and, once no placement errors remain,
// export the production workbook to reports/<run-id>.xlsx.
//
// # Routes
//
//   - POST /reconcile: create a run
//   - GET /runs, GET /runs/:id, DELETE /runs/:id
//   - PATCH /runs/:id/records/:designator: toggle suppression or set a remark
//   - POST /runs/:id/suppress: bulk suppression by designator prefix
//   - GET /runs/:id/bom: aggregated BOM (?layer=top|bottom, ?format=csv)
//   - POST /runs/:id/export, GET /runs/:id/report: production workbook
//
// Column mapping errors are reported as 400, missing runs as 404 and export
// attempts with unresolved placement errors as 409.
package reconciliation
