// Package reconcile provides the reconciliation engine that matches a parts list
// (BOM) against a placement list (XY / pick-and-place data) by reference designator.
//
// The engine is a pure, synchronous, in-memory transformation. It performs no I/O
// and no logging: the same two tables and mapping always produce the same record set.
//
// # Architecture
//
// The engine consists of six stages, leaves first:
//
// 1. Normalizer: explodes compact designator cells ("R1-R3, C5") into one row per
//    designator. Malformed ranges pass through as literal tokens.
//
// 2. Panel resolver: collapses repeated placement rows (panelized boards) to the
//    instance with the lowest Y coordinate.
//
// 3. Layer classifier: maps free-text side labels to Top, Bottom or Unknown.
//
// 4. Merger: full outer join on the canonical designator. Every designator from
//    either side ends up in exactly one Record with status MATCHED, PLACEMENT_ONLY
//    or PARTS_ONLY.
//
// 5. Auto-suppression: placement-only fiducials, test points and mounting holes
//    are suppressed by default. Reviewers may flip the flag afterwards.
//
// 6. Aggregator: groups records by (part number, description) into production
//    BOM lines with recomputed quantities, ordered by first appearance in the parts list.
//
// # Errors
//
// Only configuration problems are errors. A missing designator mapping, or a mapped
// designator column that does not exist in its table, returns a *ConfigError that
// matches ErrConfiguration. Messy data never fails: bad ranges become literal
// designators and non-numeric coordinates become nil.
//
// # Usage Example
//
//	mapping := reconcile.Mapping{
//	    PartsDesignator:     "Ref Des",
//	    PlacementDesignator: "Designator",
//	    PartNumber:          "Part Number",
//	    Layer:               "Layer",
//	    X:                   "Mid X",
//	    Y:                   "Mid Y",
//	}
//
//	result, err := reconcile.Reconcile(parts, placements, mapping, reconcile.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//
//	lines := reconcile.Aggregate(result.Records)
package reconcile
