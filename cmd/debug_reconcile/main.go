package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"bom-merger/core/config"
	"bom-merger/core/reconcile"
	"bom-merger/feature/tables"
)

// Prints how every designator cell of a parts table expands, and which
// placement rows survive panel resolution.
//
//	go run ./cmd/debug_reconcile parts.csv [placement.csv]
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: debug_reconcile <parts> [placement]")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}
	m := cfg.Mapping.Mapping()
	opts, err := cfg.Mapping.Options()
	if err != nil {
		log.Fatal(err)
	}

	parts, err := tables.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== Parts: designator expansion ===")
	fmt.Printf("Columns: %s\n", strings.Join(parts.Columns, " | "))
	if !parts.HasColumn(m.PartsDesignator) {
		log.Fatalf("parts table has no %q column", m.PartsDesignator)
	}

	total := 0
	for i, row := range parts.Rows {
		cell := row.Get(m.PartsDesignator)
		expanded := reconcile.ExpandDesignators(cell, opts.Delimiter)
		total += len(expanded)

		marker := ""
		for _, d := range expanded {
			if strings.Contains(d, "-") {
				marker = "  ⚠️  literal range kept"
			}
		}
		fmt.Printf("row %3d: %q -> %d %v%s\n", i, cell, len(expanded), expanded, marker)
	}
	fmt.Printf("\nTotal designators: %d from %d rows\n", total, len(parts.Rows))

	if len(os.Args) < 3 {
		return
	}

	placements, err := tables.ReadFile(os.Args[2])
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("\n=== Placement: panel resolution ===")
	resolved := reconcile.ResolvePanels(placements.Rows, m.PlacementDesignator, m.Y, m.X)
	fmt.Printf("Rows: %d -> %d after keeping the lowest-Y instance\n", len(placements.Rows), len(resolved))

	for _, row := range resolved {
		layer := reconcile.ClassifyLayer(row.Get(m.Layer))
		fmt.Printf("%-8s X=%-10s Y=%-10s %s (%q)\n",
			reconcile.CanonicalDesignator(row.Get(m.PlacementDesignator)),
			row.Get(m.X), row.Get(m.Y), layer, row.Get(m.Layer))
	}
}
