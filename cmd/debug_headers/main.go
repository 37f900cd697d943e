package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"bom-merger/feature/tables"
)

// Shows which row is taken as the header of a table file and the column
// names after deduplication.
//
//	go run ./cmd/debug_headers bom.xlsx
func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: debug_headers <file>")
	}

	table, err := tables.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Columns (%d):\n", len(table.Columns))
	for i, c := range table.Columns {
		note := ""
		if strings.HasPrefix(c, "Unnamed") {
			note = "  ⚠️  blank header"
		} else if strings.Contains(c, ".") {
			note = "  ⚠️  repeated header"
		}
		fmt.Printf("  %2d: %q%s\n", i, c, note)
	}

	fmt.Printf("\nData rows: %d\n", len(table.Rows))
	for i, row := range table.Rows {
		if i == 5 {
			fmt.Println("  ...")
			break
		}
		cells := make([]string, 0, len(table.Columns))
		for _, c := range table.Columns {
			cells = append(cells, row.Get(c))
		}
		fmt.Printf("  %s\n", strings.Join(cells, " | "))
	}
}
