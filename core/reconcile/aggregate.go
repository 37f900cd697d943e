package reconcile

import (
	"sort"
	"strings"
)

// LocationSeparator joins designators in a Line's Location.
const LocationSeparator = ", "

type lineKey struct {
	partNumber  string
	description string
}

// Aggregate groups MATCHED and PARTS_ONLY records into production BOM lines keyed by
// (part number, description). Suppressed and placement-only records are skipped.
//
// Quantity is recomputed as the number of grouped designators; the source quantity
// column is never trusted. Lines are ordered by their first appearance in the parts
// list, with records lacking a source order last. The result depends only on the
// input, so aggregating the same records twice yields identical lines.
func Aggregate(records []Record) []Line {
	members := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.HasParts() && !rec.Suppressed {
			members = append(members, rec)
		}
	}
	// Walk members in parts-list order so each line takes its descriptive
	// columns from its earliest member that has them.
	sort.SliceStable(members, func(i, j int) bool {
		return earlierOrder(members[i].SourceOrder, members[j].SourceOrder)
	})

	groups := make(map[lineKey]*Line)
	var keys []lineKey

	for _, rec := range members {
		key := lineKey{partNumber: rec.PartNumber, description: rec.Description}
		line, ok := groups[key]
		if !ok {
			line = &Line{
				PartNumber:  rec.PartNumber,
				Description: rec.Description,
				SourceOrder: rec.SourceOrder,
			}
			groups[key] = line
			keys = append(keys, key)
		}
		if line.Value == "" {
			line.Value = rec.Value
		}
		if line.Footprint == "" {
			line.Footprint = rec.Footprint
		}
		if line.Manufacturer == "" {
			line.Manufacturer = rec.Manufacturer
		}
		line.Designators = append(line.Designators, rec.Designator)
	}

	lines := make([]Line, 0, len(keys))
	for _, key := range keys {
		line := groups[key]
		sort.Strings(line.Designators)
		line.Location = strings.Join(line.Designators, LocationSeparator)
		line.Quantity = len(line.Designators)
		lines = append(lines, *line)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.SourceOrder != b.SourceOrder {
			return earlierOrder(a.SourceOrder, b.SourceOrder)
		}
		if a.PartNumber != b.PartNumber {
			return a.PartNumber < b.PartNumber
		}
		return a.Description < b.Description
	})

	return lines
}

// earlierOrder reports whether source order a sorts before b. NoSourceOrder is last.
func earlierOrder(a, b int) bool {
	if a == NoSourceOrder {
		return false
	}
	if b == NoSourceOrder {
		return true
	}
	return a < b
}
