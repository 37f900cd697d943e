package reconcile

import (
	"sort"

	"bom-merger/core/utils"
)

// ResolvePanels keeps one placement row per designator.
//
// Without a Y column the rows are returned unchanged. Otherwise the canonical row
// for a designator is the one with the smallest numeric Y; rows whose Y is missing
// or not numeric rank after every numeric one. Equal Y values fall back to the
// smallest numeric X (when xCol is set) and then to input order, so the result is
// deterministic. Surviving rows keep their original relative order.
//
// Rows with a blank designator are never collapsed.
func ResolvePanels(rows []Row, designatorCol, yCol, xCol string) []Row {
	out := make([]Row, 0, len(rows))
	if yCol == "" {
		for _, row := range rows {
			out = append(out, row.Clone())
		}
		return out
	}

	type candidate struct {
		index      int
		y, x       float64
		hasY, hasX bool
	}

	candidates := make([]candidate, len(rows))
	for i, row := range rows {
		c := candidate{index: i}
		c.y, c.hasY = utils.ParseFloat(row.Get(yCol))
		if xCol != "" {
			c.x, c.hasX = utils.ParseFloat(row.Get(xCol))
		}
		candidates[i] = c
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.hasY != b.hasY {
			return a.hasY
		}
		if a.hasY && a.y != b.y {
			return a.y < b.y
		}
		if a.hasX != b.hasX {
			return a.hasX
		}
		if a.hasX && a.x != b.x {
			return a.x < b.x
		}
		return false
	})

	keep := make([]bool, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, c := range candidates {
		key := CanonicalDesignator(rows[c.index].Get(designatorCol))
		if key == "" {
			keep[c.index] = true
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep[c.index] = true
	}

	for i, row := range rows {
		if keep[i] {
			out = append(out, row.Clone())
		}
	}
	return out
}
