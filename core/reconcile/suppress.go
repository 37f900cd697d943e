package reconcile

import "strings"

// DefaultSuppressPrefixes are the designator prefixes of board features that never
// carry a part: fiducials, test points and mounting holes.
var DefaultSuppressPrefixes = []string{"FID", "TP", "MH"}

// ApplyAutoSuppression returns a copy of records with the default suppression flag
// applied: placement-only records whose designator starts with one of prefixes are
// suppressed, every other record is not. The input slice is left untouched.
func ApplyAutoSuppression(records []Record, prefixes []string) []Record {
	upper := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			upper = append(upper, p)
		}
	}

	out := make([]Record, len(records))
	for i, rec := range records {
		rec.Suppressed = rec.Status == StatusPlacementOnly && hasAnyPrefix(rec.Designator, upper)
		out[i] = rec
	}
	return out
}

// SuppressMatching suppresses every active placement-only record whose designator
// starts with pattern. Wildcards ("TP*") are stripped and matching ignores case.
// Records are modified in place; the number of newly suppressed records is returned.
// An empty pattern matches nothing.
func SuppressMatching(records []Record, pattern string) int {
	prefix := strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(pattern, "*", "")))
	if prefix == "" {
		return 0
	}

	count := 0
	for i := range records {
		rec := &records[i]
		if rec.Status != StatusPlacementOnly || rec.Suppressed {
			continue
		}
		if strings.HasPrefix(strings.ToUpper(rec.Designator), prefix) {
			rec.Suppressed = true
			count++
		}
	}
	return count
}

func hasAnyPrefix(designator string, prefixes []string) bool {
	d := strings.ToUpper(designator)
	for _, p := range prefixes {
		if strings.HasPrefix(d, p) {
			return true
		}
	}
	return false
}
