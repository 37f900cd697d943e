package reconcile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Delimiter separates designators inside a single parts-table cell.
type Delimiter string

const (
	DelimiterComma     Delimiter = ","
	DelimiterSemicolon Delimiter = ";"
	DelimiterSpace     Delimiter = " "
	// DelimiterAuto splits on any run of commas, semicolons and whitespace.
	DelimiterAuto Delimiter = "auto"
)

// maxRangeSpan bounds how many designators a single range may expand to.
// Wider ranges are kept as literal tokens.
const maxRangeSpan = 100000

var (
	rangePattern   = regexp.MustCompile(`^([A-Za-z]+)(\d+)\s*-\s*([A-Za-z]*)(\d+)$`)
	autoSplitter   = regexp.MustCompile(`[;,\s]+`)
	hyphenSpacing  = regexp.MustCompile(`\s*-\s*`)
	delimiterNames = map[string]Delimiter{
		",":         DelimiterComma,
		"comma":     DelimiterComma,
		";":         DelimiterSemicolon,
		"semicolon": DelimiterSemicolon,
		" ":         DelimiterSpace,
		"space":     DelimiterSpace,
		"auto":      DelimiterAuto,
	}
)

// ParseDelimiter converts a configuration value ("comma", ";", "auto", ...) to a Delimiter.
// An empty value selects DelimiterComma.
func ParseDelimiter(s string) (Delimiter, error) {
	if s == "" {
		return DelimiterComma, nil
	}
	if d, ok := delimiterNames[s]; ok {
		return d, nil
	}
	if d, ok := delimiterNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, nil
	}
	return "", fmt.Errorf("%w: unknown delimiter %q", ErrConfiguration, s)
}

// NormalizeDesignators explodes the designator column of every row into one row per
// designator. All other columns are copied unchanged and SourceIndex records the
// position of the originating row. Rows with an empty designator cell produce nothing.
func NormalizeDesignators(rows []Row, column string, delim Delimiter) []NormalizedRow {
	out := make([]NormalizedRow, 0, len(rows))
	for i, row := range rows {
		for _, ref := range ExpandDesignators(row.Get(column), delim) {
			clone := row.Clone()
			clone[column] = ref
			out = append(out, NormalizedRow{Row: clone, SourceIndex: i})
		}
	}
	return out
}

// ExpandDesignators splits a raw designator cell and expands every range token.
// The returned designators are upper-cased. Repeats are kept.
func ExpandDesignators(cell string, delim Delimiter) []string {
	var refs []string
	for _, token := range splitTokens(cell, delim) {
		for _, ref := range expandToken(token) {
			refs = append(refs, strings.ToUpper(ref))
		}
	}
	return refs
}

func splitTokens(cell string, delim Delimiter) []string {
	var parts []string
	switch delim {
	case DelimiterAuto:
		// Keep "R1 - R3" together before whitespace becomes a separator.
		parts = autoSplitter.Split(hyphenSpacing.ReplaceAllString(cell, "-"), -1)
	case DelimiterSpace:
		parts = strings.Split(cell, string(DelimiterSpace))
	case "":
		parts = strings.Split(stripSpace(cell), string(DelimiterComma))
	default:
		parts = strings.Split(stripSpace(cell), string(delim))
	}

	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// expandToken expands "R1-R4" to R1..R4. Anything that is not a well-formed,
// same-prefix range comes back as the single original token.
func expandToken(token string) []string {
	m := rangePattern.FindStringSubmatch(token)
	if m == nil {
		return []string{token}
	}
	prefix, endPrefix := m[1], m[3]
	if endPrefix != "" && !strings.EqualFold(endPrefix, prefix) {
		return []string{token}
	}

	start, err := strconv.Atoi(m[2])
	if err != nil {
		return []string{token}
	}
	end, err := strconv.Atoi(m[4])
	if err != nil {
		return []string{token}
	}
	if start > end {
		start, end = end, start
	}
	if end-start >= maxRangeSpan {
		return []string{token}
	}

	refs := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		refs = append(refs, prefix+strconv.Itoa(i))
	}
	return refs
}

// CanonicalDesignator returns the join key for a raw designator value.
func CanonicalDesignator(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
