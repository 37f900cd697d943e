package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloat converts a spreadsheet cell to a number.
// Surrounding whitespace and a trailing "mm" unit are ignored. Empty, non-numeric
// and non-finite values (NaN, Inf) report ok=false.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 2 && strings.EqualFold(s[len(s)-2:], "mm") {
		s = strings.TrimSpace(s[:len(s)-2])
	}
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseFloatPtr is ParseFloat returning nil for values that are not numeric.
func ParseFloatPtr(s string) *float64 {
	v, ok := ParseFloat(s)
	if !ok {
		return nil
	}
	return &v
}

// FormatFloat renders an optional number without trailing zeros.
// A nil value renders as "".
func FormatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// ToBool converts a form or query value to bool.
// It accepts "1", "true", "yes" and "on" in any case; everything else is false.
func ToBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
