package sheet

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseCoordinate converts a cell value to a finite float64.
// Numeric kinds are taken as-is, strings are trimmed and parsed. Missing, blank,
// non-numeric and non-finite values report false.
func ParseCoordinate(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, ok := parseDecimal(string(n))
		if !ok {
			return 0, false
		}
		f = parsed
	case string:
		parsed, ok := parseDecimal(n)
		if !ok {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseDecimal parses a trimmed decimal or exponent number. Go-only syntax
// (hex floats, digit separators) is not a spreadsheet number and is refused.
func parseDecimal(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
