package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NormalizeMinutes turns whatever the client sent for requiredMinutes into a
// non-negative whole number. Anything that is not a finite positive number
// becomes 0; fractions are truncated.
func NormalizeMinutes(v any) int {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case float32:
		f = float64(x)
	case float64:
		f = x
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, ok := parseNumber(x)
		if !ok {
			return 0
		}
		f = parsed
	case bool:
		if x {
			return 1
		}
		return 0
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// parseAvailableMinutes returns the filter bound and whether filtering applies
// at all. Only a number greater than zero enables the filter.
func parseAvailableMinutes(raw string) (float64, bool) {
	f, ok := parseNumber(raw)
	if !ok || f <= 0 || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
