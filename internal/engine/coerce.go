// Package engine walks a validated form configuration tree in document
// order, resolving sum and subtract directives, deferred W-2 aggregates,
// and literal field values into a field sink.
//
// The walk is single pass. A directive's references resolve against the
// tree as it stands when the directive is reached, so lines may reference
// any earlier calculation and document order is part of the contract.
package engine

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Numeric reports whether v carries a usable numeric value and returns it
// as a float64. Strings are cleaned of thousands separators and spaces
// before parsing, so "1,234.50" and "1 234" both coerce. Booleans count
// as 1 and 0. nil, empty strings and everything else are non-numeric.
func Numeric(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		s := strings.ReplaceAll(t, ",", "")
		s = strings.ReplaceAll(s, " ", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
