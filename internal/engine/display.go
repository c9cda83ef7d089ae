package engine

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NegativeMarker is how the paper form shows a negative amount floored to
// zero.
const NegativeMarker = "-0-"

// FormatAmount renders a computed amount the way it appears on the form:
// whole amounts without a decimal point, fractional amounts in their
// shortest decimal form.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DisplayString renders a model value for PDF output. Numeric values go
// through FormatAmount; strings that spell a whole amount with trailing
// zero decimals ("100.0", "100.00") are trimmed; anything else passes
// through unchanged, including the "-0-" marker.
func DisplayString(v any) string {
	switch t := v.(type) {
	case string:
		return trimWholeDecimals(t)
	case float64:
		return FormatAmount(t)
	case json.Number:
		if n, ok := Numeric(t); ok {
			return FormatAmount(n)
		}
		return t.String()
	default:
		if n, ok := Numeric(v); ok {
			return FormatAmount(n)
		}
		return fmt.Sprint(v)
	}
}

func trimWholeDecimals(s string) string {
	if !strings.HasSuffix(s, ".0") && !strings.HasSuffix(s, ".00") {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return strconv.FormatInt(int64(f), 10)
}
