package engine_test

import (
	"encoding/json"
	"testing"

	"github.com/csg33k/f1040-filler/internal/engine"
)

func TestNumeric(t *testing.T) {
	want := []struct {
		name  string
		in    any
		value float64
		ok    bool
	}{
		{"nil", nil, 0, false},
		{"float", 6135.16, 6135.16, true},
		{"int", 42, 42, true},
		{"json number", json.Number("14600"), 14600, true},
		{"json decimal", json.Number("69.31"), 69.31, true},
		{"bool true", true, 1, true},
		{"bool false", false, 0, true},
		{"plain string", "123.45", 123.45, true},
		{"thousands separators", "1,234,567.89", 1234567.89, true},
		{"internal spaces", "1 234", 1234, true},
		{"padded string", "  42 ", 42, true},
		{"scientific notation", "1.5e3", 1500, true},
		{"negative string", "-250", -250, true},
		{"empty string", "", 0, false},
		{"separators only", " , ", 0, false},
		{"words", "not a number", 0, false},
		{"negative marker", "-0-", 0, false},
		{"checkbox state", "/1", 0, false},
		{"list", []any{1.0}, 0, false},
	}
	for _, w := range want {
		value, ok := engine.Numeric(w.in)
		if value != w.value || ok != w.ok {
			t.Errorf("%s: want (%v, %v), got (%v, %v)", w.name, w.value, w.ok, value, ok)
		}
	}
}
