package tags_test

import (
	"testing"

	"github.com/csg33k/f1040-filler/internal/tags"
)

func TestSupportedForms(t *testing.T) {
	got := tags.Supported()
	if len(got) != 1 || got[0] != "F1040" {
		t.Errorf("Supported: want [F1040], got %v", got)
	}

	if _, ok := tags.ForForm("F1040"); !ok {
		t.Error("ForForm(F1040): want dictionary")
	}
	if _, ok := tags.ForForm("F1040sc"); ok {
		t.Error("ForForm(F1040sc): want no dictionary")
	}
}

func TestLookupResolvesKnownFields(t *testing.T) {
	lookup := tags.Lookup("F1040")
	if lookup == nil {
		t.Fatal("Lookup(F1040): want resolver")
	}

	want := []struct {
		section string
		key     string
		tag     string
	}{
		{"name_address_ssn", "first_name_middle_initial", "f1_04[0]"},
		{"filing_status", "single_or_HOH", "c1_3[0]"},
		{"income", "L1a", "f1_32[0]"},
		{"income", "L15", "f1_60[0]"},
		{"payments", "L33", "f2_22[0]"},
		{"refund", "L35c_savings", "c2_5[1]"},
		{"sign_here", "email", "f2_38[0]"},
	}
	for _, w := range want {
		tag, ok := lookup(w.section, w.key)
		if !ok || tag != w.tag {
			t.Errorf("%s.%s: want %q, got %q ok=%v", w.section, w.key, w.tag, tag, ok)
		}
	}
}

func TestLookupStripsDirectiveSuffix(t *testing.T) {
	lookup := tags.Lookup("F1040")

	// L1z_sum is a directive key; the dictionary indexes the line itself.
	tag, ok := lookup("income", "L1z_sum")
	if !ok || tag != "f1_41[0]" {
		t.Errorf("income.L1z_sum: want f1_41[0], got %q ok=%v", tag, ok)
	}
	tag, ok = lookup("refund", "L34_subtract")
	if !ok || tag != "f2_23[0]" {
		t.Errorf("refund.L34_subtract: want f2_23[0], got %q ok=%v", tag, ok)
	}
}

func TestLookupMisses(t *testing.T) {
	lookup := tags.Lookup("F1040")

	if _, ok := lookup("income", "L99"); ok {
		t.Error("income.L99: want miss")
	}
	if _, ok := lookup("no_such_section", "L1a"); ok {
		t.Error("no_such_section.L1a: want miss")
	}
	if tags.Lookup("unknown") != nil {
		t.Error("Lookup(unknown): want nil resolver")
	}
}

func TestFieldIDsSortedAndUnique(t *testing.T) {
	ids := tags.FieldIDs("F1040")
	if len(ids) == 0 {
		t.Fatal("FieldIDs(F1040): want ids")
	}
	seen := make(map[string]struct{}, len(ids))
	for i, id := range ids {
		if i > 0 && ids[i-1] >= id {
			t.Fatalf("ids not sorted at %d: %q >= %q", i, ids[i-1], id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
	if tags.FieldIDs("unknown") != nil {
		t.Error("FieldIDs(unknown): want nil")
	}
}
