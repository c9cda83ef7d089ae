package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/csg33k/f1040-filler/internal/domain"
)

func TestComputeTotalsAlwaysIncludesBoxesOneAndTwo(t *testing.T) {
	got := domain.ComputeTotals(nil)

	want := domain.Totals{"total_box_1": 0, "total_box_2": 0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("totals for empty list (-want +got):\n%s", diff)
	}
}

func TestComputeTotalsSumsAcrossEmployers(t *testing.T) {
	entries := []domain.W2Entry{
		entry("Acme", 5534.16, 300),
		entry("Initech", 500, 150),
		entry("Globex", 200, 50),
	}

	got := domain.ComputeTotals(entries)

	if got["total_box_1"] != 6234.16 {
		t.Errorf("total_box_1: want 6234.16, got %v", got["total_box_1"])
	}
	if got["total_box_2"] != 500.0 {
		t.Errorf("total_box_2: want 500, got %v", got["total_box_2"])
	}
}

func TestComputeTotalsIncludesOptionalBoxWhenAnyEntryDefinesIt(t *testing.T) {
	first := entry("Acme", 1000, 100)
	first.Box3 = f64(900)
	second := entry("Initech", 2000, 200) // leaves box 3 undefined

	got := domain.ComputeTotals([]domain.W2Entry{first, second})

	v, ok := got["total_box_3"]
	if !ok {
		t.Fatal("total_box_3: want present when one entry defines box 3")
	}
	// The undefined entry counts as zero.
	if v != 900.0 {
		t.Errorf("total_box_3: want 900, got %v", v)
	}
	if _, ok := got["total_box_5"]; ok {
		t.Error("total_box_5: want absent when no entry defines box 5")
	}
}

func TestComputeTotalsSkipsCommentEntries(t *testing.T) {
	note := domain.W2Entry{Comment: "second employer pending corrected W-2"}
	wage := entry("Acme", 4000, 400)

	got := domain.ComputeTotals([]domain.W2Entry{note, wage})

	if got["total_box_1"] != 4000.0 {
		t.Errorf("total_box_1: want 4000, got %v", got["total_box_1"])
	}
}

func TestStandardDeduction(t *testing.T) {
	want := []struct {
		name              string
		singleOrHOH       string
		marriedJointly    string
		marriedSeparately string
		amount            float64
		ok                bool
	}{
		{"single", "/1", "/Off", "/Off", 14600, true},
		{"married filing separately", "/Off", "/Off", "/1", 14600, true},
		{"married filing jointly", "/Off", "/3", "/Off", 29200, true},
		{"qualifying surviving spouse", "/Off", "/4", "/Off", 29200, true},
		{"head of household", "/2", "/Off", "/Off", 21900, true},
		{"nothing selected", "/Off", "/Off", "/Off", 0, false},
	}
	for _, w := range want {
		amount, ok := domain.StandardDeduction(w.singleOrHOH, w.marriedJointly, w.marriedSeparately)
		if amount != w.amount || ok != w.ok {
			t.Errorf("%s: want (%v, %v), got (%v, %v)", w.name, w.amount, w.ok, amount, ok)
		}
	}
}

// ── Helpers ─────────────────────────────────────────────────────────────────

func entry(org string, box1, box2 float64) domain.W2Entry {
	return domain.W2Entry{
		Organization: org,
		Box1:         f64(box1),
		Box2:         f64(box2),
	}
}

func f64(v float64) *float64 {
	return &v
}
