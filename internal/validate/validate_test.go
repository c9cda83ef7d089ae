package validate_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/csg33k/f1040-filler/internal/errors"
	"github.com/csg33k/f1040-filler/internal/validate"
)

func TestParseValidDocument(t *testing.T) {
	doc, err := validate.Parse(buildDoc(t, nil))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if doc.Name != "F1040" {
		t.Errorf("Name: want F1040, got %q", doc.Name)
	}
	if doc.TaxYear != 2024 {
		t.Errorf("TaxYear: want 2024, got %d", doc.TaxYear)
	}
	if doc.Output != "bob_smith_1040.pdf" {
		t.Errorf("Output: want bob_smith_1040.pdf, got %q", doc.Output)
	}
	if doc.W2.Totals["total_box_1"] != 6034.16 {
		t.Errorf("total_box_1: want 6034.16, got %v", doc.W2.Totals["total_box_1"])
	}
	if doc.W2.Totals["total_box_2"] != 69.31 {
		t.Errorf("total_box_2: want 69.31, got %v", doc.W2.Totals["total_box_2"])
	}
}

func TestParseInjectsStandardDeduction(t *testing.T) {
	want := []struct {
		name     string
		statuses map[string]any
		amount   float64
	}{
		{
			"single",
			map[string]any{"single_or_HOH": "/1", "married_filing_jointly_or_QSS": "/Off", "married_filing_separately": "/Off"},
			14600,
		},
		{
			"married filing jointly",
			map[string]any{"single_or_HOH": "/Off", "married_filing_jointly_or_QSS": "/3", "married_filing_separately": "/Off"},
			29200,
		},
		{
			"head of household",
			map[string]any{"single_or_HOH": "/2", "married_filing_jointly_or_QSS": "/Off", "married_filing_separately": "/Off"},
			21900,
		},
	}
	for _, w := range want {
		raw := buildDoc(t, func(root map[string]any) {
			form(root)["filing_status"] = w.statuses
		})
		doc, err := validate.Parse(raw)
		if err != nil {
			t.Fatalf("%s: parse: %v", w.name, err)
		}
		v, ok := doc.Form.Object("income").Get("L12")
		if !ok {
			t.Fatalf("%s: L12 not injected", w.name)
		}
		if f, _ := v.(float64); f != w.amount {
			t.Errorf("%s: L12: want %v, got %v", w.name, w.amount, v)
		}
	}
}

func TestParseStructuralFailures(t *testing.T) {
	want := []struct {
		name string
		raw  []byte
	}{
		{"non-object root", []byte(`[1, 2, 3]`)},
		{"not json", []byte(`{"W2": `)},
		{"missing W2", buildDoc(t, func(root map[string]any) { delete(root, "W2") })},
		{"missing F1040", buildDoc(t, func(root map[string]any) { delete(root, "F1040") })},
		{"F1040 without configuration", buildDoc(t, func(root map[string]any) {
			delete(form(root), "configuration")
		})},
	}
	for _, w := range want {
		_, err := validate.Parse(w.raw)
		if !errors.Is(err, errors.ErrMalformedConfig) {
			t.Errorf("%s: want ErrMalformedConfig, got %v", w.name, err)
		}
	}
}

func TestW2Rules(t *testing.T) {
	want := []struct {
		name    string
		mutate  func(root map[string]any)
		problem string
	}{
		{
			"missing organization",
			func(root map[string]any) {
				entries(root)[0] = map[string]any{"box_1": 100.0, "box_2": 10.0}
			},
			"organization is required",
		},
		{
			"missing box_2",
			func(root map[string]any) {
				entries(root)[0] = map[string]any{"organization": "Acme Corp", "box_1": 100.0}
			},
			"box_2 is required",
		},
		{
			"negative box_1",
			func(root map[string]any) {
				entries(root)[0] = map[string]any{"organization": "Acme Corp", "box_1": -5.0, "box_2": 10.0}
			},
			"box_1 must not be negative",
		},
		{
			"unsupported tax year",
			func(root map[string]any) {
				w2(root)["configuration"] = map[string]any{"tax_year": 2006, "form": "W-2"}
			},
			"outside supported range",
		},
		{
			"wrong form name",
			func(root map[string]any) {
				w2(root)["configuration"] = map[string]any{"tax_year": 2024, "form": "W2"}
			},
			"W2.configuration.form",
		},
		{
			"only comment entries",
			func(root map[string]any) {
				w2(root)["W2"] = []any{map[string]any{"_comment": "waiting on employer"}}
			},
			"at least one wage statement entry",
		},
		{
			"unknown box 12 code",
			func(root map[string]any) {
				entries(root)[0] = map[string]any{
					"organization": "Acme Corp", "box_1": 100.0, "box_2": 10.0,
					"box_12a": map[string]any{"code": "XX", "amount": 50.0},
				}
			},
			"unknown code",
		},
	}
	for _, w := range want {
		_, err := validate.Parse(buildDoc(t, w.mutate))
		assertInvalid(t, w.name, err, w.problem)
	}
}

func TestFilingStatusExactlyOne(t *testing.T) {
	none := buildDoc(t, func(root map[string]any) {
		form(root)["filing_status"] = map[string]any{
			"single_or_HOH":                 "/Off",
			"married_filing_jointly_or_QSS": "/Off",
			"married_filing_separately":     "/Off",
		}
	})
	_, err := validate.Parse(none)
	assertInvalid(t, "none selected", err, "exactly one filing status")

	two := buildDoc(t, func(root map[string]any) {
		form(root)["filing_status"] = map[string]any{
			"single_or_HOH":                 "/1",
			"married_filing_jointly_or_QSS": "/3",
			"married_filing_separately":     "/Off",
		}
	})
	_, err = validate.Parse(two)
	assertInvalid(t, "two selected", err, "exactly one filing status")
}

func TestOutputFileNameRequired(t *testing.T) {
	raw := buildDoc(t, func(root map[string]any) {
		form(root)["configuration"] = map[string]any{"tax_year": 2024, "form": "F1040"}
	})
	_, err := validate.Parse(raw)
	assertInvalid(t, "missing output", err, "output_file_name")
}

func TestDependentCompleteness(t *testing.T) {
	raw := buildDoc(t, func(root map[string]any) {
		form(root)["dependents"] = map[string]any{
			"check_if_more_than_4_dependents": "/Off",
			"dependent_1_first_last_name":     "Jane Smith",
			"dependent_1_ssn":                 "123-45-6789",
		}
	})
	_, err := validate.Parse(raw)
	assertInvalid(t, "named dependent without relationship", err, "dependent_1_relationship")

	complete := buildDoc(t, func(root map[string]any) {
		form(root)["dependents"] = map[string]any{
			"check_if_more_than_4_dependents": "/Off",
			"dependent_1_first_last_name":     "Jane Smith",
			"dependent_1_ssn":                 "123-45-6789",
			"dependent_1_relationship":        "daughter",
			"dependent_1_child_tax_credit":    "/1",
		}
	})
	if _, err := validate.Parse(complete); err != nil {
		t.Errorf("complete dependent row: want ok, got %v", err)
	}
}

func TestDirectDepositCompleteness(t *testing.T) {
	partial := buildDoc(t, func(root map[string]any) {
		form(root)["refund"] = map[string]any{"L35a_b": "123456789"}
	})
	_, err := validate.Parse(partial)
	assertInvalid(t, "routing without account", err, "L35a_d")

	bothTypes := buildDoc(t, func(root map[string]any) {
		form(root)["refund"] = map[string]any{
			"L35a_b":        "123456789",
			"L35a_d":        "000111222",
			"L35c_checking": "/1",
			"L35c_savings":  "/1",
		}
	})
	_, err = validate.Parse(bothTypes)
	assertInvalid(t, "both account types", err, "exactly one of")

	complete := buildDoc(t, func(root map[string]any) {
		form(root)["refund"] = map[string]any{
			"L35a_b":        "123456789",
			"L35a_d":        "000111222",
			"L35c_checking": "/1",
			"L35c_savings":  "/Off",
		}
	})
	if _, err := validate.Parse(complete); err != nil {
		t.Errorf("complete direct deposit: want ok, got %v", err)
	}
}

func TestDesigneeRules(t *testing.T) {
	neither := buildDoc(t, func(root map[string]any) {
		form(root)["third_party_designee"] = map[string]any{
			"do_you_want_to_designate_yes": "/Off",
			"do_you_want_to_designate_no":  "/Off",
		}
	})
	_, err := validate.Parse(neither)
	assertInvalid(t, "neither selected", err, "must select yes or no")

	yesIncomplete := buildDoc(t, func(root map[string]any) {
		form(root)["third_party_designee"] = map[string]any{
			"do_you_want_to_designate_yes": "/1",
			"designee_name":                "Pat Jones",
			"designee_phone":               "937-555-0101",
		}
	})
	_, err = validate.Parse(yesIncomplete)
	assertInvalid(t, "yes without pin", err, "designee_pin")

	no := buildDoc(t, func(root map[string]any) {
		form(root)["third_party_designee"] = map[string]any{
			"do_you_want_to_designate_no": "/2",
		}
	})
	if _, err := validate.Parse(no); err != nil {
		t.Errorf("no selected: want ok, got %v", err)
	}
}

func TestViolationsReportedTogether(t *testing.T) {
	raw := buildDoc(t, func(root map[string]any) {
		entries(root)[0] = map[string]any{"box_1": -1.0}
	})
	_, err := validate.Parse(raw)
	if err == nil {
		t.Fatal("want error")
	}
	text := err.Error()
	for _, fragment := range []string{"organization is required", "box_1 must not be negative", "box_2 is required"} {
		if !strings.Contains(text, fragment) {
			t.Errorf("error text missing %q:\n%s", fragment, text)
		}
	}
}

// ── Helpers ─────────────────────────────────────────────────────────────────

func baseDoc() map[string]any {
	return map[string]any{
		"W2": map[string]any{
			"configuration": map[string]any{"tax_year": 2024, "form": "W-2"},
			"W2": []any{
				map[string]any{"organization": "Acme Corp", "box_1": 6034.16, "box_2": 69.31},
			},
		},
		"F1040": map[string]any{
			"configuration": map[string]any{
				"tax_year":         2024,
				"form":             "F1040",
				"output_file_name": "bob_smith_1040.pdf",
			},
			"filing_status": map[string]any{
				"single_or_HOH":                 "/1",
				"married_filing_jointly_or_QSS": "/Off",
				"married_filing_separately":     "/Off",
			},
			"income": map[string]any{
				"L1a": "get_W2_box_1_sum()",
				"L1b": 0,
			},
		},
	}
}

func buildDoc(t *testing.T, mutate func(root map[string]any)) []byte {
	t.Helper()
	root := baseDoc()
	if mutate != nil {
		mutate(root)
	}
	raw, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return raw
}

func w2(root map[string]any) map[string]any {
	return root["W2"].(map[string]any)
}

func form(root map[string]any) map[string]any {
	return root["F1040"].(map[string]any)
}

func entries(root map[string]any) []any {
	return w2(root)["W2"].([]any)
}

func assertInvalid(t *testing.T, name string, err error, fragment string) {
	t.Helper()
	if !errors.Is(err, validate.ErrInvalid) {
		t.Errorf("%s: want ErrInvalid, got %v", name, err)
		return
	}
	if !strings.Contains(err.Error(), fragment) {
		t.Errorf("%s: error text missing %q:\n%s", name, fragment, err)
	}
}
