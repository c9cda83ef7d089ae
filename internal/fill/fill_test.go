package fill_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/csg33k/f1040-filler/internal/errors"
	"github.com/csg33k/f1040-filler/internal/fill"
	"github.com/csg33k/f1040-filler/internal/ports"
)

const validConfig = `{
    "W2": {
        "configuration": {"tax_year": 2024, "form": "W-2"},
        "W2": [
            {"organization": "Acme Corp", "box_1": 6034.16, "box_2": 69.31}
        ]
    },
    "F1040": {
        "configuration": {
            "tax_year": 2024,
            "form": "F1040",
            "output_file_name": "bob_smith_1040.pdf"
        },
        "filing_status": {
            "single_or_HOH": "/1",
            "married_filing_jointly_or_QSS": "/Off",
            "married_filing_separately": "/Off"
        },
        "income": {
            "L1a": "get_W2_box_1_sum()"
        },
        "payments": {
            "L25a": "get_W2_box_2_sum()"
        }
    }
}`

// failingConfig adds a sum whose references resolve nowhere.
const failingConfig = `{
    "W2": {
        "configuration": {"tax_year": 2024, "form": "W-2"},
        "W2": [
            {"organization": "Acme Corp", "box_1": 6034.16, "box_2": 69.31}
        ]
    },
    "F1040": {
        "configuration": {
            "tax_year": 2024,
            "form": "F1040",
            "output_file_name": "bob_smith_1040.pdf"
        },
        "filing_status": {
            "single_or_HOH": "/1",
            "married_filing_jointly_or_QSS": "/Off",
            "married_filing_separately": "/Off"
        },
        "income": {
            "L1a": "get_W2_box_1_sum()",
            "bad_sum": ["nope1", "nope2"],
            "bad_sum_tag": "f9_99[0]"
        }
    }
}`

func TestFillWritesResolvedFields(t *testing.T) {
	w := &fakeWriter{missing: []string{"c1_3[2]"}}
	svc := fill.New(factory(w))

	res, err := svc.Fill(context.Background(), ports.FillRequest{
		Config:   []byte(validConfig),
		Template: "f1040_2024.pdf",
		Output:   "out/bob.pdf",
	})
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	if res.Form != "F1040" || res.TaxYear != 2024 {
		t.Errorf("form identity: got %s/%d", res.Form, res.TaxYear)
	}
	if res.OutputName != "bob_smith_1040.pdf" {
		t.Errorf("OutputName: got %q", res.OutputName)
	}
	if res.OutputPath != "out/bob.pdf" {
		t.Errorf("OutputPath: got %q", res.OutputPath)
	}
	if res.FieldsWritten != 6 {
		t.Errorf("FieldsWritten: want 6, got %d", res.FieldsWritten)
	}
	if res.UniqueErrors != 0 || res.TotalErrors != 0 {
		t.Errorf("error counts: got %d/%d", res.UniqueErrors, res.TotalErrors)
	}

	if !w.filled || w.template != "f1040_2024.pdf" || w.output != "out/bob.pdf" {
		t.Errorf("writer fill call: filled=%v template=%q output=%q", w.filled, w.template, w.output)
	}
	if got := w.fields["f1_32[0]"]; got != 6034.16 {
		t.Errorf("wages field: want 6034.16, got %v", got)
	}
	if got := w.fields["f2_11[0]"]; got != 69.31 {
		t.Errorf("withholding field: want 69.31, got %v", got)
	}
	if got := w.fields["f1_57[0]"]; got != 14600.0 {
		t.Errorf("standard deduction field: want 14600, got %v", got)
	}
	if got := w.fields["c1_3[0]"]; got != "/1" {
		t.Errorf("filing status box: want /1, got %v", got)
	}
	if len(res.MissingFields) != 1 || res.MissingFields[0] != "c1_3[2]" {
		t.Errorf("MissingFields: got %v", res.MissingFields)
	}
}

// twoJobsConfig chains an aggregate marker into a sum directive.
const twoJobsConfig = `{
    "W2": {
        "configuration": {"tax_year": 2024, "form": "W-2"},
        "W2": [
            {"organization": "First Job LLC", "box_1": 550, "box_2": 0},
            {"organization": "Second Job Inc", "box_1": 3907.57, "box_2": 54.31}
        ]
    },
    "F1040": {
        "configuration": {
            "tax_year": 2024,
            "form": "F1040",
            "output_file_name": "two_jobs_1040.pdf"
        },
        "filing_status": {
            "single_or_HOH": "/1",
            "married_filing_jointly_or_QSS": "/Off",
            "married_filing_separately": "/Off"
        },
        "income": {
            "L1a": "get_W2_box_1_sum()",
            "L1h": 100,
            "L8": 1,
            "L9_sum": ["L1a", "L1h", "L8"],
            "L9_sum_tag": "f1_54[0]"
        }
    }
}`

func TestFillChainsAggregateTotalsThroughSums(t *testing.T) {
	w := &fakeWriter{}
	svc := fill.New(factory(w))

	res, err := svc.Fill(context.Background(), ports.FillRequest{
		Config:   []byte(twoJobsConfig),
		Template: "f1040_2024.pdf",
	})
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	// Both wage statements fold into box totals, the marker picks the
	// total up, and the later sum sees the resolved value.
	if got := w.fields["f1_32[0]"]; got != 4457.57 {
		t.Errorf("L1a from two statements: want 4457.57, got %v", got)
	}
	if got := w.fields["f1_54[0]"]; got != 4558.57 {
		t.Errorf("chained sum: want 4558.57, got %v", got)
	}
	// Three filing boxes, L1a, L1h, L8, the sum, and the injected L12.
	if res.FieldsWritten != 8 {
		t.Errorf("FieldsWritten: want 8, got %d", res.FieldsWritten)
	}
}

func TestFillDefaultsOutputToConfiguredName(t *testing.T) {
	w := &fakeWriter{}
	svc := fill.New(factory(w))

	res, err := svc.Fill(context.Background(), ports.FillRequest{
		Config:   []byte(validConfig),
		Template: "f1040_2024.pdf",
	})
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if res.OutputPath != "bob_smith_1040.pdf" {
		t.Errorf("OutputPath: want configured name, got %q", res.OutputPath)
	}
	if w.output != "bob_smith_1040.pdf" {
		t.Errorf("writer output: got %q", w.output)
	}
}

func TestFillRejectsMalformedConfig(t *testing.T) {
	calls := 0
	svc := fill.New(func() ports.FormWriter {
		calls++
		return &fakeWriter{}
	})

	_, err := svc.Fill(context.Background(), ports.FillRequest{
		Config:   []byte(`{"W2": {"configuration": {"tax_year": 2024, "form": "W-2"}, "W2": []}}`),
		Template: "f1040_2024.pdf",
	})
	if !errors.Is(err, errors.ErrMalformedConfig) {
		t.Fatalf("want ErrMalformedConfig, got %v", err)
	}
	if calls != 0 {
		t.Errorf("writer drawn before validation passed")
	}
}

func TestFillSkipsPDFOnWalkErrors(t *testing.T) {
	w := &fakeWriter{}
	svc := fill.New(factory(w))

	res, err := svc.Fill(context.Background(), ports.FillRequest{
		Config:   []byte(failingConfig),
		Template: "f1040_2024.pdf",
		Output:   "out/bob.pdf",
	})
	if !errors.Is(err, errors.ErrCriticalErrors) {
		t.Fatalf("want ErrCriticalErrors, got %v", err)
	}
	if res == nil {
		t.Fatal("result should carry the walk counts")
	}
	if res.UniqueErrors != 1 || res.TotalErrors != 1 {
		t.Errorf("error counts: got %d/%d", res.UniqueErrors, res.TotalErrors)
	}
	if w.filled {
		t.Error("PDF written despite recorded errors")
	}
	if res.OutputPath != "" {
		t.Errorf("OutputPath set without a written PDF: %q", res.OutputPath)
	}
}

func TestFillDumpsDebugTreeDespiteErrors(t *testing.T) {
	dump := filepath.Join(t.TempDir(), "resolved.json")
	svc := fill.New(factory(&fakeWriter{}))

	_, err := svc.Fill(context.Background(), ports.FillRequest{
		Config:    []byte(failingConfig),
		Template:  "f1040_2024.pdf",
		DebugJSON: dump,
	})
	if !errors.Is(err, errors.ErrCriticalErrors) {
		t.Fatalf("want ErrCriticalErrors, got %v", err)
	}

	raw, err := os.ReadFile(dump)
	if err != nil {
		t.Fatalf("debug dump not written: %v", err)
	}
	text := string(raw)
	if !strings.Contains(text, `"L1a": 6034.16`) {
		t.Errorf("dump missing resolved aggregate:\n%s", text)
	}
	if !strings.Contains(text, `"L12": 14600`) {
		t.Errorf("dump missing injected deduction:\n%s", text)
	}
}

func TestFillUsesConfiguredDumpName(t *testing.T) {
	dump := filepath.Join(t.TempDir(), "from_config.json")
	cfg := strings.Replace(validConfig,
		`"output_file_name": "bob_smith_1040.pdf"`,
		`"output_file_name": "bob_smith_1040.pdf",
            "debug_json_output": `+fmt.Sprintf("%q", dump),
		1)

	svc := fill.New(factory(&fakeWriter{}))
	if _, err := svc.Fill(context.Background(), ports.FillRequest{
		Config:   []byte(cfg),
		Template: "f1040_2024.pdf",
	}); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if _, err := os.Stat(dump); err != nil {
		t.Fatalf("dump named by the configuration not written: %v", err)
	}
}

func TestFillPropagatesWriterFailure(t *testing.T) {
	w := &fakeWriter{fillErr: errors.New("encrypted template")}
	svc := fill.New(factory(w))

	res, err := svc.Fill(context.Background(), ports.FillRequest{
		Config:   []byte(validConfig),
		Template: "f1040_2024.pdf",
		Output:   "out/bob.pdf",
	})
	if err == nil || !strings.Contains(err.Error(), "encrypted template") {
		t.Fatalf("want writer failure, got %v", err)
	}
	if res == nil || res.FieldsWritten != 6 {
		t.Errorf("walk counts should survive the writer failure: %+v", res)
	}
}

func TestFillHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := fill.New(factory(&fakeWriter{}))
	_, err := svc.Fill(ctx, ports.FillRequest{Config: []byte(validConfig)})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

// ── Helpers ─────────────────────────────────────────────────────────────────

type fakeWriter struct {
	fields   map[string]any
	staged   []string
	missing  []string
	fillErr  error
	filled   bool
	template string
	output   string
}

func (w *fakeWriter) Write(field string, value any) error {
	if w.fields == nil {
		w.fields = make(map[string]any)
	}
	w.fields[field] = value
	w.staged = append(w.staged, field)
	return nil
}

func (w *fakeWriter) Staged() int { return len(w.staged) }

func (w *fakeWriter) Fill(template, output string) ([]string, error) {
	w.filled = true
	w.template = template
	w.output = output
	if w.fillErr != nil {
		return nil, w.fillErr
	}
	return w.missing, nil
}

func factory(w *fakeWriter) func() ports.FormWriter {
	return func() ports.FormWriter { return w }
}
