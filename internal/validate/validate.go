// Package validate parses an uploaded configuration document and enforces
// the cross-field rules the form engine cannot check on its own: document
// shape, wage statement sanity, filing status selection, and section
// completeness. The engine trusts what this package hands it.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/csg33k/f1040-filler/internal/domain"
	"github.com/csg33k/f1040-filler/internal/errors"
	"github.com/csg33k/f1040-filler/internal/formcfg"
)

// ErrInvalid marks a document that decoded fine but failed validation.
var ErrInvalid = errors.New("configuration failed validation")

// Document is a parsed, validated upload ready for the engine.
type Document struct {
	Root *formcfg.Object
	// Form is the subtree the engine walks (the F1040 object, with its
	// own configuration section).
	Form    *formcfg.Object
	W2      *domain.W2Document
	Name    string
	TaxYear int
	// Output is the output_file_name the configuration asks for.
	Output string
	// Debug is the optional debug_json_output; empty when the
	// document does not request a post-walk dump.
	Debug string
}

// Parse decodes raw and validates it. Structural problems (not an object,
// missing W2/F1040 sections) come back marked ErrMalformedConfig; rule
// violations come back marked ErrInvalid with every violation listed.
func Parse(raw []byte) (*Document, error) {
	root, err := formcfg.DecodeBytes(raw)
	if err != nil {
		return nil, errors.Mark(err, errors.ErrMalformedConfig)
	}
	w2obj := root.Object("W2")
	if w2obj == nil {
		return nil, errors.Mark(errors.New("document must carry a W2 section"), errors.ErrMalformedConfig)
	}
	form := root.Object("F1040")
	if form == nil {
		return nil, errors.Mark(errors.New("document must carry an F1040 section"), errors.ErrMalformedConfig)
	}
	if form.Object("configuration") == nil {
		return nil, errors.Mark(errors.New("F1040 section has no configuration"), errors.ErrMalformedConfig)
	}

	w2, err := parseW2(w2obj)
	if err != nil {
		return nil, err
	}

	doc := &Document{Root: root, Form: form, W2: w2}
	c := &checker{}
	validateF1040(form, c, doc)
	if err := c.err(); err != nil {
		return nil, err
	}

	injectStandardDeduction(form)
	w2.Totals = domain.ComputeTotals(w2.Entries)
	return doc, nil
}

func parseW2(obj *formcfg.Object) (*domain.W2Document, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, errors.Wrap(err, "remarshaling W2 section")
	}
	var w2 domain.W2Document
	if err := json.Unmarshal(raw, &w2); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "W2 section shape"), ErrInvalid)
	}
	c := &checker{}
	validateW2(&w2, c)
	if err := c.err(); err != nil {
		return nil, err
	}
	return &w2, nil
}

func validateW2(w2 *domain.W2Document, c *checker) {
	if w2.Configuration.Form != domain.FormW2 {
		c.addf("W2.configuration.form: want %q, got %q", domain.FormW2, w2.Configuration.Form)
	}
	checkTaxYear(c, "W2", w2.Configuration.TaxYear)

	statements := 0
	for i := range w2.Entries {
		e := &w2.Entries[i]
		if e.IsComment() {
			continue
		}
		statements++
		if e.Organization == "" {
			c.addf("W2 entry %d: organization is required", i+1)
		}
		checkRequiredBox(c, i, "box_1", e.Box1)
		checkRequiredBox(c, i, "box_2", e.Box2)
		for _, b := range []struct {
			name  string
			value *float64
		}{
			{"box_3", e.Box3}, {"box_4", e.Box4}, {"box_5", e.Box5},
			{"box_6", e.Box6}, {"box_7", e.Box7}, {"box_8", e.Box8},
			{"box_10", e.Box10}, {"box_11", e.Box11},
		} {
			if b.value != nil && *b.value < 0 {
				c.addf("W2 entry %d: %s must not be negative", i+1, b.name)
			}
		}
		for _, b := range []struct {
			name  string
			value *domain.Box12Entry
		}{
			{"box_12a", e.Box12a}, {"box_12b", e.Box12b},
			{"box_12c", e.Box12c}, {"box_12d", e.Box12d},
		} {
			if b.value == nil {
				continue
			}
			if _, ok := box12Codes[b.value.Code]; !ok {
				c.addf("W2 entry %d: %s has unknown code %q", i+1, b.name, b.value.Code)
			}
			if b.value.Amount < 0 {
				c.addf("W2 entry %d: %s amount must not be negative", i+1, b.name)
			}
		}
		for name, amount := range e.Box14 {
			if amount < 0 {
				c.addf("W2 entry %d: box_14 %s must not be negative", i+1, name)
			}
		}
	}
	if statements == 0 {
		c.addf("W2: at least one wage statement entry is required")
	}
}

func checkRequiredBox(c *checker, i int, name string, v *float64) {
	if v == nil {
		c.addf("W2 entry %d: %s is required", i+1, name)
		return
	}
	if *v < 0 {
		c.addf("W2 entry %d: %s must not be negative", i+1, name)
	}
}

func checkTaxYear(c *checker, section string, year int) {
	if year < domain.MinTaxYear || year > domain.MaxTaxYear {
		c.addf("%s.configuration.tax_year: %d outside supported range %d-%d",
			section, year, domain.MinTaxYear, domain.MaxTaxYear)
	}
}

// Box 12 codes from the W-2 instructions.
var box12Codes = map[string]struct{}{
	"A": {}, "B": {}, "C": {}, "D": {}, "E": {}, "F": {}, "G": {}, "H": {},
	"J": {}, "K": {}, "L": {}, "M": {}, "N": {}, "P": {}, "Q": {}, "R": {},
	"S": {}, "T": {}, "V": {}, "W": {}, "Y": {}, "Z": {},
	"AA": {}, "BB": {}, "DD": {}, "EE": {}, "FF": {}, "GG": {}, "HH": {},
}

// checker collects rule violations so a response can report all of them
// at once instead of one per upload attempt.
type checker struct {
	problems []string
}

func (c *checker) addf(format string, args ...any) {
	c.problems = append(c.problems, fmt.Sprintf(format, args...))
}

func (c *checker) err() error {
	if len(c.problems) == 0 {
		return nil
	}
	return errors.Mark(errors.Newf("%s", strings.Join(c.problems, "; ")), ErrInvalid)
}
