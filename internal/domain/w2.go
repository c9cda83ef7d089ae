// Package domain holds the core types of the form filling service: wage
// statement documents with their box totals, Form 1040 constants, and the
// processing run record.
package domain

// W2Document is the wage statement section of an uploaded configuration:
// a configuration block plus one entry per employer.
type W2Document struct {
	Configuration W2Configuration `json:"configuration"`
	Entries       []W2Entry       `json:"W2"`
	Totals        Totals          `json:"totals,omitempty"`
}

type W2Configuration struct {
	TaxYear int    `json:"tax_year"`
	Form    string `json:"form"`
}

// Box12Entry is one lettered box 12 code/amount pair.
type Box12Entry struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}

// W2Entry mirrors the numbered boxes of a single Form W-2. Optional boxes
// use pointers so an omitted box stays distinguishable from an explicit
// zero; that distinction decides which totals appear in the document.
type W2Entry struct {
	Comment         string             `json:"_comment,omitempty"`
	Organization    string             `json:"organization,omitempty"`
	Box1            *float64           `json:"box_1,omitempty"`  // wages, tips, other compensation
	Box2            *float64           `json:"box_2,omitempty"`  // federal income tax withheld
	Box3            *float64           `json:"box_3,omitempty"`  // social security wages
	Box4            *float64           `json:"box_4,omitempty"`  // social security tax withheld
	Box5            *float64           `json:"box_5,omitempty"`  // medicare wages and tips
	Box6            *float64           `json:"box_6,omitempty"`  // medicare tax withheld
	Box7            *float64           `json:"box_7,omitempty"`  // social security tips
	Box8            *float64           `json:"box_8,omitempty"`  // allocated tips
	Box10           *float64           `json:"box_10,omitempty"` // dependent care benefits
	Box11           *float64           `json:"box_11,omitempty"` // nonqualified plans
	Box12a          *Box12Entry        `json:"box_12a,omitempty"`
	Box12b          *Box12Entry        `json:"box_12b,omitempty"`
	Box12c          *Box12Entry        `json:"box_12c,omitempty"`
	Box12d          *Box12Entry        `json:"box_12d,omitempty"`
	Box13Statutory  *bool              `json:"box_13_statutory_employee,omitempty"`
	Box13Retirement *bool              `json:"box_13_retirement_plan,omitempty"`
	Box13SickPay    *bool              `json:"box_13_third_party_sick_pay,omitempty"`
	Box14           map[string]float64 `json:"box_14,omitempty"`
}

// IsComment reports whether the entry is a commentary placeholder rather
// than a wage statement. Comment entries never contribute to totals.
func (e *W2Entry) IsComment() bool {
	return e.Comment != ""
}

// Totals maps aggregate box names to amounts summed across all entries.
// These back the deferred W-2 markers on the 1040 side.
type Totals map[string]float64

// Aggregate keys that are always present in computed totals.
const (
	TotalBox1 = "total_box_1"
	TotalBox2 = "total_box_2"
)

var optionalBoxes = []struct {
	name string
	get  func(*W2Entry) *float64
}{
	{"total_box_3", func(e *W2Entry) *float64 { return e.Box3 }},
	{"total_box_4", func(e *W2Entry) *float64 { return e.Box4 }},
	{"total_box_5", func(e *W2Entry) *float64 { return e.Box5 }},
	{"total_box_6", func(e *W2Entry) *float64 { return e.Box6 }},
	{"total_box_7", func(e *W2Entry) *float64 { return e.Box7 }},
	{"total_box_8", func(e *W2Entry) *float64 { return e.Box8 }},
	{"total_box_10", func(e *W2Entry) *float64 { return e.Box10 }},
	{"total_box_11", func(e *W2Entry) *float64 { return e.Box11 }},
}

// ComputeTotals folds every real entry into box totals. Boxes 1 and 2
// always appear, even for an empty entry list. The remaining numeric boxes
// appear only when at least one entry defines them; entries that leave an
// included box undefined count as zero.
func ComputeTotals(entries []W2Entry) Totals {
	totals := Totals{TotalBox1: 0, TotalBox2: 0}
	for i := range entries {
		if entries[i].IsComment() {
			continue
		}
		totals[TotalBox1] += deref(entries[i].Box1)
		totals[TotalBox2] += deref(entries[i].Box2)
	}
	for _, box := range optionalBoxes {
		defined := false
		sum := 0.0
		for i := range entries {
			if entries[i].IsComment() {
				continue
			}
			if v := box.get(&entries[i]); v != nil {
				defined = true
				sum += *v
			}
		}
		if defined {
			totals[box.name] = sum
		}
	}
	return totals
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
