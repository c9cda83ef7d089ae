package domain

// Form names accepted in a configuration block.
const (
	FormW2    = "W-2"
	FormF1040 = "F1040"
)

// Filing years accepted for uploaded documents. The bundled field
// dictionary targets the 2024 revision of Form 1040.
const (
	MinTaxYear     = 2020
	MaxTaxYear     = 2025
	DefaultTaxYear = 2024
)

// AcroForm checkbox states as they appear in configuration documents and
// are written into the PDF. Radio-style groups use numbered states; the
// digital assets No box carries "/2", as do designee selections.
const (
	CheckboxOn  = "/1"
	CheckboxNo  = "/2"
	CheckboxOff = "/Off"
)

// Standard deduction amounts for the 2024 filing year.
const (
	DeductionSingleOrMFS     = 14600
	DeductionMarriedJoint    = 29200
	DeductionHeadOfHousehold = 21900
)

// StandardDeduction returns the line 12 amount implied by the filing
// status selectors, or (0, false) when no recognized status is selected.
// The selector values follow the form's radio group export states:
// single "/1", head of household "/2", married filing jointly "/3",
// qualifying surviving spouse "/4".
func StandardDeduction(singleOrHOH, marriedJointly, marriedSeparately string) (float64, bool) {
	switch {
	case singleOrHOH == "/1" || marriedSeparately == "/1":
		return DeductionSingleOrMFS, true
	case marriedJointly == "/3" || marriedJointly == "/4":
		return DeductionMarriedJoint, true
	case singleOrHOH == "/2":
		return DeductionHeadOfHousehold, true
	}
	return 0, false
}
