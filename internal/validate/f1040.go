package validate

import (
	"github.com/csg33k/f1040-filler/internal/domain"
	"github.com/csg33k/f1040-filler/internal/engine"
	"github.com/csg33k/f1040-filler/internal/formcfg"
)

func validateF1040(form *formcfg.Object, c *checker, doc *Document) {
	cfg := form.Object("configuration")

	name, _ := cfg.String("form")
	if name != domain.FormF1040 {
		c.addf("F1040.configuration.form: want %q, got %q", domain.FormF1040, name)
	}
	doc.Name = name

	year := intMember(cfg, "tax_year")
	checkTaxYear(c, "F1040", year)
	doc.TaxYear = year

	out, ok := cfg.String("output_file_name")
	if !ok || out == "" {
		c.addf("F1040.configuration.output_file_name is required")
	}
	doc.Output = out
	doc.Debug, _ = cfg.String("debug_json_output")

	validateFilingStatus(form.Object("filing_status"), c)
	validateDigitalAssets(form.Object("digital_assets"), c)
	validateCheckboxSection(form.Object("standard_deduction"), "standard_deduction", c,
		"you_as_a_dependent", "your_spouse_as_a_dependent", "spouse_itemizes",
		"born_before_jan_2_1960", "are_blind", "spouse_born_before_jan_2_1960",
		"spouse_is_blind")
	validateDependents(form.Object("dependents"), c)
	if form.Object("income") == nil {
		c.addf("F1040.income section is required")
	}
	validateRefund(form.Object("refund"), c)
	validateDesignee(form.Object("third_party_designee"), c)
}

// validateFilingStatus enforces the exactly-one rule. The three selectors
// carry radio group export states rather than plain on/off values, so a
// selector counts as active whenever it is present and not "/Off".
func validateFilingStatus(fs *formcfg.Object, c *checker) {
	if fs == nil {
		c.addf("F1040.filing_status section is required")
		return
	}
	active := 0
	for _, key := range []string{"single_or_HOH", "married_filing_jointly_or_QSS", "married_filing_separately"} {
		v, ok := fs.String(key)
		if ok && v != "" && v != domain.CheckboxOff {
			active++
		}
	}
	if active != 1 {
		c.addf("F1040.filing_status: exactly one filing status must be selected, found %d", active)
	}
}

func validateDigitalAssets(da *formcfg.Object, c *checker) {
	if da == nil {
		return
	}
	if v, ok := da.String("yes"); ok && v != domain.CheckboxOn && v != domain.CheckboxOff {
		c.addf("F1040.digital_assets.yes: want %q or %q, got %q", domain.CheckboxOn, domain.CheckboxOff, v)
	}
	// The No box is the second state of the radio group.
	if v, ok := da.String("no"); ok && v != domain.CheckboxNo && v != domain.CheckboxOff {
		c.addf("F1040.digital_assets.no: want %q or %q, got %q", domain.CheckboxNo, domain.CheckboxOff, v)
	}
}

func validateCheckboxSection(sec *formcfg.Object, name string, c *checker, keys ...string) {
	if sec == nil {
		return
	}
	for _, key := range keys {
		if v, ok := sec.String(key); ok && v != domain.CheckboxOn && v != domain.CheckboxOff {
			c.addf("F1040.%s.%s: want %q or %q, got %q", name, key, domain.CheckboxOn, domain.CheckboxOff, v)
		}
	}
}

// validateDependents checks the per-row completeness rule: a named
// dependent needs an SSN and a relationship.
func validateDependents(dep *formcfg.Object, c *checker) {
	if dep == nil {
		return
	}
	validateCheckboxSection(dep, "dependents", c,
		"check_if_more_than_4_dependents",
		"dependent_1_child_tax_credit", "dependent_1_credit_for_other_dependents",
		"dependent_2_child_tax_credit", "dependent_2_credit_for_other_dependents",
		"dependent_3_child_tax_credit", "dependent_3_credit_for_other_dependents",
		"dependent_4_child_tax_credit", "dependent_4_credit_for_other_dependents")

	rows := []struct{ name, ssn, rel string }{
		{"dependent_1_first_last_name", "dependent_1_ssn", "dependent_1_relationship"},
		{"dependent_2_first_last_name", "dependent_2_ssn", "dependent_2_relationship"},
		{"dependent_3_first_last_name", "dependent_3_ssn", "dependent_3_relationship"},
		{"dependent_4_first_last_name", "dependent_4_ssn", "dependent_4_relationship"},
	}
	for _, row := range rows {
		name, _ := dep.String(row.name)
		if name == "" {
			continue
		}
		if v, _ := dep.String(row.ssn); v == "" {
			c.addf("F1040.dependents: %s requires %s", row.name, row.ssn)
		}
		if v, _ := dep.String(row.rel); v == "" {
			c.addf("F1040.dependents: %s requires %s", row.name, row.rel)
		}
	}
}

// validateRefund checks direct deposit completeness: any routing or
// account number requires both, plus exactly one account type box.
func validateRefund(ref *formcfg.Object, c *checker) {
	if ref == nil {
		return
	}
	validateCheckboxSection(ref, "refund", c, "L35a_check", "L35c_checking", "L35c_savings")

	routing, _ := ref.String("L35a_b")
	account, _ := ref.String("L35a_d")
	if routing == "" && account == "" {
		return
	}
	if routing == "" {
		c.addf("F1040.refund: direct deposit requires L35a_b (routing number)")
	}
	if account == "" {
		c.addf("F1040.refund: direct deposit requires L35a_d (account number)")
	}
	checking, _ := ref.String("L35c_checking")
	savings, _ := ref.String("L35c_savings")
	selected := 0
	if checking == domain.CheckboxOn {
		selected++
	}
	if savings == domain.CheckboxOn {
		selected++
	}
	if selected != 1 {
		c.addf("F1040.refund: direct deposit requires exactly one of L35c_checking or L35c_savings")
	}
}

// validateDesignee enforces the yes/no selection and, for yes, the
// designee contact details.
func validateDesignee(tp *formcfg.Object, c *checker) {
	if tp == nil {
		return
	}
	yes, _ := tp.String("do_you_want_to_designate_yes")
	no, _ := tp.String("do_you_want_to_designate_no")
	yesSelected := yes == domain.CheckboxOn
	noSelected := no == domain.CheckboxNo

	switch {
	case yesSelected && noSelected:
		c.addf("F1040.third_party_designee: cannot select both yes and no")
	case !yesSelected && !noSelected:
		c.addf("F1040.third_party_designee: must select yes or no")
	}
	if !yesSelected {
		return
	}
	for _, key := range []string{"designee_name", "designee_phone", "designee_pin"} {
		if v, _ := tp.String(key); v == "" {
			c.addf("F1040.third_party_designee: %s is required when yes is selected", key)
		}
	}
}

// injectStandardDeduction writes the filing status deduction onto income
// line 12. Runs after validation, so exactly one status is selected. A
// document that sets L12 itself is overwritten; the deduction follows the
// selected status.
func injectStandardDeduction(form *formcfg.Object) {
	income := form.Object("income")
	fs := form.Object("filing_status")
	if income == nil || fs == nil {
		return
	}
	single, _ := fs.String("single_or_HOH")
	joint, _ := fs.String("married_filing_jointly_or_QSS")
	separate, _ := fs.String("married_filing_separately")
	amount, ok := domain.StandardDeduction(single, joint, separate)
	if !ok {
		return
	}
	income.Set("L12", amount)
}

func intMember(o *formcfg.Object, key string) int {
	v, ok := o.Get(key)
	if !ok {
		return 0
	}
	if n, ok := engine.Numeric(v); ok {
		return int(n)
	}
	return 0
}
