// Package tags carries the static PDF field dictionaries for the forms the
// filler supports.
//
// Field identifiers follow the AcroForm names in the IRS templates
// (f1_32[0], c1_3[1], ...). A configuration may override any of these with
// an inline <key>_tag sibling; the dictionary is the fallback for documents
// that do not inline their tags. The bundled F1040 table targets the 2024
// revision of the form.
package tags

import (
	"sort"
	"strings"
)

// SectionTags maps a configuration key to its PDF field id.
type SectionTags map[string]string

// FormTags maps a section name to its field tags.
type FormTags map[string]SectionTags

var forms = map[string]FormTags{
	"F1040": f1040,
}

// ForForm returns the tag dictionary for a form name.
func ForForm(name string) (FormTags, bool) {
	ft, ok := forms[name]
	return ft, ok
}

// Supported lists the form names with a bundled dictionary.
func Supported() []string {
	names := make([]string, 0, len(forms))
	for name := range forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FieldIDs returns every PDF field id in the form's dictionary, sorted and
// deduplicated. Used to verify a template carries the fields the filler
// expects.
func FieldIDs(form string) []string {
	ft, ok := forms[form]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	for _, section := range ft {
		for _, id := range section {
			seen[id] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Lookup returns a resolver suitable as the engine's dictionary fallback,
// or nil for unknown forms. Directive keys carry their operation in the
// name (L1z_sum) while the dictionary indexes by line (L1z), so the
// resolver retries with the operation suffix stripped.
func Lookup(form string) func(section, key string) (string, bool) {
	ft, ok := forms[form]
	if !ok {
		return nil
	}
	return func(section, key string) (string, bool) {
		st, ok := ft[section]
		if !ok {
			return "", false
		}
		if tag, ok := st[key]; ok {
			return tag, true
		}
		for _, suffix := range []string{"_sum", "_subtract"} {
			if base, found := strings.CutSuffix(key, suffix); found {
				if tag, ok := st[base]; ok {
					return tag, true
				}
			}
		}
		return "", false
	}
}

var f1040 = FormTags{
	"name_address_ssn": {
		"first_name_middle_initial":        "f1_04[0]",
		"last_name":                        "f1_05[0]",
		"ssn":                              "f1_06[0]",
		"spouse_first_name_middle_initial": "f1_07[0]",
		"spouse_last_name":                 "f1_08[0]",
		"spouse_ssn":                       "f1_09[0]",
		"home_address":                     "f1_10[0]",
		"apartment_no":                     "f1_11[0]",
		"city":                             "f1_12[0]",
		"state":                            "f1_13[0]",
		"zip":                              "f1_14[0]",
		"foreign_country_name":             "f1_15[0]",
		"foreign_country_province":         "f1_16[0]",
		"foreign_country_postal_code":      "f1_17[0]",
		"presidential_you":                 "c1_1[0]",
		"presidential_spouse":              "c1_2[0]",
	},
	"filing_status": {
		"single_or_HOH":                 "c1_3[0]",
		"married_filing_jointly_or_QSS": "c1_3[1]",
		"married_filing_separately":     "c1_3[2]",
		"treating_nonresident_alien":    "c1_4[0]",
		"spouse_or_child_name":          "f1_18[0]",
		"nonresident_alien_name":        "f1_19[0]",
	},
	"digital_assets": {
		"yes": "c1_5[0]",
		"no":  "c1_5[1]",
	},
	"standard_deduction": {
		"you_as_a_dependent":            "c1_6[0]",
		"your_spouse_as_a_dependent":    "c1_7[0]",
		"spouse_itemizes":               "c1_8[0]",
		"born_before_jan_2_1960":        "c1_9[0]",
		"are_blind":                     "c1_10[0]",
		"spouse_born_before_jan_2_1960": "c1_11[0]",
		"spouse_is_blind":               "c1_12[0]",
	},
	"dependents": {
		"check_if_more_than_4_dependents":         "c1_13[0]",
		"dependent_1_first_last_name":             "f1_20[0]",
		"dependent_1_ssn":                         "f1_21[0]",
		"dependent_1_relationship":                "f1_22[0]",
		"dependent_1_child_tax_credit":            "c1_14[0]",
		"dependent_1_credit_for_other_dependents": "c1_15[0]",
		"dependent_2_first_last_name":             "f1_23[0]",
		"dependent_2_ssn":                         "f1_24[0]",
		"dependent_2_relationship":                "f1_25[0]",
		"dependent_2_child_tax_credit":            "c1_16[0]",
		"dependent_2_credit_for_other_dependents": "c1_17[0]",
		"dependent_3_first_last_name":             "f1_26[0]",
		"dependent_3_ssn":                         "f1_27[0]",
		"dependent_3_relationship":                "f1_28[0]",
		"dependent_3_child_tax_credit":            "c1_18[0]",
		"dependent_3_credit_for_other_dependents": "c1_19[0]",
		"dependent_4_first_last_name":             "f1_29[0]",
		"dependent_4_ssn":                         "f1_30[0]",
		"dependent_4_relationship":                "f1_31[0]",
		"dependent_4_child_tax_credit":            "c1_20[0]",
		"dependent_4_credit_for_other_dependents": "c1_21[0]",
	},
	"income": {
		"L1a":  "f1_32[0]",
		"L1b":  "f1_33[0]",
		"L1c":  "f1_34[0]",
		"L1d":  "f1_35[0]",
		"L1e":  "f1_36[0]",
		"L1f":  "f1_37[0]",
		"L1g":  "f1_38[0]",
		"L1h":  "f1_39[0]",
		"L1i":  "f1_40[0]",
		"L1z":  "f1_41[0]",
		"L2a":  "f1_42[0]",
		"L2b":  "f1_43[0]",
		"L3a":  "f1_44[0]",
		"L3b":  "f1_45[0]",
		"L4a":  "f1_46[0]",
		"L4b":  "f1_47[0]",
		"L5a":  "f1_48[0]",
		"L5b":  "f1_49[0]",
		"L6a":  "f1_50[0]",
		"L6b":  "f1_51[0]",
		"L6c":  "c1_22[0]",
		"L7cb": "c1_23[0]",
		"L7":   "f1_52[0]",
		"L8":   "f1_53[0]",
		"L9":   "f1_54[0]",
		"L10":  "f1_55[0]",
		"L11":  "f1_56[0]",
		"L12":  "f1_57[0]",
		"L13":  "f1_58[0]",
		"L14":  "f1_59[0]",
		"L15":  "f1_60[0]",
	},
	"tax_and_credits": {
		"L16_check_8814":    "c2_1[0]",
		"L16_check_4972":    "c2_2[0]",
		"L16_check_3":       "c2_3[0]",
		"L16_check_3_field": "f2_01[0]",
		"L16":               "f2_02[0]",
		"L17":               "f2_03[0]",
		"L18":               "f2_04[0]",
		"L19":               "f2_05[0]",
		"L20":               "f2_06[0]",
		"L21":               "f2_07[0]",
		"L22":               "f2_08[0]",
		"L23":               "f2_09[0]",
		"L24":               "f2_10[0]",
	},
	"payments": {
		"L25a": "f2_11[0]",
		"L25b": "f2_12[0]",
		"L25c": "f2_13[0]",
		"L25d": "f2_14[0]",
		"L26":  "f2_15[0]",
		"L27":  "f2_16[0]",
		"L28":  "f2_17[0]",
		"L29":  "f2_18[0]",
		"L31":  "f2_20[0]",
		"L32":  "f2_21[0]",
		"L33":  "f2_22[0]",
	},
	"refund": {
		"L34":           "f2_23[0]",
		"L35a_check":    "c2_4[0]",
		"L35a":          "f2_24[0]",
		"L35a_b":        "f2_25[0]",
		"L35c_checking": "c2_5[0]",
		"L35c_savings":  "c2_5[1]",
		"L35a_d":        "f2_26[0]",
		"L36":           "f2_27[0]",
	},
	"amount_you_owe": {
		"L37": "f2_28[0]",
		"L38": "f2_29[0]",
	},
	"third_party_designee": {
		"do_you_want_to_designate_yes": "c2_6[0]",
		"do_you_want_to_designate_no":  "c2_6[1]",
		"designee_name":                "f2_30[0]",
		"designee_phone":               "f2_31[0]",
		"designee_pin":                 "f2_32[0]",
	},
	"sign_here": {
		"your_occupation":   "f2_33[0]",
		"your_pin":          "f2_34[0]",
		"spouse_occupation": "f2_35[0]",
		"spouse_pin":        "f2_36[0]",
		"phone_no":          "f2_37[0]",
		"email":             "f2_38[0]",
	},
}
