package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/csg33k/f1040-filler/internal/adapters/pdffill"
	"github.com/csg33k/f1040-filler/internal/errors"
	"github.com/csg33k/f1040-filler/internal/tags"
)

var (
	fieldsTemplate string
	fieldsFormat   string
	fieldsCheck    bool
)

// FieldsCmd inspects the AcroForm fields of a PDF template.
var FieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the AcroForm fields a PDF template carries",
	Long: `Fields exports the form field inventory of a PDF template, either as
a readable listing or as JSON.

With --check the inventory is compared against the 1040 field dictionary
and any mapped field id the template lacks is reported.

Examples:
  taxfill fields --template templates/f1040.pdf
  taxfill fields --template templates/f1040.pdf --format json
  taxfill fields --template templates/f1040.pdf --check`,
	Args: noArgs,
	RunE: runFields,
}

func init() {
	FieldsCmd.Flags().StringVarP(&fieldsTemplate, "template", "t", "", "PDF template to inspect")
	FieldsCmd.Flags().StringVar(&fieldsFormat, "format", "text", "output format, text or json")
	FieldsCmd.Flags().BoolVar(&fieldsCheck, "check", false, "verify the template against the 1040 field dictionary")
}

type fieldEntry struct {
	Name  string `json:"name"`
	ID    string `json:"id,omitempty"`
	Type  string `json:"type"`
	Pages []int  `json:"pages,omitempty"`
}

type fieldReport struct {
	Filename   string       `json:"filename"`
	Count      int          `json:"number_of_fields"`
	FormFields []fieldEntry `json:"form_fields"`
}

func runFields(cmd *cobra.Command, args []string) error {
	if fieldsTemplate == "" {
		return usagef("fields needs --template")
	}
	path := fieldsTemplate
	if _, err := os.Stat(path); err != nil {
		return missingFile(err)
	}
	fields, err := pdffill.TemplateFields(path)
	if err != nil {
		return err
	}

	switch fieldsFormat {
	case "json":
		report := fieldReport{Filename: path, Count: len(fields)}
		for _, f := range fields {
			report.FormFields = append(report.FormFields, fieldEntry{Name: f.Name, ID: f.ID, Type: f.Type, Pages: f.Pages})
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "text":
		fmt.Printf("PDF File: %s\n", path)
		fmt.Printf("Number of form fields: %d\n\n", len(fields))
		fmt.Println("Form Fields:")
		fmt.Println("============")
		for _, f := range fields {
			fmt.Printf("%-10s %s\n", f.Type, f.Name)
		}
	default:
		return usagef("unknown format %q (want text or json)", fieldsFormat)
	}

	if fieldsCheck {
		return checkCoverage(path, fields)
	}
	return nil
}

// checkCoverage reports every mapped 1040 field id the template lacks.
// Template names are often qualified (topmostSubform[0].Page1[0].f1_32[0]),
// so ids match on the last path segment as well.
func checkCoverage(path string, fields []pdffill.Field) error {
	have := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.ID != "" {
			have[f.ID] = true
		}
		name := f.Name
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
		have[name] = true
	}

	ids := tags.FieldIDs("F1040")
	var missing []string
	for _, id := range ids {
		if !have[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		fmt.Printf("\nAll %d mapped field ids present in %s\n", len(ids), path)
		return nil
	}
	fmt.Printf("\n%d of %d mapped field ids missing from %s:\n", len(missing), len(ids), path)
	for _, id := range missing {
		fmt.Printf("  %s\n", id)
	}
	return errors.Newf("%d mapped field ids missing from template", len(missing))
}
