package pdffill

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/csg33k/f1040-filler/internal/errors"
)

// Field types as reported by TemplateFields.
const (
	FieldText       = "text"
	FieldDate       = "date"
	FieldCheckBox   = "checkbox"
	FieldRadioGroup = "radio"
	FieldComboBox   = "combobox"
	FieldListBox    = "listbox"
)

// Field is one AcroForm field of a template.
type Field struct {
	Name  string
	ID    string
	Type  string
	Pages []int
}

// TemplateFields lists the form fields a PDF template carries, in the
// order pdfcpu exports them.
func TemplateFields(path string) ([]Field, error) {
	dir, err := os.MkdirTemp("", "f1040-export-")
	if err != nil {
		return nil, errors.Wrap(err, "export workspace")
	}
	defer os.RemoveAll(dir)

	exported := filepath.Join(dir, "form.json")
	if err := api.ExportFormFile(path, exported, nil); err != nil {
		return nil, errors.Wrapf(err, "export form data from %s", filepath.Base(path))
	}
	raw, err := os.ReadFile(exported)
	if err != nil {
		return nil, err
	}

	var doc formDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(err, "decode form data from %s", filepath.Base(path))
	}
	if len(doc.Forms) == 0 {
		return nil, errors.Newf("%s carries no form", filepath.Base(path))
	}

	var fields []Field
	for _, form := range doc.Forms {
		for _, f := range form.TextFields {
			fields = append(fields, Field{Name: f.Name, ID: f.ID, Type: FieldText, Pages: f.Pages})
		}
		for _, f := range form.DateFields {
			fields = append(fields, Field{Name: f.Name, ID: f.ID, Type: FieldDate, Pages: f.Pages})
		}
		for _, f := range form.CheckBoxes {
			fields = append(fields, Field{Name: f.Name, ID: f.ID, Type: FieldCheckBox, Pages: f.Pages})
		}
		for _, f := range form.RadioGroups {
			fields = append(fields, Field{Name: f.Name, ID: f.ID, Type: FieldRadioGroup, Pages: f.Pages})
		}
		for _, f := range form.ComboBoxes {
			fields = append(fields, Field{Name: f.Name, ID: f.ID, Type: FieldComboBox, Pages: f.Pages})
		}
		for _, f := range form.ListBoxes {
			fields = append(fields, Field{Name: f.Name, ID: f.ID, Type: FieldListBox, Pages: f.Pages})
		}
	}
	return fields, nil
}

// ── pdfcpu form JSON ────────────────────────────────────────────────────────
//
// The structures below mirror the JSON pdfcpu emits for `pdfcpu form export`
// and accepts for `pdfcpu form fill`.

type formDoc struct {
	Forms []fillForm `json:"forms"`
}

type fillForm struct {
	TextFields  []textField  `json:"textfield,omitempty"`
	DateFields  []textField  `json:"datefield,omitempty"`
	CheckBoxes  []checkBox   `json:"checkbox,omitempty"`
	RadioGroups []radioGroup `json:"radiobuttongroup,omitempty"`
	ComboBoxes  []choiceBox  `json:"combobox,omitempty"`
	ListBoxes   []choiceBox  `json:"listbox,omitempty"`
}

func (f fillForm) empty() bool {
	return len(f.TextFields) == 0 && len(f.CheckBoxes) == 0 && len(f.RadioGroups) == 0
}

type textField struct {
	Pages  []int  `json:"pages,omitempty"`
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Value  string `json:"value"`
	Locked bool   `json:"locked"`
}

type checkBox struct {
	Pages  []int  `json:"pages,omitempty"`
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Value  bool   `json:"value"`
	Locked bool   `json:"locked"`
}

type radioGroup struct {
	Pages   []int    `json:"pages,omitempty"`
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name,omitempty"`
	Options []string `json:"options,omitempty"`
	Value   string   `json:"value"`
	Locked  bool     `json:"locked"`
}

type choiceBox struct {
	Pages   []int    `json:"pages,omitempty"`
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name,omitempty"`
	Options []string `json:"options,omitempty"`
	Value   string   `json:"value"`
	Locked  bool     `json:"locked"`
}
