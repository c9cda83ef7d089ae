// Package pdffill writes resolved form fields into the AcroForm fields of
// a PDF template using pdfcpu's form fill pipeline.
package pdffill

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/csg33k/f1040-filler/internal/domain"
	"github.com/csg33k/f1040-filler/internal/engine"
	"github.com/csg33k/f1040-filler/internal/errors"
)

type staged struct {
	name  string
	value string
}

// Writer stages field values during a walk and flushes them into a copy
// of a form template. It implements ports.FormWriter and carries per-run
// state: draw a fresh Writer for every fill.
type Writer struct {
	fields []staged
	index  map[string]int
	conf   *model.Configuration
}

func New() *Writer {
	return &Writer{
		index: make(map[string]int),
		conf:  model.NewDefaultConfiguration(),
	}
}

// Write stages one resolved value for the named field. Empty strings and
// zero amounts mean a blank box on the printed form, so they stage
// nothing. Amounts are normalized for display: whole numbers lose their
// decimals, everything else keeps them.
func (w *Writer) Write(field string, value any) error {
	if field == "" {
		return nil
	}
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
	case json.Number:
		if f, err := v.Float64(); err == nil && f == 0 {
			return nil
		}
	case float64:
		if v == 0 {
			return nil
		}
	case int:
		if v == 0 {
			return nil
		}
	}

	text := engine.DisplayString(value)
	if i, ok := w.index[field]; ok {
		w.fields[i].value = text
		return nil
	}
	w.index[field] = len(w.fields)
	w.fields = append(w.fields, staged{name: field, value: text})
	return nil
}

// Staged reports how many field values the writer holds.
func (w *Writer) Staged() int { return len(w.fields) }

// Fill matches the staged values against the template's form fields and
// writes the filled copy to output. Staged names may be bare AcroForm
// leaf names (f1_32[0]); the template's fully qualified names are matched
// by suffix. Names the template does not carry come back in missing; the
// output is written either way so a sparse match still yields a PDF.
func (w *Writer) Fill(template, output string) (missing []string, err error) {
	fields, err := TemplateFields(template)
	if err != nil {
		return nil, err
	}

	form, missing := w.match(fields)
	if form.empty() {
		if err := copyFile(template, output); err != nil {
			return missing, err
		}
		return missing, nil
	}

	dir, err := os.MkdirTemp("", "f1040-fill-")
	if err != nil {
		return missing, errors.Wrap(err, "fill workspace")
	}
	defer os.RemoveAll(dir)

	fillJSON := filepath.Join(dir, "fields.json")
	raw, err := json.Marshal(formDoc{Forms: []fillForm{form}})
	if err != nil {
		return missing, err
	}
	if err := os.WriteFile(fillJSON, raw, 0o644); err != nil {
		return missing, err
	}

	if err := api.FillFormFile(template, fillJSON, output, w.conf); err != nil {
		return missing, errors.Wrapf(err, "fill %s", filepath.Base(template))
	}
	return missing, nil
}

// match partitions the staged values by the template's field types.
// Checkbox state names arrive as PDF name literals (/1, /Off); a radio
// group takes the state with the slash stripped, a checkbox is on unless
// the state is /Off.
func (w *Writer) match(fields []Field) (fillForm, []string) {
	var form fillForm
	var missing []string
	for _, s := range w.fields {
		f, ok := findField(fields, s.name)
		if !ok {
			missing = append(missing, s.name)
			continue
		}
		switch f.Type {
		case FieldCheckBox:
			form.CheckBoxes = append(form.CheckBoxes, checkBox{
				Name:  f.Name,
				Value: s.value != domain.CheckboxOff,
			})
		case FieldRadioGroup:
			form.RadioGroups = append(form.RadioGroups, radioGroup{
				Name:  f.Name,
				Value: strings.TrimPrefix(s.value, "/"),
			})
		default:
			form.TextFields = append(form.TextFields, textField{
				Name:  f.Name,
				Value: s.value,
			})
		}
	}
	return form, missing
}

func findField(fields []Field, name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name || f.ID == name {
			return f, true
		}
	}
	dotted := "." + name
	for _, f := range fields {
		if strings.HasSuffix(f.Name, dotted) {
			return f, true
		}
	}
	return Field{}, false
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
