// Package fill runs the end-to-end form pipeline: parse and validate a
// configuration document, walk the form tree, then write the resolved
// fields into a PDF template.
package fill

import (
	"context"
	"os"
	"path/filepath"

	"github.com/csg33k/f1040-filler/internal/engine"
	"github.com/csg33k/f1040-filler/internal/errors"
	"github.com/csg33k/f1040-filler/internal/formcfg"
	"github.com/csg33k/f1040-filler/internal/logging"
	"github.com/csg33k/f1040-filler/internal/ports"
	"github.com/csg33k/f1040-filler/internal/tags"
	"github.com/csg33k/f1040-filler/internal/validate"
)

// Service implements ports.FormFiller on top of the expression engine
// and a PDF form writer.
type Service struct {
	writers func() ports.FormWriter
}

// New returns a Service that draws a fresh writer from writers for each
// fill request.
func New(writers func() ports.FormWriter) *Service {
	return &Service{writers: writers}
}

// Fill parses req.Config, resolves every field of the named form and
// writes the result into a copy of req.Template. The debug dump path
// comes from the request or, failing that, from the configuration
// itself; either way the dump is written even when the walk records
// errors so partially resolved trees stay inspectable.
func (s *Service) Fill(ctx context.Context, req ports.FillRequest) (*ports.FillResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := validate.Parse(req.Config)
	if err != nil {
		return nil, err
	}
	lookup := tags.Lookup(doc.Name)
	if lookup == nil {
		return nil, errors.Newf("no field dictionary for form %q", doc.Name)
	}

	w := s.writers()
	proc := engine.New(lookup)
	res, walkErr := proc.Run(doc.Form, doc.W2.Totals, w)
	if res == nil {
		return nil, walkErr
	}

	dump := req.DebugJSON
	if dump == "" {
		dump = doc.Debug
	}
	if dump != "" {
		if err := dumpTree(dump, doc.Root); err != nil {
			logging.Warnf("debug dump %s: %v", dump, err)
		} else {
			logging.Infof("wrote resolved tree to %s", dump)
		}
	}

	out := &ports.FillResult{
		Form:    doc.Name,
		TaxYear: doc.TaxYear,
		// Staged is the number of distinct fields headed for the PDF;
		// zero and empty values resolve without staging anything.
		FieldsWritten: w.Staged(),
		OutputName:    doc.Output,
		UniqueErrors:  res.UniqueErrors,
		TotalErrors:   res.TotalErrors,
	}
	if walkErr != nil {
		return out, walkErr
	}

	dest := req.Output
	if dest == "" {
		dest = doc.Output
	}
	out.OutputPath = dest

	missing, err := w.Fill(req.Template, dest)
	if err != nil {
		return out, errors.Wrapf(err, "fill %s", filepath.Base(req.Template))
	}
	out.MissingFields = missing
	for _, name := range missing {
		logging.Warnf("template has no field %s", name)
	}
	logging.Infof("wrote %s with %d of %d staged fields", dest, w.Staged()-len(missing), w.Staged())
	return out, nil
}

func dumpTree(path string, root *formcfg.Object) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := formcfg.Encode(f, root); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
