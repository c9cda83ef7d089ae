// Package ports defines the interfaces between the form processing core
// and its adapters (PDF output, persistence, the fill pipeline).
package ports

import (
	"context"

	"github.com/csg33k/f1040-filler/internal/domain"
)

// FieldSink receives resolved field values during a form walk. Values are
// model values: amounts as float64 or json.Number, text and checkbox
// states as strings. Implementations normalize for display and may defer
// actual output until the walk finishes.
type FieldSink interface {
	Write(field string, value any) error
}

// FormWriter stages field values during a walk and afterwards writes
// them into a copy of a PDF form template. A writer carries per-run
// state and is not reused across fills.
type FormWriter interface {
	FieldSink

	// Staged reports how many field values the writer is holding.
	Staged() int

	// Fill writes the staged values into template and saves the result
	// at output. It returns the staged field names the template does
	// not carry.
	Fill(template, output string) (missing []string, err error)
}

// FillRequest is one end-to-end form filling job.
type FillRequest struct {
	Config    []byte // uploaded configuration document
	Template  string // blank form template path
	Output    string // destination path; empty uses the configuration's output_file_name
	DebugJSON string // optional post-walk tree dump path; empty disables
}

// FillResult reports what a completed fill produced.
type FillResult struct {
	Form          string
	TaxYear       int
	OutputName    string // output file name named by the configuration
	OutputPath    string // where the filled PDF was written
	FieldsWritten int
	UniqueErrors  int
	TotalErrors   int
	MissingFields []string // staged fields the template does not carry
}

// FormFiller validates a configuration, walks it and fills the template.
type FormFiller interface {
	Fill(ctx context.Context, req FillRequest) (*FillResult, error)
}

// RunRepository persists processing run records.
type RunRepository interface {
	CreateRun(ctx context.Context, run *domain.Run) error
	GetRun(ctx context.Context, id string) (*domain.Run, error)
	ListRuns(ctx context.Context) ([]domain.Run, error)
	UpdateRun(ctx context.Context, run *domain.Run) error
	DeleteRun(ctx context.Context, id string) error
}
