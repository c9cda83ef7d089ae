package domain

import "time"

// RunStatus tracks a processing run through its lifecycle.
type RunStatus string

const (
	RunPending   RunStatus = "pending"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Run records one form processing request: the uploaded configuration,
// the produced output, and how the walk went.
type Run struct {
	ID             string // UUID, also the work subdirectory name
	Form           string
	TaxYear        int
	ConfigFile     string // uploaded configuration, as stored in the work dir
	OutputFile     string // filled PDF name requested by the configuration
	Status         RunStatus
	Error          string // aggregate failure text for failed runs
	FieldsWritten  int
	ErrorsRecorded int
	CreatedAt      time.Time
	CompletedAt    *time.Time
}
