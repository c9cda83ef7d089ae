package templates

import (
	"strings"
	"time"

	"github.com/csg33k/f1040-filler/internal/domain"
)

// when formats a timestamp for the ledger views.
func when(t time.Time) string {
	return t.Local().Format("Jan 02, 2006 15:04")
}

// whenOpt renders an optional timestamp, "-" when unset.
func whenOpt(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return when(*t)
}

// statusClass maps a run status to its badge CSS class.
func statusClass(s domain.RunStatus) string {
	switch s {
	case domain.RunCompleted:
		return "status-ok"
	case domain.RunFailed:
		return "status-bad"
	default:
		return "status-wip"
	}
}

// shortID trims a run UUID down to its first segment for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
