package engine

import "github.com/csg33k/f1040-filler/internal/errors"

// accumulator tracks the field failures of a single run. Log output is
// deduplicated on the (classification, field) pair; the counts and the
// critical flag are not, so the aggregate error reflects every failure the
// walk hit, repeats included.
type accumulator struct {
	seen     map[errors.Classification]map[string]struct{}
	unique   int
	total    int
	critical bool
}

func newAccumulator() *accumulator {
	return &accumulator{seen: make(map[errors.Classification]map[string]struct{})}
}

// Record notes one failure and reports whether this (classification, key)
// pair is new for the run. Callers log only on the first occurrence;
// every recorded failure marks the run critical either way.
func (a *accumulator) Record(class errors.Classification, key string) bool {
	a.total++
	a.critical = true
	byKey, ok := a.seen[class]
	if !ok {
		byKey = make(map[string]struct{})
		a.seen[class] = byKey
	}
	if _, dup := byKey[key]; dup {
		return false
	}
	byKey[key] = struct{}{}
	a.unique++
	return true
}

// Err returns the run's single aggregate failure, or nil when nothing was
// recorded.
func (a *accumulator) Err() error {
	if !a.critical {
		return nil
	}
	return errors.Wrapf(errors.ErrCriticalErrors, "%d unique failure(s) across %d recorded error(s)", a.unique, a.total)
}
