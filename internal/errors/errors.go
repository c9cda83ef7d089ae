// Package errors builds on cockroachdb/errors and defines the failure
// taxonomy of the form processing engine.
//
// Field-level failures implement FieldFailure so the engine can classify
// and deduplicate them; everything else wraps through the re-exported
// constructors so call sites import a single errors package.
package errors

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Re-exported so the rest of the module depends on one errors package.
var (
	New    = errors.New
	Newf   = errors.Newf
	Wrap   = errors.Wrap
	Wrapf  = errors.Wrapf
	Mark   = errors.Mark
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// ErrMalformedConfig marks a structural failure of an uploaded document:
// the root is not a JSON object, or the configuration section is missing.
// Structural failures abort the run before any field is processed.
var ErrMalformedConfig = New("malformed form configuration")

// ErrCriticalErrors is the aggregate failure raised once, after the walk,
// when at least one field error was recorded. Individual field failures
// never abort the walk on their own.
var ErrCriticalErrors = New("form processing recorded critical errors")

// Classification buckets a field failure for deduplicated error accounting.
type Classification string

const (
	ClassKey  Classification = "key_error"
	ClassType Classification = "type_error"
	ClassCalc Classification = "calc_error"
)

// FieldFailure identifies a failure of a single form field. DedupKey names
// the offending field so repeats of the same failure are logged only once
// per run.
type FieldFailure interface {
	error
	Classification() Classification
	DedupKey() string
}

// ClassificationOf returns the classification err carries, falling back to
// ClassCalc for failures outside the taxonomy.
func ClassificationOf(err error) Classification {
	var f FieldFailure
	if As(err, &f) {
		return f.Classification()
	}
	return ClassCalc
}

// DedupKeyOf returns the dedup identity err carries, falling back to the
// error text.
func DedupKeyOf(err error) string {
	var f FieldFailure
	if As(err, &f) {
		return f.DedupKey()
	}
	return err.Error()
}

// MissingReferenceError reports a directive none of whose referenced keys
// resolve anywhere in the document.
type MissingReferenceError struct {
	Section string
	Key     string
	Refs    []string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("%s.%s: none of the referenced keys [%s] found in the document",
		e.Section, e.Key, strings.Join(e.Refs, ", "))
}

func (e *MissingReferenceError) Classification() Classification { return ClassKey }
func (e *MissingReferenceError) DedupKey() string               { return e.Section + "." + e.Key }

// NonNumericValueError reports a present value that fails numeric coercion
// where a number is required, such as a subtraction minuend.
type NonNumericValueError struct {
	Section string
	Key     string
	Ref     string
	Value   any
}

func (e *NonNumericValueError) Error() string {
	return fmt.Sprintf("%s.%s: referenced key %q holds non-numeric value %v",
		e.Section, e.Key, e.Ref, e.Value)
}

func (e *NonNumericValueError) Classification() Classification { return ClassType }
func (e *NonNumericValueError) DedupKey() string               { return e.Section + "." + e.Key }

// MalformedDirectiveError reports a sum or subtract whose value is not a
// usable list of key names.
type MalformedDirectiveError struct {
	Section string
	Key     string
	Reason  string
}

func (e *MalformedDirectiveError) Error() string {
	return fmt.Sprintf("%s.%s: malformed directive: %s", e.Section, e.Key, e.Reason)
}

func (e *MalformedDirectiveError) Classification() Classification { return ClassType }
func (e *MalformedDirectiveError) DedupKey() string               { return e.Section + "." + e.Key }

// AggregateUnavailableError reports a W-2 aggregate marker that cannot be
// resolved because the wage statement totals are absent.
type AggregateUnavailableError struct {
	Section string
	Key     string
	Box     string
}

func (e *AggregateUnavailableError) Error() string {
	return fmt.Sprintf("%s.%s: W-2 aggregate %q is unavailable", e.Section, e.Key, e.Box)
}

func (e *AggregateUnavailableError) Classification() Classification { return ClassKey }
func (e *AggregateUnavailableError) DedupKey() string               { return e.Section + "." + e.Key }

// UnknownFieldError reports a field id that exists on no page of the PDF
// template. Unknown fields are reported but never abort the remaining
// writes.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("PDF template has no form field %q", e.Field)
}

func (e *UnknownFieldError) Classification() Classification { return ClassKey }
func (e *UnknownFieldError) DedupKey() string               { return e.Field }
