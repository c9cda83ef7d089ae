// Package commands holds the taxfill subcommands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/csg33k/f1040-filler/internal/errors"
)

// Exit codes of the taxfill binary: 1 is any processing failure, 2 a
// usage problem, 3 a missing input file, 4 a configuration document the
// parser rejects.
const (
	ExitFailure     = 1
	ExitUsage       = 2
	ExitMissingFile = 3
	ExitBadConfig   = 4
)

type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

// UsageError marks err as a command line usage problem.
func UsageError(err error) error {
	return &codedError{code: ExitUsage, err: err}
}

// ExitCode maps an Execute error to the process exit code.
func ExitCode(err error) int {
	var coded *codedError
	if errors.As(err, &coded) {
		return coded.code
	}
	return ExitFailure
}

func usagef(format string, args ...any) error {
	return UsageError(errors.Newf(format, args...))
}

// noArgs rejects positional arguments as usage errors.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return UsageError(err)
	}
	return nil
}

func missingFile(err error) error {
	return &codedError{code: ExitMissingFile, err: err}
}

func badConfig(err error) error {
	return &codedError{code: ExitBadConfig, err: err}
}
