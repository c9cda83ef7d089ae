package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/csg33k/f1040-filler/internal/errors"
	"github.com/csg33k/f1040-filler/internal/validate"
)

// CheckCmd validates configuration documents without filling anything.
var CheckCmd = &cobra.Command{
	Use:   "check <config.json> [more.json ...]",
	Short: "Validate form configurations without filling anything",
	Long: `Check parses and validates each configuration document and reports
rule violations per file. Files are checked in parallel.

Examples:
  taxfill check box.json
  taxfill check cases/*.json`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return usagef("check needs at least one configuration path")
		}
		return nil
	},
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	results := make([]error, len(args))

	var eg errgroup.Group
	eg.SetLimit(4)
	for i, path := range args {
		eg.Go(func() error {
			raw, err := os.ReadFile(path)
			if err != nil {
				results[i] = err
				return nil
			}
			_, results[i] = validate.Parse(raw)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	failed := 0
	for i, err := range results {
		if err == nil {
			fmt.Printf("ok    %s\n", args[i])
			continue
		}
		failed++
		fmt.Printf("FAIL  %s\n", args[i])
		for _, line := range strings.Split(err.Error(), "; ") {
			fmt.Printf("      %s\n", line)
		}
	}
	if failed > 0 {
		return errors.Newf("%d of %d configuration(s) failed validation", failed, len(args))
	}
	fmt.Printf("%d configuration(s) valid\n", len(args))
	return nil
}
