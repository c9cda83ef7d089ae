package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/csg33k/f1040-filler/cmd/taxfill/commands"
	"github.com/csg33k/f1040-filler/internal/logging"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "taxfill",
	Short: "Fill IRS Form 1040 PDFs from JSON form configurations",
	Long: `taxfill resolves JSON form configurations and writes the values into
blank IRS PDF templates.

Available commands:
  fill    - Fill a 1040 template from a configuration document
  fields  - List the AcroForm fields a template carries
  check   - Validate configurations without filling anything

Examples:
  taxfill fill --config box.json --template templates/f1040.pdf
  taxfill fields --template templates/f1040.pdf --check
  taxfill check cases/*.json`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(false, debug)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return commands.UsageError(err)
	})
	rootCmd.AddCommand(commands.FillCmd)
	rootCmd.AddCommand(commands.FieldsCmd)
	rootCmd.AddCommand(commands.CheckCmd)
}

func main() {
	err := rootCmd.Execute()
	logging.Cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(commands.ExitCode(err))
	}
}
