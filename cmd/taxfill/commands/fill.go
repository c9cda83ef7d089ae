package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/csg33k/f1040-filler/internal/adapters/pdf"
	"github.com/csg33k/f1040-filler/internal/adapters/pdffill"
	"github.com/csg33k/f1040-filler/internal/domain"
	"github.com/csg33k/f1040-filler/internal/errors"
	"github.com/csg33k/f1040-filler/internal/fill"
	"github.com/csg33k/f1040-filler/internal/ports"
)

var (
	fillConfig   string
	fillTemplate string
	fillOut      string
	fillDebug    string
	fillSummary  string
)

// FillCmd fills a blank IRS template from a configuration document.
var FillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill a 1040 PDF template from a configuration document",
	Long: `Fill resolves a JSON form configuration and writes the values into
the AcroForm fields of a blank IRS PDF template.

The configuration names its own output file; --out overrides it.

Examples:
  taxfill fill --config box.json --template templates/f1040.pdf
  taxfill fill -c box.json -t f1040.pdf -o out/bob_1040.pdf --debug-json resolved.json
  taxfill fill -c box.json -t f1040.pdf --summary summary.pdf`,
	Args: noArgs,
	RunE: runFill,
}

func init() {
	FillCmd.Flags().StringVarP(&fillConfig, "config", "c", "", "form configuration JSON (required)")
	FillCmd.Flags().StringVarP(&fillTemplate, "template", "t", "", "blank AcroForm PDF template (required)")
	FillCmd.Flags().StringVarP(&fillOut, "out", "o", "", "output path (default: the configuration's output_file_name)")
	FillCmd.Flags().StringVar(&fillDebug, "debug-json", "", "write the resolved tree to this path")
	FillCmd.Flags().StringVar(&fillSummary, "summary", "", "also write a processing summary PDF to this path")
}

func runFill(cmd *cobra.Command, args []string) error {
	if fillConfig == "" || fillTemplate == "" {
		return usagef("fill needs both --config and --template")
	}
	raw, err := os.ReadFile(fillConfig)
	if err != nil {
		if os.IsNotExist(err) {
			return missingFile(err)
		}
		return err
	}
	if _, err := os.Stat(fillTemplate); err != nil {
		return missingFile(err)
	}

	svc := fill.New(func() ports.FormWriter { return pdffill.New() })
	res, err := svc.Fill(cmd.Context(), ports.FillRequest{
		Config:    raw,
		Template:  fillTemplate,
		Output:    fillOut,
		DebugJSON: fillDebug,
	})
	if err != nil {
		if errors.Is(err, errors.ErrMalformedConfig) {
			return badConfig(err)
		}
		// Walk failures still carry counts worth showing before exiting.
		if res != nil {
			fmt.Printf("%s TY %d: %d fields written, %d errors (%d unique)\n",
				res.Form, res.TaxYear, res.FieldsWritten, res.TotalErrors, res.UniqueErrors)
		}
		return err
	}

	fmt.Printf("%s TY %d: wrote %s (%d fields)\n", res.Form, res.TaxYear, res.OutputPath, res.FieldsWritten)
	for _, name := range res.MissingFields {
		fmt.Printf("  template has no field %s\n", name)
	}

	if fillSummary != "" {
		return writeSummary(res, fillSummary)
	}
	return nil
}

// writeSummary renders a processing summary PDF for the finished fill.
func writeSummary(res *ports.FillResult, path string) error {
	now := time.Now()
	run := &domain.Run{
		ID:             uuid.NewString(),
		Form:           res.Form,
		TaxYear:        res.TaxYear,
		ConfigFile:     filepath.Base(fillConfig),
		OutputFile:     res.OutputName,
		Status:         domain.RunCompleted,
		FieldsWritten:  res.FieldsWritten,
		ErrorsRecorded: res.TotalErrors,
		CreatedAt:      now,
		CompletedAt:    &now,
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pdf.GenerateSummary(run, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("  summary: %s\n", path)
	return nil
}
