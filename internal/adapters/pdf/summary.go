// Package pdf generates a human-readable processing summary PDF for a
// form filling run: the run identity, the outcome of the field walk, and
// the error accounting.
package pdf

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/csg33k/f1040-filler/internal/domain"
)

// GenerateSummary writes a one-page run summary to w.
func GenerateSummary(run *domain.Run, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("{nb}")

	pdf.AddPage()
	drawSummaryPage(pdf, run)

	return pdf.Output(w)
}

func drawSummaryPage(pdf *fpdf.Fpdf, run *domain.Run) {
	pageW, pageH := pdf.GetPageSize()
	marginL, marginT, marginR, marginB := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// ── Header bar ───────────────────────────────────────────────────────────
	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	pdf.CellFormat(contentW-4, 7, run.Form+"  PROCESSING SUMMARY", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 7, "Page "+fmt.Sprint(pdf.PageNo())+" of {nb}", "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	y := marginT + 13

	// ── Run section ──────────────────────────────────────────────────────────
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(contentW, 5.5, "RUN", "LRT", 1, "L", true, 0, "")
	y += 5.5

	colHalf := contentW / 2
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(colHalf, 6, "Run ID: "+run.ID, "L", 0, "L", false, 0, "")
	pdf.CellFormat(colHalf, 6, "Status: "+string(run.Status), "R", 1, "R", false, 0, "")
	y += 6

	pdf.SetXY(marginL, y)
	pdf.CellFormat(colHalf, 5.5, "Configuration: "+run.ConfigFile, "L", 0, "L", false, 0, "")
	pdf.CellFormat(colHalf, 5.5, "Output: "+run.OutputFile, "R", 1, "R", false, 0, "")
	y += 5.5

	completed := "-"
	if run.CompletedAt != nil {
		completed = formatWhen(*run.CompletedAt)
	}
	pdf.SetXY(marginL, y)
	pdf.CellFormat(colHalf, 5.5, "Started: "+formatWhen(run.CreatedAt), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(colHalf, 5.5, "Completed: "+completed, "RB", 1, "R", false, 0, "")
	y += 5.5

	y += 5

	// ── Results table ────────────────────────────────────────────────────────
	descW := contentW * 0.52
	valW := contentW - descW

	pdf.SetFillColor(30, 30, 30)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 8.5)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(descW, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(valW, 7, "Value", "1", 1, "C", true, 0, "")
	y += 7
	pdf.SetTextColor(0, 0, 0)

	type sumRow struct {
		label string
		value string
		flag  bool
	}

	rows := []sumRow{
		{"Form", run.Form, false},
		{"Tax Year", strconv.Itoa(run.TaxYear), false},
		{"Fields Written", strconv.Itoa(run.FieldsWritten), false},
		{"Errors Recorded", strconv.Itoa(run.ErrorsRecorded), run.ErrorsRecorded > 0},
	}
	if run.Error != "" {
		rows = append(rows, sumRow{"Failure", run.Error, true})
	}

	rowH := 6.5
	for i, r := range rows {
		pdf.SetXY(marginL, y)
		if i%2 == 0 {
			pdf.SetFillColor(250, 250, 250)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		if r.flag {
			pdf.SetFont("Helvetica", "B", 8.5)
		} else {
			pdf.SetFont("Helvetica", "", 8.5)
		}
		pdf.CellFormat(descW, rowH, r.label, "1", 0, "L", true, 0, "")

		if r.flag {
			pdf.SetFillColor(245, 220, 220) // light red for trouble rows
		}
		pdf.CellFormat(valW, rowH, r.value, "1", 1, "R", true, 0, "")
		y += rowH
	}

	// ── Footer ─────────────────────────────────────────────────────────────────
	pdf.SetXY(marginL, pageH-marginB-6)
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(contentW/2, 5, "Generated by 1040 Filler", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Run "+run.ID+" | TY "+strconv.Itoa(run.TaxYear), "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func formatWhen(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
