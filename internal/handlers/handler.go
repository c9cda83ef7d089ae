// Package handlers wires the HTTP surface of the 1040 filler: upload a
// configuration, run the fill, browse and download the results.
package handlers

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/csg33k/f1040-filler/internal/adapters/pdf"
	"github.com/csg33k/f1040-filler/internal/config"
	"github.com/csg33k/f1040-filler/internal/domain"
	"github.com/csg33k/f1040-filler/internal/errors"
	"github.com/csg33k/f1040-filler/internal/logging"
	"github.com/csg33k/f1040-filler/internal/ports"
	"github.com/csg33k/f1040-filler/internal/templates"
)

const (
	defaultTemplate = "f1040.pdf"
	filledName      = "filled.pdf"
	resolvedName    = "resolved.json"
	maxConfigBytes  = 1 << 20
)

type Handler struct {
	repo   ports.RunRepository
	filler ports.FormFiller
	forms  config.Forms
}

func New(repo ports.RunRepository, filler ports.FormFiller, forms config.Forms) *Handler {
	return &Handler{repo: repo, filler: filler, forms: forms}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", h.index)
	mux.HandleFunc("GET /runs", h.listRuns)
	mux.HandleFunc("POST /runs", h.createRun)
	mux.HandleFunc("GET /runs/{id}", h.viewRun)
	mux.HandleFunc("DELETE /runs/{id}", h.deleteRun)
	mux.HandleFunc("GET /runs/{id}/pdf", h.downloadFilled)
	mux.HandleFunc("GET /runs/{id}/summary", h.downloadSummary)
	mux.HandleFunc("GET /runs/{id}/debug", h.downloadResolved)
	return mux
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	runs, err := h.repo.ListRuns(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	render(w, r, templates.Index(runs))
}

// listRuns serves the ledger items alone, for htmx swaps of the list.
func (h *Handler) listRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.repo.ListRuns(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	render(w, r, templates.RunList(runs))
}

// createRun accepts an uploaded configuration, runs the fill pipeline and
// records the outcome. Walk failures still produce a run record; only
// requests rejected before the walk starts come back as plain 400s.
func (h *Handler) createRun(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxConfigBytes); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	file, header, err := r.FormFile("config")
	if err != nil {
		http.Error(w, "configuration file is required", 400)
		return
	}
	defer file.Close()
	raw, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	tmpl := filepath.Base(r.FormValue("template"))
	if tmpl == "" || tmpl == "." {
		tmpl = defaultTemplate
	}

	id := uuid.NewString()
	workDir := h.workDir(id)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	// Keep the uploaded configuration next to the outputs it produced.
	cfgName := filepath.Base(header.Filename)
	if cfgName == "" || cfgName == "." {
		cfgName = "config.json"
	}
	if err := os.WriteFile(filepath.Join(workDir, cfgName), raw, 0o644); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	res, fillErr := h.filler.Fill(r.Context(), ports.FillRequest{
		Config:    raw,
		Template:  filepath.Join(h.forms.TemplateDir, tmpl),
		Output:    filepath.Join(workDir, filledName),
		DebugJSON: filepath.Join(workDir, resolvedName),
	})
	if res == nil {
		// Rejected before the walk started, nothing worth recording.
		if err := os.RemoveAll(workDir); err != nil {
			logging.Warnf("removing work dir %s: %v", workDir, err)
		}
		http.Error(w, fillErr.Error(), 400)
		return
	}

	now := time.Now()
	run := &domain.Run{
		ID:             id,
		Form:           res.Form,
		TaxYear:        res.TaxYear,
		ConfigFile:     cfgName,
		OutputFile:     res.OutputName,
		Status:         domain.RunCompleted,
		FieldsWritten:  res.FieldsWritten,
		ErrorsRecorded: res.TotalErrors,
		CompletedAt:    &now,
	}
	if fillErr != nil {
		run.Status = domain.RunFailed
		run.Error = fillErr.Error()
	}
	if err := h.repo.CreateRun(r.Context(), run); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.Header().Set("HX-Redirect", "/runs/"+run.ID)
	if fillErr != nil {
		// htmx still follows the redirect, so the failed run page shows
		// the recorded errors.
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) viewRun(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	render(w, r, templates.Detail(run))
}

func (h *Handler) deleteRun(w http.ResponseWriter, r *http.Request) {
	id, err := runID(r)
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	if err := h.repo.DeleteRun(r.Context(), id); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if err := os.RemoveAll(h.workDir(id)); err != nil {
		logging.Warnf("removing work dir for run %s: %v", id, err)
	}
	w.Header().Set("HX-Redirect", "/")
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) downloadFilled(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	if run.Status != domain.RunCompleted {
		http.Error(w, "run did not complete, no filled form to download", 400)
		return
	}
	data, err := os.ReadFile(filepath.Join(h.workDir(run.ID), filledName))
	if err != nil {
		http.Error(w, "filled form is no longer on disk", 404)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, run.OutputFile))
	w.Write(data)
}

func (h *Handler) downloadSummary(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := pdf.GenerateSummary(run, &buf); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	filename := fmt.Sprintf("%s_summary.pdf", strings.TrimSuffix(run.OutputFile, ".pdf"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(buf.Bytes())
}

func (h *Handler) downloadResolved(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	data, err := os.ReadFile(filepath.Join(h.workDir(run.ID), resolvedName))
	if err != nil {
		http.Error(w, "no resolved tree recorded for this run", 404)
		return
	}
	filename := fmt.Sprintf("%s_resolved.json", strings.TrimSuffix(run.OutputFile, ".pdf"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(data)
}

// loadRun fetches the run named by the path, writing the error response
// itself when the id is bad or the run is gone.
func (h *Handler) loadRun(w http.ResponseWriter, r *http.Request) (*domain.Run, bool) {
	id, err := runID(r)
	if err != nil {
		http.Error(w, "invalid id", 400)
		return nil, false
	}
	run, err := h.repo.GetRun(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "run not found", 404)
			return nil, false
		}
		http.Error(w, err.Error(), 500)
		return nil, false
	}
	return run, true
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), 500)
	}
}

func (h *Handler) workDir(id string) string {
	return filepath.Join(h.forms.WorkDir, id)
}

// runID validates the path id. Run ids are UUIDs, anything else is
// rejected before it can reach the filesystem.
func runID(r *http.Request) (string, error) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", err
	}
	return id, nil
}
