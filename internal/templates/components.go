// Package templates renders the web UI for the 1040 filler.
package templates

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/csg33k/f1040-filler/internal/domain"
)

// Views are html/template trees wrapped as templ components; the handlers
// only ever see templ.Component. A view can move to its own .templ file
// without changing any constructor signature.

var funcs = template.FuncMap{
	"when":    when,
	"whenOpt": whenOpt,
	"badge":   statusClass,
	"short":   shortID,
}

var baseTmpl = template.Must(template.New("base").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Form 1040 Filler</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link rel="preconnect" href="https://fonts.googleapis.com">
<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
<link href="https://fonts.googleapis.com/css2?family=IBM+Plex+Mono:wght@400;500;600&family=IBM+Plex+Sans:wght@300;400;500;600&display=swap" rel="stylesheet">
<script src="https://cdn.tailwindcss.com"></script>
<style>
  :root {
    --ink: #0d1117;
    --paper: #f5f0e8;
    --ledger: #e8e0cc;
    --accent: #c0392b;
    --accent2: #2c6e49;
    --muted: #6b5e4e;
    --rule: #b8a898;
  }
  * { box-sizing: border-box; }
  body {
    background: var(--paper);
    color: var(--ink);
    font-family: 'IBM Plex Sans', sans-serif;
    background-image:
      repeating-linear-gradient(0deg, transparent, transparent 27px, var(--rule) 27px, var(--rule) 28px);
    min-height: 100vh;
  }
  .mono { font-family: 'IBM Plex Mono', monospace; }
  .stamp {
    display: inline-block;
    border: 3px solid var(--accent);
    color: var(--accent);
    font-family: 'IBM Plex Mono', monospace;
    font-weight: 600;
    letter-spacing: 0.15em;
    padding: 2px 10px;
    transform: rotate(-2deg);
    font-size: 0.7rem;
  }
  .card {
    background: rgba(255,255,255,0.7);
    border: 1px solid var(--ledger);
    border-left: 4px solid var(--ink);
  }
  .field-label {
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.6rem;
    font-weight: 600;
    letter-spacing: 0.1em;
    text-transform: uppercase;
    color: var(--muted);
    display: block;
    margin-bottom: 2px;
  }
  input, select {
    background: white;
    border: 1px solid var(--rule);
    border-bottom: 2px solid var(--ink);
    padding: 6px 8px;
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.85rem;
    width: 100%;
    outline: none;
    transition: border-color 0.15s;
  }
  input:focus, select:focus { border-bottom-color: var(--accent); }
  .btn {
    font-family: 'IBM Plex Mono', monospace;
    font-weight: 600;
    font-size: 0.8rem;
    letter-spacing: 0.08em;
    padding: 8px 18px;
    border: 2px solid var(--ink);
    cursor: pointer;
    transition: all 0.15s;
    text-transform: uppercase;
  }
  .btn-primary { background: var(--ink); color: white; }
  .btn-primary:hover { background: var(--accent); border-color: var(--accent); }
  .btn-danger { background: white; color: var(--accent); border-color: var(--accent); }
  .btn-danger:hover { background: var(--accent); color: white; }
  .btn-success { background: var(--accent2); color: white; border-color: var(--accent2); }
  .btn-success:hover { filter: brightness(1.1); }
  .divider {
    border: none; border-top: 2px solid var(--ink);
    margin: 24px 0;
  }
  .section-header {
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.7rem;
    font-weight: 600;
    letter-spacing: 0.18em;
    text-transform: uppercase;
    color: var(--muted);
    border-bottom: 1px solid var(--rule);
    padding-bottom: 4px;
    margin-bottom: 16px;
  }
  .run-row { border-bottom: 1px solid var(--ledger); }
  .run-row:last-child { border-bottom: none; }
  .status-badge {
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.62rem;
    font-weight: 600;
    letter-spacing: 0.12em;
    text-transform: uppercase;
    padding: 2px 8px;
    border: 1px solid currentColor;
    display: inline-block;
  }
  .status-ok  { color: var(--accent2); }
  .status-bad { color: var(--accent); }
  .status-wip { color: var(--muted); }
  .htmx-indicator { opacity: 0; transition: opacity 0.2s; }
  .htmx-request .htmx-indicator { opacity: 1; }
</style>
</head>
<body>
<div style="max-width:1100px;margin:0 auto;padding:32px 24px;">

<!-- Header -->
<div style="display:flex;align-items:flex-start;justify-content:space-between;margin-bottom:32px;">
  <div>
    <div style="font-family:'IBM Plex Mono',monospace;font-size:0.65rem;letter-spacing:0.2em;color:var(--muted);margin-bottom:4px;">
      DEPARTMENT OF THE TREASURY &middot; INTERNAL REVENUE SERVICE
    </div>
    <h1 style="font-family:'IBM Plex Mono',monospace;font-size:1.6rem;font-weight:600;letter-spacing:-0.02em;margin:0;">
      Form 1040 Filler
    </h1>
    <div style="font-size:0.85rem;color:var(--muted);margin-top:4px;">
      U.S. Individual Income Tax Return &middot; PDF Form Fill Pipeline
    </div>
  </div>
  <div style="text-align:right;">
    <div class="stamp">F1040</div>
    <div style="font-family:'IBM Plex Mono',monospace;font-size:0.65rem;color:var(--muted);margin-top:8px;">OMB No. 1545-0074</div>
  </div>
</div>

{{template "content" .}}

<div style="margin-top:48px;padding-top:16px;border-top:1px solid var(--rule);font-family:'IBM Plex Mono',monospace;font-size:0.6rem;color:var(--muted);text-align:center;">
  1040 FILLER &middot; FOR INTERNAL USE &middot; NOT TAX ADVICE
</div>
</div>
</body>
</html>`))

// Shared between the index page and the htmx ledger fragment.
const runListItems = `{{define "run-list-items"}}
{{if not .}}
<div style="font-family:'IBM Plex Mono',monospace;font-size:0.8rem;color:var(--muted);padding:16px;text-align:center;">
  No runs yet. Upload a configuration to start one.
</div>
{{else}}
{{range .}}
<div class="card run-row" style="padding:14px 18px;margin-bottom:8px;display:flex;justify-content:space-between;align-items:center;">
  <div>
    <div style="font-family:'IBM Plex Mono',monospace;font-weight:600;font-size:0.9rem;">{{.OutputFile}}</div>
    <div style="font-size:0.75rem;color:var(--muted);margin-top:2px;">
      TY {{.TaxYear}} &middot; run {{short .ID}} &middot; {{when .CreatedAt}}
    </div>
    <div style="margin-top:4px;">
      <span class="status-badge {{badge .Status}}">{{.Status}}</span>
      <span style="font-size:0.72rem;color:var(--muted);margin-left:8px;">{{.FieldsWritten}} fields &middot; {{.ErrorsRecorded}} errors</span>
    </div>
  </div>
  <a href="/runs/{{.ID}}" style="text-decoration:none;">
    <button class="btn btn-primary" style="padding:6px 14px;font-size:0.7rem;">OPEN &rarr;</button>
  </a>
</div>
{{end}}
{{end}}
{{end}}`

// Index page
var indexTmpl = template.Must(template.Must(baseTmpl.Clone()).Parse(runListItems + `
{{define "content"}}
<div style="display:grid;grid-template-columns:380px 1fr;gap:32px;align-items:start;">

<!-- New Run Form -->
<div class="card" style="padding:24px;">
  <div class="section-header">New Run</div>
  <form hx-post="/runs" hx-target="body" hx-push-url="true" hx-encoding="multipart/form-data">

    <div>
      <label class="field-label">Configuration JSON *</label>
      <input type="file" name="config" accept=".json,application/json" required>
    </div>

    <div style="margin-top:12px;">
      <label class="field-label">Form Template</label>
      <input type="text" name="template" placeholder="f1040.pdf" class="mono">
      <div style="font-size:0.7rem;color:var(--muted);margin-top:4px;">
        Blank AcroForm PDF under the template directory. Leave empty for the default.
      </div>
    </div>

    <hr class="divider">
    <div style="display:flex;justify-content:flex-end;">
      <button type="submit" class="btn btn-primary">
        RUN FILL &rarr;
        <span class="htmx-indicator">&hellip;</span>
      </button>
    </div>
  </form>
</div>

<!-- Run Ledger -->
<div>
  <div class="section-header" style="display:flex;justify-content:space-between;align-items:baseline;">
    <span>Run Ledger</span>
    <button class="btn" style="padding:2px 10px;font-size:0.6rem;"
      hx-get="/runs" hx-target="#run-list" hx-swap="innerHTML">REFRESH</button>
  </div>
  <div id="run-list">
    {{template "run-list-items" .Runs}}
  </div>
</div>

</div>
{{end}}`))

var runListFrag = template.Must(template.New("run-list-frag").Funcs(funcs).Parse(runListItems))

var detailTmpl = template.Must(template.New("detail").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Run &middot; {{.OutputFile}}</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link href="https://fonts.googleapis.com/css2?family=IBM+Plex+Mono:wght@400;500;600&family=IBM+Plex+Sans:wght@300;400;500;600&display=swap" rel="stylesheet">
<script src="https://cdn.tailwindcss.com"></script>
<style>
  :root{--ink:#0d1117;--paper:#f5f0e8;--ledger:#e8e0cc;--accent:#c0392b;--accent2:#2c6e49;--muted:#6b5e4e;--rule:#b8a898;}
  *{box-sizing:border-box;}
  body{background:var(--paper);color:var(--ink);font-family:'IBM Plex Sans',sans-serif;background-image:repeating-linear-gradient(0deg,transparent,transparent 27px,var(--rule) 27px,var(--rule) 28px);min-height:100vh;}
  .mono{font-family:'IBM Plex Mono',monospace;}
  .card{background:rgba(255,255,255,0.7);border:1px solid var(--ledger);border-left:4px solid var(--ink);}
  .field-label{font-family:'IBM Plex Mono',monospace;font-size:0.6rem;font-weight:600;letter-spacing:0.1em;text-transform:uppercase;color:var(--muted);display:block;margin-bottom:2px;}
  .btn{font-family:'IBM Plex Mono',monospace;font-weight:600;font-size:0.8rem;letter-spacing:0.08em;padding:8px 18px;border:2px solid var(--ink);cursor:pointer;transition:all 0.15s;text-transform:uppercase;}
  .btn-primary{background:var(--ink);color:white;}
  .btn-primary:hover{background:var(--accent);border-color:var(--accent);}
  .btn-danger{background:white;color:var(--accent);border-color:var(--accent);}
  .btn-danger:hover{background:var(--accent);color:white;}
  .btn-success{background:var(--accent2);color:white;border-color:var(--accent2);}
  .btn-success:hover{filter:brightness(1.1);}
  .section-header{font-family:'IBM Plex Mono',monospace;font-size:0.7rem;font-weight:600;letter-spacing:0.18em;text-transform:uppercase;color:var(--muted);border-bottom:1px solid var(--rule);padding-bottom:4px;margin-bottom:16px;}
  .stamp{display:inline-block;border:3px solid var(--accent);color:var(--accent);font-family:'IBM Plex Mono',monospace;font-weight:600;letter-spacing:0.15em;padding:2px 10px;transform:rotate(-2deg);font-size:0.7rem;}
  .status-badge{font-family:'IBM Plex Mono',monospace;font-size:0.62rem;font-weight:600;letter-spacing:0.12em;text-transform:uppercase;padding:2px 8px;border:1px solid currentColor;display:inline-block;}
  .status-ok{color:var(--accent2);}
  .status-bad{color:var(--accent);}
  .status-wip{color:var(--muted);}
  .fact{background:var(--ledger);padding:10px 12px;border-left:3px solid var(--ink);}
</style>
</head>
<body>
<div style="max-width:900px;margin:0 auto;padding:32px 24px;">

<div style="display:flex;align-items:center;gap:16px;margin-bottom:24px;">
  <a href="/" style="font-family:'IBM Plex Mono',monospace;font-size:0.75rem;color:var(--muted);text-decoration:none;">&larr; ALL RUNS</a>
  <div class="stamp">TY {{.TaxYear}}</div>
</div>

<div style="display:flex;justify-content:space-between;align-items:flex-start;margin-bottom:24px;">
  <div>
    <h1 style="font-family:'IBM Plex Mono',monospace;font-size:1.4rem;font-weight:600;margin:0;">{{.OutputFile}}</h1>
    <div style="font-size:0.85rem;color:var(--muted);margin-top:4px;">
      run <span class="mono">{{.ID}}</span>
    </div>
    <div style="margin-top:8px;">
      <span class="status-badge {{badge .Status}}">{{.Status}}</span>
    </div>
  </div>
  <div style="display:flex;gap:10px;">
    {{if eq .Status "completed"}}
    <a href="/runs/{{.ID}}/pdf"><button class="btn btn-success" style="padding:10px 20px;">&#11015; FILLED PDF</button></a>
    {{end}}
    <a href="/runs/{{.ID}}/summary"><button class="btn btn-primary" style="padding:10px 16px;">SUMMARY</button></a>
    <a href="/runs/{{.ID}}/debug"><button class="btn btn-primary" style="padding:10px 16px;">RESOLVED JSON</button></a>
    <button class="btn btn-danger"
      hx-delete="/runs/{{.ID}}"
      hx-confirm="Delete this run and its files?"
      style="padding:10px 16px;">
      DELETE
    </button>
  </div>
</div>

{{if .Error}}
<div class="card" style="padding:16px 20px;margin-bottom:24px;border-left-color:var(--accent);">
  <div class="section-header" style="color:var(--accent);border-bottom-color:var(--accent);">Failure</div>
  <div class="mono" style="font-size:0.8rem;white-space:pre-wrap;">{{.Error}}</div>
</div>
{{end}}

<div class="section-header">Results</div>
<div style="display:grid;grid-template-columns:repeat(3,1fr);gap:10px;font-size:0.8rem;">
  <div class="fact">
    <div class="field-label">Form</div>
    <div class="mono">{{.Form}}</div>
  </div>
  <div class="fact">
    <div class="field-label">Tax Year</div>
    <div class="mono">{{.TaxYear}}</div>
  </div>
  <div class="fact">
    <div class="field-label">Configuration</div>
    <div class="mono">{{.ConfigFile}}</div>
  </div>
  <div class="fact">
    <div class="field-label">Fields Written</div>
    <div class="mono">{{.FieldsWritten}}</div>
  </div>
  <div class="fact">
    <div class="field-label">Errors Recorded</div>
    <div class="mono">{{.ErrorsRecorded}}</div>
  </div>
  <div class="fact">
    <div class="field-label">Started / Completed</div>
    <div class="mono" style="font-size:0.72rem;">{{when .CreatedAt}}<br>{{whenOpt .CompletedAt}}</div>
  </div>
</div>

</div>
</body>
</html>`))

type indexData struct {
	Runs []domain.Run
}

// Index is the landing page: the upload form next to the run ledger.
func Index(runs []domain.Run) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return indexTmpl.ExecuteTemplate(w, "base", indexData{Runs: runs})
	})
}

// RunList renders only the ledger items, for htmx swaps.
func RunList(runs []domain.Run) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return runListFrag.ExecuteTemplate(w, "run-list-items", runs)
	})
}

// Detail shows one run with its downloads.
func Detail(run *domain.Run) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return detailTmpl.Execute(w, run)
	})
}
