// Package templates contains the templ components for the staffing tool UI.
//
// The UI is a single page: an interactive form for one-off recommendations
// and a CSV batch panel. Handlers render either the full page or HTMX
// fragments (result panel, batch summary, error alert) depending on the
// request.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// FormDefaults prefills the interactive form inputs.
type FormDefaults struct {
	Area      string
	Footfall  string
	RoundRule string
	MinStaff  string
	MaxStaff  string
}

// write is a small helper so components can bail on the first write error.
func write(w io.Writer, err *error, s string) {
	if *err != nil {
		return
	}
	_, *err = io.WriteString(w, s)
}

// ErrorAlert renders a dismissible error fragment with the support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) (err error) {
		write(w, &err, `<div class="alert alert-error" role="alert">`)
		write(w, &err, `<strong>`+templ.EscapeString(message)+`</strong>`)
		if action != "" {
			write(w, &err, `<p>`+templ.EscapeString(action)+`</p>`)
		}
		if code != "" {
			write(w, &err, `<span class="alert-code">Code: `+templ.EscapeString(code)+`</span>`)
		}
		write(w, &err, `</div>`)
		return err
	})
}

// RecommendResult renders the single-record result panel.
func RecommendResult(continuous string, recommended int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) (err error) {
		write(w, &err, `<div class="result-panel">`)
		write(w, &err, `<p class="result-headline">Recommended staff: <strong>`)
		write(w, &err, templ.EscapeString(fmt.Sprintf("%d", recommended)))
		write(w, &err, `</strong></p>`)
		write(w, &err, `<p class="result-detail">Continuous estimate: `)
		write(w, &err, templ.EscapeString(continuous))
		write(w, &err, `</p></div>`)
		return err
	})
}

// BatchUploaded renders the fragment shown after a successful upload.
func BatchUploaded(session, fileName string, rows int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) (err error) {
		write(w, &err, `<div class="batch-panel" data-session="`+templ.EscapeString(session)+`">`)
		write(w, &err, `<p>Loaded <strong>`+templ.EscapeString(fmt.Sprintf("%d", rows))+`</strong> rows from `)
		write(w, &err, templ.EscapeString(fileName)+`.</p>`)
		write(w, &err, `<button hx-post="/api/batch/process" hx-include="#batch-options" `)
		write(w, &err, `hx-vals='{"session":"`+templ.EscapeString(session)+`"}' hx-target="#batch-result">Process file</button>`)
		write(w, &err, `</div>`)
		return err
	})
}

// BatchProcessed renders the fragment shown after processing, with download
// links for both formats. A flagged count above zero means some rows had
// non-numeric inputs and carry NaN outputs.
func BatchProcessed(session string, rows, flagged int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) (err error) {
		write(w, &err, `<div class="batch-panel">`)
		write(w, &err, `<p>Processed <strong>`+templ.EscapeString(fmt.Sprintf("%d", rows))+`</strong> rows.</p>`)
		if flagged > 0 {
			write(w, &err, `<p class="batch-warning">`)
			write(w, &err, templ.EscapeString(fmt.Sprintf("%d row(s) had non-numeric inputs and produced NaN outputs.", flagged)))
			write(w, &err, `</p>`)
		}
		base := "/api/batch/download/" + templ.EscapeString(session)
		write(w, &err, `<a href="`+base+`" download>Download CSV</a> `)
		write(w, &err, `<a href="`+base+`?format=xlsx" download>Download XLSX</a>`)
		write(w, &err, `</div>`)
		return err
	})
}

// Dashboard renders the full page.
func Dashboard(form FormDefaults) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) (err error) {
		write(w, &err, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		write(w, &err, `<meta name="viewport" content="width=device-width, initial-scale=1">`)
		write(w, &err, `<title>StaffCast</title>`)
		write(w, &err, `<link rel="stylesheet" href="/static/app.css">`)
		write(w, &err, `<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>`)
		write(w, &err, `</head><body><main class="container">`)
		write(w, &err, `<h1>StaffCast</h1>`)
		write(w, &err, `<p class="tagline">Heuristic staffing recommendations from store size and mall footfall.</p>`)

		// Interactive single-record form.
		write(w, &err, `<section><h2>Quick estimate</h2>`)
		write(w, &err, `<form hx-post="/api/recommend" hx-target="#recommend-result">`)
		writeInput(w, &err, "area", "Square footage", form.Area)
		writeInput(w, &err, "footfall", "Mall footfall", form.Footfall)
		write(w, &err, `<label for="roundRule">Rounding</label>`)
		write(w, &err, `<select id="roundRule" name="roundRule">`)
		for _, rule := range []string{"ceil", "floor", "round"} {
			write(w, &err, `<option value="`+rule+`"`)
			if rule == form.RoundRule {
				write(w, &err, ` selected`)
			}
			write(w, &err, `>`+rule+`</option>`)
		}
		write(w, &err, `</select>`)
		writeInput(w, &err, "minStaff", "Min staff", form.MinStaff)
		writeInput(w, &err, "maxStaff", "Max staff (blank = unbounded)", form.MaxStaff)
		write(w, &err, `<button type="submit">Recommend</button>`)
		write(w, &err, `</form><div id="recommend-result"></div></section>`)

		// Batch panel.
		write(w, &err, `<section><h2>Batch CSV</h2>`)
		write(w, &err, `<form hx-post="/api/batch/upload" hx-target="#batch-result" hx-encoding="multipart/form-data">`)
		write(w, &err, `<input type="file" name="file" accept=".csv,text/csv">`)
		write(w, &err, `<button type="submit">Upload</button>`)
		write(w, &err, `</form>`)
		write(w, &err, `<div id="batch-options">`)
		write(w, &err, `<input type="hidden" name="roundRule" value="`+templ.EscapeString(form.RoundRule)+`">`)
		write(w, &err, `<input type="hidden" name="minStaff" value="`+templ.EscapeString(form.MinStaff)+`">`)
		write(w, &err, `<input type="hidden" name="maxStaff" value="`+templ.EscapeString(form.MaxStaff)+`">`)
		write(w, &err, `</div>`)
		write(w, &err, `<div id="batch-result"></div></section>`)

		write(w, &err, `</main></body></html>`)
		return err
	})
}

// writeInput renders one labelled text input.
func writeInput(w io.Writer, err *error, name, label, value string) {
	write(w, err, `<label for="`+name+`">`+templ.EscapeString(label)+`</label>`)
	write(w, err, `<input type="text" id="`+name+`" name="`+name+`" value="`+templ.EscapeString(value)+`">`)
}
