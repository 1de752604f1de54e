// Package templates renders the thin page shells shared by wizard screens.
//
// The GOV.UK markup itself is owned elsewhere; these components only carry
// the structure the journey plumbing needs: the error summary anchor, the
// back and cancel links, and positional field names for collection screens.
package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// ErrorSummaryID is the fragment target the failed-POST redirect points at.
const ErrorSummaryID = "error-summary"

// Field is one rendered form input. Name carries positional collection syntax
// (for example "addresses[0].phones[1].number") unchanged.
type Field struct {
	Name  string
	Label string
	Value string
	Error string
}

// Action is one same-page action button ("Add another", "Remove").
type Action struct {
	Value string
	Label string
}

// FormView describes one wizard screen.
type FormView struct {
	Title        string
	Banner       string
	ErrorTitle   string
	ErrorOrder   []string
	Errors       map[string]string
	BackURL      string
	CancelURL    string
	BackLabel    string
	CancelLabel  string
	SubmitLabel  string
	Fields       []Field
	Actions      []Action
	HiddenFields []Field
	// Links render outside the form, after the submit controls. They carry
	// the user to a related screen without submitting the current edits.
	Links []Link
}

// FormPage renders a wizard screen with an error summary, field inputs, and
// the shared navigation links.
func FormPage(view FormView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeHead(w, view.Title); err != nil {
			return err
		}
		if view.Banner != "" {
			if _, err := fmt.Fprintf(w, `<div class="notification-banner" role="alert">%s</div>`, html.EscapeString(view.Banner)); err != nil {
				return err
			}
		}
		if view.BackURL != "" {
			if _, err := fmt.Fprintf(w, `<a class="back-link" href="%s">%s</a>`, html.EscapeString(view.BackURL), html.EscapeString(view.BackLabel)); err != nil {
				return err
			}
		}
		if err := writeErrorSummary(w, view); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<h1>%s</h1><form method="post" novalidate>`, html.EscapeString(view.Title)); err != nil {
			return err
		}
		for _, field := range view.HiddenFields {
			if _, err := fmt.Fprintf(w, `<input type="hidden" name="%s" value="%s">`, html.EscapeString(field.Name), html.EscapeString(field.Value)); err != nil {
				return err
			}
		}
		for _, field := range view.Fields {
			if err := writeField(w, field); err != nil {
				return err
			}
		}
		for _, action := range view.Actions {
			if _, err := fmt.Fprintf(w, `<button type="submit" name="action" value="%s">%s</button>`, html.EscapeString(action.Value), html.EscapeString(action.Label)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<button type="submit">%s</button></form>`, html.EscapeString(view.SubmitLabel)); err != nil {
			return err
		}
		for _, link := range view.Links {
			if _, err := fmt.Fprintf(w, `<a class="form-link" href="%s">%s</a>`, html.EscapeString(link.URL), html.EscapeString(link.Label)); err != nil {
				return err
			}
		}
		if view.CancelURL != "" {
			if _, err := fmt.Fprintf(w, `<a class="cancel-link" href="%s">%s</a>`, html.EscapeString(view.CancelURL), html.EscapeString(view.CancelLabel)); err != nil {
				return err
			}
		}
		return writeFoot(w)
	})
}

// SummaryRow is one check-answers row with an optional change link.
type SummaryRow struct {
	Label     string
	Value     string
	ChangeURL string
}

// SummaryView describes a check-answers screen.
type SummaryView struct {
	Title       string
	BackURL     string
	CancelURL   string
	BackLabel   string
	CancelLabel string
	SubmitLabel string
	Rows        []SummaryRow
}

// SummaryPage renders a check-answers screen.
func SummaryPage(view SummaryView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeHead(w, view.Title); err != nil {
			return err
		}
		if view.BackURL != "" {
			if _, err := fmt.Fprintf(w, `<a class="back-link" href="%s">%s</a>`, html.EscapeString(view.BackURL), html.EscapeString(view.BackLabel)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<h1>%s</h1><dl class="summary-list">`, html.EscapeString(view.Title)); err != nil {
			return err
		}
		for _, row := range view.Rows {
			if _, err := fmt.Fprintf(w, `<div><dt>%s</dt><dd>%s</dd>`, html.EscapeString(row.Label), html.EscapeString(row.Value)); err != nil {
				return err
			}
			if row.ChangeURL != "" {
				if _, err := fmt.Fprintf(w, `<dd><a href="%s">Change</a></dd>`, html.EscapeString(row.ChangeURL)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</div>`); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `</dl><form method="post"><button type="submit">%s</button></form>`, html.EscapeString(view.SubmitLabel)); err != nil {
			return err
		}
		if view.CancelURL != "" {
			if _, err := fmt.Fprintf(w, `<a class="cancel-link" href="%s">%s</a>`, html.EscapeString(view.CancelURL), html.EscapeString(view.CancelLabel)); err != nil {
				return err
			}
		}
		return writeFoot(w)
	})
}

// Link is one navigation link on a landing page.
type Link struct {
	URL   string
	Label string
}

// LandingView describes a journey landing page (contact list or contact
// details). Banner carries a consumed success notice, already localized.
type LandingView struct {
	Title  string
	Banner string
	Links  []Link
}

// LandingPage renders a journey landing page.
func LandingPage(view LandingView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeHead(w, view.Title); err != nil {
			return err
		}
		if view.Banner != "" {
			if _, err := fmt.Fprintf(w, `<div class="notification-banner" role="alert">%s</div>`, html.EscapeString(view.Banner)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<h1>%s</h1><ul>`, html.EscapeString(view.Title)); err != nil {
			return err
		}
		for _, link := range view.Links {
			if _, err := fmt.Fprintf(w, `<li><a href="%s">%s</a></li>`, html.EscapeString(link.URL), html.EscapeString(link.Label)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</ul>`); err != nil {
			return err
		}
		return writeFoot(w)
	})
}

// ErrorPage renders a shared error page.
func ErrorPage(title string, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeHead(w, title); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>`, html.EscapeString(title)); err != nil {
			return err
		}
		if body != "" {
			if _, err := fmt.Fprintf(w, `<p>%s</p>`, html.EscapeString(body)); err != nil {
				return err
			}
		}
		return writeFoot(w)
	})
}

// Render writes a component as a full HTML response.
func Render(ctx context.Context, w io.Writer, component templ.Component) error {
	if component == nil {
		return fmt.Errorf("component is required")
	}
	return component.Render(ctx, w)
}

func writeHead(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, `<!doctype html><html lang="en"><head><meta charset="utf-8"><title>%s</title></head><body>`, html.EscapeString(title))
	return err
}

func writeFoot(w io.Writer) error {
	_, err := io.WriteString(w, `</body></html>`)
	return err
}

func writeErrorSummary(w io.Writer, view FormView) error {
	if len(view.Errors) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, `<div class="error-summary" id="%s" role="alert"><h2>%s</h2><ul>`, ErrorSummaryID, html.EscapeString(view.ErrorTitle)); err != nil {
		return err
	}
	seen := make(map[string]bool, len(view.Errors))
	for _, name := range view.ErrorOrder {
		message, ok := view.Errors[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		if err := writeErrorItem(w, name, message); err != nil {
			return err
		}
	}
	for name, message := range view.Errors {
		if seen[name] {
			continue
		}
		if err := writeErrorItem(w, name, message); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</ul></div>`)
	return err
}

func writeErrorItem(w io.Writer, name string, message string) error {
	_, err := fmt.Fprintf(w, `<li><a href="#field-%s">%s</a></li>`, html.EscapeString(name), html.EscapeString(message))
	return err
}

func writeField(w io.Writer, field Field) error {
	if _, err := fmt.Fprintf(w, `<div class="form-group" id="field-%s"><label for="%s">%s</label>`, html.EscapeString(field.Name), html.EscapeString(field.Name), html.EscapeString(field.Label)); err != nil {
		return err
	}
	if field.Error != "" {
		if _, err := fmt.Fprintf(w, `<span class="error-message">%s</span>`, html.EscapeString(field.Error)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, `<input id="%s" name="%s" value="%s"></div>`, html.EscapeString(field.Name), html.EscapeString(field.Name), html.EscapeString(field.Value))
	return err
}
