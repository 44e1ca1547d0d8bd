// Package view wires html/template into echo's Renderer interface. All page
// templates are parsed once at startup from a single directory; each page is
// a named template that pulls in the shared "head" and "foot" partials.
package view

import (
	"html/template"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mpfops/roster/internal/calendar"
)

// Renderer implements echo.Renderer over a parsed template set.
type Renderer struct {
	templates *template.Template
}

// funcMap exposes the few helpers templates need: the canonical date key,
// month arithmetic for prev/next links and list joining for grid cells.
var funcMap = template.FuncMap{
	"dkey": calendar.DateKey,
	"join": func(items []string) string { return strings.Join(items, ", ") },
	"monthname": func(m time.Month) string { return m.String() },
	"prevmonth": func(year int, m time.Month) [2]int {
		t := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
		return [2]int{t.Year(), int(t.Month())}
	},
	"nextmonth": func(year int, m time.Month) [2]int {
		t := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		return [2]int{t.Year(), int(t.Month())}
	},
}

// New parses every *.html file under dir into one template set.
func New(dir string) (*Renderer, error) {
	t, err := template.New("roster").Funcs(funcMap).ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

// Render executes the named page template with the supplied data.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
