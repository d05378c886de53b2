package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{
	"login.html",
	"teacher.html",
	"teacher_parent.html",
	"teacher_student.html",
	"parent.html",
	"parent_student.html",
	"admin.html",
}

var funcs = template.FuncMap{
	"join": strings.Join,
	"formatDate": func(t time.Time) string {
		return t.Format("Jan 2, 2006")
	},
	"inputDate": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
	"isCurrent": func(current *string, id string) bool {
		return current != nil && *current == id
	},
}

// Renderer renders the embedded pages inside the shared layout.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page together with the layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.templates[page] = tmpl
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}
