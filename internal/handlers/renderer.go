package handlers

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	layoutTemplate = "layout.html"
	layoutName     = "layout"
)

var templateFuncs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
	"seq": func(n int) []int {
		s := make([]int, n)
		for i := range s {
			s[i] = i + 1
		}
		return s
	},
	"date": func(t time.Time) string {
		return t.Format("02 Jan 2006 15:04")
	},
}

// TemplateRenderer renders pages wrapped into shared layout
type TemplateRenderer struct {
	pages map[string]*template.Template
}

// NewTemplateRenderer parses every page of fsys together with layout.html.
// Page is registered under file name without extension.
func NewTemplateRenderer(fsys fs.FS) (*TemplateRenderer, error) {
	files, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, f := range files {
		if f == layoutTemplate {
			continue
		}

		tmpl, err := template.New(f).Funcs(templateFuncs).ParseFS(fsys, layoutTemplate, f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s - %w", f, err)
		}
		pages[strings.TrimSuffix(f, ".html")] = tmpl
	}
	return &TemplateRenderer{pages: pages}, nil
}

// Render implements echo.Renderer
func (r *TemplateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s is not registered", name)
	}
	return tmpl.ExecuteTemplate(w, layoutName, data)
}
