// Package templates embeds the dashboard's HTML templates.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"time"
)

const (
	baseTemplate     = "base.html"
	partialsTemplate = "partials.html"
)

//go:embed *.html
var FS embed.FS

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}

var funcs = template.FuncMap{
	"formatDate": formatDate,
}

// Load parses every page in fsys together with the base layout and the
// shared partials. Pages are keyed by file name.
func Load(fsys fs.FS) (map[string]*template.Template, error) {
	pages, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, err
	}

	loaded := make(map[string]*template.Template)
	for _, page := range pages {
		if page == baseTemplate || page == partialsTemplate {
			continue
		}
		tmpl, err := template.New(baseTemplate).Funcs(funcs).ParseFS(fsys,
			baseTemplate,
			page,
			partialsTemplate,
		)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", page, err)
		}
		loaded[page] = tmpl
	}
	return loaded, nil
}
