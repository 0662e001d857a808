package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

var viewFuncs = template.FuncMap{
	"formatDate": func(t time.Time) string { return t.Format("January 2, 2006") },
}

// Views holds the parsed page templates. Each page is the shared layout
// plus one page file, so template redefinition stays scoped per page.
// Reload swaps the whole set atomically, which lets the live-reload
// watcher re-parse without coordinating with in-flight requests.
type Views struct {
	fsys fs.FS

	mu    sync.RWMutex
	pages map[string]*template.Template
}

// NewViews parses the templates from dir, or from the embedded set when
// dir is empty.
func NewViews(dir string) (*Views, error) {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("views: embedded templates: %w", err)
		}
		fsys = sub
	} else {
		fsys = os.DirFS(dir)
	}

	v := &Views{fsys: fsys}
	if err := v.Reload(); err != nil {
		return nil, err
	}
	return v, nil
}

// Reload re-parses every template from the underlying filesystem.
func (v *Views) Reload() error {
	layout, err := template.New("layout.html").Funcs(viewFuncs).ParseFS(v.fsys, "layout.html")
	if err != nil {
		return fmt.Errorf("views: parse layout: %w", err)
	}

	names, err := fs.Glob(v.fsys, "*.html")
	if err != nil {
		return fmt.Errorf("views: glob templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		if name == "layout.html" {
			continue
		}
		page, err := layout.Clone()
		if err != nil {
			return fmt.Errorf("views: clone layout: %w", err)
		}
		if _, err := page.ParseFS(v.fsys, name); err != nil {
			return fmt.Errorf("views: parse %s: %w", name, err)
		}
		pages[name] = page
	}

	v.mu.Lock()
	v.pages = pages
	v.mu.Unlock()
	return nil
}

// Render executes the named page into a buffer and writes it with the
// given status. Rendering into a buffer first means a template error
// never produces a half-written page.
func (v *Views) Render(w http.ResponseWriter, status int, page string, data any) {
	v.mu.RLock()
	tmpl, ok := v.pages[page]
	v.mu.RUnlock()
	if !ok {
		slog.Error("render: unknown template", slog.String("page", page))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		slog.Error("render failed", slog.String("page", page), slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
