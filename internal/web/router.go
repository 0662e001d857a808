package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/mclindenhomes/website/internal/markdown"
	"github.com/mclindenhomes/website/internal/store"
)

// Options carries the request-independent handler configuration,
// constructed once at startup and passed explicitly instead of read
// from ambient globals.
type Options struct {
	// SchedulerBase is the external scheduling page URL, already
	// normalized (no trailing slash).
	SchedulerBase string
	// AdminPasswordHash is the bcrypt hash of the blog editor password.
	AdminPasswordHash string
}

// NewRouter creates a chi router with all site routes mounted.
func NewRouter(st *store.Store, views *Views, md *markdown.Renderer, opts Options) chi.Router {
	h := NewHandler(st, views, md, opts)

	r := chi.NewRouter()

	r.Get("/", h.Home)

	// Lead capture.
	r.Get("/home-evaluation", h.LeadForm)
	r.Post("/home-evaluation", h.LeadSubmit)
	r.Get("/schedule", h.Schedule)

	// Blog.
	r.Get("/blog", h.BlogIndex)
	r.Get("/blog/{slug}", h.BlogPost)

	// Admin editor.
	r.Get("/admin/blog/new", h.AdminNewForm)
	r.Post("/admin/blog/new", h.AdminCreate)
	r.Get("/admin/blog/{id}/edit", h.AdminEditForm)
	r.Post("/admin/blog/{id}/edit", h.AdminUpdate)

	r.NotFound(h.NotFound)

	return r
}
