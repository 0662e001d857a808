// Package web implements the server-rendered site: lead capture, blog,
// and the password-gated admin editor.
package web

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mclindenhomes/website/internal/apperr"
	"github.com/mclindenhomes/website/internal/markdown"
	"github.com/mclindenhomes/website/internal/models"
	"github.com/mclindenhomes/website/internal/store"
)

// Handler holds the site route handlers.
type Handler struct {
	store *store.Store
	views *Views
	md    *markdown.Renderer
	opts  Options
}

// NewHandler creates a new Handler.
func NewHandler(st *store.Store, views *Views, md *markdown.Renderer, opts Options) *Handler {
	return &Handler{store: st, views: views, md: md, opts: opts}
}

type homeData struct {
	LatestPosts []models.Post
}

type blogIndexData struct {
	Posts []models.Post
}

type blogPostData struct {
	Post        *models.Post
	ContentHTML template.HTML
	EditURL     string
}

// Home handles GET /. It shows the latest three published posts.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	latest, err := h.store.LatestPublished(r.Context(), 3)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.views.Render(w, http.StatusOK, "home.html", homeData{LatestPosts: latest})
}

// BlogIndex handles GET /blog, listing published posts newest first.
func (h *Handler) BlogIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListPublished(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.views.Render(w, http.StatusOK, "blog_index.html", blogIndexData{Posts: posts})
}

// BlogPost handles GET /blog/{slug}. Unknown or unpublished slugs are a
// 404. The stored HTML is preferred; when it is empty the Markdown
// source is rendered on the fly. A response is produced on both paths.
func (h *Handler) BlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.store.GetPublishedBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	html := strings.TrimSpace(post.ContentHTML)
	if html == "" && post.ContentMD != "" {
		html, err = h.md.Render(post.ContentMD)
		if err != nil {
			h.serverError(w, r, err)
			return
		}
	}

	h.views.Render(w, http.StatusOK, "blog_post.html", blogPostData{
		Post: post,
		// Sanitized at render time, safe to mark as trusted HTML.
		ContentHTML: template.HTML(html),
		EditURL:     editPath(post.ID),
	})
}

// NotFound renders the 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, _ *http.Request) {
	h.views.Render(w, http.StatusNotFound, "not_found.html", nil)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))
	h.views.Render(w, http.StatusInternalServerError, "error.html", nil)
}
