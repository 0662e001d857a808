package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goliatone/go-slug"
	"golang.org/x/crypto/bcrypt"

	"github.com/go-chi/chi/v5"

	"github.com/mclindenhomes/website/internal/apperr"
	"github.com/mclindenhomes/website/internal/models"
)

const (
	adminBadPasswordMsg = "Invalid admin password."
	adminRequiredMsg    = "Title and content are required."
	adminDupSlugMsg     = "A post with this title already exists."
)

type adminEditData struct {
	Form   postForm
	Error  string
	Action string
}

func editPath(id int64) string {
	return fmt.Sprintf("/admin/blog/%d/edit", id)
}

// checkAdmin compares the submitted password against the configured
// bcrypt hash. The comparison is constant-time.
func (h *Handler) checkAdmin(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(h.opts.AdminPasswordHash), []byte(password)) == nil
}

// AdminNewForm handles GET /admin/blog/new.
func (h *Handler) AdminNewForm(w http.ResponseWriter, _ *http.Request) {
	h.views.Render(w, http.StatusOK, "admin_post_edit.html", adminEditData{Action: "/admin/blog/new"})
}

// AdminCreate handles POST /admin/blog/new. The password gate runs
// before anything else; a wrong password makes no database change.
func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	form := postFormFromRequest(r)
	renderForm := func(msg string) {
		h.views.Render(w, http.StatusOK, "admin_post_edit.html", adminEditData{Form: form, Error: msg, Action: "/admin/blog/new"})
	}

	if !h.checkAdmin(form.Password) {
		renderForm(adminBadPasswordMsg)
		return
	}
	if err := form.Validate(); err != nil {
		renderForm(adminRequiredMsg)
		return
	}

	post, err := h.buildPost(form)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	if _, err := h.store.CreatePost(r.Context(), post); err != nil {
		if errors.Is(err, apperr.ErrDuplicateSlug) {
			renderForm(adminDupSlugMsg)
			return
		}
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/blog/"+post.Slug, http.StatusSeeOther)
}

// AdminEditForm handles GET /admin/blog/{id}/edit, pre-filling the form
// from the stored post (published or not).
func (h *Handler) AdminEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	post, err := h.store.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.views.Render(w, http.StatusOK, "admin_post_edit.html", adminEditData{
		Form: postForm{
			Title:     post.Title,
			Summary:   post.Summary,
			ContentMD: post.ContentMD,
			CoverURL:  post.CoverURL,
			Published: post.Published,
		},
		Action: editPath(id),
	})
}

// AdminUpdate handles POST /admin/blog/{id}/edit: a full overwrite of
// the stored post. The slug is recomputed from the title and the HTML
// regenerated from the Markdown on every save. Concurrent edits are
// last-write-wins.
func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	_ = r.ParseForm()
	form := postFormFromRequest(r)
	renderForm := func(msg string) {
		h.views.Render(w, http.StatusOK, "admin_post_edit.html", adminEditData{Form: form, Error: msg, Action: editPath(id)})
	}

	if !h.checkAdmin(form.Password) {
		renderForm(adminBadPasswordMsg)
		return
	}
	if err := form.Validate(); err != nil {
		renderForm(adminRequiredMsg)
		return
	}

	post, err := h.buildPost(form)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	post.ID = id
	post.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdatePost(r.Context(), post); err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			h.NotFound(w, r)
		case errors.Is(err, apperr.ErrDuplicateSlug):
			renderForm(adminDupSlugMsg)
		default:
			h.serverError(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/blog/"+post.Slug, http.StatusSeeOther)
}

// buildPost derives the stored representation from a validated form:
// slug from title, sanitized HTML from Markdown.
func (h *Handler) buildPost(form postForm) (models.Post, error) {
	s, err := slug.Normalize(form.Title)
	if err != nil {
		return models.Post{}, fmt.Errorf("web: slug from title: %w", err)
	}
	html, err := h.md.Render(form.ContentMD)
	if err != nil {
		return models.Post{}, err
	}
	return models.Post{
		Title:       form.Title,
		Slug:        s,
		Summary:     form.Summary,
		ContentMD:   form.ContentMD,
		ContentHTML: html,
		CoverURL:    form.CoverURL,
		Published:   form.Published,
	}, nil
}
