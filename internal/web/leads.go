package web

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mclindenhomes/website/internal/models"
)

const leadRequiredMsg = "Name, email, and property address are required."

type leadFormData struct {
	Form  leadForm
	Error string
}

type scheduleData struct {
	EmbedURL string
}

// LeadForm handles GET /home-evaluation.
func (h *Handler) LeadForm(w http.ResponseWriter, _ *http.Request) {
	h.views.Render(w, http.StatusOK, "home_evaluation.html", leadFormData{})
}

// LeadSubmit handles POST /home-evaluation. A submission missing any of
// name, email, or address creates no row and re-renders the form with
// the submitted values preserved. A valid submission inserts exactly
// one lead and redirects to /schedule with name and email forwarded.
func (h *Handler) LeadSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.views.Render(w, http.StatusBadRequest, "home_evaluation.html", leadFormData{Error: leadRequiredMsg})
		return
	}

	form := leadFormFromRequest(r)
	if err := form.Validate(); err != nil {
		h.views.Render(w, http.StatusOK, "home_evaluation.html", leadFormData{Form: form, Error: leadRequiredMsg})
		return
	}

	lead := models.Lead{
		FullName:     form.FullName,
		Email:        form.Email,
		Phone:        form.Phone,
		Address:      form.Address,
		PropertyType: form.PropertyType,
		Timeframe:    form.Timeframe,
		Notes:        form.Notes,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := h.store.InsertLead(r.Context(), lead); err != nil {
		h.serverError(w, r, err)
		return
	}

	q := url.Values{}
	q.Set("name", form.FullName)
	q.Set("email", form.Email)
	http.Redirect(w, r, "/schedule?"+q.Encode(), http.StatusSeeOther)
}

// Schedule handles GET /schedule, embedding the external scheduler with
// optional name/email prefill forwarded from the lead form.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	email := strings.TrimSpace(r.URL.Query().Get("email"))

	h.views.Render(w, http.StatusOK, "schedule.html", scheduleData{
		EmbedURL: SchedulerEmbedURL(h.opts.SchedulerBase, name, email),
	})
}

// SchedulerEmbedURL builds the external scheduler URL: the configured
// base plus the fixed widget display parameters and, when present, the
// visitor's name and email. Values are URL-encoded; when the base
// already carries a query string the parameters are appended with '&'.
func SchedulerEmbedURL(base, name, email string) string {
	params := url.Values{
		"hide_gdpr_banner":        {"1"},
		"hide_event_type_details": {"1"},
		"background_color":        {"F7F7F7"},
		"text_color":              {"111827"},
		"primary_color":           {"2563EB"},
	}
	if name != "" {
		params.Set("name", name)
	}
	if email != "" {
		params.Set("email", email)
	}

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + params.Encode()
}
