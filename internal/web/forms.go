package web

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// leadForm mirrors the home-evaluation form fields. All values are
// trimmed on parse; the zero value renders an empty form.
type leadForm struct {
	FullName     string
	Email        string
	Phone        string
	Address      string
	PropertyType string
	Timeframe    string
	Notes        string
}

func leadFormFromRequest(r *http.Request) leadForm {
	get := func(key string) string {
		return strings.TrimSpace(r.PostFormValue(key))
	}
	return leadForm{
		FullName:     get("full_name"),
		Email:        get("email"),
		Phone:        get("phone"),
		Address:      get("address"),
		PropertyType: get("property_type"),
		Timeframe:    get("timeframe"),
		Notes:        get("notes"),
	}
}

// Validate enforces the three required lead fields. There is
// deliberately no email format check or duplicate detection.
func (f *leadForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.FullName, validation.Required),
		validation.Field(&f.Email, validation.Required),
		validation.Field(&f.Address, validation.Required),
	)
}

// postForm mirrors the admin create/edit form fields.
type postForm struct {
	Title     string
	Summary   string
	ContentMD string
	CoverURL  string
	Published bool
	Password  string
}

func postFormFromRequest(r *http.Request) postForm {
	get := func(key string) string {
		return strings.TrimSpace(r.PostFormValue(key))
	}
	return postForm{
		Title:     get("title"),
		Summary:   get("summary"),
		ContentMD: get("content_md"),
		CoverURL:  get("cover_url"),
		Published: r.PostFormValue("published") == "on",
		Password:  r.PostFormValue("password"),
	}
}

// Validate enforces the required post fields. The password gate runs
// separately, before validation.
func (f *postForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Title, validation.Required),
		validation.Field(&f.ContentMD, validation.Required),
	)
}
