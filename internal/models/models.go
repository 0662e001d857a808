// Package models defines the domain types for the site.
package models

import "time"

// Lead is a prospective customer's home-evaluation submission.
// FullName, Email, and Address are required; everything else is optional
// free text captured as-is from the form.
type Lead struct {
	ID           int64
	FullName     string
	Email        string
	Phone        string
	Address      string
	PropertyType string
	Timeframe    string
	Notes        string
	CreatedAt    time.Time
}

// Post is a blog entry stored in both Markdown source and rendered,
// sanitized HTML form. ContentHTML is always regenerated from ContentMD
// at write time and never edited independently.
type Post struct {
	ID          int64
	Title       string
	Slug        string
	Summary     string
	ContentMD   string
	ContentHTML string
	CoverURL    string
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
