// Package markdown renders blog Markdown into sanitized HTML.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown to HTML and scrubs the result against a
// fixed allow-list. It is stateless after construction, so a single
// instance can be shared across requests without locking.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New constructs a Renderer with GFM extensions (tables, strikethrough,
// autolinks, fenced code). Raw HTML passes through the Markdown engine
// and is removed by the sanitizer, never by the parser.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy: newPolicy(),
	}
}

// Render converts Markdown source to sanitized HTML.
func (r *Renderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown: convert: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// newPolicy builds the tag/attribute allow-list: basic formatting tags
// plus the block elements a blog post needs. Anything else, script tags
// included, is stripped before the HTML is stored or served.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"a", "abbr", "acronym", "b", "blockquote", "em", "i", "li", "ol", "strong", "ul",
		"p", "img", "h1", "h2", "h3", "h4", "pre", "code",
		"table", "thead", "tbody", "tr", "th", "td", "hr", "br",
	)
	p.AllowAttrs("href", "title", "rel", "target").OnElements("a")
	p.AllowAttrs("src", "alt", "title").OnElements("img")
	p.AllowAttrs("class").OnElements("code")
	p.AllowStandardURLs()
	return p
}
