package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mclindenhomes/website/internal/apperr"
	"github.com/mclindenhomes/website/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "site.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func testPost(title, slug string, published bool, createdAt time.Time) models.Post {
	return models.Post{
		Title:       title,
		Slug:        slug,
		ContentMD:   "# " + title,
		ContentHTML: "<h1>" + title + "</h1>",
		Published:   published,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestSchemaCreation(t *testing.T) {
	st := testStore(t)
	var count int
	if err := st.conn.QueryRow(`SELECT count(*) FROM leads`).Scan(&count); err != nil {
		t.Fatalf("leads table missing: %v", err)
	}
	if err := st.conn.QueryRow(`SELECT count(*) FROM posts`).Scan(&count); err != nil {
		t.Fatalf("posts table missing: %v", err)
	}
}

func TestInsertAndListLeads(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	older := models.Lead{FullName: "First Caller", Email: "first@example.com", Address: "1 Elm St", CreatedAt: time.Now().UTC().Add(-time.Hour)}
	newer := models.Lead{FullName: "Second Caller", Email: "second@example.com", Address: "2 Oak St", Phone: "555-0100", CreatedAt: time.Now().UTC()}

	if _, err := st.InsertLead(ctx, older); err != nil {
		t.Fatalf("InsertLead: %v", err)
	}
	if _, err := st.InsertLead(ctx, newer); err != nil {
		t.Fatalf("InsertLead: %v", err)
	}

	n, err := st.CountLeads(ctx)
	if err != nil {
		t.Fatalf("CountLeads: %v", err)
	}
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}

	leads, err := st.ListLeads(ctx)
	if err != nil {
		t.Fatalf("ListLeads: %v", err)
	}
	if len(leads) != 2 {
		t.Fatalf("len = %d, want 2", len(leads))
	}
	if leads[0].FullName != "Second Caller" {
		t.Errorf("newest first: got %q", leads[0].FullName)
	}
	if leads[1].Phone != "" {
		t.Errorf("older lead phone = %q, want empty", leads[1].Phone)
	}
}

func TestCreatePostDuplicateSlug(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := st.CreatePost(ctx, testPost("Spring Market", "spring-market", true, now)); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Same slug must fail the UNIQUE constraint without a partial write.
	_, err := st.CreatePost(ctx, testPost("Spring Market", "spring-market", true, now))
	if !errors.Is(err, apperr.ErrDuplicateSlug) {
		t.Fatalf("second create err = %v, want ErrDuplicateSlug", err)
	}

	posts, err := st.ListPublished(ctx)
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("post count = %d, want 1", len(posts))
	}
}

func TestGetPublishedBySlug(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := st.CreatePost(ctx, testPost("Visible", "visible", true, now)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := st.CreatePost(ctx, testPost("Draft", "draft", false, now)); err != nil {
		t.Fatalf("create: %v", err)
	}

	p, err := st.GetPublishedBySlug(ctx, "visible")
	if err != nil {
		t.Fatalf("GetPublishedBySlug: %v", err)
	}
	if p.Title != "Visible" {
		t.Errorf("title = %q", p.Title)
	}

	if _, err := st.GetPublishedBySlug(ctx, "draft"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unpublished err = %v, want ErrNotFound", err)
	}
	if _, err := st.GetPublishedBySlug(ctx, "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown err = %v, want ErrNotFound", err)
	}
}

func TestListPublishedOrdering(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(-3 * time.Hour)

	for i, slug := range []string{"first", "second", "third"} {
		if _, err := st.CreatePost(ctx, testPost(slug, slug, true, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("create %s: %v", slug, err)
		}
	}
	if _, err := st.CreatePost(ctx, testPost("hidden", "hidden", false, base.Add(4*time.Hour))); err != nil {
		t.Fatalf("create hidden: %v", err)
	}

	posts, err := st.ListPublished(ctx)
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("len = %d, want 3 (unpublished excluded)", len(posts))
	}
	for i, want := range []string{"third", "second", "first"} {
		if posts[i].Slug != want {
			t.Errorf("posts[%d].Slug = %q, want %q", i, posts[i].Slug, want)
		}
	}

	latest, err := st.LatestPublished(ctx, 2)
	if err != nil {
		t.Fatalf("LatestPublished: %v", err)
	}
	if len(latest) != 2 || latest[0].Slug != "third" {
		t.Errorf("latest = %+v, want third then second", latest)
	}
}

func TestUpdatePost(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	id, err := st.CreatePost(ctx, testPost("Original", "original", true, now))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := st.CreatePost(ctx, testPost("Other", "other", true, now)); err != nil {
		t.Fatalf("create other: %v", err)
	}

	updated := testPost("Renamed", "renamed", false, now)
	updated.ID = id
	updated.UpdatedAt = now.Add(time.Minute)
	if err := st.UpdatePost(ctx, updated); err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}

	p, err := st.GetPost(ctx, id)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if p.Title != "Renamed" || p.Published {
		t.Errorf("post after update = %+v", p)
	}

	// Colliding with another post's slug must fail.
	collide := testPost("Renamed", "other", true, now)
	collide.ID = id
	if err := st.UpdatePost(ctx, collide); !errors.Is(err, apperr.ErrDuplicateSlug) {
		t.Errorf("collide err = %v, want ErrDuplicateSlug", err)
	}

	// Unknown id.
	missing := testPost("Nope", "nope", true, now)
	missing.ID = 9999
	if err := st.UpdatePost(ctx, missing); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing err = %v, want ErrNotFound", err)
	}
}
