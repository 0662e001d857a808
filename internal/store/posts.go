package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/mclindenhomes/website/internal/apperr"
	"github.com/mclindenhomes/website/internal/models"
)

const postColumns = `id, title, slug, summary, content_md, content_html, cover_url, published, created_at, updated_at`

// CreatePost inserts a new post and returns its id.
// A slug collision returns apperr.ErrDuplicateSlug and writes nothing.
func (s *Store) CreatePost(ctx context.Context, p models.Post) (int64, error) {
	res, err := s.conn.ExecContext(ctx, `
		INSERT INTO posts (title, slug, summary, content_md, content_html, cover_url, published, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Title, p.Slug, p.Summary, p.ContentMD, p.ContentHTML, p.CoverURL, p.Published, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperr.ErrDuplicateSlug
		}
		return 0, fmt.Errorf("store: insert post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: post id: %w", err)
	}
	return id, nil
}

// UpdatePost overwrites an existing post by id (full overwrite, not
// incremental). Returns apperr.ErrNotFound for an unknown id and
// apperr.ErrDuplicateSlug when the recomputed slug collides with
// another post.
func (s *Store) UpdatePost(ctx context.Context, p models.Post) error {
	res, err := s.conn.ExecContext(ctx, `
		UPDATE posts
		SET title = ?, slug = ?, summary = ?, content_md = ?, content_html = ?, cover_url = ?, published = ?, updated_at = ?
		WHERE id = ?
	`, p.Title, p.Slug, p.Summary, p.ContentMD, p.ContentHTML, p.CoverURL, p.Published, p.UpdatedAt, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrDuplicateSlug
		}
		return fmt.Errorf("store: update post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: update post rows: %w", err)
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// GetPost fetches a post by id regardless of published state.
// Used by the admin editor.
func (s *Store) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	row := s.conn.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	return scanPost(row)
}

// GetPublishedBySlug fetches a published post by slug.
// Unknown or unpublished slugs return apperr.ErrNotFound.
func (s *Store) GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	row := s.conn.QueryRowContext(ctx, `
		SELECT `+postColumns+` FROM posts WHERE slug = ? AND published = 1 LIMIT 1
	`, slug)
	return scanPost(row)
}

// ListPublished returns all published posts, newest first.
func (s *Store) ListPublished(ctx context.Context) ([]models.Post, error) {
	return s.queryPosts(ctx, `
		SELECT `+postColumns+` FROM posts WHERE published = 1 ORDER BY created_at DESC
	`)
}

// LatestPublished returns up to n published posts, newest first.
func (s *Store) LatestPublished(ctx context.Context, n int) ([]models.Post, error) {
	return s.queryPosts(ctx, `
		SELECT `+postColumns+` FROM posts WHERE published = 1 ORDER BY created_at DESC LIMIT ?
	`, n)
}

func (s *Store) queryPosts(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query posts: %w", err)
	}
	defer rows.Close()

	var out []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Summary, &p.ContentMD, &p.ContentHTML,
			&p.CoverURL, &p.Published, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: scan post: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPost(row *sql.Row) (*models.Post, error) {
	var p models.Post
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Summary, &p.ContentMD, &p.ContentHTML,
		&p.CoverURL, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: scan post: %w", err)
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique
}
