package store

import (
	"context"
	"fmt"

	"github.com/mclindenhomes/website/internal/models"
)

// InsertLead persists a new lead and returns its id.
// CreatedAt must already be set by the caller (UTC).
func (s *Store) InsertLead(ctx context.Context, l models.Lead) (int64, error) {
	res, err := s.conn.ExecContext(ctx, `
		INSERT INTO leads (full_name, email, phone, address, property_type, timeframe, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, l.FullName, l.Email, l.Phone, l.Address, l.PropertyType, l.Timeframe, l.Notes, l.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("store: insert lead: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: lead id: %w", err)
	}
	return id, nil
}

// ListLeads returns all leads, newest first. Used by the export command.
func (s *Store) ListLeads(ctx context.Context) ([]models.Lead, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, full_name, email, phone, address, property_type, timeframe, notes, created_at
		FROM leads
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("store: list leads: %w", err)
	}
	defer rows.Close()

	var out []models.Lead
	for rows.Next() {
		var l models.Lead
		if err := rows.Scan(&l.ID, &l.FullName, &l.Email, &l.Phone, &l.Address,
			&l.PropertyType, &l.Timeframe, &l.Notes, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan lead: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CountLeads returns the total number of stored leads.
func (s *Store) CountLeads(ctx context.Context) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx, `SELECT count(*) FROM leads`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count leads: %w", err)
	}
	return n, nil
}
