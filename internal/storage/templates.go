package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/billflow/billflow/internal/common"
	"github.com/billflow/billflow/internal/model"
)

// SaveTemplate inserts or replaces an email template by name.
func (s *SQLiteStorage) SaveTemplate(ctx context.Context, tmpl model.EmailTemplate) error {
	if tmpl.Name == "" {
		return fmt.Errorf("template name is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO email_templates (name, subject, body, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET
		   subject = excluded.subject,
		   body = excluded.body,
		   updated_at = CURRENT_TIMESTAMP`,
		tmpl.Name, tmpl.Subject, tmpl.Body)
	if err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	return nil
}

// GetTemplate fetches a template by name.
func (s *SQLiteStorage) GetTemplate(ctx context.Context, name string) (*model.EmailTemplate, error) {
	var t model.EmailTemplate
	err := s.db.QueryRowContext(ctx,
		`SELECT name, subject, body FROM email_templates WHERE name = ?`, name).
		Scan(&t.Name, &t.Subject, &t.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("template %q: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return &t, nil
}

// ListTemplates returns all saved templates ordered by name.
func (s *SQLiteStorage) ListTemplates(ctx context.Context) ([]model.EmailTemplate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, subject, body FROM email_templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []model.EmailTemplate
	for rows.Next() {
		var t model.EmailTemplate
		if err := rows.Scan(&t.Name, &t.Subject, &t.Body); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate templates: %w", err)
	}

	return templates, nil
}
