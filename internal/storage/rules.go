package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/billflow/billflow/internal/common"
	"github.com/billflow/billflow/internal/model"
)

// CreateCustomRule saves a user-promoted pattern rule. The pattern must
// compile; persisting an unusable rule helps nobody.
func (s *SQLiteStorage) CreateCustomRule(ctx context.Context, rule *model.PatternRule) error {
	if rule.Name == "" {
		return fmt.Errorf("rule name is required")
	}
	if _, err := regexp.Compile(rule.Pattern); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidPattern, err)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO custom_rules (name, pattern, description, value_type, priority)
		 VALUES (?, ?, ?, ?, ?)`,
		rule.Name, rule.Pattern, rule.Description, string(rule.ValueType), rule.Priority)
	if err != nil {
		return fmt.Errorf("failed to create custom rule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get custom rule ID: %w", err)
	}
	rule.ID = id
	rule.CreatedAt = time.Now()

	return nil
}

// ListCustomRules returns all saved custom rules in creation order.
func (s *SQLiteStorage) ListCustomRules(ctx context.Context) ([]model.PatternRule, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, pattern, description, value_type, priority, created_at
		 FROM custom_rules ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom rules: %w", err)
	}
	defer rows.Close()

	var rules []model.PatternRule
	for rows.Next() {
		var r model.PatternRule
		var vt string
		if err := rows.Scan(&r.ID, &r.Name, &r.Pattern, &r.Description, &vt, &r.Priority, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan custom rule: %w", err)
		}
		r.ValueType = model.ValueType(vt)
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate custom rules: %w", err)
	}

	return rules, nil
}

// DeleteCustomRule removes a saved rule by name.
func (s *SQLiteStorage) DeleteCustomRule(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM custom_rules WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete custom rule: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("custom rule %q: %w", name, common.ErrNotFound)
	}
	return nil
}

// GetCustomRule fetches one saved rule by name.
func (s *SQLiteStorage) GetCustomRule(ctx context.Context, name string) (*model.PatternRule, error) {
	var r model.PatternRule
	var vt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, pattern, description, value_type, priority, created_at
		 FROM custom_rules WHERE name = ?`, name).
		Scan(&r.ID, &r.Name, &r.Pattern, &r.Description, &vt, &r.Priority, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("custom rule %q: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get custom rule: %w", err)
	}
	r.ValueType = model.ValueType(vt)
	return &r, nil
}
