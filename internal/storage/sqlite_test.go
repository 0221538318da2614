package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/billflow/billflow/internal/common"
	"github.com/billflow/billflow/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func TestCustomRuleStorage(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	rule := &model.PatternRule{
		Name:        "vendor-code",
		Pattern:     `\b[A-Z]{4}\d{4}\b`,
		Description: "Vendor account codes",
		ValueType:   model.ValueAccount,
		Priority:    7,
	}

	t.Run("CreateCustomRule", func(t *testing.T) {
		if err := store.CreateCustomRule(ctx, rule); err != nil {
			t.Fatalf("CreateCustomRule() error = %v", err)
		}
		if rule.ID == 0 {
			t.Error("CreateCustomRule() did not set rule ID")
		}
	})

	t.Run("CreateCustomRule_InvalidPattern", func(t *testing.T) {
		bad := &model.PatternRule{Name: "broken", Pattern: "([", ValueType: model.ValueAccount}
		err := store.CreateCustomRule(ctx, bad)
		if !errors.Is(err, common.ErrInvalidPattern) {
			t.Errorf("CreateCustomRule() error = %v, want ErrInvalidPattern", err)
		}
	})

	t.Run("GetCustomRule", func(t *testing.T) {
		got, err := store.GetCustomRule(ctx, "vendor-code")
		if err != nil {
			t.Fatalf("GetCustomRule() error = %v", err)
		}
		if got.Pattern != rule.Pattern {
			t.Errorf("GetCustomRule() pattern = %q, want %q", got.Pattern, rule.Pattern)
		}
		if got.ValueType != model.ValueAccount {
			t.Errorf("GetCustomRule() value type = %q, want %q", got.ValueType, model.ValueAccount)
		}
	})

	t.Run("GetCustomRule_NotFound", func(t *testing.T) {
		_, err := store.GetCustomRule(ctx, "missing")
		if !errors.Is(err, common.ErrNotFound) {
			t.Errorf("GetCustomRule() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListCustomRules", func(t *testing.T) {
		rules, err := store.ListCustomRules(ctx)
		if err != nil {
			t.Fatalf("ListCustomRules() error = %v", err)
		}
		if len(rules) != 1 {
			t.Fatalf("ListCustomRules() returned %d rules, want 1", len(rules))
		}
		if rules[0].Name != "vendor-code" {
			t.Errorf("ListCustomRules() name = %q, want vendor-code", rules[0].Name)
		}
	})

	t.Run("DeleteCustomRule", func(t *testing.T) {
		if err := store.DeleteCustomRule(ctx, "vendor-code"); err != nil {
			t.Fatalf("DeleteCustomRule() error = %v", err)
		}
		err := store.DeleteCustomRule(ctx, "vendor-code")
		if !errors.Is(err, common.ErrNotFound) {
			t.Errorf("DeleteCustomRule() second delete error = %v, want ErrNotFound", err)
		}
	})
}

func TestTemplateStorage(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	tmpl := model.EmailTemplate{
		Name:    "monthly",
		Subject: "Statement for {{.AccountNumber}}",
		Body:    "Hello {{.CustomerName}}",
	}

	t.Run("SaveTemplate", func(t *testing.T) {
		if err := store.SaveTemplate(ctx, tmpl); err != nil {
			t.Fatalf("SaveTemplate() error = %v", err)
		}
	})

	t.Run("SaveTemplate_Upsert", func(t *testing.T) {
		tmpl.Subject = "Updated subject"
		if err := store.SaveTemplate(ctx, tmpl); err != nil {
			t.Fatalf("SaveTemplate() upsert error = %v", err)
		}

		got, err := store.GetTemplate(ctx, "monthly")
		if err != nil {
			t.Fatalf("GetTemplate() error = %v", err)
		}
		if got.Subject != "Updated subject" {
			t.Errorf("GetTemplate() subject = %q, want updated value", got.Subject)
		}
	})

	t.Run("GetTemplate_NotFound", func(t *testing.T) {
		_, err := store.GetTemplate(ctx, "missing")
		if !errors.Is(err, common.ErrNotFound) {
			t.Errorf("GetTemplate() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListTemplates", func(t *testing.T) {
		templates, err := store.ListTemplates(ctx)
		if err != nil {
			t.Fatalf("ListTemplates() error = %v", err)
		}
		if len(templates) != 1 {
			t.Fatalf("ListTemplates() returned %d templates, want 1", len(templates))
		}
	})
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteStorage(""); err == nil {
		t.Error("NewSQLiteStorage(\"\") error = nil, want error")
	}
}
