package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mektycoon/mekgold/tycoon/database/models"
)

// InitializeSchema creates all required database tables and indexes
func (db *DB) InitializeSchema(ctx context.Context) error {
	tables := []interface{}{
		(*models.Account)(nil),
		(*models.Asset)(nil),
		(*models.ModifierType)(nil),
		(*models.Modifier)(nil),
		(*models.Settlement)(nil),
	}

	for _, model := range tables {
		_, err := db.bunDB.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_assets_account_id ON assets(account_id);",
		"CREATE INDEX IF NOT EXISTS idx_modifiers_account_active ON modifiers(account_id, active);",
		"CREATE INDEX IF NOT EXISTS idx_modifiers_stack_key ON modifiers(account_id, type_id, source) WHERE active;",
		"CREATE INDEX IF NOT EXISTS idx_modifiers_expires_at ON modifiers(expires_at) WHERE active;",
		"CREATE INDEX IF NOT EXISTS idx_settlements_account_id ON settlements(account_id, created_at);",
		"CREATE INDEX IF NOT EXISTS idx_settlements_unarchived ON settlements(created_at) WHERE archived_at IS NULL;",
	}

	for _, stmt := range indexes {
		if _, err := db.ExecWithLog(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	slog.Info("Database schema initialized",
		slog.String("type", "db"),
		slog.String("driver", db.driver),
		slog.Int("tables", len(tables)),
		slog.Int("indexes", len(indexes)))
	return nil
}
