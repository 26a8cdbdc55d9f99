package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upAddSortOrder, downAddSortOrder)
}

// sort_order shipped after the first deployments, which is why the
// repository reports a schema error when it is missing.
func upAddSortOrder(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`ALTER TABLE videos ADD COLUMN IF NOT EXISTS sort_order INTEGER;`,
		`CREATE INDEX IF NOT EXISTS idx_videos_sort_order ON videos (sort_order);`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not add sort_order: %w", err)
		}
	}
	return nil
}

func downAddSortOrder(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `ALTER TABLE videos DROP COLUMN IF EXISTS sort_order;`); err != nil {
		return fmt.Errorf("could not drop sort_order: %w", err)
	}
	return nil
}
