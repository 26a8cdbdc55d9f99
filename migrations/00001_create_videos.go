package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateVideos, downCreateVideos)
}

func upCreateVideos(ctx context.Context, tx *sql.Tx) error {
	createVideoTable := `
	CREATE TABLE IF NOT EXISTS videos (
		id SERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT,
		category VARCHAR(100),
		video_url TEXT,
		blob_url TEXT,
		thumbnail_url TEXT,
		file_name VARCHAR(500),
		file_size BIGINT,
		duration DOUBLE PRECISION,
		vimeo_id VARCHAR(50),
		vimeo_hash VARCHAR(50),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	if _, err := tx.ExecContext(ctx, createVideoTable); err != nil {
		return fmt.Errorf("could not create videos table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_videos_category ON videos (category);`,
		`CREATE INDEX IF NOT EXISTS idx_videos_created_at ON videos (created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_videos_vimeo_id ON videos (vimeo_id);`,
	}
	for _, stmt := range indexes {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not create index: %w", err)
		}
	}
	return nil
}

func downCreateVideos(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS videos;`); err != nil {
		return fmt.Errorf("could not drop videos table: %w", err)
	}
	return nil
}
