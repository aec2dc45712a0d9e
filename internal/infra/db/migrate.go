package db

import (
	"database/sql"
	"fmt"
)

// MigrateUp creates the schema. All statements are idempotent so the
// migration can run on every startup.
//
// The UNIQUE(source, title) index backs the dedupe gate in the article
// repository: TryInsert's ON CONFLICT clause targets it.
func MigrateUp(db *sql.DB) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS articles (
    id               BIGSERIAL PRIMARY KEY,
    source           TEXT NOT NULL,
    title            TEXT NOT NULL,
    photo_url        TEXT NOT NULL DEFAULT '',
    link             TEXT NOT NULL DEFAULT '',
    tag              TEXT NOT NULL DEFAULT '',
    published_at_raw TEXT NOT NULL DEFAULT '',
    content          TEXT NOT NULL DEFAULT '',
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_articles_source_title ON articles(source, title)`,
		// Pagination reads WHERE source = $1 ORDER BY id ASC.
		`CREATE INDEX IF NOT EXISTS idx_articles_source_id ON articles(source, id)`,
		`
CREATE TABLE IF NOT EXISTS subscribers (
    id             BIGINT PRIMARY KEY,
    display_name   TEXT NOT NULL DEFAULT '',
    notify_enabled BOOLEAN NOT NULL DEFAULT FALSE
)`,
		`CREATE INDEX IF NOT EXISTS idx_subscribers_notify_enabled ON subscribers(notify_enabled) WHERE notify_enabled = TRUE`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("MigrateUp: %w", err)
		}
	}

	return nil
}

// MigrateDown drops the schema in reverse order of creation.
// Use with caution: this deletes all data.
func MigrateDown(db *sql.DB) error {
	statements := []string{
		`DROP TABLE IF EXISTS subscribers`,
		`DROP TABLE IF EXISTS articles`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("MigrateDown: %w", err)
		}
	}

	return nil
}
