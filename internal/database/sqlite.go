package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout = 5000",
}

const feedbackSchema = `
CREATE TABLE IF NOT EXISTS feedbacks (
    id                  TEXT PRIMARY KEY,
    rating              INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
    review              TEXT NOT NULL,
    user_response       TEXT NOT NULL,
    summary             TEXT NOT NULL,
    recommended_actions TEXT NOT NULL,
    timestamp           TEXT NOT NULL,
    status              TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_feedbacks_timestamp ON feedbacks (timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_feedbacks_rating ON feedbacks (rating);
`

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection serializes writers and keeps per-connection pragmas in effect.
	db.SetMaxOpenConns(1)

	for _, pragma := range sqlitePragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, feedbackSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
