// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema sticks to SQL accepted by both SQLite and PostgreSQL.
const schema = `
-- Final result of the most recent concluded election per community
CREATE TABLE IF NOT EXISTS result_snapshot (
    community_id TEXT PRIMARY KEY,
    id TEXT NOT NULL,
    election_id TEXT NOT NULL,
    prompt TEXT NOT NULL,
    voters INTEGER NOT NULL,
    concluded_at TIMESTAMP NOT NULL,
    payload TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_result_snapshot_id ON result_snapshot(id);
`
