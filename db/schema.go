// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, databaseType string) error {
	schema := schemaSQLite
	if databaseType == "postgres" {
		schema = schemaPostgres
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The two dialects differ only in how the player id is auto-assigned.
// Timestamps are always supplied by the application so that rows
// compare identically on both engines.

const schemaSQLite = `
-- Players
CREATE TABLE IF NOT EXISTS player (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL
);

-- Score records: exactly one row per player, merged in place
CREATE TABLE IF NOT EXISTS score_record (
    user_id INTEGER NOT NULL UNIQUE REFERENCES player(id) ON DELETE CASCADE,
    score BIGINT NOT NULL DEFAULT 0,
    victories BIGINT NOT NULL DEFAULT 0 CHECK (victories >= 0),
    defeats BIGINT NOT NULL DEFAULT 0 CHECK (defeats >= 0),
    explored BIGINT NOT NULL DEFAULT 0 CHECK (explored >= 0),
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_score_record_score ON score_record(score);
CREATE INDEX IF NOT EXISTS idx_score_record_victories ON score_record(victories);
`

const schemaPostgres = `
-- Players
CREATE TABLE IF NOT EXISTS player (
    id BIGSERIAL PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL
);

-- Score records: exactly one row per player, merged in place
CREATE TABLE IF NOT EXISTS score_record (
    user_id BIGINT NOT NULL UNIQUE REFERENCES player(id) ON DELETE CASCADE,
    score BIGINT NOT NULL DEFAULT 0,
    victories BIGINT NOT NULL DEFAULT 0 CHECK (victories >= 0),
    defeats BIGINT NOT NULL DEFAULT 0 CHECK (defeats >= 0),
    explored BIGINT NOT NULL DEFAULT 0 CHECK (explored >= 0),
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_score_record_score ON score_record(score);
CREATE INDEX IF NOT EXISTS idx_score_record_victories ON score_record(victories);
`
