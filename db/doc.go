// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection setup and schema creation.

# Connection

Open picks the driver from the configured database type and applies
pool limits:

	conn, err := db.Open(cfg)

SQLite (modernc.org/sqlite, pure Go) is capped at a single open
connection since SQLite permits one writer at a time. PostgreSQL
(lib/pq) gets a bounded pool (10 open / 5 idle).

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes. Called once from main before the server accepts traffic, never
from request handlers.

# Tables

The schema includes:

  - player: username → numeric id, created once, never mutated
  - score_record: one row per player holding the current merged
    score and accumulator counters

# Relationships

	player 1──1 score_record (absent until first submission)

The UNIQUE constraints on player.username and score_record.user_id are
what make concurrent registration and concurrent submission safe: both
write paths are single INSERT ... ON CONFLICT statements keyed on them.

# Indexes

Performance indexes on:

  - player.username (unique)
  - score_record.user_id (unique)
  - score_record.score
  - score_record.victories
*/
package db
