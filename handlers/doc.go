// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Rankboard API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - PlayerHandler: Username registration
  - LeaderboardHandler: Score submission and ranking retrieval

Handlers are created via constructor functions that accept *sql.DB and Config:

	playerHandler := handlers.NewPlayerHandler(db, cfg)

# Request Flow

	POST /register           → Register (idempotent, returns {id, username})
	POST /update-leaderboard → Submit (merges per the configured policy)
	GET  /leaderboard        → Get (ranked entries, capped at 100)

Submission identifies the player by user_id or username. Whether an
unknown username is auto-registered or rejected is the AutoRegister
config flag.

# Validation

Handlers validate shape and numbers (finite, whole, non-negative for
accumulator deltas) before any store access, then delegate every
invariant-bearing write to the ledger package. Store failures come
back as generic "Database error" bodies; a context deadline becomes a
503 so clients know to retry.

# Timeouts

Every store access runs under a 5 second context timeout (dbTimeout).
No handler blocks indefinitely on the database.
*/
package handlers
