// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RegisterUser returns the player for username, creating it if absent.
// Idempotent: registering the same username twice returns the same id
// with no error. Two concurrent registrations of a new username race
// on the UNIQUE constraint; the loser's insert is a no-op and the
// re-fetch below returns the winner's row, so exactly one player ever
// exists per username.
func RegisterUser(ctx context.Context, db *sql.DB, username string) (Player, error) {
	if username == "" || len(username) > MaxUsernameBytes {
		return Player{}, ErrInvalidUsername
	}

	// Fast path: already registered
	p, err := PlayerByUsername(ctx, db, username)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrUnknownPlayer) {
		return Player{}, err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO player (username, created_at)
		VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
	`, username, time.Now().UTC())
	if err != nil {
		return Player{}, fmt.Errorf("failed to insert player: %w", err)
	}

	return PlayerByUsername(ctx, db, username)
}

// PlayerByUsername looks up a player by its unique username.
func PlayerByUsername(ctx context.Context, db *sql.DB, username string) (Player, error) {
	var p Player
	err := db.QueryRowContext(ctx, `
		SELECT id, username FROM player WHERE username = $1
	`, username).Scan(&p.ID, &p.Username)

	if err == sql.ErrNoRows {
		return Player{}, ErrUnknownPlayer
	}
	if err != nil {
		return Player{}, fmt.Errorf("failed to query player: %w", err)
	}
	return p, nil
}

// PlayerByID looks up a player by numeric id.
func PlayerByID(ctx context.Context, db *sql.DB, id int64) (Player, error) {
	var p Player
	err := db.QueryRowContext(ctx, `
		SELECT id, username FROM player WHERE id = $1
	`, id).Scan(&p.ID, &p.Username)

	if err == sql.ErrNoRows {
		return Player{}, ErrUnknownPlayer
	}
	if err != nil {
		return Player{}, fmt.Errorf("failed to query player: %w", err)
	}
	return p, nil
}
