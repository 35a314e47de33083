// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// The merge is a single conditional upsert keyed on the unique user_id
// column. Expressing read-merge-write as one statement is what makes
// concurrent submissions for the same player safe: two interleaved
// best-of submissions of 40 and 90 always leave 90, never a lost
// update, and never a second row.

// SubmitScore applies a scalar score submission for userID under the
// given policy (best or latest) and returns the resolved record.
func SubmitScore(ctx context.Context, db *sql.DB, userID, score int64, policy Policy) (Record, error) {
	var query string
	switch policy {
	case PolicyBest:
		query = `
			INSERT INTO score_record (user_id, score, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO UPDATE
			SET score = excluded.score, updated_at = excluded.updated_at
			WHERE excluded.score > score_record.score
		`
	case PolicyLatest:
		query = `
			INSERT INTO score_record (user_id, score, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO UPDATE
			SET score = excluded.score, updated_at = excluded.updated_at
		`
	default:
		return Record{}, fmt.Errorf("policy %q does not accept a scalar score", policy)
	}

	_, err := db.ExecContext(ctx, query, userID, score, time.Now().UTC())
	if err != nil {
		return Record{}, fmt.Errorf("failed to upsert score: %w", err)
	}

	return RecordByUser(ctx, db, userID)
}

// SubmitResult adds one game result's deltas to userID's running
// totals under the accumulate policy and returns the new totals.
func SubmitResult(ctx context.Context, db *sql.DB, userID int64, d Delta) (Record, error) {
	if d.Victories < 0 || d.Defeats < 0 || d.Explored < 0 {
		return Record{}, ErrNegativeDelta
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO score_record (user_id, victories, defeats, explored, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET victories = score_record.victories + excluded.victories,
		    defeats = score_record.defeats + excluded.defeats,
		    explored = score_record.explored + excluded.explored,
		    updated_at = excluded.updated_at
	`, userID, d.Victories, d.Defeats, d.Explored, time.Now().UTC())
	if err != nil {
		return Record{}, fmt.Errorf("failed to upsert result: %w", err)
	}

	return RecordByUser(ctx, db, userID)
}

// RecordByUser returns the current score record for userID, or
// ErrUnknownPlayer if the player has never submitted.
func RecordByUser(ctx context.Context, db *sql.DB, userID int64) (Record, error) {
	var rec Record
	err := db.QueryRowContext(ctx, `
		SELECT user_id, score, victories, defeats, explored
		FROM score_record
		WHERE user_id = $1
	`, userID).Scan(&rec.UserID, &rec.Score, &rec.Victories, &rec.Defeats, &rec.Explored)

	if err == sql.ErrNoRows {
		return Record{}, ErrUnknownPlayer
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to query score record: %w", err)
	}
	return rec, nil
}
