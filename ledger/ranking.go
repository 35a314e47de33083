// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"fmt"
)

// Entry is one row of a ranking: a player joined with its current
// score record.
type Entry struct {
	Username  string
	Score     int64
	Victories int64
	Defeats   int64
	Explored  int64
}

// TopN returns up to n ranked entries, highest first. n is clamped to
// MaxTopN; n <= 0 also yields MaxTopN.
//
// Tie-breaking is fixed per policy so equal scores always rank in the
// same order:
//
//   - best/latest: earlier updated_at first (the oldest achiever of a
//     score outranks later ones), then player id ascending
//   - accumulate: more explored rooms first, then player id ascending
//
// Read-only; reflects ledger state at query time.
func TopN(ctx context.Context, db *sql.DB, n int, policy Policy) ([]Entry, error) {
	if n <= 0 || n > MaxTopN {
		n = MaxTopN
	}

	orderBy := `s.score DESC, s.updated_at ASC, p.id ASC`
	if policy == PolicyAccumulate {
		orderBy = `s.victories DESC, s.explored DESC, p.id ASC`
	}

	rows, err := db.QueryContext(ctx, `
		SELECT p.username, s.score, s.victories, s.defeats, s.explored
		FROM score_record s
		JOIN player p ON p.id = s.user_id
		ORDER BY `+orderBy+`
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranking: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Username, &e.Score, &e.Victories, &e.Defeats, &e.Explored); err != nil {
			return nil, fmt.Errorf("failed to scan ranking entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ranking: %w", err)
	}

	return entries, nil
}
