// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import "errors"

// Policy selects how a new submission merges into a player's existing
// score record. A deployment runs exactly one policy; see cliparse.
type Policy string

const (
	// PolicyBest keeps the maximum submitted score. Monotonic and
	// idempotent under replay: resubmitting an old lower score is a no-op.
	PolicyBest Policy = "best"

	// PolicyLatest overwrites unconditionally and advances updated_at.
	// Not idempotent: a stale retry arriving after a newer submission
	// overwrites it, since submissions carry no ordering information.
	PolicyLatest Policy = "latest"

	// PolicyAccumulate adds victory/defeat/explored deltas to running
	// totals. Safe to replay only if each game result is submitted
	// exactly once; a replay double-counts.
	PolicyAccumulate Policy = "accumulate"
)

// ValidPolicy reports whether s names a known merge policy.
func ValidPolicy(s string) bool {
	switch Policy(s) {
	case PolicyBest, PolicyLatest, PolicyAccumulate:
		return true
	}
	return false
}

// MaxTopN caps how many entries a ranking query returns regardless of
// the requested size.
const MaxTopN = 100

// MaxUsernameBytes bounds usernames; comparison is byte-wise and
// case-sensitive.
const MaxUsernameBytes = 64

var (
	ErrInvalidUsername = errors.New("username must be 1-64 bytes")
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrNegativeDelta   = errors.New("accumulator deltas must be non-negative")
)

// Player binds a unique username to its stable numeric id. Created on
// first registration, never mutated, never deleted.
type Player struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Record is the single current score row for a player. Which fields
// are meaningful depends on the configured policy: Score for the
// scalar policies, the counters for accumulate.
type Record struct {
	UserID    int64
	Score     int64
	Victories int64
	Defeats   int64
	Explored  int64
}

// Delta carries non-negative accumulator increments for one game result.
type Delta struct {
	Victories int64
	Defeats   int64
	Explored  int64
}
