// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger implements the leaderboard core: player registration,
score merging, and ranking queries. Handlers deliver already-parsed
values here; this package owns every invariant that matters.

# Identity

RegisterUser maps a unique username to a stable numeric id:

	player, err := ledger.RegisterUser(ctx, db, "alice")

Registration is idempotent. Concurrent registrations of the same new
username are resolved by the UNIQUE constraint on player.username:
the losing insert is a DO NOTHING no-op followed by a re-fetch, never
a surfaced error and never a duplicate row.

# Score Merging

Each player has at most one score_record row, updated in place. The
merge policy decides how a new submission combines with the stored
value:

	rec, err := ledger.SubmitScore(ctx, db, player.ID, 80, ledger.PolicyBest)
	rec, err := ledger.SubmitResult(ctx, db, player.ID, ledger.Delta{Victories: 1})

  - PolicyBest: stored = max(stored, submitted); replay-safe
  - PolicyLatest: stored = submitted; stale retries overwrite newer data
  - PolicyAccumulate: counters += deltas; replays double-count

All three are single INSERT ... ON CONFLICT (user_id) DO UPDATE
statements. The database evaluates the merge expression atomically per
row, so concurrent submissions for one player can never interleave a
read with a write and lose an update. There are no in-process locks.

# Ranking

TopN returns up to n entries (clamped to MaxTopN = 100), primary score
field descending with a fixed, documented tie-break:

	entries, err := ledger.TopN(ctx, db, 10, ledger.PolicyBest)

# Errors

  - ErrInvalidUsername: empty or over 64 bytes
  - ErrUnknownPlayer: lookup or submission for a nonexistent player
  - ErrNegativeDelta: accumulator deltas must be >= 0

Everything else is a wrapped store error; callers treat those as
retryable server failures.
*/
package ledger
