// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: username
  - SubmitScoreRequest: username or user_id, plus score (scalar
    policies) or victory/defeat/explored deltas (accumulate policy)

Numeric fields are *float64 so a missing field is distinguishable from
an explicit zero and malformed values fail at decode time, before any
store access.

# Response Types

Types for JSON responses:

  - RegisterResponse: id, username
  - SubmitScoreResponse: ok, plus the resolved score or totals
  - LeaderboardResponse: leaderboard (ranked entries)
  - HealthResponse: ok
  - ErrorResponse: error, message

LeaderboardEntry uses omitempty pointers so scalar deployments emit
{username, score} and accumulator deployments emit {username,
victories, defeats, explored} from the same type.

Domain types (Player, Record, Entry) live in the ledger package; this
package is only the HTTP wire shape.
*/
package models
