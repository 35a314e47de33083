package models

// Request types

type RegisterRequest struct {
	Username string `json:"username"`
}

// Score is a pointer so "missing" and "zero" are distinguishable, and
// a float so any JSON number parses before validation decides.
type SubmitScoreRequest struct {
	Username string   `json:"username,omitempty"`
	UserID   *int64   `json:"user_id,omitempty"`
	Score    *float64 `json:"score,omitempty"`
	Victory  *float64 `json:"victory,omitempty"`
	Defeat   *float64 `json:"defeat,omitempty"`
	Explored *float64 `json:"explored,omitempty"`
}

// Response types

type RegisterResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type SubmitScoreResponse struct {
	OK        bool   `json:"ok"`
	Score     *int64 `json:"score,omitempty"`
	Victories *int64 `json:"victories,omitempty"`
	Defeats   *int64 `json:"defeats,omitempty"`
	Explored  *int64 `json:"explored,omitempty"`
}

type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// LeaderboardEntry is one ranked row. Scalar deployments populate
// score; accumulator deployments populate the counters.
type LeaderboardEntry struct {
	Username  string `json:"username"`
	Score     *int64 `json:"score,omitempty"`
	Victories *int64 `json:"victories,omitempty"`
	Defeats   *int64 `json:"defeats,omitempty"`
	Explored  *int64 `json:"explored,omitempty"`
}

type HealthResponse struct {
	OK bool `json:"ok"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
