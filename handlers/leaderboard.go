// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/danielhkuo/rankboard/cliparse"
	"github.com/danielhkuo/rankboard/ledger"
	"github.com/danielhkuo/rankboard/middleware"
	"github.com/danielhkuo/rankboard/models"
)

type LeaderboardHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewLeaderboardHandler(db *sql.DB, cfg cliparse.Config) *LeaderboardHandler {
	return &LeaderboardHandler{db: db, cfg: cfg}
}

// Submit handles POST /update-leaderboard
// The body identifies a player by user_id or username and carries a
// scalar score (best/latest policies) or victory/defeat/explored
// deltas (accumulate policy). All validation happens before any write.
func (h *LeaderboardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitScoreRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	policy := ledger.Policy(h.cfg.MergePolicy)

	// Validate numeric fields up front so a bad request never touches
	// the store
	var score int64
	var delta ledger.Delta
	if policy == ledger.PolicyAccumulate {
		if req.Score != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "This deployment accumulates victory/defeat/explored, not a scalar score")
			return
		}
		if req.Victory == nil && req.Defeat == nil && req.Explored == nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "victory, defeat, or explored is required")
			return
		}
		var ok bool
		if delta.Victories, ok = counterValue(req.Victory); !ok {
			middleware.ErrorResponse(w, http.StatusBadRequest, "victory must be a non-negative integer")
			return
		}
		if delta.Defeats, ok = counterValue(req.Defeat); !ok {
			middleware.ErrorResponse(w, http.StatusBadRequest, "defeat must be a non-negative integer")
			return
		}
		if delta.Explored, ok = counterValue(req.Explored); !ok {
			middleware.ErrorResponse(w, http.StatusBadRequest, "explored must be a non-negative integer")
			return
		}
	} else {
		if req.Score == nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Valid score is required")
			return
		}
		var ok bool
		if score, ok = finiteInt(*req.Score); !ok {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Valid score is required")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	// Resolve the player. user_id takes precedence when both are sent.
	var player ledger.Player
	var err error
	switch {
	case req.UserID != nil:
		player, err = ledger.PlayerByID(ctx, h.db, *req.UserID)
	case req.Username != "":
		if h.cfg.AutoRegister {
			player, err = ledger.RegisterUser(ctx, h.db, req.Username)
		} else {
			player, err = ledger.PlayerByUsername(ctx, h.db, req.Username)
		}
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "username or user_id is required")
		return
	}

	if errors.Is(err, ledger.ErrUnknownPlayer) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown player; register first")
		return
	}
	if errors.Is(err, ledger.ErrInvalidUsername) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Username must be 1-64 bytes")
		return
	}
	if err != nil {
		storeError(w, err, "failed to resolve player")
		return
	}

	// Merge via a single atomic upsert
	var rec ledger.Record
	if policy == ledger.PolicyAccumulate {
		rec, err = ledger.SubmitResult(ctx, h.db, player.ID, delta)
	} else {
		rec, err = ledger.SubmitScore(ctx, h.db, player.ID, score, policy)
	}
	if err != nil {
		storeError(w, err, "failed to submit score")
		return
	}

	slog.Info("score submitted", "user_id", player.ID, "policy", string(policy))

	resp := models.SubmitScoreResponse{OK: true}
	if policy == ledger.PolicyAccumulate {
		resp.Victories = &rec.Victories
		resp.Defeats = &rec.Defeats
		resp.Explored = &rec.Explored
	} else {
		resp.Score = &rec.Score
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Get handles GET /leaderboard
// Accepts an optional ?limit= parameter; the ledger clamps it to its
// maximum either way.
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	policy := ledger.Policy(h.cfg.MergePolicy)
	entries, err := ledger.TopN(ctx, h.db, limit, policy)
	if err != nil {
		storeError(w, err, "failed to query leaderboard")
		return
	}

	resp := models.LeaderboardResponse{Leaderboard: make([]models.LeaderboardEntry, 0, len(entries))}
	for _, e := range entries {
		entry := models.LeaderboardEntry{Username: e.Username}
		if policy == ledger.PolicyAccumulate {
			v, d, x := e.Victories, e.Defeats, e.Explored
			entry.Victories, entry.Defeats, entry.Explored = &v, &d, &x
		} else {
			s := e.Score
			entry.Score = &s
		}
		resp.Leaderboard = append(resp.Leaderboard, entry)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// finiteInt reports whether v is a finite whole number and returns it
// as an int64. JSON cannot encode NaN or infinities, but a defensive
// check here keeps the ledger's integer invariant independent of the
// decoder.
func finiteInt(v float64) (int64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, false
	}
	return int64(v), true
}

// counterValue validates an optional accumulator delta; missing means
// zero, negative or fractional values are rejected.
func counterValue(v *float64) (int64, bool) {
	if v == nil {
		return 0, true
	}
	n, ok := finiteInt(*v)
	if !ok || n < 0 {
		return 0, false
	}
	return n, true
}
