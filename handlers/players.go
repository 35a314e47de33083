// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/rankboard/cliparse"
	"github.com/danielhkuo/rankboard/ledger"
	"github.com/danielhkuo/rankboard/middleware"
	"github.com/danielhkuo/rankboard/models"
)

// dbTimeout bounds every store access; a stalled database surfaces as
// a 503 on the request, never a hung handler.
const dbTimeout = 5 * time.Second

type PlayerHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPlayerHandler(db *sql.DB, cfg cliparse.Config) *PlayerHandler {
	return &PlayerHandler{db: db, cfg: cfg}
}

// Register handles POST /register
// Idempotent: registering an existing username returns its player
// unchanged with the same id.
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Username is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	player, err := ledger.RegisterUser(ctx, h.db, req.Username)
	if errors.Is(err, ledger.ErrInvalidUsername) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Username must be 1-64 bytes")
		return
	}
	if err != nil {
		storeError(w, err, "failed to register player")
		return
	}

	slog.Info("player registered", "user_id", player.ID, "username", player.Username)

	middleware.JSONResponse(w, http.StatusOK, models.RegisterResponse{
		ID:       player.ID,
		Username: player.Username,
	})
}

// storeError translates a store failure into a generic JSON error.
// Driver detail goes to the log, never the response body.
func storeError(w http.ResponseWriter, err error, msg string) {
	slog.Error(msg, "error", err)
	if errors.Is(err, context.DeadlineExceeded) {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Database temporarily unavailable")
		return
	}
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
}
