// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/rankboard/cliparse"
	"github.com/danielhkuo/rankboard/handlers"
	"github.com/danielhkuo/rankboard/middleware"
	"github.com/danielhkuo/rankboard/models"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	playerHandler := handlers.NewPlayerHandler(db, cfg)
	leaderboardHandler := handlers.NewLeaderboardHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{OK: true})
	})

	// Registration
	mux.HandleFunc("POST /register", middleware.WithLogging(playerHandler.Register))

	// Score submission and ranking
	mux.HandleFunc("POST /update-leaderboard", middleware.WithLogging(leaderboardHandler.Submit))
	mux.HandleFunc("GET /leaderboard", middleware.WithLogging(leaderboardHandler.Get))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("rankboard API v1"))
	})

	return mux
}
