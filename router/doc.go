// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes for the Rankboard API.

# Routes

Uses Go 1.22+ method-aware routing on the standard ServeMux:

	POST /register           → PlayerHandler.Register
	POST /update-leaderboard → LeaderboardHandler.Submit
	GET  /leaderboard        → LeaderboardHandler.Get
	GET  /health             → liveness probe ({"ok":true})
	GET  /                   → plain banner

# Construction

NewRouter wires handlers with their database and config dependencies:

	mux := router.NewRouter(db, cfg)

All routes except /health and / are wrapped in middleware.WithLogging.
CORS is applied to the whole mux in main, not per route.
*/
package router
