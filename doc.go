// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Rankboard API server.

Rankboard is a small leaderboard service for browser games: players
register a username, submit game results, and fetch a ranked list.
How repeat submissions for the same player are merged is governed by a
configurable merge policy (best score, latest score, or accumulated
win/loss counters).

# Starting the Server

The server runs against SQLite by default and needs no configuration:

	go run main.go

Or against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run main.go

A .env file in the working directory is loaded at startup if present.

# Configuration

Optional settings (flags override env vars):

  - PORT (-p): Server port (default: 3000)
  - DATABASE_URL (-d): Connection string (default: file:rankboard.db)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - MERGE_POLICY (-merge): "best", "latest", or "accumulate" (default: best)
  - AUTO_REGISTER (-auto-register): create unknown players on score
    submission instead of rejecting them (default: true)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (players, leaderboard)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - ledger: Registration, score merging, and ranking queries
  - db: Connection setup and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
