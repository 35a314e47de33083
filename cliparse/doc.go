// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseURL: Connection string (default: file:rankboard.db for sqlite)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - MergePolicy: "best", "latest", or "accumulate" (default: best)
  - AutoRegister: create unknown players on submission (default: true)

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	-merge         Merge policy
	-auto-register Auto-register unknown players

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	MERGE_POLICY  → -merge
	AUTO_REGISTER → -auto-register

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if values are invalid:

  - DATABASE_TYPE must be sqlite or postgres
  - DATABASE_URL must be provided for postgres
  - MERGE_POLICY must be a policy the ledger package recognizes
  - AUTO_REGISTER must parse as a boolean

The merge policy is deliberately a startup setting, not a per-request
one: mixing policies against the same table silently corrupts rank
order, so a deployment picks exactly one.

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(cfg)
	// ...
	mux := router.NewRouter(conn, cfg)
*/
package cliparse
