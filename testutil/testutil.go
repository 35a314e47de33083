// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/rankboard/cliparse"
	"github.com/danielhkuo/rankboard/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. Each test gets its own uniquely named shared-cache database
// so parallel tests never see each other's rows.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// One writer at a time, same as the production sqlite pool
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration (best-of policy,
// auto-registration on)
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3000,
		DatabaseURL:  "file::memory:",
		DatabaseType: "sqlite",
		MergePolicy:  "best",
		AutoRegister: true,
	}
}

// CreateTestPlayer registers a player directly and returns its id
func CreateTestPlayer(t *testing.T, db *sql.DB, username string) int64 {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO player (username, created_at)
		VALUES ($1, $2)
	`, username, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test player: %v", err)
	}

	var id int64
	if err := db.QueryRow(`SELECT id FROM player WHERE username = $1`, username).Scan(&id); err != nil {
		t.Fatalf("Failed to query test player: %v", err)
	}

	return id
}

// SubmitTestScore writes a score record directly with an explicit
// updated_at so tests can fix tie-break ordering
func SubmitTestScore(t *testing.T, db *sql.DB, userID, score int64, updatedAt time.Time) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO score_record (user_id, score, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET score = excluded.score, updated_at = excluded.updated_at
	`, userID, score, updatedAt.UTC())
	if err != nil {
		t.Fatalf("Failed to create test score: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
