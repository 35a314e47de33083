// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/rankboard/ledger"
	"github.com/danielhkuo/rankboard/models"
	"github.com/danielhkuo/rankboard/testutil"
)

func floatPtr(v float64) *float64 { return &v }
func int64Ptr(v int64) *int64     { return &v }

func TestSubmitByUsernameAutoRegisters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig() // auto-register on
	handler := NewLeaderboardHandler(db, cfg)

	req := testutil.MakeRequest("POST", "/update-leaderboard", models.SubmitScoreRequest{
		Username: "alice",
		Score:    floatPtr(50),
	}, nil)
	w := httptest.NewRecorder()
	handler.Submit(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SubmitScoreResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.OK || resp.Score == nil || *resp.Score != 50 {
		t.Errorf("Expected ok with score 50, got %+v", resp)
	}

	// Player row was created implicitly
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM player WHERE username = $1`, "alice").Scan(&count); err != nil {
		t.Fatalf("Failed to count players: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 auto-registered player, got %d", count)
	}
}

func TestSubmitByUserID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewLeaderboardHandler(db, cfg)

	userID := testutil.CreateTestPlayer(t, db, "alice")

	req := testutil.MakeRequest("POST", "/update-leaderboard", models.SubmitScoreRequest{
		UserID: int64Ptr(userID),
		Score:  floatPtr(70),
	}, nil)
	w := httptest.NewRecorder()
	handler.Submit(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SubmitScoreResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Score == nil || *resp.Score != 70 {
		t.Errorf("Expected score 70, got %+v", resp)
	}
}

func TestSubmitUnknownUserID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewLeaderboardHandler(db, cfg)

	req := testutil.MakeRequest("POST", "/update-leaderboard", models.SubmitScoreRequest{
		UserID: int64Ptr(9999),
		Score:  floatPtr(70),
	}, nil)
	w := httptest.NewRecorder()
	handler.Submit(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestSubmitUnknownUsernameWithoutAutoRegister(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	cfg.AutoRegister = false
	handler := NewLeaderboardHandler(db, cfg)

	req := testutil.MakeRequest("POST", "/update-leaderboard", models.SubmitScoreRequest{
		Username: "ghost",
		Score:    floatPtr(10),
	}, nil)
	w := httptest.NewRecorder()
	handler.Submit(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// Rejection must not have created a player as a side effect
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM player`).Scan(&count); err != nil {
		t.Fatalf("Failed to count players: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no players, got %d", count)
	}
}

func TestSubmitMissingIdentity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewLeaderboardHandler(db, cfg)

	req := testutil.MakeRequest("POST", "/update-leaderboard", models.SubmitScoreRequest{
		Score: floatPtr(10),
	}, nil)
	w := httptest.NewRecorder()
	handler.Submit(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestSubmitNonNumericScore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewLeaderboardHandler(db, cfg)

	userID := testutil.CreateTestPlayer(t, db, "alice")
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	testutil.SubmitTestScore(t, db, userID, 42, at)

	body := []byte(`{"username":"alice","score":"notanumber"}`)
	req := httptest.NewRequest("POST", "/update-leaderboard", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.Submit(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// Existing record must be unchanged
	var score int64
	if err := db.QueryRow(`SELECT score FROM score_record WHERE user_id = $1`, userID).Scan(&score); err != nil {
		t.Fatalf("Failed to query score: %v", err)
	}
	if score != 42 {
		t.Errorf("Expected score unchanged at 42, got %d", score)
	}
}

func TestSubmitMissingScore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewLeaderboardHandler(db, cfg)

	req := testutil.MakeRequest("POST", "/update-leaderboard", models.SubmitScoreRequest{
		Username: "alice",
	}, nil)
	w := httptest.NewRecorder()
	handler.Submit(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestSubmitFractionalScore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewLeaderboardHandler(db, cfg)

	req := testutil.MakeRequest("POST", "/update-leaderboard", models.SubmitScoreRequest{
		Username: "alice",
		Score:    floatPtr(80.5),
	}, nil)
	w := httptest.NewRecorder()
	handler.Submit(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestSubmitBestPolicyKeepsMax(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	cfg.MergePolicy = string(ledger.PolicyBest)
	handler := NewLeaderboardHandler(db, cfg)

	var resp models.SubmitScoreResponse
	for _, score := range []float64{50, 30} {
		req := testutil.MakeRequest("POST", "/update-leaderboard", models.SubmitScoreRequest{
			Username: "alice",
			Score:    floatPtr(score),
		}, nil)
		w := httptest.NewRecorder()
		handler.Submit(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertJSON(t, w, &resp)
	}

	if resp.Score == nil || *resp.Score != 50 {
		t.Errorf("Expected best-of to keep 50, got %+v", resp.Score)
	}
}

func TestSubmitLatestPolicyOverwrites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	cfg.MergePolicy = string(ledger.PolicyLatest)
	handler := NewLeaderboardHandler(db, cfg)

	var resp models.SubmitScoreResponse
	for _, score := range []float64{50, 30} {
		req := testutil.MakeRequest("POST", "/update-leaderboard", models.SubmitScoreRequest{
			Username: "alice",
			Score:    floatPtr(score),
		}, nil)
		w := httptest.NewRecorder()
		handler.Submit(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertJSON(t, w, &resp)
	}

	if resp.Score == nil || *resp.Score != 30 {
		t.Errorf("Expected latest-wins to keep 30, got %+v", resp.Score)
	}
}

func TestSubmitAccumulate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	cfg.MergePolicy = string(ledger.PolicyAccumulate)
	handler := NewLeaderboardHandler(db, cfg)

	first := models.SubmitScoreRequest{Username: "alice", Victory: floatPtr(1), Explored: floatPtr(3)}
	second := models.SubmitScoreRequest{Username: "alice", Defeat: floatPtr(1), Explored: floatPtr(2)}

	var resp models.SubmitScoreResponse
	for _, body := range []models.SubmitScoreRequest{first, second} {
		req := testutil.MakeRequest("POST", "/update-leaderboard", body, nil)
		w := httptest.NewRecorder()
		handler.Submit(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertJSON(t, w, &resp)
	}

	if resp.Victories == nil || *resp.Victories != 1 ||
		resp.Defeats == nil || *resp.Defeats != 1 ||
		resp.Explored == nil || *resp.Explored != 5 {
		t.Errorf("Expected totals (1,1,5), got %+v", resp)
	}
}

func TestSubmitAccumulateRejectsNegativeDelta(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	cfg.MergePolicy = string(ledger.PolicyAccumulate)
	handler := NewLeaderboardHandler(db, cfg)

	req := testutil.MakeRequest("POST", "/update-leaderboard", models.SubmitScoreRequest{
		Username: "alice",
		Victory:  floatPtr(-1),
	}, nil)
	w := httptest.NewRecorder()
	handler.Submit(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestSubmitAccumulateRejectsScalarScore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	cfg.MergePolicy = string(ledger.PolicyAccumulate)
	handler := NewLeaderboardHandler(db, cfg)

	req := testutil.MakeRequest("POST", "/update-leaderboard", models.SubmitScoreRequest{
		Username: "alice",
		Score:    floatPtr(50),
	}, nil)
	w := httptest.NewRecorder()
	handler.Submit(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestGetLeaderboardOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewLeaderboardHandler(db, cfg)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	aliceID := testutil.CreateTestPlayer(t, db, "alice")
	bobID := testutil.CreateTestPlayer(t, db, "bob")
	carolID := testutil.CreateTestPlayer(t, db, "carol")
	testutil.SubmitTestScore(t, db, aliceID, 80, base)
	testutil.SubmitTestScore(t, db, bobID, 80, base.Add(time.Minute))
	testutil.SubmitTestScore(t, db, carolID, 60, base.Add(2*time.Minute))

	req := testutil.MakeRequest("GET", "/leaderboard", nil, nil)
	w := httptest.NewRecorder()
	handler.Get(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.LeaderboardResponse
	testutil.AssertJSON(t, w, &resp)

	want := []string{"alice", "bob", "carol"}
	if len(resp.Leaderboard) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(resp.Leaderboard))
	}
	for i, username := range want {
		if resp.Leaderboard[i].Username != username {
			t.Errorf("Rank %d: expected %s, got %s", i+1, username, resp.Leaderboard[i].Username)
		}
		if resp.Leaderboard[i].Score == nil {
			t.Errorf("Rank %d: expected a score field", i+1)
		}
		if resp.Leaderboard[i].Victories != nil {
			t.Errorf("Rank %d: scalar deployment should not emit victories", i+1)
		}
	}
}

func TestGetLeaderboardLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewLeaderboardHandler(db, cfg)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, username := range []string{"alice", "bob", "carol"} {
		id := testutil.CreateTestPlayer(t, db, username)
		testutil.SubmitTestScore(t, db, id, int64(100-i), base.Add(time.Duration(i)*time.Second))
	}

	req := testutil.MakeRequest("GET", "/leaderboard?limit=2", nil, nil)
	w := httptest.NewRecorder()
	handler.Get(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.LeaderboardResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Leaderboard) != 2 {
		t.Errorf("Expected 2 entries with limit=2, got %d", len(resp.Leaderboard))
	}
}

func TestGetLeaderboardInvalidLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewLeaderboardHandler(db, cfg)

	req := testutil.MakeRequest("GET", "/leaderboard?limit=abc", nil, nil)
	w := httptest.NewRecorder()
	handler.Get(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestGetLeaderboardEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewLeaderboardHandler(db, cfg)

	req := testutil.MakeRequest("GET", "/leaderboard", nil, nil)
	w := httptest.NewRecorder()
	handler.Get(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	// Empty board is an empty array, not null
	var raw map[string]interface{}
	testutil.AssertJSON(t, w, &raw)
	entries, ok := raw["leaderboard"].([]interface{})
	if !ok {
		t.Fatalf("Expected leaderboard array, got %v", raw["leaderboard"])
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty leaderboard, got %d entries", len(entries))
	}
}

func TestGetLeaderboardAccumulateShape(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	cfg.MergePolicy = string(ledger.PolicyAccumulate)
	handler := NewLeaderboardHandler(db, cfg)

	submit := testutil.MakeRequest("POST", "/update-leaderboard", models.SubmitScoreRequest{
		Username: "alice",
		Victory:  floatPtr(2),
		Defeat:   floatPtr(1),
		Explored: floatPtr(7),
	}, nil)
	w := httptest.NewRecorder()
	handler.Submit(w, submit)
	testutil.AssertStatus(t, w, http.StatusOK)

	req := testutil.MakeRequest("GET", "/leaderboard", nil, nil)
	w = httptest.NewRecorder()
	handler.Get(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.LeaderboardResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Leaderboard) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(resp.Leaderboard))
	}
	e := resp.Leaderboard[0]
	if e.Victories == nil || *e.Victories != 2 || e.Defeats == nil || *e.Defeats != 1 || e.Explored == nil || *e.Explored != 7 {
		t.Errorf("Expected (2,1,7), got %+v", e)
	}
	if e.Score != nil {
		t.Error("Accumulator deployment should not emit a scalar score")
	}
}
