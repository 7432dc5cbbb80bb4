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

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quadratic-vote/auth"
	"github.com/danielhkuo/quadratic-vote/cliparse"
	"github.com/danielhkuo/quadratic-vote/db"
	"github.com/danielhkuo/quadratic-vote/election"
)

// SetupTestDB opens a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every connection to :memory: is its own database; keep exactly one
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3318,
		DatabaseType:      cliparse.DatabaseSQLite,
		DatabaseURL:       "file::memory:",
		AdminKeySalt:      "test-admin-salt",
		MaxCredits:        election.DefaultMaxCredits,
		MaxVotesPerCast:   election.DefaultMaxVotesPerCast,
		ConvenientWinners: 5,
	}
}

// NewTestHub returns a hub configured like GetTestConfig
func NewTestHub(cfg cliparse.Config) *election.Hub {
	return election.NewHub(cfg.Ledger(), cfg.ApprovedCommunities)
}

// ActorHeaders identifies a member
func ActorHeaders(actor string) map[string]string {
	return map[string]string{"X-Actor-ID": actor}
}

// AdminHeaders identifies an actor holding the community's admin key
func AdminHeaders(cfg cliparse.Config, community, actor string) map[string]string {
	return map[string]string{
		"X-Actor-ID":  actor,
		"X-Admin-Key": auth.GenerateAdminKey(community, cfg.AdminKeySalt),
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
