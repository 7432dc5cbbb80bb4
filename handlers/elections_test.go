// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/danielhkuo/quadratic-vote/election"
	"github.com/danielhkuo/quadratic-vote/models"
	"github.com/danielhkuo/quadratic-vote/testutil"
)

func TestStartElection(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name           string
		community      string
		headers        map[string]string
		body           interface{}
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "missing actor",
			community:      testCommunity,
			headers:        map[string]string{"X-Admin-Key": "whatever"},
			body:           models.StartElectionRequest{Prompt: "p"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "member without admin key",
			community:      testCommunity,
			headers:        testutil.ActorHeaders("ana"),
			body:           models.StartElectionRequest{Prompt: "p"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "admin key of another community",
			community:      testCommunity,
			headers:        testutil.AdminHeaders(env.cfg, "guild-2", "host"),
			body:           models.StartElectionRequest{Prompt: "p"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid JSON",
			community:      testCommunity,
			headers:        testutil.AdminHeaders(env.cfg, testCommunity, "host"),
			body:           "not an object",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "valid start",
			community:      testCommunity,
			headers:        testutil.AdminHeaders(env.cfg, testCommunity, "host"),
			body:           models.StartElectionRequest{Prompt: "team event"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "already active",
			community:      testCommunity,
			headers:        testutil.AdminHeaders(env.cfg, testCommunity, "host"),
			body:           models.StartElectionRequest{Prompt: "another"},
			expectedStatus: http.StatusConflict,
			expectedCode:   "already_active",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(env.elections.StartElection, "POST", "/communities/"+tt.community+"/election/start", tt.community, tt.body, tt.headers)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedCode != "" {
				if resp := decodeError(t, w); resp.Code != tt.expectedCode {
					t.Errorf("Expected code %q, got %q", tt.expectedCode, resp.Code)
				}
			}
		})
	}

	m, _ := env.hub.Machine(testCommunity)
	if got := m.Status(); got.Phase != election.Proposing || got.Prompt != "team event" || got.StartedBy != "host" {
		t.Errorf("Unexpected status after start: %+v", got)
	}
}

func TestStartElection_UnapprovedCommunity(t *testing.T) {
	cfg := testutil.GetTestConfig()
	cfg.ApprovedCommunities = []string{testCommunity}
	env := newTestEnvWithConfig(t, cfg)

	w := call(env.elections.StartElection, "POST", "/communities/rogue/election/start", "rogue",
		models.StartElectionRequest{Prompt: "p"}, testutil.AdminHeaders(cfg, "rogue", "host"))
	testutil.AssertStatus(t, w, http.StatusNotFound)
	if resp := decodeError(t, w); resp.Code != "unknown_community" {
		t.Errorf("Expected unknown_community, got %q", resp.Code)
	}
}

func TestStopElection_Transitions(t *testing.T) {
	env := newTestEnv(t)

	// Idle: nothing to stop
	w := call(env.elections.StopElection, "POST", "/communities/"+testCommunity+"/election/stop", testCommunity,
		nil, testutil.AdminHeaders(env.cfg, testCommunity, "host"))
	testutil.AssertStatus(t, w, http.StatusConflict)
	if resp := decodeError(t, w); resp.Code != "wrong_phase" {
		t.Errorf("Expected wrong_phase, got %q", resp.Code)
	}

	env.start(t, "team event")
	testutil.AssertStatus(t, env.propose(t, "ana", "bowling"), http.StatusCreated)
	testutil.AssertStatus(t, env.propose(t, "ben", "escape room"), http.StatusCreated)

	moved := env.stop(t)
	if moved.Phase != "voting" {
		t.Errorf("Expected voting phase, got %q", moved.Phase)
	}
	if len(moved.Proposals) != 2 || moved.Proposals[1].Text != "escape room" {
		t.Errorf("Unexpected frozen proposals %+v", moved.Proposals)
	}
	if moved.Result != nil {
		t.Error("Moving to voting must not carry a result")
	}

	testutil.AssertStatus(t, env.vote(t, "ana", 1, 4), http.StatusOK)

	done := env.stop(t)
	if done.Phase != "idle" {
		t.Errorf("Expected idle phase, got %q", done.Phase)
	}
	if done.Result == nil {
		t.Fatal("Expected a result")
	}
	if done.Result.ID == "" || done.Result.CommunityID != testCommunity || done.Result.Prompt != "team event" {
		t.Errorf("Unexpected result identity %+v", done.Result)
	}
	if len(done.Result.Tally) != 2 || done.Result.Tally[0].Index != 1 || done.Result.Tally[0].CreditsSpent != 16 {
		t.Errorf("Unexpected tally %+v", done.Result.Tally)
	}
	if len(done.Result.Winners) != 2 || done.Result.Winners[0].Place != "1st" {
		t.Errorf("Unexpected winners %+v", done.Result.Winners)
	}
}

func TestStopElection_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.start(t, "p")

	w := call(env.elections.StopElection, "POST", "/communities/"+testCommunity+"/election/stop", testCommunity,
		nil, testutil.ActorHeaders("ana"))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	m, _ := env.hub.Machine(testCommunity)
	if m.Phase() != election.Proposing {
		t.Errorf("Unauthorized stop changed phase to %s", m.Phase())
	}
}

func TestGetElection(t *testing.T) {
	env := newTestEnv(t)

	get := func() election.Status {
		w := call(env.elections.GetElection, "GET", "/communities/"+testCommunity+"/election", testCommunity,
			nil, testutil.ActorHeaders("ana"))
		testutil.AssertStatus(t, w, http.StatusOK)
		var raw struct {
			Phase      string `json:"phase"`
			ElectionID string `json:"election_id"`
			Prompt     string `json:"prompt"`
			Proposals  int    `json:"proposals"`
			MaxCredits int    `json:"max_credits"`
			VoteLimit  int    `json:"vote_limit"`
		}
		testutil.AssertJSON(t, w, &raw)
		if raw.MaxCredits != 100 || raw.VoteLimit != 10 {
			t.Errorf("Unexpected limits %+v", raw)
		}
		s := election.Status{ElectionID: raw.ElectionID, Prompt: raw.Prompt, Proposals: raw.Proposals}
		switch raw.Phase {
		case "idle":
			s.Phase = election.Idle
		case "proposing":
			s.Phase = election.Proposing
		case "voting":
			s.Phase = election.Voting
		default:
			t.Fatalf("Unknown phase %q", raw.Phase)
		}
		return s
	}

	if s := get(); s.Phase != election.Idle || s.ElectionID != "" {
		t.Errorf("Expected idle status, got %+v", s)
	}

	started := env.start(t, "snacks")
	env.propose(t, "ana", "chips")

	s := get()
	if s.Phase != election.Proposing || s.ElectionID != started.ElectionID || s.Prompt != "snacks" || s.Proposals != 1 {
		t.Errorf("Unexpected proposing status %+v", s)
	}
}

func TestPropose(t *testing.T) {
	env := newTestEnv(t)

	// Idle
	w := env.propose(t, "ana", "bowling")
	testutil.AssertStatus(t, w, http.StatusConflict)

	env.start(t, "team event")

	tests := []struct {
		name           string
		actor          string
		text           string
		expectedStatus int
		expectedCode   string
		expectedIndex  int
	}{
		{"first", "ana", "bowling", http.StatusCreated, "", 0},
		{"second", "ben", "  Escape Room ", http.StatusCreated, "", 1},
		{"duplicate casing", "cy", "Bowling", http.StatusConflict, "duplicate_proposal", 0},
		{"duplicate spacing", "cy", " escape   room", http.StatusConflict, "duplicate_proposal", 0},
		{"empty", "cy", "   ", http.StatusBadRequest, "empty_text", 0},
		{"third", "cy", "karaoke", http.StatusCreated, "", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.propose(t, tt.actor, tt.text)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedCode != "" {
				if resp := decodeError(t, w); resp.Code != tt.expectedCode {
					t.Errorf("Expected code %q, got %q", tt.expectedCode, resp.Code)
				}
				return
			}

			var resp models.ProposeResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Index != tt.expectedIndex {
				t.Errorf("Expected index %d, got %d", tt.expectedIndex, resp.Index)
			}
			if want := strings.TrimSpace(tt.text); resp.Text != want {
				t.Errorf("Expected text %q, got %q", want, resp.Text)
			}
		})
	}

	w = call(env.elections.ListProposals, "GET", "/communities/"+testCommunity+"/proposals", testCommunity,
		nil, testutil.ActorHeaders("ana"))
	testutil.AssertStatus(t, w, http.StatusOK)
	var list models.ProposalsResponse
	testutil.AssertJSON(t, w, &list)
	if list.Phase != "proposing" || len(list.Proposals) != 3 {
		t.Fatalf("Unexpected listing %+v", list)
	}
	if list.Proposals[1].Text != "Escape Room" || list.Proposals[1].Proposer != "ben" {
		t.Errorf("Expected stored casing and proposer, got %+v", list.Proposals[1])
	}

	// Frozen after stop
	env.stop(t)
	w = env.propose(t, "ana", "late idea")
	testutil.AssertStatus(t, w, http.StatusConflict)
	if resp := decodeError(t, w); resp.Code != "wrong_phase" {
		t.Errorf("Expected wrong_phase, got %q", resp.Code)
	}
}

func TestListProposals_Idle(t *testing.T) {
	env := newTestEnv(t)

	w := call(env.elections.ListProposals, "GET", "/communities/"+testCommunity+"/proposals", testCommunity,
		nil, testutil.ActorHeaders("ana"))
	testutil.AssertStatus(t, w, http.StatusNotFound)
	if resp := decodeError(t, w); resp.Code != "no_active_election" {
		t.Errorf("Expected no_active_election, got %q", resp.Code)
	}
}
