// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quadratic-vote/cliparse"
	"github.com/danielhkuo/quadratic-vote/election"
	"github.com/danielhkuo/quadratic-vote/models"
	"github.com/danielhkuo/quadratic-vote/testutil"
)

const testCommunity = "guild-1"

// testEnv bundles the handlers over one hub and database
type testEnv struct {
	cfg       cliparse.Config
	db        *sql.DB
	hub       *election.Hub
	elections *ElectionHandler
	voting    *VotingHandler
	results   *ResultsHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := testutil.GetTestConfig()
	return newTestEnvWithConfig(t, cfg)
}

func newTestEnvWithConfig(t *testing.T, cfg cliparse.Config) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	hub := testutil.NewTestHub(cfg)
	return &testEnv{
		cfg:       cfg,
		db:        db,
		hub:       hub,
		elections: NewElectionHandler(hub, db, cfg),
		voting:    NewVotingHandler(hub, cfg),
		results:   NewResultsHandler(hub, db, cfg),
	}
}

// call invokes handler for community with the given body and headers
func call(handler http.HandlerFunc, method, path, community string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest(method, path, body, headers)
	req.SetPathValue("community", community)
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func (e *testEnv) start(t *testing.T, prompt string) models.StartElectionResponse {
	t.Helper()
	w := call(e.elections.StartElection, "POST", "/communities/"+testCommunity+"/election/start", testCommunity,
		models.StartElectionRequest{Prompt: prompt}, testutil.AdminHeaders(e.cfg, testCommunity, "host"))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var resp models.StartElectionResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

func (e *testEnv) stop(t *testing.T) models.StopElectionResponse {
	t.Helper()
	w := call(e.elections.StopElection, "POST", "/communities/"+testCommunity+"/election/stop", testCommunity,
		nil, testutil.AdminHeaders(e.cfg, testCommunity, "host"))
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.StopElectionResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

func (e *testEnv) propose(t *testing.T, actor, text string) *httptest.ResponseRecorder {
	t.Helper()
	return call(e.elections.Propose, "POST", "/communities/"+testCommunity+"/proposals", testCommunity,
		models.ProposeRequest{Text: text}, testutil.ActorHeaders(actor))
}

func (e *testEnv) vote(t *testing.T, actor string, proposal, votes int) *httptest.ResponseRecorder {
	t.Helper()
	return call(e.voting.CastVote, "POST", "/communities/"+testCommunity+"/votes", testCommunity,
		models.VoteRequest{ProposalIndex: &proposal, Votes: &votes}, testutil.ActorHeaders(actor))
}

func (e *testEnv) points(t *testing.T, actor string) *httptest.ResponseRecorder {
	t.Helper()
	return call(e.voting.GetPoints, "GET", "/communities/"+testCommunity+"/points", testCommunity,
		nil, testutil.ActorHeaders(actor))
}

func (e *testEnv) tally(t *testing.T) *httptest.ResponseRecorder {
	t.Helper()
	return call(e.results.GetTally, "GET", "/communities/"+testCommunity+"/tally", testCommunity,
		nil, testutil.ActorHeaders("viewer"))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}
