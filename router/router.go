// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/quadratic-vote/cliparse"
	"github.com/danielhkuo/quadratic-vote/election"
	"github.com/danielhkuo/quadratic-vote/handlers"
	"github.com/danielhkuo/quadratic-vote/middleware"
)

func NewRouter(hub *election.Hub, db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	electionHandler := handlers.NewElectionHandler(hub, db, cfg)
	votingHandler := handlers.NewVotingHandler(hub, cfg)
	resultsHandler := handlers.NewResultsHandler(hub, db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Election lifecycle (admin operations)
	mux.HandleFunc("POST /communities/{community}/election/start", middleware.WithLogging(electionHandler.StartElection))
	mux.HandleFunc("POST /communities/{community}/election/stop", middleware.WithLogging(electionHandler.StopElection))
	mux.HandleFunc("GET /communities/{community}/election", middleware.WithLogging(electionHandler.GetElection))

	// Proposals
	mux.HandleFunc("POST /communities/{community}/proposals", middleware.WithLogging(electionHandler.Propose))
	mux.HandleFunc("GET /communities/{community}/proposals", middleware.WithLogging(electionHandler.ListProposals))

	// Voting
	mux.HandleFunc("POST /communities/{community}/votes", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("GET /communities/{community}/points", middleware.WithLogging(votingHandler.GetPoints))
	mux.HandleFunc("GET /communities/{community}/allocations", middleware.WithLogging(votingHandler.GetAllocations))

	// Results
	mux.HandleFunc("GET /communities/{community}/tally", middleware.WithLogging(resultsHandler.GetTally))
	mux.HandleFunc("GET /communities/{community}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quadratic-vote API v1"))
	})

	return mux
}
