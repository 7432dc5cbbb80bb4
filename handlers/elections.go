// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quadratic-vote/cliparse"
	"github.com/danielhkuo/quadratic-vote/db"
	"github.com/danielhkuo/quadratic-vote/election"
	"github.com/danielhkuo/quadratic-vote/middleware"
	"github.com/danielhkuo/quadratic-vote/models"
)

type ElectionHandler struct {
	hub       *election.Hub
	snapshots *db.SnapshotStore
	cfg       cliparse.Config
}

func NewElectionHandler(hub *election.Hub, conn *sql.DB, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{hub: hub, snapshots: db.NewSnapshotStore(conn), cfg: cfg}
}

// StartElection handles POST /communities/{community}/election/start
func (h *ElectionHandler) StartElection(w http.ResponseWriter, r *http.Request) {
	req, ok := resolve(w, r, h.hub)
	if !ok {
		return
	}
	if !requireAdmin(w, r, req.community, h.cfg.AdminKeySalt) {
		return
	}

	var body models.StartElectionRequest
	if err := middleware.ParseJSONBody(r, &body); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	out, ok := req.execute(w, election.Start{Actor: req.actor, Prompt: body.Prompt})
	if !ok {
		return
	}
	started := out.(election.Started)

	slog.Info("election started",
		"community", req.community,
		"election_id", started.ElectionID,
		"prompt", started.Prompt,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.StartElectionResponse{
		ElectionID: started.ElectionID,
		Prompt:     started.Prompt,
		Phase:      election.Proposing.String(),
	})
}

// StopElection handles POST /communities/{community}/election/stop
// Proposing moves to voting; voting concludes and archives the result
func (h *ElectionHandler) StopElection(w http.ResponseWriter, r *http.Request) {
	req, ok := resolve(w, r, h.hub)
	if !ok {
		return
	}
	if !requireAdmin(w, r, req.community, h.cfg.AdminKeySalt) {
		return
	}

	out, ok := req.execute(w, election.Stop{Actor: req.actor})
	if !ok {
		return
	}

	switch o := out.(type) {
	case election.MovedToVoting:
		slog.Info("voting opened", "community", req.community, "proposals", len(o.Proposals))

		middleware.JSONResponse(w, http.StatusOK, models.StopElectionResponse{
			Phase:     election.Voting.String(),
			Proposals: o.Proposals,
		})

	case election.ElectionConcluded:
		snap, err := h.snapshots.Save(r.Context(), req.community, o.Result)
		if err != nil {
			// Non-fatal: the result is still retained in memory
			slog.Warn("failed to archive result", "error", err, "community", req.community)
			snap = models.ResultSnapshot{
				CommunityID: req.community,
				ElectionID:  o.Result.ElectionID,
				Prompt:      o.Result.Prompt,
				Voters:      o.Result.Voters,
				ConcludedAt: o.Result.ConcludedAt,
				Tally:       o.Result.Tally,
			}
		}
		snap.Winners = Standings(snap.Tally, h.cfg.ConvenientWinners)

		slog.Info("election concluded",
			"community", req.community,
			"election_id", o.Result.ElectionID,
			"voters", o.Result.Voters,
		)

		middleware.JSONResponse(w, http.StatusOK, models.StopElectionResponse{
			Phase:  election.Idle.String(),
			Result: &snap,
		})
	}
}

// GetElection handles GET /communities/{community}/election
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	req, ok := resolve(w, r, h.hub)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, req.machine.Status())
}

// Propose handles POST /communities/{community}/proposals
func (h *ElectionHandler) Propose(w http.ResponseWriter, r *http.Request) {
	req, ok := resolve(w, r, h.hub)
	if !ok {
		return
	}

	var body models.ProposeRequest
	if err := middleware.ParseJSONBody(r, &body); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	out, ok := req.execute(w, election.Propose{Actor: req.actor, Text: body.Text})
	if !ok {
		return
	}
	proposed := out.(election.Proposed)

	slog.Info("proposal added", "community", req.community, "index", proposed.Index)

	middleware.JSONResponse(w, http.StatusCreated, models.ProposeResponse{
		Index: proposed.Index,
		Text:  proposed.Text,
	})
}

// ListProposals handles GET /communities/{community}/proposals
func (h *ElectionHandler) ListProposals(w http.ResponseWriter, r *http.Request) {
	req, ok := resolve(w, r, h.hub)
	if !ok {
		return
	}

	proposals, err := req.machine.Proposals()
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProposalsResponse{
		Phase:     req.machine.Phase().String(),
		Proposals: proposals,
	})
}
