// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/danielhkuo/quadratic-vote/auth"
	"github.com/danielhkuo/quadratic-vote/cliparse"
	"github.com/danielhkuo/quadratic-vote/election"
	"github.com/danielhkuo/quadratic-vote/middleware"
	"github.com/danielhkuo/quadratic-vote/models"
)

type VotingHandler struct {
	hub *election.Hub
	cfg cliparse.Config
}

func NewVotingHandler(hub *election.Hub, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{hub: hub, cfg: cfg}
}

// CastVote handles POST /communities/{community}/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	req, ok := resolve(w, r, h.hub)
	if !ok {
		return
	}

	var body models.VoteRequest
	if err := middleware.ParseJSONBody(r, &body); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if body.ProposalIndex == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal_index is required")
		return
	}
	if body.Votes == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "votes is required")
		return
	}

	out, ok := req.execute(w, election.Vote{Actor: req.actor, Proposal: *body.ProposalIndex, Votes: *body.Votes})
	if !ok {
		return
	}

	// Never log the raw actor next to a vote
	slog.Info("vote cast",
		"community", req.community,
		"actor_hash", auth.HashActor(req.actor, h.cfg.AdminKeySalt),
		"proposal_index", *body.ProposalIndex,
		"votes", *body.Votes,
	)

	middleware.JSONResponse(w, http.StatusOK, models.CreditsResponse{
		RemainingCredits: out.(election.Balance).RemainingCredits,
		MaxCredits:       req.machine.Config().MaxCredits,
	})
}

// GetPoints handles GET /communities/{community}/points
func (h *VotingHandler) GetPoints(w http.ResponseWriter, r *http.Request) {
	req, ok := resolve(w, r, h.hub)
	if !ok {
		return
	}

	out, ok := req.execute(w, election.Points{Actor: req.actor})
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CreditsResponse{
		RemainingCredits: out.(election.Balance).RemainingCredits,
		MaxCredits:       req.machine.Config().MaxCredits,
	})
}

// GetAllocations handles GET /communities/{community}/allocations
// Only ever returns the caller's own votes
func (h *VotingHandler) GetAllocations(w http.ResponseWriter, r *http.Request) {
	req, ok := resolve(w, r, h.hub)
	if !ok {
		return
	}

	remaining, alloc, err := req.machine.Ballot(req.actor)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	resp := models.AllocationsResponse{
		RemainingCredits: remaining,
		Allocations:      []models.Allocation{},
	}
	for idx, votes := range alloc {
		resp.Allocations = append(resp.Allocations, models.Allocation{
			ProposalIndex: idx,
			Votes:         votes,
			Credits:       votes * votes,
		})
	}
	sort.Slice(resp.Allocations, func(i, j int) bool {
		return resp.Allocations[i].ProposalIndex < resp.Allocations[j].ProposalIndex
	})

	middleware.JSONResponse(w, http.StatusOK, resp)
}
