// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quadratic-vote/cliparse"
	"github.com/danielhkuo/quadratic-vote/db"
	"github.com/danielhkuo/quadratic-vote/election"
	"github.com/danielhkuo/quadratic-vote/middleware"
	"github.com/danielhkuo/quadratic-vote/models"
)

type ResultsHandler struct {
	hub       *election.Hub
	snapshots *db.SnapshotStore
	cfg       cliparse.Config
}

func NewResultsHandler(hub *election.Hub, conn *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{hub: hub, snapshots: db.NewSnapshotStore(conn), cfg: cfg}
}

// GetTally handles GET /communities/{community}/tally
// Live standings while voting, the final tally once concluded
func (h *ResultsHandler) GetTally(w http.ResponseWriter, r *http.Request) {
	req, ok := resolve(w, r, h.hub)
	if !ok {
		return
	}

	out, ok := req.execute(w, election.Tally{Actor: req.actor})
	if !ok {
		return
	}
	entries := out.(election.Standings).Entries

	middleware.JSONResponse(w, http.StatusOK, models.TallyResponse{
		Phase:   req.machine.Phase().String(),
		Entries: entries,
		Winners: Standings(entries, h.cfg.ConvenientWinners),
	})
}

// GetResults handles GET /communities/{community}/results
// Returns the archived result of the community's last concluded election
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	community := r.PathValue("community")
	if community == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "community is required")
		return
	}
	m, err := h.hub.Machine(community)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	snap, err := h.snapshots.Latest(r.Context(), community)
	if err != nil && !errors.Is(err, db.ErrNoSnapshot) {
		slog.Error("failed to load result", "error", err, "community", community)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Memory holds the latest conclusion in this process. A different
	// archived election means archiving it failed.
	if result, ok := m.LastResult(); ok && result.ElectionID != snap.ElectionID {
		if err == nil {
			slog.Warn("archived result is stale", "community", community,
				"archived", snap.ElectionID, "latest", result.ElectionID)
		}
		snap = models.ResultSnapshot{
			CommunityID: community,
			ElectionID:  result.ElectionID,
			Prompt:      result.Prompt,
			Voters:      result.Voters,
			ConcludedAt: result.ConcludedAt,
			Tally:       result.Tally,
		}
	} else if errors.Is(err, db.ErrNoSnapshot) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No concluded election")
		return
	}

	snap.Winners = Standings(snap.Tally, h.cfg.ConvenientWinners)

	middleware.JSONResponse(w, http.StatusOK, snap)
}
