// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/danielhkuo/quadratic-vote/auth"
	"github.com/danielhkuo/quadratic-vote/election"
	"github.com/danielhkuo/quadratic-vote/middleware"
	"github.com/danielhkuo/quadratic-vote/models"
)

// request is the resolved caller of a community route
type request struct {
	community string
	actor     string
	machine   *election.Machine
}

// resolve reads the community path value and X-Actor-ID header and looks up
// the community's machine. It writes the error response itself.
func resolve(w http.ResponseWriter, r *http.Request, hub *election.Hub) (request, bool) {
	community := r.PathValue("community")
	if community == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "community is required")
		return request{}, false
	}

	actor, err := auth.NormalizeActor(r.Header.Get("X-Actor-ID"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Actor-ID header required")
		return request{}, false
	}

	m, err := hub.Machine(community)
	if err != nil {
		writeElectionError(w, err)
		return request{}, false
	}

	return request{community: community, actor: actor, machine: m}, true
}

// execute applies cmd to the caller's machine and writes any error response
func (req request) execute(w http.ResponseWriter, cmd election.Command) (election.Outcome, bool) {
	out, err := req.machine.Execute(cmd)
	if err != nil {
		writeElectionError(w, err)
		return nil, false
	}
	return out, true
}

// requireAdmin checks the X-Admin-Key header for the community
func requireAdmin(w http.ResponseWriter, r *http.Request, community, salt string) bool {
	if err := auth.ValidateAdminKey(community, r.Header.Get("X-Admin-Key"), salt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// writeElectionError translates an election error kind into a response
func writeElectionError(w http.ResponseWriter, err error) {
	resp := models.ErrorResponse{
		Message: err.Error(),
		Code:    election.Kind(err),
	}

	var status int
	switch {
	case errors.Is(err, election.ErrUnknownCommunity),
		errors.Is(err, election.ErrNoActiveElection),
		errors.Is(err, election.ErrUnknownProposal):
		status = http.StatusNotFound
	case errors.Is(err, election.ErrAlreadyActive),
		errors.Is(err, election.ErrWrongPhase),
		errors.Is(err, election.ErrDuplicateProposal),
		errors.Is(err, election.ErrFrozen):
		status = http.StatusConflict
	case errors.Is(err, election.ErrEmptyText),
		errors.Is(err, election.ErrInvalidVoteCount):
		status = http.StatusBadRequest
	case errors.Is(err, election.ErrInsufficientCredits):
		status = http.StatusUnprocessableEntity
		var credErr *election.CreditError
		if errors.As(err, &credErr) {
			resp.Available = &credErr.Available
			resp.Required = &credErr.Required
		}
	default:
		slog.Error("unexpected election error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
		return
	}

	middleware.CodedErrorResponse(w, status, resp)
}

// Standings renders the first n entries of a ranked tally
func Standings(tally []election.TallyEntry, n int) []models.Standing {
	winners := election.Winners(tally, n)
	out := make([]models.Standing, len(winners))
	for i, e := range winners {
		place := humanize.Ordinal(i + 1)
		out[i] = models.Standing{
			Place:   place,
			Index:   e.Index,
			Text:    e.Text,
			Votes:   e.TotalVotes,
			Summary: fmt.Sprintf("%s #%d %s: %s", place, e.Index, e.Text, english.Plural(e.TotalVotes, "vote", "")),
		}
	}
	return out
}
