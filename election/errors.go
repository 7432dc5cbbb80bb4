// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyActive       = errors.New("an election is already active")
	ErrWrongPhase          = errors.New("command not allowed in current phase")
	ErrNoActiveElection    = errors.New("no active election")
	ErrEmptyText           = errors.New("text is empty")
	ErrDuplicateProposal   = errors.New("proposal already exists")
	ErrFrozen              = errors.New("proposals are frozen")
	ErrUnknownProposal     = errors.New("unknown proposal")
	ErrInvalidVoteCount    = errors.New("invalid vote count")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrUnknownCommunity    = errors.New("community is not approved")
)

// PhaseError reports a command issued in a phase that does not allow it.
type PhaseError struct {
	Op    string
	Phase Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: not allowed while %s", e.Op, e.Phase)
}

func (e *PhaseError) Unwrap() error { return ErrWrongPhase }

// CreditError carries the balance context of a rejected cast.
type CreditError struct {
	Available int
	Required  int
}

func (e *CreditError) Error() string {
	return fmt.Sprintf("insufficient credits: %d required, %d available", e.Required, e.Available)
}

func (e *CreditError) Unwrap() error { return ErrInsufficientCredits }

// VoteCountError reports a vote count outside [0, Max].
type VoteCountError struct {
	Votes int
	Max   int
}

func (e *VoteCountError) Error() string {
	return fmt.Sprintf("invalid vote count %d: must be between 0 and %d", e.Votes, e.Max)
}

func (e *VoteCountError) Unwrap() error { return ErrInvalidVoteCount }

// ProposalError wraps a registry failure with the offending proposal.
type ProposalError struct {
	Err   error
	Index int
	Text  string
}

func (e *ProposalError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("%v: %q", e.Err, e.Text)
	}
	return fmt.Sprintf("%v: #%d", e.Err, e.Index)
}

func (e *ProposalError) Unwrap() error { return e.Err }

// Kind returns a stable machine-readable code for err, or "" when err is not
// an election error.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAlreadyActive):
		return "already_active"
	case errors.Is(err, ErrWrongPhase):
		return "wrong_phase"
	case errors.Is(err, ErrNoActiveElection):
		return "no_active_election"
	case errors.Is(err, ErrEmptyText):
		return "empty_text"
	case errors.Is(err, ErrDuplicateProposal):
		return "duplicate_proposal"
	case errors.Is(err, ErrFrozen):
		return "frozen"
	case errors.Is(err, ErrUnknownProposal):
		return "unknown_proposal"
	case errors.Is(err, ErrInvalidVoteCount):
		return "invalid_vote_count"
	case errors.Is(err, ErrInsufficientCredits):
		return "insufficient_credits"
	case errors.Is(err, ErrUnknownCommunity):
		return "unknown_community"
	}
	return ""
}
