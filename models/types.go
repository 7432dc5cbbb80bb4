package models

import (
	"time"

	"github.com/danielhkuo/quadratic-vote/election"
)

// Request types

type StartElectionRequest struct {
	Prompt string `json:"prompt"`
}

type ProposeRequest struct {
	Text string `json:"text"`
}

// Votes is a pointer so a missing field is distinguishable from 0
type VoteRequest struct {
	ProposalIndex *int `json:"proposal_index"`
	Votes         *int `json:"votes"`
}

// Response types

type StartElectionResponse struct {
	ElectionID string `json:"election_id"`
	Prompt     string `json:"prompt"`
	Phase      string `json:"phase"`
}

// StopElectionResponse is either a move to voting (Proposals set) or a
// conclusion (Result set)
type StopElectionResponse struct {
	Phase     string              `json:"phase"`
	Proposals []election.Proposal `json:"proposals,omitempty"`
	Result    *ResultSnapshot     `json:"result,omitempty"`
}

type ProposeResponse struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type ProposalsResponse struct {
	Phase     string              `json:"phase"`
	Proposals []election.Proposal `json:"proposals"`
}

type CreditsResponse struct {
	RemainingCredits int `json:"remaining_credits"`
	MaxCredits       int `json:"max_credits"`
}

type AllocationsResponse struct {
	RemainingCredits int          `json:"remaining_credits"`
	Allocations      []Allocation `json:"allocations"`
}

type Allocation struct {
	ProposalIndex int `json:"proposal_index"`
	Votes         int `json:"votes"`
	Credits       int `json:"credits"`
}

type TallyResponse struct {
	Phase   string                `json:"phase"`
	Entries []election.TallyEntry `json:"entries"`
	Winners []Standing            `json:"winners"`
}

// Domain types

// Standing is one rendered line of the leaderboard
type Standing struct {
	Place   string `json:"place"` // "1st", "2nd", ...
	Index   int    `json:"index"`
	Text    string `json:"text"`
	Votes   int    `json:"votes"`
	Summary string `json:"summary"`
}

type ResultSnapshot struct {
	ID          string                `json:"id"`
	CommunityID string                `json:"community_id"`
	ElectionID  string                `json:"election_id"`
	Prompt      string                `json:"prompt"`
	Voters      int                   `json:"voters"`
	ConcludedAt time.Time             `json:"concluded_at"`
	Tally       []election.TallyEntry `json:"tally"`
	Winners     []Standing            `json:"winners,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	Code      string `json:"code,omitempty"`
	Available *int   `json:"available,omitempty"`
	Required  *int   `json:"required,omitempty"`
}
