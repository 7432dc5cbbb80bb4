// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

Types for parsing incoming JSON:

  - StartElectionRequest: prompt
  - ProposeRequest: text
  - VoteRequest: proposal_index, votes

# Response Types

Types for JSON responses:

  - StartElectionResponse: election_id, prompt, phase
  - StopElectionResponse: phase, proposals (moved to voting) or result (concluded)
  - ProposeResponse: index, text
  - ProposalsResponse: phase, proposals
  - CreditsResponse: remaining_credits, max_credits
  - AllocationsResponse: the caller's own votes per proposal
  - TallyResponse: ranked entries plus rendered winners
  - ErrorResponse: error, message, code, and available/required for
    insufficient credits

# Domain Types

  - Standing: one leaderboard line ("1st bowling: 3 votes")
  - ResultSnapshot: archived final result of a community's last election

Proposal and tally entry types come from package election and are encoded
as-is. Tallies never include who voted.
*/
package models
