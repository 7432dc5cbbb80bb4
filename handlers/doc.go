// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the quadratic-vote API.

# Handler Types

  - ElectionHandler: Election lifecycle and proposals
  - VotingHandler: Casting votes, balances and own allocations
  - ResultsHandler: Live standings and archived results

	electionHandler := handlers.NewElectionHandler(hub, db, cfg)

All routes are scoped by the {community} path value. Callers identify
themselves with the X-Actor-ID header; start and stop also need the
community's X-Admin-Key.

# Election Lifecycle

	POST /communities/{community}/election/start → StartElection (idle → proposing)
	POST /communities/{community}/election/stop  → StopElection (proposing → voting → idle)

Stopping a voting election archives its final tally.

# Errors

Election errors map to status codes with a stable "code" field:

	404 unknown_community, no_active_election, unknown_proposal
	409 already_active, wrong_phase, duplicate_proposal, frozen
	400 empty_text, invalid_vote_count
	422 insufficient_credits (with available and required)
*/
package handlers
