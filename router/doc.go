// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the quadratic-vote API.

	mux := router.NewRouter(hub, db, cfg)

# Endpoints

Health:

	GET /health

Election lifecycle (requires X-Admin-Key):

	POST /communities/{community}/election/start - Open proposals
	POST /communities/{community}/election/stop  - Open voting, or conclude

Members (requires X-Actor-ID):

	GET  /communities/{community}/election    - Phase and limits
	POST /communities/{community}/proposals   - Propose an idea
	GET  /communities/{community}/proposals   - List proposals
	POST /communities/{community}/votes       - Set votes on a proposal
	GET  /communities/{community}/points      - Remaining credits
	GET  /communities/{community}/allocations - Own votes
	GET  /communities/{community}/tally       - Current standings

Public:

	GET /communities/{community}/results - Last concluded result
*/
package router
