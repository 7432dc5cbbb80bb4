// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the quadratic-vote API server.

quadratic-vote runs idea elections for chat communities. Members propose
ideas, then spend a fixed budget of voice credits on them, where casting n
votes on one idea costs n² credits.

# Starting the Server

With no configuration beyond the admin salt the server uses a local SQLite
file:

	ADMIN_KEY_SALT=... go run .

Or against PostgreSQL:

	go run . -p 3318 -t postgres -d "postgres://..."

Settings are also read from a .env file in the working directory.

# Configuration

Required settings:

  - ADMIN_KEY_SALT (--admin-salt): Secret for per-community admin keys
  - DATABASE_URL (-d): Required when DATABASE_TYPE is postgres

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - MAX_CREDITS (--max-credits): Credits per member per election (default: 100)
  - MAX_VOTES_PER_CAST (--max-votes): Per-cast vote cap (default: 10)
  - CONVENIENT_WINNERS (--winners): Leading proposals shown in standings (default: 5)
  - APPROVED_COMMUNITIES (--communities): Whitelist of community IDs

Print a community's admin key and exit:

	go run . --print-admin-key guild-1

# Architecture

  - election: Phase machine, proposal registry and credit ledger
  - handlers: HTTP request handlers (elections, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Admin keys and actor hashing
  - db: Schema creation and result snapshots
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
