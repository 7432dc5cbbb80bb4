// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadEnv reads optional .env files, then ParseFlags returns a Config:

	if err := cliparse.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type (sqlite or postgres)
	--admin-salt      Admin key salt
	--max-credits     Voice credits per actor per election
	--max-votes       Maximum votes in a single cast
	--winners         Leading proposals shown in standings
	--communities     Comma-separated approved community IDs
	--print-admin-key Print a community's admin key and exit

# Environment Variables

Flags fall back to environment variables:

	PORT                 → -p
	DATABASE_URL         → -d
	DATABASE_TYPE        → -t
	ADMIN_KEY_SALT       → --admin-salt
	MAX_CREDITS          → --max-credits
	MAX_VOTES_PER_CAST   → --max-votes
	CONVENIENT_WINNERS   → --winners
	APPROVED_COMMUNITIES → --communities

CLI flags take precedence over environment variables, which take precedence
over .env files.

# Validation

ParseFlags returns an error when:

  - ADMIN_KEY_SALT is missing
  - the database type is neither sqlite nor postgres
  - postgres is selected without a database URL
  - a numeric setting is malformed or not positive
*/
package cliparse
