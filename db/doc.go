// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and result archiving.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS. The SQL is shared by the
SQLite and PostgreSQL drivers.

# Tables

  - result_snapshot: Final tally of each community's last concluded election

Elections themselves live in memory. Only the concluded result is written,
one row per community, replaced on every conclusion.

# Snapshots

	store := db.NewSnapshotStore(conn)
	snap, err := store.Save(ctx, "guild-1", result)
	snap, err = store.Latest(ctx, "guild-1") // ErrNoSnapshot if none
*/
package db
