// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens connections, creates the schema and seeds reference data.

# Connections

Open accepts "sqlite" (modernc.org/sqlite, the default for development) or
"postgres" (lib/pq):

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)

sqlite connections enable foreign keys and are limited to one open
connection, which serialises writers.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: Accounts with bcrypt password hashes
  - pose: Reference poses seeded from the catalog
  - practice_session: One practice by one user, DRAFT/PUBLISHED/ARCHIVED
  - score_card: One pose occurrence (and side) within a session

# Relationships

	users 1──* practice_session
	practice_session 1──* score_card
	pose 1──* score_card

Sessions cascade to their cards. (session_id, order_in_session) is unique.

# Seeding

SeedPoses upserts every catalog pose by slug. Run it at startup or with
yogactl seed; the materializer fails with models.ErrMissingReference when a
plan names a slug that was never seeded.
*/
package db
