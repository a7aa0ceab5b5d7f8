// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the yoga-journal API server.

yoga-journal is a practice journal for Ashtanga-style yoga. A user picks a
practice (a preset such as FULL_PRIMARY or a custom list of blocks), the
server expands it into an ordered list of poses and creates one score card
per pose and side. Cards are rated on six axes, scores are rolled up into a
session score, and a session is published once every card is rated or
skipped.

# Starting the Server

Configuration comes from flags, the environment, or a .env file:

	JWT_SECRET=dev DATABASE_URL=file:journal.db go run .

Or against PostgreSQL:

	go run . -t postgres -d "postgres://..." --jwt-secret dev

On start the server creates the schema if needed and upserts the embedded
pose catalog, so a fresh database is usable right away.

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file or PostgreSQL connection string
  - JWT_SECRET (--jwt-secret): HMAC secret for bearer tokens

Optional settings:

  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - PORT (-p): Server port (default: 3318)
  - TOKEN_TTL (--token-ttl): token lifetime (default: 1h)
  - RATE_LIMIT / RATE_BURST: per-caller request budget (default: 10/s, 20)
  - APP_ENV (--env): reported by /health (default: development)

# Architecture

  - catalog: embedded pose reference data (YAML)
  - plan: expansion of a practice selection into ordered poses
  - scoring: card and session scores, completeness, trend projection
  - practice: session lifecycle service over a Store
  - store: sqlx implementation of the Store for sqlite and postgres
  - db: connection, schema and catalog seeding
  - handlers, router, middleware: HTTP surface
  - auth: passwords and JWTs
  - metrics: Prometheus collectors
  - cmd/yogactl: operator CLI (seed, plan preview, catalog listing)

See package documentation for each component.
*/
package main
