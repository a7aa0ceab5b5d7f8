// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists users, poses, sessions and score cards with sqlx.

Store implements practice.Store against the tables created by
db.CreateSchema:

	conn, err := db.Open("sqlite", "file:journal.db")
	st := store.New(conn)
	svc := practice.NewService(st, catalog.Default())

# Dialects

Statements are written with ? placeholders and rebound for the driver, so
the same queries run on postgres (lib/pq) and sqlite (modernc). On postgres
GetSession with forUpdate appends FOR UPDATE; sqlite serialises writers
instead.

# Errors

Missing rows map to models.ErrNotFound and unique violations on either
driver map to models.ErrConflict.
*/
package store
