// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db sqlx.ExecerContext) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema (statement %d): %w", i+1, err)
		}
	}
	return nil
}

// The DDL is shared by postgres and sqlite, so it sticks to types and
// clauses both accept. Timestamps are always written by the application.
var schema = []string{
	// Users
	`CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
)`,

	// Poses (seeded from the catalog)
	`CREATE TABLE IF NOT EXISTS pose (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    english_name TEXT,
    segment TEXT NOT NULL,
    order_in_segment INTEGER NOT NULL,
    is_two_sided BOOLEAN NOT NULL DEFAULT FALSE
)`,
	`CREATE INDEX IF NOT EXISTS idx_pose_segment ON pose(segment, order_in_segment)`,

	// Practice sessions
	`CREATE TABLE IF NOT EXISTS practice_session (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    date TIMESTAMP NOT NULL,
    label TEXT,
    practice_type TEXT NOT NULL,
    duration_minutes INTEGER CHECK (duration_minutes IS NULL OR duration_minutes >= 1),
    status TEXT NOT NULL DEFAULT 'DRAFT' CHECK (status IN ('DRAFT', 'PUBLISHED', 'ARCHIVED')),
    energy_level INTEGER CHECK (energy_level IS NULL OR energy_level BETWEEN 1 AND 10),
    mood TEXT,
    overall_score DOUBLE PRECISION,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_practice_session_user_date ON practice_session(user_id, date DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_practice_session_user_status ON practice_session(user_id, status)`,

	// Score cards
	`CREATE TABLE IF NOT EXISTS score_card (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES practice_session(id) ON DELETE CASCADE,
    pose_id TEXT NOT NULL REFERENCES pose(id),
    order_in_session INTEGER NOT NULL CHECK (order_in_session >= 1),
    segment TEXT NOT NULL,
    side TEXT NOT NULL CHECK (side IN ('LEFT', 'RIGHT', 'NA')),
    ease INTEGER CHECK (ease IS NULL OR ease BETWEEN 1 AND 10),
    comfort INTEGER CHECK (comfort IS NULL OR comfort BETWEEN 1 AND 10),
    stability INTEGER CHECK (stability IS NULL OR stability BETWEEN 1 AND 10),
    pain INTEGER CHECK (pain IS NULL OR pain BETWEEN 1 AND 10),
    breath INTEGER CHECK (breath IS NULL OR breath BETWEEN 1 AND 10),
    focus INTEGER CHECK (focus IS NULL OR focus BETWEEN 1 AND 10),
    notes TEXT,
    skipped BOOLEAN NOT NULL DEFAULT FALSE,
    overall_score DOUBLE PRECISION,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    UNIQUE (session_id, order_in_session)
)`,
	`CREATE INDEX IF NOT EXISTS idx_score_card_session ON score_card(session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_score_card_pose ON score_card(pose_id)`,
}
