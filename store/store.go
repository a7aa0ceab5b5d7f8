// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/yoga-journal/practice"
)

// Store implements practice.Store and user persistence over sqlx.
// Queries are written with ? placeholders and rebound for the driver.
type Store struct {
	queries
	db *sqlx.DB
}

var _ practice.Store = (*Store)(nil)

// New wraps an open connection. The driver name decides the dialect.
func New(db *sqlx.DB) *Store {
	return &Store{
		queries: newQueries(db),
		db:      db,
	}
}

// InTx runs fn inside one transaction. fn's error rolls everything back.
func (s *Store) InTx(ctx context.Context, fn func(q practice.Queries) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(newQueries(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// queries runs statements against either the pool or an open transaction.
type queries struct {
	ext      sqlx.ExtContext
	postgres bool
}

func newQueries(ext sqlx.ExtContext) queries {
	return queries{ext: ext, postgres: ext.DriverName() == "postgres"}
}

func (q queries) rebind(query string) string {
	return q.ext.Rebind(query)
}

// lockClause returns the row lock suffix. sqlite has no row locks and
// serialises writers instead.
func (q queries) lockClause(forUpdate bool) string {
	if forUpdate && q.postgres {
		return " FOR UPDATE"
	}
	return ""
}
