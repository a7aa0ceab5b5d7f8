// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/yoga-journal/catalog"
)

const upsertPose = `
INSERT INTO pose (id, slug, name, english_name, segment, order_in_segment, is_two_sided)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (slug) DO UPDATE SET
    name = excluded.name,
    english_name = excluded.english_name,
    segment = excluded.segment,
    order_in_segment = excluded.order_in_segment,
    is_two_sided = excluded.is_two_sided`

// SeedPoses upserts every catalog pose by slug in one transaction.
// Existing rows keep their ids, so score cards stay valid across reseeds.
func SeedPoses(ctx context.Context, db *sqlx.DB, cat *catalog.Catalog) (int, error) {
	poses := cat.SeedPoses()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	query := tx.Rebind(upsertPose)
	for _, p := range poses {
		var english *string
		if p.EnglishName != "" {
			name := p.EnglishName
			english = &name
		}
		_, err := tx.ExecContext(ctx, query,
			uuid.NewString(), p.Slug, p.Name, english, string(p.Segment), p.OrderInSegment, p.IsTwoSided)
		if err != nil {
			return 0, fmt.Errorf("failed to seed pose %s: %w", p.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}

	slog.Info("pose catalog seeded", "poses", len(poses), "catalog_version", cat.Version())
	return len(poses), nil
}
