// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/yoga-journal/models"
)

const poseColumns = `id, slug, name, english_name, segment, order_in_segment, is_two_sided`

func (q queries) ListPoses(ctx context.Context, segment models.Segment) ([]models.Pose, error) {
	query := `SELECT ` + poseColumns + ` FROM pose`
	var args []any
	if segment != "" {
		query += ` WHERE segment = ?`
		args = append(args, string(segment))
	}
	query += ` ORDER BY segment, order_in_segment`

	var poses []models.Pose
	if err := sqlx.SelectContext(ctx, q.ext, &poses, q.rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list poses: %w", err)
	}
	return poses, nil
}

func (q queries) GetPose(ctx context.Context, id string) (models.Pose, error) {
	var p models.Pose
	err := sqlx.GetContext(ctx, q.ext, &p, q.rebind(`SELECT `+poseColumns+` FROM pose WHERE id = ?`), id)
	if err != nil {
		return models.Pose{}, mapErr(err, "pose", id)
	}
	return p, nil
}

// PosesBySlugs returns the seeded poses for slugs keyed by slug. Slugs with
// no row are simply absent from the map.
func (q queries) PosesBySlugs(ctx context.Context, slugs []string) (map[string]models.Pose, error) {
	out := make(map[string]models.Pose, len(slugs))
	if len(slugs) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(`SELECT `+poseColumns+` FROM pose WHERE slug IN (?)`, slugs)
	if err != nil {
		return nil, fmt.Errorf("failed to build pose lookup: %w", err)
	}

	var poses []models.Pose
	if err := sqlx.SelectContext(ctx, q.ext, &poses, q.rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to look up poses: %w", err)
	}
	for _, p := range poses {
		out[p.Slug] = p
	}
	return out, nil
}
