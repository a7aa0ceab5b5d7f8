// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package practice

import (
	"context"
	"time"

	"github.com/danielhkuo/yoga-journal/models"
)

// Queries are the storage operations the service needs. Lookups that find
// nothing return an error matching models.ErrNotFound. Session and card
// lookups are scoped to the owning user.
type Queries interface {
	ListPoses(ctx context.Context, segment models.Segment) ([]models.Pose, error)
	GetPose(ctx context.Context, id string) (models.Pose, error)
	PosesBySlugs(ctx context.Context, slugs []string) (map[string]models.Pose, error)

	InsertSession(ctx context.Context, s models.PracticeSession) error
	// GetSession locks the row for the rest of the transaction when
	// forUpdate is set and the dialect supports it.
	GetSession(ctx context.Context, userID, id string, forUpdate bool) (models.PracticeSession, error)
	ListSessions(ctx context.Context, userID string, f models.SessionFilter) ([]models.PracticeSession, error)
	UpdateSessionState(ctx context.Context, id string, status models.Status, overall *float64, at time.Time) error

	InsertScoreCards(ctx context.Context, cards []models.ScoreCard) error
	// ListScoreCards returns a session's cards ordered by order_in_session,
	// with pose slug and name joined.
	ListScoreCards(ctx context.Context, sessionID string) ([]models.ScoreCard, error)
	GetScoreCard(ctx context.Context, userID, id string) (models.ScoreCard, error)
	UpdateScoreCard(ctx context.Context, c models.ScoreCard) error

	TrendRows(ctx context.Context, f models.TrendFilter) ([]models.TrendRow, error)
}

// Store runs Queries directly or inside one transaction. An error returned
// by fn rolls the whole transaction back.
type Store interface {
	Queries
	InTx(ctx context.Context, fn func(q Queries) error) error
}
