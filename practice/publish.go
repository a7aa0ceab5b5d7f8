// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/yoga-journal/metrics"
	"github.com/danielhkuo/yoga-journal/models"
	"github.com/danielhkuo/yoga-journal/scoring"
)

const (
	transitionPublish   = "publish"
	transitionUnpublish = "unpublish"
)

// Publish moves a draft session to PUBLISHED once every non-skipped card has
// all six ratings. Card and session scores are recomputed in the same
// transaction. Publishing an already published session returns it unchanged.
func (s *Service) Publish(ctx context.Context, userID, id string) (models.PracticeSession, error) {
	if err := requireUser(userID); err != nil {
		return models.PracticeSession{}, err
	}

	var (
		out  models.PracticeSession
		noop bool
	)
	err := s.store.InTx(ctx, func(q Queries) error {
		session, err := q.GetSession(ctx, userID, id, true)
		if err != nil {
			return err
		}

		switch session.Status {
		case models.StatusPublished:
			out, noop = session, true
			return nil
		case models.StatusArchived:
			return fmt.Errorf("%w: session %s is archived", models.ErrConflict, id)
		}

		cards, err := q.ListScoreCards(ctx, id)
		if err != nil {
			return err
		}
		if incomplete := scoring.Incomplete(cards); len(incomplete) > 0 {
			return &models.CompletenessError{SessionID: id, Cards: incomplete}
		}

		now := s.now()
		for i := range cards {
			c := &cards[i]
			before := c.OverallScore
			scoring.Recompute(c)
			if sameScore(before, c.OverallScore) {
				continue
			}
			c.UpdatedAt = now
			if err := q.UpdateScoreCard(ctx, *c); err != nil {
				return err
			}
		}

		overall := scoring.SessionOverall(cards)
		if err := q.UpdateSessionState(ctx, id, models.StatusPublished, overall, now); err != nil {
			return err
		}

		session.Status = models.StatusPublished
		session.OverallScore = overall
		session.UpdatedAt = now
		out = session
		return nil
	})

	if err != nil {
		var incomplete *models.CompletenessError
		switch {
		case errors.As(err, &incomplete):
			metrics.RecordTransition(transitionPublish, metrics.ResultIncomplete)
			slog.Info("publish rejected",
				"session_id", id,
				"incomplete_cards", len(incomplete.Cards))
		case errors.Is(err, models.ErrConflict):
			metrics.RecordTransition(transitionPublish, metrics.ResultConflict)
		}
		return models.PracticeSession{}, err
	}

	if noop {
		metrics.RecordTransition(transitionPublish, metrics.ResultNoop)
		return out, nil
	}

	metrics.RecordTransition(transitionPublish, metrics.ResultOK)
	slog.Info("session published", "session_id", id, "user_id", userID)
	return out, nil
}

// Unpublish returns a published session to DRAFT without recomputing
// anything. A draft session is returned unchanged.
func (s *Service) Unpublish(ctx context.Context, userID, id string) (models.PracticeSession, error) {
	if err := requireUser(userID); err != nil {
		return models.PracticeSession{}, err
	}

	var (
		out  models.PracticeSession
		noop bool
	)
	err := s.store.InTx(ctx, func(q Queries) error {
		session, err := q.GetSession(ctx, userID, id, true)
		if err != nil {
			return err
		}

		switch session.Status {
		case models.StatusDraft:
			out, noop = session, true
			return nil
		case models.StatusArchived:
			return fmt.Errorf("%w: session %s is archived", models.ErrConflict, id)
		}

		now := s.now()
		if err := q.UpdateSessionState(ctx, id, models.StatusDraft, session.OverallScore, now); err != nil {
			return err
		}
		session.Status = models.StatusDraft
		session.UpdatedAt = now
		out = session
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			metrics.RecordTransition(transitionUnpublish, metrics.ResultConflict)
		}
		return models.PracticeSession{}, err
	}

	if noop {
		metrics.RecordTransition(transitionUnpublish, metrics.ResultNoop)
		return out, nil
	}

	metrics.RecordTransition(transitionUnpublish, metrics.ResultOK)
	slog.Info("session unpublished", "session_id", id, "user_id", userID)
	return out, nil
}

func sameScore(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
