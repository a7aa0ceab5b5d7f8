// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package practice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/yoga-journal/metrics"
	"github.com/danielhkuo/yoga-journal/models"
	"github.com/danielhkuo/yoga-journal/scoring"
)

// GetScoreCard returns a caller-owned card.
func (s *Service) GetScoreCard(ctx context.Context, userID, id string) (models.ScoreCard, error) {
	if err := requireUser(userID); err != nil {
		return models.ScoreCard{}, err
	}
	return s.store.GetScoreCard(ctx, userID, id)
}

func validatePatch(req models.UpdateScoreCardRequest) error {
	if req.Empty() {
		return models.Validationf("at least one field is required")
	}
	for _, m := range models.RatingMetrics {
		p := req.Rating(m)
		if p.Set && p.Value != nil && !scoring.ValidRating(*p.Value) {
			return models.Validationf("%s must be between %d and %d", m, models.RatingMin, models.RatingMax)
		}
	}
	if req.Notes.Set && req.Notes.Value != nil && len(*req.Notes.Value) > MaxNotesLength {
		return models.Validationf("notes must be at most %d characters", MaxNotesLength)
	}
	if req.Side.Set {
		if req.Side.Value == nil {
			return models.Validationf("side cannot be null")
		}
		if !models.Side(*req.Side.Value).Valid() {
			return models.Validationf("side must be one of LEFT, RIGHT, NA")
		}
	}
	return nil
}

// applyPatch merges req into c. A card that ends up skipped has every rating
// cleared; giving it new ratings in the same request is rejected.
func applyPatch(c *models.ScoreCard, req models.UpdateScoreCardRequest) error {
	if req.Skipped != nil {
		c.Skipped = *req.Skipped
	}

	for _, m := range models.RatingMetrics {
		p := req.Rating(m)
		if !p.Set {
			continue
		}
		if c.Skipped && p.Value != nil {
			return models.Validationf("cannot rate %s on a skipped card", m)
		}
		c.Set(m, p.Value)
	}

	if req.Notes.Set {
		c.Notes = req.Notes.Value
	}
	if req.Side.Set {
		c.Side = models.Side(*req.Side.Value)
	}

	scoring.Recompute(c)
	return nil
}

// UpdateScoreCard applies a partial update to a card, recomputes its overall
// score and the owning session's aggregate, all in one transaction.
func (s *Service) UpdateScoreCard(ctx context.Context, userID, id string, req models.UpdateScoreCardRequest) (models.UpdateScoreCardResponse, error) {
	if err := requireUser(userID); err != nil {
		return models.UpdateScoreCardResponse{}, err
	}
	if err := validatePatch(req); err != nil {
		return models.UpdateScoreCardResponse{}, err
	}

	var resp models.UpdateScoreCardResponse
	err := s.store.InTx(ctx, func(q Queries) error {
		card, err := q.GetScoreCard(ctx, userID, id)
		if err != nil {
			return err
		}

		session, err := q.GetSession(ctx, userID, card.SessionID, true)
		if err != nil {
			return err
		}
		if session.Status == models.StatusArchived {
			return fmt.Errorf("%w: session %s is archived", models.ErrConflict, session.ID)
		}

		if err := applyPatch(&card, req); err != nil {
			return err
		}
		card.UpdatedAt = s.now()
		if err := q.UpdateScoreCard(ctx, card); err != nil {
			return err
		}

		cards, err := q.ListScoreCards(ctx, session.ID)
		if err != nil {
			return err
		}
		overall := scoring.SessionOverall(cards)
		if err := q.UpdateSessionState(ctx, session.ID, session.Status, overall, card.UpdatedAt); err != nil {
			return err
		}

		resp = models.UpdateScoreCardResponse{ScoreCard: card, SessionOverallScore: overall}
		return nil
	})
	if err != nil {
		return models.UpdateScoreCardResponse{}, err
	}

	metrics.RecordScoreCardUpdate()
	slog.Debug("score card updated",
		"score_card_id", id,
		"session_id", resp.ScoreCard.SessionID,
		"skipped", resp.ScoreCard.Skipped)

	return resp, nil
}
