// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package practice

import (
	"context"

	"github.com/danielhkuo/yoga-journal/models"
	"github.com/danielhkuo/yoga-journal/scoring"
)

// SessionSummary reports completeness, per-metric averages and the cards
// with the highest pain for one caller-owned session.
func (s *Service) SessionSummary(ctx context.Context, userID, id string) (models.SessionSummaryResponse, error) {
	full, err := s.GetSession(ctx, userID, id)
	if err != nil {
		return models.SessionSummaryResponse{}, err
	}

	var c models.CompletenessSummary
	for _, card := range full.ScoreCards {
		if card.Skipped {
			continue
		}
		c.Total++
		if len(scoring.MissingMetrics(card)) == 0 {
			c.Complete++
			continue
		}
		c.Incomplete++
		if c.FirstIncomplete == nil {
			cardID := card.ID
			c.FirstIncomplete = &cardID
		}
	}

	return models.SessionSummaryResponse{
		Session:        full.Session,
		Completeness:   c,
		MetricAverages: scoring.Averages(full.ScoreCards),
		PainHotSpots:   scoring.PainHotSpots(full.ScoreCards, HotSpotLimit),
	}, nil
}
