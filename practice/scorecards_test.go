// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package practice_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/yoga-journal/models"
	"github.com/danielhkuo/yoga-journal/testutil"
)

// putSession stores a session owned by userID with one card per slug.
func putSession(t *testing.T, store *testutil.MemStore, id string, status models.Status, date time.Time, slugs ...string) []models.ScoreCard {
	t.Helper()

	store.PutSession(models.PracticeSession{
		ID:           id,
		UserID:       userID,
		Date:         date,
		PracticeType: models.PracticeCustom,
		Status:       status,
		CreatedAt:    date,
		UpdatedAt:    date,
	})

	cards := make([]models.ScoreCard, len(slugs))
	for i, slug := range slugs {
		pose, ok := store.PoseBySlug(slug)
		require.True(t, ok, "pose %s is seeded", slug)
		side := models.SideNA
		if pose.IsTwoSided {
			side = models.SideRight
		}
		cards[i] = models.ScoreCard{
			ID:             fmt.Sprintf("%s-card-%d", id, i+1),
			SessionID:      id,
			PoseID:         pose.ID,
			OrderInSession: i + 1,
			Segment:        pose.Segment,
			Side:           side,
			CreatedAt:      date,
			UpdatedAt:      date,
		}
		store.PutScoreCard(cards[i])
	}
	return cards
}

func rate(vals ...int) models.UpdateScoreCardRequest {
	var req models.UpdateScoreCardRequest
	for i, m := range models.RatingMetrics {
		if i >= len(vals) {
			break
		}
		v := vals[i]
		switch m {
		case models.MetricEase:
			req.Ease = models.OptionalInt{Set: true, Value: &v}
		case models.MetricComfort:
			req.Comfort = models.OptionalInt{Set: true, Value: &v}
		case models.MetricStability:
			req.Stability = models.OptionalInt{Set: true, Value: &v}
		case models.MetricPain:
			req.Pain = models.OptionalInt{Set: true, Value: &v}
		case models.MetricBreath:
			req.Breath = models.OptionalInt{Set: true, Value: &v}
		case models.MetricFocus:
			req.Focus = models.OptionalInt{Set: true, Value: &v}
		}
	}
	return req
}

func skip() models.UpdateScoreCardRequest {
	yes := true
	return models.UpdateScoreCardRequest{Skipped: &yes}
}

func TestUpdateScoreCardRecomputesScores(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	cards := putSession(t, store, "s1", models.StatusDraft, time.Now().UTC(), "dandasana", "navasana", "ustrasana")

	resp, err := svc.UpdateScoreCard(ctx, userID, cards[0].ID, rate(8, 7, 9, 6, 8, 7))
	require.NoError(t, err)
	require.NotNil(t, resp.ScoreCard.OverallScore)
	assert.Equal(t, 7.5, *resp.ScoreCard.OverallScore)
	require.NotNil(t, resp.SessionOverallScore)
	assert.Equal(t, 7.5, *resp.SessionOverallScore)
	assert.Equal(t, "dandasana", resp.ScoreCard.PoseSlug)

	// A partially rated card scores the mean of its rated axes.
	resp, err = svc.UpdateScoreCard(ctx, userID, cards[1].ID, rate(5, 5, 5))
	require.NoError(t, err)
	require.NotNil(t, resp.ScoreCard.OverallScore)
	assert.Equal(t, 5.0, *resp.ScoreCard.OverallScore)
	require.NotNil(t, resp.SessionOverallScore)
	assert.Equal(t, 6.25, *resp.SessionOverallScore)

	resp, err = svc.UpdateScoreCard(ctx, userID, cards[2].ID, skip())
	require.NoError(t, err)
	assert.True(t, resp.ScoreCard.Skipped)
	assert.Nil(t, resp.ScoreCard.OverallScore)
	assert.Equal(t, 6.25, *resp.SessionOverallScore)

	resp, err = svc.UpdateScoreCard(ctx, userID, cards[1].ID, rate(10, 10, 10, 10, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, 10.0, *resp.ScoreCard.OverallScore)
	assert.Equal(t, 8.75, *resp.SessionOverallScore)

	got, err := svc.GetSession(ctx, userID, "s1")
	require.NoError(t, err)
	assert.Equal(t, 8.75, *got.Session.OverallScore)
	assert.Equal(t, models.StatusDraft, got.Session.Status)
}

func TestUpdateScoreCardNullClearsRating(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	cards := putSession(t, store, "s1", models.StatusDraft, time.Now().UTC(), "navasana")

	_, err := svc.UpdateScoreCard(ctx, userID, cards[0].ID, rate(4, 4, 4, 4, 4, 4))
	require.NoError(t, err)

	resp, err := svc.UpdateScoreCard(ctx, userID, cards[0].ID, models.UpdateScoreCardRequest{
		Ease: models.OptionalInt{Set: true},
	})
	require.NoError(t, err)
	assert.Nil(t, resp.ScoreCard.Ease)
	assert.NotNil(t, resp.ScoreCard.Comfort, "absent fields are left alone")
	require.NotNil(t, resp.ScoreCard.OverallScore)
	assert.Equal(t, 4.0, *resp.ScoreCard.OverallScore)
	require.NotNil(t, resp.SessionOverallScore)
	assert.Equal(t, 4.0, *resp.SessionOverallScore)
}

func TestUpdateScoreCardSkippingClearsRatings(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	cards := putSession(t, store, "s1", models.StatusDraft, time.Now().UTC(), "navasana")

	_, err := svc.UpdateScoreCard(ctx, userID, cards[0].ID, rate(6, 6, 6, 6, 6, 6))
	require.NoError(t, err)

	resp, err := svc.UpdateScoreCard(ctx, userID, cards[0].ID, skip())
	require.NoError(t, err)
	for _, m := range models.RatingMetrics {
		assert.Nil(t, resp.ScoreCard.Get(m), "%s cleared", m)
	}

	no := false
	notes := "back again"
	resp, err = svc.UpdateScoreCard(ctx, userID, cards[0].ID, models.UpdateScoreCardRequest{
		Skipped: &no,
		Notes:   models.OptionalString{Set: true, Value: &notes},
	})
	require.NoError(t, err)
	assert.False(t, resp.ScoreCard.Skipped)
	assert.Equal(t, "back again", *resp.ScoreCard.Notes)
}

func TestUpdateScoreCardRejects(t *testing.T) {
	eleven := 11
	zero := 0
	bad := "UP"
	long := string(make([]byte, 2001))
	yes := true
	five := 5

	tests := []struct {
		name    string
		user    string
		card    string
		req     models.UpdateScoreCardRequest
		wantErr error
	}{
		{"no caller", "", "s1-card-1", rate(5), models.ErrUnauthorized},
		{"empty patch", userID, "s1-card-1", models.UpdateScoreCardRequest{}, models.ErrValidation},
		{"rating too high", userID, "s1-card-1", models.UpdateScoreCardRequest{Pain: models.OptionalInt{Set: true, Value: &eleven}}, models.ErrValidation},
		{"rating too low", userID, "s1-card-1", models.UpdateScoreCardRequest{Focus: models.OptionalInt{Set: true, Value: &zero}}, models.ErrValidation},
		{"bad side", userID, "s1-card-1", models.UpdateScoreCardRequest{Side: models.OptionalString{Set: true, Value: &bad}}, models.ErrValidation},
		{"null side", userID, "s1-card-1", models.UpdateScoreCardRequest{Side: models.OptionalString{Set: true}}, models.ErrValidation},
		{"notes too long", userID, "s1-card-1", models.UpdateScoreCardRequest{Notes: models.OptionalString{Set: true, Value: &long}}, models.ErrValidation},
		{"rate while skipping", userID, "s1-card-1", models.UpdateScoreCardRequest{Skipped: &yes, Ease: models.OptionalInt{Set: true, Value: &five}}, models.ErrValidation},
		{"unknown card", userID, "nope", rate(5), models.ErrNotFound},
		{"other owner", "user-2", "s1-card-1", rate(5), models.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newService(t)
			putSession(t, store, "s1", models.StatusDraft, time.Now().UTC(), "navasana")

			_, err := svc.UpdateScoreCard(context.Background(), tt.user, tt.card, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)

			card, err := svc.GetScoreCard(context.Background(), userID, "s1-card-1")
			require.NoError(t, err)
			assert.Nil(t, card.Ease, "nothing was written")
			assert.False(t, card.Skipped)
		})
	}
}

func TestUpdateScoreCardOnPublishedSession(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	cards := putSession(t, store, "s1", models.StatusPublished, time.Now().UTC(), "navasana")

	resp, err := svc.UpdateScoreCard(ctx, userID, cards[0].ID, rate(2, 2, 2, 2, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, 2.0, *resp.SessionOverallScore)

	got, err := svc.GetSession(ctx, userID, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, got.Session.Status, "status is untouched")
}

func TestUpdateScoreCardOnArchivedSession(t *testing.T) {
	svc, store := newService(t)
	cards := putSession(t, store, "s1", models.StatusArchived, time.Now().UTC(), "navasana")

	_, err := svc.UpdateScoreCard(context.Background(), userID, cards[0].ID, rate(2))
	assert.True(t, errors.Is(err, models.ErrConflict))
}

func TestGetScoreCard(t *testing.T) {
	svc, store := newService(t)
	cards := putSession(t, store, "s1", models.StatusDraft, time.Now().UTC(), "navasana")

	got, err := svc.GetScoreCard(context.Background(), userID, cards[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "navasana", got.PoseSlug)
	assert.Equal(t, "Navasana", got.PoseName)

	_, err = svc.GetScoreCard(context.Background(), "user-2", cards[0].ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
