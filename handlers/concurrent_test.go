// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"math"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/yoga-journal/models"
	"github.com/danielhkuo/yoga-journal/testutil"
)

// TestConcurrentScoreCardUpdates rates every card of one session in parallel
// and checks that the session aggregate reflects all of them.
func TestConcurrentScoreCardUpdates(t *testing.T) {
	env := newTestEnv(t)
	created := env.createPreset(t, models.PracticeHalfPrimary)

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i, card := range created.ScoreCards {
		wg.Add(1)
		go func(idx int, cardID string) {
			defer wg.Done()

			v := idx%10 + 1
			body := fmt.Sprintf(`{"ease":%d,"comfort":%d,"stability":%d,"pain":%d,"breath":%d,"focus":%d}`, v, v, v, v, v, v)
			w := env.doRaw(http.MethodPatch, "/scorecards/"+cardID, body)
			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i, card.ID)
	}
	wg.Wait()

	require.Equal(t, int32(len(created.ScoreCards)), successCount.Load())

	var sum float64
	for i := range created.ScoreCards {
		sum += float64(i%10 + 1)
	}
	want := math.Round(sum/float64(len(created.ScoreCards))*100) / 100

	w := env.do(http.MethodGet, "/sessions/"+created.Session.ID, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var got models.SessionWithCards
	testutil.AssertJSON(t, w, &got)
	require.NotNil(t, got.Session.OverallScore)
	assert.Equal(t, want, *got.Session.OverallScore)
	for _, c := range got.ScoreCards {
		assert.NotNil(t, c.OverallScore, "card %d left unscored", c.OrderInSession)
	}
}

// TestConcurrentPublish fires several publish requests at a complete session;
// every one succeeds and the session ends up published exactly once.
func TestConcurrentPublish(t *testing.T) {
	env := newTestEnv(t)
	created := env.createPreset(t, models.PracticeHalfPrimary)
	for _, c := range created.ScoreCards {
		w := env.doRaw(http.MethodPatch, "/scorecards/"+c.ID, fullRatingsJSON)
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	const attempts = 8
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := env.do(http.MethodPost, "/sessions/"+created.Session.ID+"/publish", nil)
			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(attempts), successCount.Load())

	w := env.do(http.MethodGet, "/sessions/"+created.Session.ID, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var got models.SessionWithCards
	testutil.AssertJSON(t, w, &got)
	assert.Equal(t, models.StatusPublished, got.Session.Status)
}
