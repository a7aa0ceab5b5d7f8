// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/danielhkuo/yoga-journal/models"
)

// Precision is the number of decimal places kept for every stored score.
const Precision = 2

// Round rounds v to Precision decimal places, half away from zero.
func Round(v float64) float64 {
	scale := math.Pow(10, Precision)
	return math.Round(v*scale) / scale
}

// CardOverall is the mean of the non-null ratings, or nil when the card is
// skipped or unrated. Pain is averaged as stored, like every other axis.
func CardOverall(r models.Ratings, skipped bool) *float64 {
	if skipped {
		return nil
	}

	sum, n := 0, 0
	for _, m := range models.RatingMetrics {
		if v := r.Get(m); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}

	avg := Round(float64(sum) / float64(n))
	return &avg
}

// SessionOverall is the mean overall score of non-skipped cards that have one.
func SessionOverall(cards []models.ScoreCard) *float64 {
	var sum float64
	n := 0
	for _, c := range cards {
		if c.Skipped || c.OverallScore == nil {
			continue
		}
		sum += *c.OverallScore
		n++
	}
	if n == 0 {
		return nil
	}

	avg := Round(sum / float64(n))
	return &avg
}

// Recompute sets the card's overall score from its ratings. Skipped cards
// have their ratings cleared first.
func Recompute(c *models.ScoreCard) {
	if c.Skipped {
		c.Ratings = models.Ratings{}
	}
	c.OverallScore = CardOverall(c.Ratings, c.Skipped)
}

// MissingMetrics lists the rating axes still null on a non-skipped card,
// in canonical order.
func MissingMetrics(c models.ScoreCard) []models.Metric {
	if c.Skipped {
		return nil
	}
	var missing []models.Metric
	for _, m := range models.RatingMetrics {
		if c.Get(m) == nil {
			missing = append(missing, m)
		}
	}
	return missing
}

// Incomplete collects every non-skipped card with missing ratings.
func Incomplete(cards []models.ScoreCard) []models.IncompleteCard {
	var out []models.IncompleteCard
	for _, c := range cards {
		missing := MissingMetrics(c)
		if len(missing) == 0 {
			continue
		}
		out = append(out, models.IncompleteCard{
			ScoreCardID:    c.ID,
			OrderInSession: c.OrderInSession,
			PoseSlug:       c.PoseSlug,
			PoseName:       c.PoseName,
			Side:           c.Side,
			Missing:        missing,
		})
	}
	return out
}

// ParseMetrics parses a comma-separated list of selectable metric names.
// An empty list selects every metric. Duplicates are dropped.
func ParseMetrics(raw string) ([]models.Metric, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return append([]models.Metric(nil), models.SelectableMetrics...), nil
	}

	seen := make(map[models.Metric]bool)
	var out []models.Metric
	for _, part := range strings.Split(raw, ",") {
		m := models.Metric(strings.ToLower(strings.TrimSpace(part)))
		if m == "" {
			continue
		}
		if !selectable(m) {
			return nil, models.Validationf("unknown metric %q", part)
		}
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, models.Validationf("no metrics selected")
	}
	return out, nil
}

func selectable(m models.Metric) bool {
	for _, s := range models.SelectableMetrics {
		if s == m {
			return true
		}
	}
	return false
}

// Value returns one selectable metric of a card as a float.
func Value(c models.ScoreCard, m models.Metric) *float64 {
	if m == models.MetricOverallScore {
		return c.OverallScore
	}
	v := c.Get(m)
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

// Select projects a card onto the requested metrics.
func Select(c models.ScoreCard, metrics []models.Metric) map[models.Metric]*float64 {
	out := make(map[models.Metric]*float64, len(metrics))
	for _, m := range metrics {
		out[m] = Value(c, m)
	}
	return out
}

// Averages is the per-metric mean over non-skipped cards, ignoring nulls.
// Metrics with no values map to nil.
func Averages(cards []models.ScoreCard) map[models.Metric]*float64 {
	out := make(map[models.Metric]*float64, len(models.SelectableMetrics))
	for _, m := range models.SelectableMetrics {
		var sum float64
		n := 0
		for _, c := range cards {
			if c.Skipped {
				continue
			}
			if v := Value(c, m); v != nil {
				sum += *v
				n++
			}
		}
		if n > 0 {
			avg := Round(sum / float64(n))
			out[m] = &avg
		} else {
			out[m] = nil
		}
	}
	return out
}

// PainHotSpots returns up to limit non-skipped cards with the highest pain,
// ties broken by session order.
func PainHotSpots(cards []models.ScoreCard, limit int) []models.PainHotSpot {
	var rated []models.ScoreCard
	for _, c := range cards {
		if !c.Skipped && c.Pain != nil {
			rated = append(rated, c)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		if *rated[i].Pain != *rated[j].Pain {
			return *rated[i].Pain > *rated[j].Pain
		}
		return rated[i].OrderInSession < rated[j].OrderInSession
	})
	if len(rated) > limit {
		rated = rated[:limit]
	}

	out := make([]models.PainHotSpot, len(rated))
	for i, c := range rated {
		out[i] = models.PainHotSpot{
			ScoreCardID: c.ID,
			PoseName:    c.PoseName,
			Side:        c.Side,
			Pain:        *c.Pain,
			Notes:       c.Notes,
		}
	}
	return out
}

// ValidRating reports whether v is within the inclusive rating bounds.
func ValidRating(v int) bool {
	return v >= models.RatingMin && v <= models.RatingMax
}
