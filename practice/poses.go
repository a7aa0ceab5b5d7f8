// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package practice

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/yoga-journal/models"
	"github.com/danielhkuo/yoga-journal/scoring"
)

// ListPoses returns seeded poses in practice order, optionally limited to
// one segment.
func (s *Service) ListPoses(ctx context.Context, segment string) (models.PoseListResponse, error) {
	seg := models.Segment(strings.ToUpper(strings.TrimSpace(segment)))
	if seg != "" && !seg.Valid() {
		return models.PoseListResponse{}, models.Validationf("unknown segment %q", segment)
	}

	poses, err := s.store.ListPoses(ctx, seg)
	if err != nil {
		return models.PoseListResponse{}, fmt.Errorf("failed to list poses: %w", err)
	}
	sort.SliceStable(poses, func(i, j int) bool {
		if ri, rj := poses[i].Segment.Rank(), poses[j].Segment.Rank(); ri != rj {
			return ri < rj
		}
		return poses[i].OrderInSegment < poses[j].OrderInSegment
	})
	if poses == nil {
		poses = []models.Pose{}
	}
	return models.PoseListResponse{Count: len(poses), Poses: poses}, nil
}

// GetPose returns one pose by id.
func (s *Service) GetPose(ctx context.Context, id string) (models.Pose, error) {
	return s.store.GetPose(ctx, id)
}

// TrendInput are the raw query parameters of a pose trend request.
type TrendInput struct {
	Fields         string
	Days           string
	Side           string
	IncludeSkipped bool
	From           *time.Time
	To             *time.Time
}

// trendWindow resolves the time window: explicit bounds win, otherwise the
// last N days ending now, or unbounded for "all".
func trendWindow(in TrendInput, now time.Time) (models.TrendWindow, error) {
	if in.From != nil || in.To != nil {
		w := models.TrendWindow{From: in.From, To: in.To}
		if w.From != nil && w.To != nil && w.To.Before(*w.From) {
			return models.TrendWindow{}, models.Validationf("to must not be before from")
		}
		return w, nil
	}

	days := DefaultTrendDays
	switch raw := strings.ToLower(strings.TrimSpace(in.Days)); raw {
	case "":
	case "all":
		return models.TrendWindow{}, nil
	default:
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return models.TrendWindow{}, models.Validationf("days must be a positive integer or \"all\"")
		}
		days = n
	}

	from := now.AddDate(0, 0, -days)
	return models.TrendWindow{From: &from, To: &now}, nil
}

func trendSides(raw string) ([]models.Side, error) {
	switch side := strings.ToUpper(strings.TrimSpace(raw)); side {
	case "", models.TrendSideAll:
		return nil, nil
	case models.TrendSideBoth:
		return []models.Side{models.SideLeft, models.SideRight}, nil
	default:
		if !models.Side(side).Valid() {
			return nil, models.Validationf("side must be one of LEFT, RIGHT, NA, BOTH, ALL")
		}
		return []models.Side{models.Side(side)}, nil
	}
}

// PoseTrend returns the caller's history for one pose as a time series of
// the selected metrics, ordered by session date then position.
func (s *Service) PoseTrend(ctx context.Context, userID, poseID string, in TrendInput) (models.PoseTrendResponse, error) {
	if err := requireUser(userID); err != nil {
		return models.PoseTrendResponse{}, err
	}

	metrics, err := scoring.ParseMetrics(in.Fields)
	if err != nil {
		return models.PoseTrendResponse{}, err
	}
	window, err := trendWindow(in, s.now())
	if err != nil {
		return models.PoseTrendResponse{}, err
	}
	sides, err := trendSides(in.Side)
	if err != nil {
		return models.PoseTrendResponse{}, err
	}

	pose, err := s.store.GetPose(ctx, poseID)
	if err != nil {
		return models.PoseTrendResponse{}, err
	}

	rows, err := s.store.TrendRows(ctx, models.TrendFilter{
		UserID:         userID,
		PoseID:         poseID,
		From:           window.From,
		To:             window.To,
		Sides:          sides,
		IncludeSkipped: in.IncludeSkipped,
	})
	if err != nil {
		return models.PoseTrendResponse{}, fmt.Errorf("failed to load trend: %w", err)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].SessionDate.Equal(rows[j].SessionDate) {
			return rows[i].SessionDate.Before(rows[j].SessionDate)
		}
		return rows[i].OrderInSession < rows[j].OrderInSession
	})

	points := make([]models.TrendPoint, len(rows))
	for i, r := range rows {
		points[i] = models.TrendPoint{
			ScoreCardID:    r.ID,
			SessionDate:    r.SessionDate,
			CreatedAt:      r.CreatedAt,
			Side:           r.Side,
			Segment:        r.Segment,
			OrderInSession: r.OrderInSession,
			Skipped:        r.Skipped,
			Values:         scoring.Select(r.ScoreCard, metrics),
		}
	}

	return models.PoseTrendResponse{
		Pose:    pose,
		Metrics: metrics,
		Window:  window,
		Points:  points,
	}, nil
}
