// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package practice

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/danielhkuo/yoga-journal/metrics"
	"github.com/danielhkuo/yoga-journal/models"
	"github.com/danielhkuo/yoga-journal/plan"
)

// CreateInput describes a session to materialize.
type CreateInput struct {
	UserID          string
	Date            *time.Time
	Label           *string
	DurationMinutes *int
	EnergyLevel     *int
	Mood            *string
	Selection       plan.Selection
}

// PresetSelection converts a preset request into a plan selection.
func PresetSelection(req models.CreatePresetSessionRequest) (plan.Selection, error) {
	if req.PracticeType == "" {
		return plan.Selection{}, models.Validationf("practice_type is required")
	}
	if req.PracticeType == models.PracticeCustom {
		return plan.Selection{}, models.Validationf("CUSTOM sessions take blocks; use the custom endpoint")
	}
	if !req.PracticeType.Valid() {
		return plan.Selection{}, models.Validationf("unknown practice_type %q", req.PracticeType)
	}
	return plan.Selection{
		Type:             req.PracticeType,
		PrimaryUpTo:      strings.TrimSpace(req.PrimaryUpTo),
		IntermediateUpTo: strings.TrimSpace(req.IntermediateUpTo),
		AdvancedUpTo:     strings.TrimSpace(req.AdvancedUpTo),
	}, nil
}

// CustomSelection converts custom blocks into a plan selection.
func CustomSelection(blocks []models.CustomBlock) plan.Selection {
	sel := plan.Selection{Type: models.PracticeCustom}
	for _, b := range blocks {
		sel.Blocks = append(sel.Blocks, plan.Block{
			Segment:         b.Segment,
			FromSlug:        strings.TrimSpace(b.FromSlug),
			UpToSlug:        strings.TrimSpace(b.UpToSlug),
			Slugs:           b.Slugs,
			OverrideSegment: b.OverrideSegment,
		})
	}
	return sel
}

// CreatePreset materializes a session from a preset request.
func (s *Service) CreatePreset(ctx context.Context, userID string, req models.CreatePresetSessionRequest) (models.SessionWithCards, error) {
	if err := requireUser(userID); err != nil {
		return models.SessionWithCards{}, err
	}
	sel, err := PresetSelection(req)
	if err != nil {
		return models.SessionWithCards{}, err
	}
	return s.CreateSession(ctx, CreateInput{
		UserID:          userID,
		Date:            req.Date,
		Label:           req.Label,
		DurationMinutes: req.DurationMinutes,
		EnergyLevel:     req.EnergyLevel,
		Mood:            req.Mood,
		Selection:       sel,
	})
}

// CreateCustom materializes a session from custom blocks.
func (s *Service) CreateCustom(ctx context.Context, userID string, req models.CreateCustomSessionRequest) (models.SessionWithCards, error) {
	return s.CreateSession(ctx, CreateInput{
		UserID:          userID,
		Date:            req.Date,
		Label:           req.Label,
		DurationMinutes: req.DurationMinutes,
		EnergyLevel:     req.EnergyLevel,
		Mood:            req.Mood,
		Selection:       CustomSelection(req.Blocks),
	})
}

func validateCreate(in CreateInput) error {
	if in.Label != nil && len(*in.Label) > MaxLabelLength {
		return models.Validationf("label must be at most %d characters", MaxLabelLength)
	}
	if in.DurationMinutes != nil && *in.DurationMinutes < 1 {
		return models.Validationf("duration_minutes must be at least 1")
	}
	if in.EnergyLevel != nil && (*in.EnergyLevel < models.RatingMin || *in.EnergyLevel > models.RatingMax) {
		return models.Validationf("energy_level must be between %d and %d", models.RatingMin, models.RatingMax)
	}
	if in.Mood != nil && len(*in.Mood) > MaxMoodLength {
		return models.Validationf("mood must be at most %d characters", MaxMoodLength)
	}
	return nil
}

// CreateSession expands the selection and persists a draft session with one
// score card per pose occurrence, all in one transaction. Two-sided poses
// get a RIGHT card followed by a LEFT card.
func (s *Service) CreateSession(ctx context.Context, in CreateInput) (models.SessionWithCards, error) {
	if err := requireUser(in.UserID); err != nil {
		return models.SessionWithCards{}, err
	}
	if err := validateCreate(in); err != nil {
		return models.SessionWithCards{}, err
	}

	items, err := plan.Expand(s.cat, in.Selection)
	if err != nil {
		return models.SessionWithCards{}, err
	}

	now := s.now()
	session := models.PracticeSession{
		ID:              s.newID(),
		UserID:          in.UserID,
		Date:            now,
		PracticeType:    in.Selection.Type,
		DurationMinutes: in.DurationMinutes,
		Status:          models.StatusDraft,
		EnergyLevel:     in.EnergyLevel,
		Mood:            in.Mood,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.Date != nil {
		session.Date = in.Date.UTC()
	}
	label := plan.DefaultLabel(in.Selection)
	if in.Label != nil && strings.TrimSpace(*in.Label) != "" {
		label = strings.TrimSpace(*in.Label)
	}
	session.Label = &label

	var cards []models.ScoreCard
	err = s.store.InTx(ctx, func(q Queries) error {
		if err := q.InsertSession(ctx, session); err != nil {
			return err
		}

		poses, err := q.PosesBySlugs(ctx, distinctSlugs(items))
		if err != nil {
			return err
		}
		if missing := missingSlugs(items, poses); len(missing) > 0 {
			return &models.MissingReferenceError{Slugs: missing}
		}

		cards = s.buildCards(session.ID, items, poses, now)
		return q.InsertScoreCards(ctx, cards)
	})

	var missingErr *models.MissingReferenceError
	if errors.As(err, &missingErr) {
		slog.Error("pose catalog not seeded",
			"missing_slugs", missingErr.Slugs,
			"practice_type", in.Selection.Type,
			"user_id", in.UserID)
		metrics.RecordMissingReference()
		return models.SessionWithCards{}, err
	}
	if err != nil {
		return models.SessionWithCards{}, fmt.Errorf("failed to create session: %w", err)
	}

	metrics.RecordSessionCreated(string(session.PracticeType), len(cards))
	slog.Info("session created",
		"session_id", session.ID,
		"user_id", in.UserID,
		"practice_type", session.PracticeType,
		"cards", len(cards))

	return models.SessionWithCards{Session: session, ScoreCards: cards}, nil
}

func (s *Service) buildCards(sessionID string, items []plan.Item, poses map[string]models.Pose, now time.Time) []models.ScoreCard {
	cards := make([]models.ScoreCard, 0, plan.CardCount(items))
	order := 0

	emit := func(it plan.Item, pose models.Pose, side models.Side) {
		order++
		cards = append(cards, models.ScoreCard{
			ID:             s.newID(),
			SessionID:      sessionID,
			PoseID:         pose.ID,
			OrderInSession: order,
			Segment:        it.Segment,
			Side:           side,
			CreatedAt:      now,
			UpdatedAt:      now,
			PoseSlug:       pose.Slug,
			PoseName:       pose.Name,
		})
	}

	for _, it := range items {
		pose := poses[it.PoseSlug]
		if pose.IsTwoSided {
			emit(it, pose, models.SideRight)
			emit(it, pose, models.SideLeft)
		} else {
			emit(it, pose, models.SideNA)
		}
	}
	return cards
}

func distinctSlugs(items []plan.Item) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, it := range items {
		if !seen[it.PoseSlug] {
			seen[it.PoseSlug] = true
			out = append(out, it.PoseSlug)
		}
	}
	return out
}

func missingSlugs(items []plan.Item, poses map[string]models.Pose) []string {
	var missing []string
	for _, slug := range distinctSlugs(items) {
		if _, ok := poses[slug]; !ok {
			missing = append(missing, slug)
		}
	}
	sort.Strings(missing)
	return missing
}

// PreviewPlan expands a selection without persisting anything.
func (s *Service) PreviewPlan(sel plan.Selection) (models.PlanPreviewResponse, error) {
	items, err := plan.Expand(s.cat, sel)
	if err != nil {
		return models.PlanPreviewResponse{}, err
	}

	out := models.PlanPreviewResponse{
		PracticeType: sel.Type,
		Label:        plan.DefaultLabel(sel),
		Items:        make([]models.PlanItem, len(items)),
		CardCount:    plan.CardCount(items),
	}
	for i, it := range items {
		out.Items[i] = models.PlanItem{
			Position:   i + 1,
			PoseName:   it.PoseName,
			PoseSlug:   it.PoseSlug,
			Segment:    it.Segment,
			IsTwoSided: it.TwoSided,
		}
	}
	return out, nil
}

// GetSession returns a caller-owned session with its cards in order.
func (s *Service) GetSession(ctx context.Context, userID, id string) (models.SessionWithCards, error) {
	if err := requireUser(userID); err != nil {
		return models.SessionWithCards{}, err
	}

	session, err := s.store.GetSession(ctx, userID, id, false)
	if err != nil {
		return models.SessionWithCards{}, err
	}
	cards, err := s.store.ListScoreCards(ctx, id)
	if err != nil {
		return models.SessionWithCards{}, fmt.Errorf("failed to list score cards: %w", err)
	}
	return models.SessionWithCards{Session: session, ScoreCards: cards}, nil
}

// ListInput is a page request over the caller's sessions.
type ListInput struct {
	Limit  int
	Cursor string
	Status *models.Status
	From   *time.Time
	To     *time.Time
}

type cursor struct {
	Date time.Time `json:"d"`
	ID   string    `json:"id"`
}

// EncodeCursor builds the opaque token for the page after s.
func EncodeCursor(s models.PracticeSession) string {
	raw, _ := json.Marshal(cursor{Date: s.Date.UTC(), ID: s.ID})
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses a token produced by EncodeCursor.
func DecodeCursor(token string) (time.Time, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", models.Validationf("malformed cursor")
	}
	var c cursor
	if err := json.Unmarshal(raw, &c); err != nil || c.ID == "" {
		return time.Time{}, "", models.Validationf("malformed cursor")
	}
	return c.Date, c.ID, nil
}

// ListSessions pages through the caller's sessions, newest first.
func (s *Service) ListSessions(ctx context.Context, userID string, in ListInput) (models.ListSessionsResponse, error) {
	if err := requireUser(userID); err != nil {
		return models.ListSessionsResponse{}, err
	}

	limit := in.Limit
	switch {
	case limit == 0:
		limit = DefaultPageSize
	case limit < 0:
		return models.ListSessionsResponse{}, models.Validationf("limit must be positive")
	case limit > MaxPageSize:
		limit = MaxPageSize
	}

	if in.Status != nil {
		switch *in.Status {
		case models.StatusDraft, models.StatusPublished, models.StatusArchived:
		default:
			return models.ListSessionsResponse{}, models.Validationf("unknown status %q", *in.Status)
		}
	}

	f := models.SessionFilter{
		Status: in.Status,
		From:   in.From,
		To:     in.To,
		Limit:  limit + 1,
	}
	if in.Cursor != "" {
		d, id, err := DecodeCursor(in.Cursor)
		if err != nil {
			return models.ListSessionsResponse{}, err
		}
		f.AfterDate, f.AfterID = &d, id
	}

	rows, err := s.store.ListSessions(ctx, userID, f)
	if err != nil {
		return models.ListSessionsResponse{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	resp := models.ListSessionsResponse{Items: rows}
	if len(rows) > limit {
		resp.Items = rows[:limit]
		next := EncodeCursor(resp.Items[limit-1])
		resp.NextCursor = &next
	}
	if resp.Items == nil {
		resp.Items = []models.PracticeSession{}
	}
	return resp, nil
}
