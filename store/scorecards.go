// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/yoga-journal/models"
)

const cardColumns = `id, session_id, pose_id, order_in_session, segment, side,
	ease, comfort, stability, pain, breath, focus, notes, skipped, overall_score,
	created_at, updated_at`

// cardSelect reads a card joined with its pose under alias sc and p.
const cardSelect = `SELECT sc.id, sc.session_id, sc.pose_id, sc.order_in_session, sc.segment, sc.side,
	sc.ease, sc.comfort, sc.stability, sc.pain, sc.breath, sc.focus, sc.notes, sc.skipped,
	sc.overall_score, sc.created_at, sc.updated_at, p.slug AS pose_slug, p.name AS pose_name`

// cardsPerInsert keeps a multi-row insert under sqlite's bound variable limit.
const cardsPerInsert = 200

const cardColumnCount = 17

// InsertScoreCards writes cards with multi-row inserts.
func (q queries) InsertScoreCards(ctx context.Context, cards []models.ScoreCard) error {
	for start := 0; start < len(cards); start += cardsPerInsert {
		end := start + cardsPerInsert
		if end > len(cards) {
			end = len(cards)
		}
		if err := q.insertCardBatch(ctx, cards[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (q queries) insertCardBatch(ctx context.Context, cards []models.ScoreCard) error {
	row := "(" + strings.TrimSuffix(strings.Repeat("?, ", cardColumnCount), ", ") + ")"
	rows := make([]string, len(cards))
	args := make([]any, 0, len(cards)*cardColumnCount)

	for i, c := range cards {
		rows[i] = row
		args = append(args,
			c.ID, c.SessionID, c.PoseID, c.OrderInSession, string(c.Segment), string(c.Side),
			c.Ease, c.Comfort, c.Stability, c.Pain, c.Breath, c.Focus, c.Notes, c.Skipped, c.OverallScore,
			c.CreatedAt.UTC(), c.UpdatedAt.UTC())
	}

	query := `INSERT INTO score_card (` + cardColumns + `) VALUES ` + strings.Join(rows, ", ")
	if _, err := q.ext.ExecContext(ctx, q.rebind(query), args...); err != nil {
		return mapErr(err, "insert score cards for session", cards[0].SessionID)
	}
	return nil
}

func (q queries) ListScoreCards(ctx context.Context, sessionID string) ([]models.ScoreCard, error) {
	query := cardSelect + `
		FROM score_card sc
		JOIN pose p ON p.id = sc.pose_id
		WHERE sc.session_id = ?
		ORDER BY sc.order_in_session`

	var cards []models.ScoreCard
	if err := sqlx.SelectContext(ctx, q.ext, &cards, q.rebind(query), sessionID); err != nil {
		return nil, fmt.Errorf("failed to list score cards: %w", err)
	}
	return cards, nil
}

// GetScoreCard loads a card whose session belongs to userID.
func (q queries) GetScoreCard(ctx context.Context, userID, id string) (models.ScoreCard, error) {
	query := cardSelect + `
		FROM score_card sc
		JOIN pose p ON p.id = sc.pose_id
		JOIN practice_session s ON s.id = sc.session_id
		WHERE sc.id = ? AND s.user_id = ?`

	var c models.ScoreCard
	if err := sqlx.GetContext(ctx, q.ext, &c, q.rebind(query), id, userID); err != nil {
		return models.ScoreCard{}, mapErr(err, "score card", id)
	}
	return c, nil
}

// UpdateScoreCard writes the mutable fields of c.
func (q queries) UpdateScoreCard(ctx context.Context, c models.ScoreCard) error {
	res, err := q.ext.ExecContext(ctx, q.rebind(`
		UPDATE score_card
		SET ease = ?, comfort = ?, stability = ?, pain = ?, breath = ?, focus = ?,
			notes = ?, side = ?, skipped = ?, overall_score = ?, updated_at = ?
		WHERE id = ?
	`), c.Ease, c.Comfort, c.Stability, c.Pain, c.Breath, c.Focus,
		c.Notes, string(c.Side), c.Skipped, c.OverallScore, c.UpdatedAt.UTC(), c.ID)
	if err != nil {
		return mapErr(err, "update score card", c.ID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("score card %s: %w", c.ID, models.ErrNotFound)
	}
	return nil
}

// TrendRows returns the user's cards for one pose joined with the session
// date, oldest first.
func (q queries) TrendRows(ctx context.Context, f models.TrendFilter) ([]models.TrendRow, error) {
	where := []string{"s.user_id = ?", "sc.pose_id = ?"}
	args := []any{f.UserID, f.PoseID}

	if f.From != nil {
		where = append(where, "s.date >= ?")
		args = append(args, f.From.UTC())
	}
	if f.To != nil {
		where = append(where, "s.date <= ?")
		args = append(args, f.To.UTC())
	}
	if len(f.Sides) > 0 {
		sides := make([]string, len(f.Sides))
		for i, s := range f.Sides {
			sides[i] = string(s)
		}
		where = append(where, "sc.side IN (?)")
		args = append(args, sides)
	}
	if !f.IncludeSkipped {
		where = append(where, "sc.skipped = ?")
		args = append(args, false)
	}

	query, args, err := sqlx.In(cardSelect+`, s.date AS session_date
		FROM score_card sc
		JOIN practice_session s ON s.id = sc.session_id
		JOIN pose p ON p.id = sc.pose_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY s.date, sc.order_in_session`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build trend query: %w", err)
	}

	var rows []models.TrendRow
	if err := sqlx.SelectContext(ctx, q.ext, &rows, q.rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to load trend rows: %w", err)
	}
	return rows, nil
}
