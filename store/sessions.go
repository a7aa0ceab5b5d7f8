// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/yoga-journal/models"
)

const sessionColumns = `id, user_id, date, label, practice_type, duration_minutes, status,
	energy_level, mood, overall_score, created_at, updated_at`

func (q queries) InsertSession(ctx context.Context, s models.PracticeSession) error {
	_, err := q.ext.ExecContext(ctx, q.rebind(`
		INSERT INTO practice_session (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), s.ID, s.UserID, s.Date.UTC(), s.Label, string(s.PracticeType), s.DurationMinutes,
		string(s.Status), s.EnergyLevel, s.Mood, s.OverallScore, s.CreatedAt.UTC(), s.UpdatedAt.UTC())
	if err != nil {
		return mapErr(err, "insert session", s.ID)
	}
	return nil
}

// GetSession loads a session owned by userID. With forUpdate the row stays
// locked until the surrounding transaction ends.
func (q queries) GetSession(ctx context.Context, userID, id string, forUpdate bool) (models.PracticeSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM practice_session WHERE id = ? AND user_id = ?` + q.lockClause(forUpdate)

	var s models.PracticeSession
	if err := sqlx.GetContext(ctx, q.ext, &s, q.rebind(query), id, userID); err != nil {
		return models.PracticeSession{}, mapErr(err, "session", id)
	}
	return s, nil
}

// ListSessions returns up to f.Limit sessions ordered by (date desc, id desc),
// starting strictly after the keyset position when one is given.
func (q queries) ListSessions(ctx context.Context, userID string, f models.SessionFilter) ([]models.PracticeSession, error) {
	where := []string{"user_id = ?"}
	args := []any{userID}

	if f.Status != nil {
		where = append(where, "status = ?")
		args = append(args, string(*f.Status))
	}
	if f.From != nil {
		where = append(where, "date >= ?")
		args = append(args, f.From.UTC())
	}
	if f.To != nil {
		where = append(where, "date <= ?")
		args = append(args, f.To.UTC())
	}
	if f.AfterDate != nil {
		where = append(where, "(date < ? OR (date = ? AND id < ?))")
		args = append(args, f.AfterDate.UTC(), f.AfterDate.UTC(), f.AfterID)
	}

	query := `SELECT ` + sessionColumns + ` FROM practice_session WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY date DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	var out []models.PracticeSession
	if err := sqlx.SelectContext(ctx, q.ext, &out, q.rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return out, nil
}

func (q queries) UpdateSessionState(ctx context.Context, id string, status models.Status, overall *float64, at time.Time) error {
	res, err := q.ext.ExecContext(ctx, q.rebind(`
		UPDATE practice_session
		SET status = ?, overall_score = ?, updated_at = ?
		WHERE id = ?
	`), string(status), overall, at.UTC(), id)
	if err != nil {
		return mapErr(err, "update session", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %s: %w", id, models.ErrNotFound)
	}
	return nil
}
