// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/yoga-journal/models"
	"github.com/danielhkuo/yoga-journal/practice"
)

var (
	poseCols = []string{"id", "slug", "name", "english_name", "segment", "order_in_segment", "is_two_sided"}
	cardCols = []string{
		"id", "session_id", "pose_id", "order_in_session", "segment", "side",
		"ease", "comfort", "stability", "pain", "breath", "focus", "notes", "skipped", "overall_score",
		"created_at", "updated_at", "pose_slug", "pose_name",
	}
	sessionCols = []string{
		"id", "user_id", "date", "label", "practice_type", "duration_minutes", "status",
		"energy_level", "mood", "overall_score", "created_at", "updated_at",
	}
)

// newMockStore returns a store over sqlmock. The driver name picks the dialect.
func newMockStore(t *testing.T, driver string) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return New(sqlx.NewDb(conn, driver)), mock
}

func TestGetPoseNotFound(t *testing.T) {
	s, mock := newMockStore(t, "sqlmock")

	mock.ExpectQuery(regexp.QuoteMeta("FROM pose WHERE id = ?")).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(poseCols))

	_, err := s.GetPose(context.Background(), "p1")
	assert.ErrorIs(t, err, models.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPosesBySlugs(t *testing.T) {
	s, mock := newMockStore(t, "sqlmock")

	mock.ExpectQuery(regexp.QuoteMeta("FROM pose WHERE slug IN (?, ?)")).
		WithArgs("navasana", "dandasana").
		WillReturnRows(sqlmock.NewRows(poseCols).
			AddRow("p1", "navasana", "Navasana", nil, "PRIMARY", int64(20), false).
			AddRow("p2", "dandasana", "Dandasana", "Staff pose", "PRIMARY", int64(6), false))

	got, err := s.PosesBySlugs(context.Background(), []string{"navasana", "dandasana"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got["navasana"].ID)
	assert.Nil(t, got["navasana"].EnglishName)
	assert.Equal(t, "Staff pose", *got["dandasana"].EnglishName)
	assert.Equal(t, 6, got["dandasana"].OrderInSegment)

	empty, err := s.PosesBySlugs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSessionLocking(t *testing.T) {
	now := time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC)
	row := func() *sqlmock.Rows {
		return sqlmock.NewRows(sessionCols).AddRow(
			"s1", "u1", now, "Morning", "FULL_PRIMARY", int64(90), "DRAFT",
			nil, nil, 7.25, now, now)
	}

	t.Run("postgres locks the row", func(t *testing.T) {
		s, mock := newMockStore(t, "postgres")
		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND user_id = $2 FOR UPDATE")).
			WithArgs("s1", "u1").
			WillReturnRows(row())

		got, err := s.GetSession(context.Background(), "u1", "s1", true)
		require.NoError(t, err)
		assert.Equal(t, models.StatusDraft, got.Status)
		assert.Equal(t, models.PracticeFullPrimary, got.PracticeType)
		assert.Equal(t, 90, *got.DurationMinutes)
		assert.Nil(t, got.EnergyLevel)
		assert.Equal(t, 7.25, *got.OverallScore)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other drivers do not", func(t *testing.T) {
		s, mock := newMockStore(t, "sqlmock")
		mock.ExpectQuery(`WHERE id = \? AND user_id = \?$`).
			WithArgs("s1", "u1").
			WillReturnRows(row())

		_, err := s.GetSession(context.Background(), "u1", "s1", true)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("foreign session is not found", func(t *testing.T) {
		s, mock := newMockStore(t, "sqlmock")
		mock.ExpectQuery("FROM practice_session").
			WithArgs("s1", "u2").
			WillReturnRows(sqlmock.NewRows(sessionCols))

		_, err := s.GetSession(context.Background(), "u2", "s1", false)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestListSessionsKeyset(t *testing.T) {
	s, mock := newMockStore(t, "sqlmock")
	after := time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC)
	status := models.StatusPublished

	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE user_id = ? AND status = ? AND (date < ? OR (date = ? AND id < ?)) ORDER BY date DESC, id DESC LIMIT ?")).
		WithArgs("u1", "PUBLISHED", after, after, "s9", 21).
		WillReturnRows(sqlmock.NewRows(sessionCols).AddRow(
			"s8", "u1", after, nil, "HALF_PRIMARY", nil, "PUBLISHED", int64(6), "calm", nil, after, after))

	got, err := s.ListSessions(context.Background(), "u1", models.SessionFilter{
		Status:    &status,
		AfterDate: &after,
		AfterID:   "s9",
		Limit:     21,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "s8", got[0].ID)
	assert.Nil(t, got[0].Label)
	assert.Equal(t, 6, *got[0].EnergyLevel)
	assert.Equal(t, "calm", *got[0].Mood)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSessionStateMissingRow(t *testing.T) {
	s, mock := newMockStore(t, "sqlmock")
	mock.ExpectExec("UPDATE practice_session").
		WithArgs("PUBLISHED", nil, sqlmock.AnyArg(), "s1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateSessionState(context.Background(), "s1", models.StatusPublished, nil, time.Now())
	assert.ErrorIs(t, err, models.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertScoreCardsBatches(t *testing.T) {
	s, mock := newMockStore(t, "sqlmock")

	cards := make([]models.ScoreCard, cardsPerInsert+50)
	for i := range cards {
		cards[i] = models.ScoreCard{
			ID:             fmt.Sprintf("c%d", i),
			SessionID:      "s1",
			PoseID:         "p1",
			OrderInSession: i + 1,
			Segment:        models.SegmentPrimary,
			Side:           models.SideNA,
		}
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO score_card")).
		WillReturnResult(sqlmock.NewResult(0, cardsPerInsert))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO score_card")).
		WillReturnResult(sqlmock.NewResult(0, 50))

	require.NoError(t, s.InsertScoreCards(context.Background(), cards))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertScoreCardsDuplicateOrder(t *testing.T) {
	s, mock := newMockStore(t, "postgres")
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO score_card")).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})

	err := s.InsertScoreCards(context.Background(), []models.ScoreCard{{ID: "c1", SessionID: "s1", OrderInSession: 1}})
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestInTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		s, mock := newMockStore(t, "sqlmock")
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE practice_session").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := s.InTx(ctx, func(q practice.Queries) error {
			return q.UpdateSessionState(ctx, "s1", models.StatusDraft, nil, time.Now())
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		s, mock := newMockStore(t, "sqlmock")
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO practice_session").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		boom := errors.New("missing poses")
		err := s.InTx(ctx, func(q practice.Queries) error {
			if err := q.InsertSession(ctx, models.PracticeSession{ID: "s1", UserID: "u1"}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetScoreCardIsOwnerScoped(t *testing.T) {
	s, mock := newMockStore(t, "sqlmock")
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("JOIN practice_session s ON s.id = sc.session_id WHERE sc.id = ? AND s.user_id = ?")).
		WithArgs("c1", "u1").
		WillReturnRows(sqlmock.NewRows(cardCols).AddRow(
			"c1", "s1", "p1", int64(3), "STANDING", "RIGHT",
			int64(8), int64(7), int64(9), int64(6), int64(8), int64(7), "tight hamstring", false, 7.5,
			now, now, "utthita-trikonasana", "Utthita Trikonasana"))

	got, err := s.GetScoreCard(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, models.SideRight, got.Side)
	assert.Equal(t, 6, *got.Pain)
	assert.Equal(t, 7.5, *got.OverallScore)
	assert.Equal(t, "utthita-trikonasana", got.PoseSlug)
	assert.Equal(t, "tight hamstring", *got.Notes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTrendRowsFilters(t *testing.T) {
	s, mock := newMockStore(t, "sqlmock")
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -90)

	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE s.user_id = ? AND sc.pose_id = ? AND s.date >= ? AND sc.side IN (?, ?) AND sc.skipped = ? ORDER BY s.date, sc.order_in_session")).
		WithArgs("u1", "p1", from, "LEFT", "RIGHT", false).
		WillReturnRows(sqlmock.NewRows(append(cardCols, "session_date")).AddRow(
			"c1", "s1", "p1", int64(4), "STANDING", "LEFT",
			nil, nil, nil, nil, nil, nil, nil, false, nil,
			now, now, "utthita-trikonasana", "Utthita Trikonasana", now))

	rows, err := s.TrendRows(context.Background(), models.TrendFilter{
		UserID: "u1",
		PoseID: "p1",
		From:   &from,
		Sides:  []models.Side{models.SideLeft, models.SideRight},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.SideLeft, rows[0].Side)
	assert.Nil(t, rows[0].Ease)
	assert.True(t, rows[0].SessionDate.Equal(now))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s, mock := newMockStore(t, "postgres")
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := s.CreateUser(context.Background(), models.User{ID: "u1", Email: "a@example.com"})
	assert.ErrorIs(t, err, models.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail(t *testing.T) {
	s, mock := newMockStore(t, "postgres")
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at"}).
			AddRow("u1", "a@example.com", "Ana", "hash", now))

	u, err := s.GetUserByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "hash", u.PasswordHash)

	mock.ExpectQuery("FROM users WHERE id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at"}))
	_, err = s.GetUserByID(context.Background(), "nobody")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
