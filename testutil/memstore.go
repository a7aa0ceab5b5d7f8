// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/yoga-journal/catalog"
	"github.com/danielhkuo/yoga-journal/models"
	"github.com/danielhkuo/yoga-journal/practice"
)

type memState struct {
	users    map[string]models.User
	poses    map[string]models.Pose
	sessions map[string]models.PracticeSession
	cards    map[string]models.ScoreCard
}

func newMemState() *memState {
	return &memState{
		users:    make(map[string]models.User),
		poses:    make(map[string]models.Pose),
		sessions: make(map[string]models.PracticeSession),
		cards:    make(map[string]models.ScoreCard),
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.poses {
		c.poses[k] = v
	}
	for k, v := range s.sessions {
		c.sessions[k] = v
	}
	for k, v := range s.cards {
		c.cards[k] = v
	}
	return c
}

// MemStore is an in-memory practice.Store. Transactions run against a copy
// of the state that replaces the original only when fn succeeds, and hold
// the store lock for their whole duration.
type MemStore struct {
	mu    sync.Mutex
	state *memState

	// InsertScoreCardsErr, when set, fails every bulk card insert.
	InsertScoreCardsErr error
}

var _ practice.Store = (*MemStore)(nil)

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{state: newMemState()}
}

// NewSeededMemStore returns a store holding every pose of cat.
func NewSeededMemStore(cat *catalog.Catalog) *MemStore {
	m := NewMemStore()
	m.SeedCatalog(cat)
	return m
}

// SeedCatalog inserts every catalog pose with a fresh id.
func (m *MemStore) SeedCatalog(cat *catalog.Catalog) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range cat.SeedPoses() {
		pose := models.Pose{
			ID:             uuid.NewString(),
			Slug:           p.Slug,
			Name:           p.Name,
			Segment:        p.Segment,
			OrderInSegment: p.OrderInSegment,
			IsTwoSided:     p.IsTwoSided,
		}
		if p.EnglishName != "" {
			name := p.EnglishName
			pose.EnglishName = &name
		}
		m.state.poses[pose.ID] = pose
	}
}

// RemovePose deletes a pose by slug, simulating a drifted seed.
func (m *MemStore) RemovePose(slug string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.state.poses {
		if p.Slug == slug {
			delete(m.state.poses, id)
		}
	}
}

// PoseBySlug returns a seeded pose.
func (m *MemStore) PoseBySlug(slug string) (models.Pose, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.state.poses {
		if p.Slug == slug {
			return p, true
		}
	}
	return models.Pose{}, false
}

// SessionCount is the number of committed sessions.
func (m *MemStore) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.sessions)
}

// CardCount is the number of committed score cards.
func (m *MemStore) CardCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.cards)
}

// PutSession stores or replaces a session directly.
func (m *MemStore) PutSession(s models.PracticeSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.sessions[s.ID] = s
}

// PutScoreCard stores or replaces a card directly.
func (m *MemStore) PutScoreCard(c models.ScoreCard) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.cards[c.ID] = c
}

func (m *MemStore) queries() *memQueries {
	return &memQueries{st: m.state, insertCardsErr: m.InsertScoreCardsErr}
}

// InTx implements practice.Store.
func (m *MemStore) InTx(ctx context.Context, fn func(q practice.Queries) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := m.state.clone()
	if err := fn(&memQueries{st: tx, insertCardsErr: m.InsertScoreCardsErr}); err != nil {
		return err
	}
	m.state = tx
	return nil
}

func (m *MemStore) ListPoses(ctx context.Context, segment models.Segment) ([]models.Pose, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries().ListPoses(ctx, segment)
}

func (m *MemStore) GetPose(ctx context.Context, id string) (models.Pose, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries().GetPose(ctx, id)
}

func (m *MemStore) PosesBySlugs(ctx context.Context, slugs []string) (map[string]models.Pose, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries().PosesBySlugs(ctx, slugs)
}

func (m *MemStore) InsertSession(ctx context.Context, s models.PracticeSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries().InsertSession(ctx, s)
}

func (m *MemStore) GetSession(ctx context.Context, userID, id string, forUpdate bool) (models.PracticeSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries().GetSession(ctx, userID, id, forUpdate)
}

func (m *MemStore) ListSessions(ctx context.Context, userID string, f models.SessionFilter) ([]models.PracticeSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries().ListSessions(ctx, userID, f)
}

func (m *MemStore) UpdateSessionState(ctx context.Context, id string, status models.Status, overall *float64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries().UpdateSessionState(ctx, id, status, overall, at)
}

func (m *MemStore) InsertScoreCards(ctx context.Context, cards []models.ScoreCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries().InsertScoreCards(ctx, cards)
}

func (m *MemStore) ListScoreCards(ctx context.Context, sessionID string) ([]models.ScoreCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries().ListScoreCards(ctx, sessionID)
}

func (m *MemStore) GetScoreCard(ctx context.Context, userID, id string) (models.ScoreCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries().GetScoreCard(ctx, userID, id)
}

func (m *MemStore) UpdateScoreCard(ctx context.Context, c models.ScoreCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries().UpdateScoreCard(ctx, c)
}

func (m *MemStore) TrendRows(ctx context.Context, f models.TrendFilter) ([]models.TrendRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries().TrendRows(ctx, f)
}

// CreateUser stores a user; emails are unique case-insensitively.
func (m *MemStore) CreateUser(ctx context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.state.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return fmt.Errorf("%w: email already registered", models.ErrConflict)
		}
	}
	m.state.users[u.ID] = u
	return nil
}

func (m *MemStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.state.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user: %w", models.ErrNotFound)
}

func (m *MemStore) GetUserByID(ctx context.Context, id string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.state.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("user: %w", models.ErrNotFound)
	}
	return u, nil
}

// memQueries operates on one state snapshot; callers hold the store lock.
type memQueries struct {
	st             *memState
	insertCardsErr error
}

func (q *memQueries) ListPoses(_ context.Context, segment models.Segment) ([]models.Pose, error) {
	var out []models.Pose
	for _, p := range q.st.poses {
		if segment == "" || p.Segment == segment {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (q *memQueries) GetPose(_ context.Context, id string) (models.Pose, error) {
	p, ok := q.st.poses[id]
	if !ok {
		return models.Pose{}, fmt.Errorf("pose %s: %w", id, models.ErrNotFound)
	}
	return p, nil
}

func (q *memQueries) PosesBySlugs(_ context.Context, slugs []string) (map[string]models.Pose, error) {
	want := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		want[s] = true
	}
	out := make(map[string]models.Pose)
	for _, p := range q.st.poses {
		if want[p.Slug] {
			out[p.Slug] = p
		}
	}
	return out, nil
}

func (q *memQueries) InsertSession(_ context.Context, s models.PracticeSession) error {
	if _, dup := q.st.sessions[s.ID]; dup {
		return fmt.Errorf("session %s: %w", s.ID, models.ErrConflict)
	}
	q.st.sessions[s.ID] = s
	return nil
}

func (q *memQueries) GetSession(_ context.Context, userID, id string, _ bool) (models.PracticeSession, error) {
	s, ok := q.st.sessions[id]
	if !ok || s.UserID != userID {
		return models.PracticeSession{}, fmt.Errorf("session %s: %w", id, models.ErrNotFound)
	}
	return s, nil
}

func (q *memQueries) ListSessions(_ context.Context, userID string, f models.SessionFilter) ([]models.PracticeSession, error) {
	var out []models.PracticeSession
	for _, s := range q.st.sessions {
		if s.UserID != userID {
			continue
		}
		if f.Status != nil && s.Status != *f.Status {
			continue
		}
		if f.From != nil && s.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && s.Date.After(*f.To) {
			continue
		}
		if f.AfterDate != nil {
			older := s.Date.Before(*f.AfterDate)
			tie := s.Date.Equal(*f.AfterDate) && s.ID < f.AfterID
			if !older && !tie {
				continue
			}
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (q *memQueries) UpdateSessionState(_ context.Context, id string, status models.Status, overall *float64, at time.Time) error {
	s, ok := q.st.sessions[id]
	if !ok {
		return fmt.Errorf("session %s: %w", id, models.ErrNotFound)
	}
	s.Status = status
	s.OverallScore = overall
	s.UpdatedAt = at
	q.st.sessions[id] = s
	return nil
}

func (q *memQueries) InsertScoreCards(_ context.Context, cards []models.ScoreCard) error {
	if q.insertCardsErr != nil {
		return q.insertCardsErr
	}
	seen := make(map[string]bool)
	for _, c := range q.st.cards {
		seen[fmt.Sprintf("%s/%d", c.SessionID, c.OrderInSession)] = true
	}
	for _, c := range cards {
		key := fmt.Sprintf("%s/%d", c.SessionID, c.OrderInSession)
		if seen[key] {
			return fmt.Errorf("duplicate order %s: %w", key, models.ErrConflict)
		}
		seen[key] = true
		c.PoseSlug, c.PoseName = "", ""
		q.st.cards[c.ID] = c
	}
	return nil
}

func (q *memQueries) withPose(c models.ScoreCard) models.ScoreCard {
	if p, ok := q.st.poses[c.PoseID]; ok {
		c.PoseSlug, c.PoseName = p.Slug, p.Name
	}
	return c
}

func (q *memQueries) ListScoreCards(_ context.Context, sessionID string) ([]models.ScoreCard, error) {
	var out []models.ScoreCard
	for _, c := range q.st.cards {
		if c.SessionID == sessionID {
			out = append(out, q.withPose(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderInSession < out[j].OrderInSession })
	return out, nil
}

func (q *memQueries) GetScoreCard(_ context.Context, userID, id string) (models.ScoreCard, error) {
	c, ok := q.st.cards[id]
	if !ok {
		return models.ScoreCard{}, fmt.Errorf("score card %s: %w", id, models.ErrNotFound)
	}
	if s, ok := q.st.sessions[c.SessionID]; !ok || s.UserID != userID {
		return models.ScoreCard{}, fmt.Errorf("score card %s: %w", id, models.ErrNotFound)
	}
	return q.withPose(c), nil
}

func (q *memQueries) UpdateScoreCard(_ context.Context, c models.ScoreCard) error {
	existing, ok := q.st.cards[c.ID]
	if !ok {
		return fmt.Errorf("score card %s: %w", c.ID, models.ErrNotFound)
	}
	existing.Ratings = c.Ratings
	existing.Notes = c.Notes
	existing.Side = c.Side
	existing.Skipped = c.Skipped
	existing.OverallScore = c.OverallScore
	existing.UpdatedAt = c.UpdatedAt
	q.st.cards[c.ID] = existing
	return nil
}

func (q *memQueries) TrendRows(_ context.Context, f models.TrendFilter) ([]models.TrendRow, error) {
	sides := make(map[models.Side]bool, len(f.Sides))
	for _, s := range f.Sides {
		sides[s] = true
	}

	var out []models.TrendRow
	for _, c := range q.st.cards {
		if c.PoseID != f.PoseID {
			continue
		}
		s, ok := q.st.sessions[c.SessionID]
		if !ok || s.UserID != f.UserID {
			continue
		}
		if f.From != nil && s.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && s.Date.After(*f.To) {
			continue
		}
		if len(sides) > 0 && !sides[c.Side] {
			continue
		}
		if !f.IncludeSkipped && c.Skipped {
			continue
		}
		out = append(out, models.TrendRow{ScoreCard: q.withPose(c), SessionDate: s.Date})
	}
	return out, nil
}
