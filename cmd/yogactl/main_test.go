// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/yoga-journal/catalog"
	"github.com/danielhkuo/yoga-journal/db"
	"github.com/danielhkuo/yoga-journal/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseBlock(t *testing.T) {
	tests := []struct {
		raw     string
		want    models.CustomBlock
		wantErr bool
	}{
		{"primary", models.CustomBlock{Segment: models.SegmentPrimary}, false},
		{"PRIMARY:marichyasana-a..navasana", models.CustomBlock{Segment: models.SegmentPrimary, FromSlug: "marichyasana-a", UpToSlug: "navasana"}, false},
		{"PRIMARY:..navasana", models.CustomBlock{Segment: models.SegmentPrimary, UpToSlug: "navasana"}, false},
		{"intermediate=ustrasana, pasasana", models.CustomBlock{Segment: models.SegmentIntermediate, Slugs: []string{"ustrasana", "pasasana"}}, false},
		{"INTERMEDIATE=", models.CustomBlock{}, true},
		{"PRIMARY:navasana", models.CustomBlock{}, true},
		{"  ", models.CustomBlock{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseBlock(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectionFromFlags(t *testing.T) {
	sel, err := selectionFromFlags("", "", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, models.PracticeFullPrimary, sel.Type)

	sel, err = selectionFromFlags("", "", "", "", []string{"INTERMEDIATE=pasasana"})
	require.NoError(t, err)
	assert.Equal(t, models.PracticeCustom, sel.Type)
	require.Len(t, sel.Blocks, 1)

	sel, err = selectionFromFlags("half_primary", "marichyasana-d", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, models.PracticeHalfPrimary, sel.Type)
	assert.Equal(t, "marichyasana-d", sel.PrimaryUpTo)

	_, err = selectionFromFlags("FULL_PRIMARY", "", "", "", []string{"PRIMARY"})
	assert.Error(t, err)

	_, err = selectionFromFlags("YIN", "", "", "", nil)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestPlanCommand(t *testing.T) {
	out, err := run(t, "plan", "--type", "FULL_PRIMARY")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Full primary: "))
	assert.Contains(t, out, "83 score cards")
	assert.Contains(t, out, "navasana")

	out, err = run(t, "plan", "--block", "INTERMEDIATE=pasasana")
	require.NoError(t, err)
	assert.Contains(t, out, "pasasana")
	assert.NotContains(t, out, "ustrasana")

	_, err = run(t, "plan", "--type", "HALF_PRIMARY", "--primary-up-to", "headstand")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)
	for _, g := range catalog.Groups {
		assert.Contains(t, out, string(g))
	}

	out, err = run(t, "catalog", "--group", "primary")
	require.NoError(t, err)
	assert.Contains(t, out, "navasana")

	_, err = run(t, "catalog", "--group", "yin")
	assert.ErrorIs(t, err, catalog.ErrUnknownGroup)
}

func TestSeedCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	url := "file:" + path

	out, err := run(t, "seed", "--type", db.TypeSQLite, "--db", url)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded")

	// Reseeding keeps one row per slug.
	_, err = run(t, "seed", "--type", db.TypeSQLite, "--db", url)
	require.NoError(t, err)

	conn, err := db.Open(context.Background(), db.TypeSQLite, url)
	require.NoError(t, err)
	defer conn.Close()

	var count int
	require.NoError(t, conn.Get(&count, "SELECT COUNT(*) FROM pose"))
	assert.Equal(t, len(catalog.Default().SeedPoses()), count)
}

func TestSeedCommandNeedsDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := run(t, "seed")
	assert.ErrorContains(t, err, "database URL required")
}
