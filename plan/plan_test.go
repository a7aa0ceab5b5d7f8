// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/yoga-journal/catalog"
	"github.com/danielhkuo/yoga-journal/models"
)

func countSegments(items []Item) map[models.Segment]int {
	out := make(map[models.Segment]int)
	for _, it := range items {
		out[it.Segment]++
	}
	return out
}

func TestExpandFullPrimary(t *testing.T) {
	items, err := Expand(catalog.Default(), Selection{Type: models.PracticeFullPrimary})
	require.NoError(t, err)

	counts := countSegments(items)
	assert.Equal(t, 1, counts[models.SegmentSunA])
	assert.Equal(t, 1, counts[models.SegmentSunB])
	assert.Equal(t, 11, counts[models.SegmentStanding])
	assert.Equal(t, 35, counts[models.SegmentPrimary])
	assert.Equal(t, 16, counts[models.SegmentFinishing])
	assert.Len(t, items, 2+11+35+16)

	assert.Equal(t, "surya-namaskar-a", items[0].PoseSlug)
	assert.Equal(t, "padangusthasana", items[2].PoseSlug)
	assert.Equal(t, "utthita-hasta-padangusthasana", items[13].PoseSlug)
	assert.Equal(t, models.SegmentFinishing, items[len(items)-1].Segment)

	assert.Equal(t, 83, CardCount(items))
}

func TestExpandHalfPrimaryStopsAtNavasana(t *testing.T) {
	items, err := Expand(catalog.Default(), Selection{Type: models.PracticeHalfPrimary})
	require.NoError(t, err)

	var primary []Item
	for _, it := range items {
		if it.Segment == models.SegmentPrimary {
			primary = append(primary, it)
		}
	}
	require.Len(t, primary, 20)
	assert.Equal(t, "navasana", primary[len(primary)-1].PoseSlug)

	// Finishing follows the cutoff directly.
	idx := 2 + 11 + 20
	assert.Equal(t, models.SegmentFinishing, items[idx].Segment)
	assert.Equal(t, 67, CardCount(items))
}

func TestExpandCustomBlocks(t *testing.T) {
	sel := Selection{
		Type: models.PracticeCustom,
		Blocks: []Block{
			{Segment: models.SegmentPrimary, UpToSlug: "navasana"},
			{Segment: models.SegmentIntermediate, UpToSlug: "pasasana"},
		},
	}
	items, err := Expand(catalog.Default(), sel)
	require.NoError(t, err)

	counts := countSegments(items)
	assert.Equal(t, 20, counts[models.SegmentPrimary])
	assert.Equal(t, 1, counts[models.SegmentIntermediate])
	assert.Len(t, items, 2+11+20+1+16)

	assert.Equal(t, "navasana", items[2+11+19].PoseSlug)
	assert.Equal(t, "pasasana", items[2+11+20].PoseSlug)
	assert.Equal(t, models.SegmentFinishing, items[2+11+21].Segment)

	assert.Equal(t, "Custom (Primary to navasana + Intermediate to pasasana)", DefaultLabel(sel))
}

func TestExpandCustomRangeSlugsAndOverride(t *testing.T) {
	cat := catalog.Default()

	items, err := Expand(cat, Selection{
		Type: models.PracticeCustom,
		Blocks: []Block{
			{Segment: models.SegmentPrimary, FromSlug: "Marichyasana A", UpToSlug: "marichyasana-d"},
			{Segment: models.SegmentIntermediate, Slugs: []string{"ustrasana", "pasasana"}, OverrideSegment: models.SegmentBackbending},
		},
	})
	require.NoError(t, err)

	body := items[2+11 : len(items)-16]
	require.Len(t, body, 6)
	assert.Equal(t, "marichyasana-a", body[0].PoseSlug)
	assert.Equal(t, "marichyasana-d", body[3].PoseSlug)

	// Explicit slugs keep catalog order, not request order.
	assert.Equal(t, "pasasana", body[4].PoseSlug)
	assert.Equal(t, "ustrasana", body[5].PoseSlug)
	assert.Equal(t, models.SegmentBackbending, body[4].Segment)
}

func TestExpandErrors(t *testing.T) {
	tests := []struct {
		name    string
		sel     Selection
		wantErr error
	}{
		{
			name:    "unknown cutoff",
			sel:     Selection{Type: models.PracticeHalfPrimary, PrimaryUpTo: "not-a-pose"},
			wantErr: ErrCutoffNotFound,
		},
		{
			name:    "cutoff from another segment",
			sel:     Selection{Type: models.PracticeHalfPrimary, PrimaryUpTo: "pasasana"},
			wantErr: ErrCutoffNotFound,
		},
		{
			name: "reversed range",
			sel: Selection{Type: models.PracticeCustom, Blocks: []Block{
				{Segment: models.SegmentPrimary, FromSlug: "navasana", UpToSlug: "dandasana"},
			}},
			wantErr: ErrInvalidRange,
		},
		{
			name:    "custom without blocks",
			sel:     Selection{Type: models.PracticeCustom},
			wantErr: models.ErrValidation,
		},
		{
			name: "non-series segment",
			sel: Selection{Type: models.PracticeCustom, Blocks: []Block{
				{Segment: models.SegmentStanding},
			}},
			wantErr: models.ErrValidation,
		},
		{
			name: "slugs and range together",
			sel: Selection{Type: models.PracticeCustom, Blocks: []Block{
				{Segment: models.SegmentPrimary, UpToSlug: "navasana", Slugs: []string{"dandasana"}},
			}},
			wantErr: models.ErrValidation,
		},
		{
			name:    "cutoff not used by preset",
			sel:     Selection{Type: models.PracticeFullPrimary, IntermediateUpTo: "pasasana"},
			wantErr: models.ErrValidation,
		},
		{
			name:    "unknown practice type",
			sel:     Selection{Type: "YIN"},
			wantErr: models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := Expand(catalog.Default(), tt.sel)
			assert.Nil(t, items)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPlanErrorsAreValidationErrors(t *testing.T) {
	_, err := Expand(catalog.Default(), Selection{Type: models.PracticeHalfPrimary, PrimaryUpTo: "nope"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestEveryPresetIsFramed(t *testing.T) {
	cat := catalog.Default()
	for _, pt := range models.PracticeTypes {
		if pt == models.PracticeCustom {
			continue
		}
		t.Run(string(pt), func(t *testing.T) {
			items, err := Expand(cat, Selection{Type: pt})
			require.NoError(t, err)
			require.Greater(t, len(items), 2+11+16)

			assert.Equal(t, models.SegmentSunA, items[0].Segment)
			assert.Equal(t, models.SegmentSunB, items[1].Segment)
			for _, it := range items[2:13] {
				assert.Equal(t, models.SegmentStanding, it.Segment)
			}
			for _, it := range items[len(items)-16:] {
				assert.Equal(t, models.SegmentFinishing, it.Segment)
			}
		})
	}
}

func TestExpandIsDeterministic(t *testing.T) {
	sel := Selection{Type: models.PracticeHalfPrimaryPlusIntermediate, IntermediateUpTo: "kapotasana-b"}
	a, err := Expand(catalog.Default(), sel)
	require.NoError(t, err)
	b, err := Expand(catalog.Default(), sel)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDefaultLabel(t *testing.T) {
	tests := []struct {
		sel  Selection
		want string
	}{
		{Selection{Type: models.PracticeFullPrimary}, "Full primary"},
		{Selection{Type: models.PracticeHalfPrimary}, "Half primary (to navasana)"},
		{Selection{Type: models.PracticeHalfPrimary, PrimaryUpTo: "kurmasana"}, "Half primary (to kurmasana)"},
		{
			Selection{Type: models.PracticePrimaryPlusIntermediate, IntermediateUpTo: "ustrasana"},
			"Primary plus intermediate (intermediate to ustrasana)",
		},
		{Selection{Type: models.PracticeAdvancedA}, "Advanced A"},
		{
			Selection{Type: models.PracticeCustom, Blocks: []Block{
				{Segment: models.SegmentAdvancedB, Slugs: []string{"a", "b"}, OverrideSegment: models.SegmentOther},
			}},
			"Custom (Advanced B (2 poses) as other)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultLabel(tt.sel))
		})
	}
}
