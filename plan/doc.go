// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package plan expands a practice selection into an ordered list of poses.

# Selections

A selection is either a preset practice type with optional cutoffs:

	items, err := plan.Expand(catalog.Default(), plan.Selection{
		Type:        models.PracticeHalfPrimary,
		PrimaryUpTo: "navasana",
	})

or a CUSTOM list of blocks, each naming one series segment and an optional
range, explicit slug list, or display segment override:

	plan.Selection{
		Type: models.PracticeCustom,
		Blocks: []plan.Block{
			{Segment: models.SegmentPrimary, UpToSlug: "navasana"},
			{Segment: models.SegmentIntermediate, UpToSlug: "pasasana"},
		},
	}

# Framing

Every plan is framed the same way:

	SUN (A, B) → STANDING → body blocks → FINISHING

# Errors

Unknown cutoffs return ErrCutoffNotFound and reversed ranges return
ErrInvalidRange. Both also match models.ErrValidation, as do unknown
segments, empty custom selections and cutoffs a preset does not use.

Expand is pure: the same catalog and selection always yield the same plan.
*/
package plan
