// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package plan

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/yoga-journal/catalog"
	"github.com/danielhkuo/yoga-journal/models"
)

var (
	ErrCutoffNotFound = errors.New("cutoff not found")
	ErrInvalidRange   = errors.New("invalid range")
)

// DefaultHalfPrimaryCutoff is where a half primary practice stops when no
// cutoff is given.
const DefaultHalfPrimaryCutoff = "navasana"

// Item is one expanded plan entry: a pose and the segment it is shown under.
type Item struct {
	PoseName string
	PoseSlug string
	Segment  models.Segment
	TwoSided bool
}

// Block selects part of one series-specific segment for a custom practice.
type Block struct {
	Segment         models.Segment
	FromSlug        string
	UpToSlug        string
	Slugs           []string
	OverrideSegment models.Segment
}

// Selection is either a preset (Type != CUSTOM, optional cutoffs) or a
// custom list of blocks.
type Selection struct {
	Type models.PracticeType

	PrimaryUpTo      string
	IntermediateUpTo string
	AdvancedUpTo     string

	Blocks []Block
}

// Expand turns a selection into the ordered plan. Every plan starts with the
// sun salutations and standing poses and ends with the finishing sequence.
func Expand(cat *catalog.Catalog, sel Selection) ([]Item, error) {
	var body []Item
	var err error

	if sel.Type == models.PracticeCustom {
		body, err = expandCustom(cat, sel.Blocks)
	} else {
		body, err = expandPreset(cat, sel)
	}
	if err != nil {
		return nil, err
	}

	items := toItems(catalog.GroupSun, cat.Group(catalog.GroupSun), "")
	items = append(items, toItems(catalog.GroupStanding, cat.Group(catalog.GroupStanding), "")...)
	items = append(items, body...)
	items = append(items, toItems(catalog.GroupFinishing, cat.Group(catalog.GroupFinishing), "")...)
	return items, nil
}

// CardCount is the number of score cards the plan materializes into.
func CardCount(items []Item) int {
	n := 0
	for _, it := range items {
		if it.TwoSided {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// blockSpec is one body block of a preset: a group and an optional cutoff.
type blockSpec struct {
	group catalog.Group
	upTo  string
}

func expandPreset(cat *catalog.Catalog, sel Selection) ([]Item, error) {
	specs, err := presetBlocks(sel)
	if err != nil {
		return nil, err
	}

	var out []Item
	for _, s := range specs {
		entries, err := sliceRange(cat.Group(s.group), s.group, "", s.upTo)
		if err != nil {
			return nil, err
		}
		out = append(out, toItems(s.group, entries, "")...)
	}
	return out, nil
}

// presetBlocks resolves a preset into its body blocks. Cutoffs that the
// preset has no partial block for are rejected rather than ignored.
func presetBlocks(sel Selection) ([]blockSpec, error) {
	var (
		specs                        []blockSpec
		usesPrimary, usesInt, usesAdv bool
	)

	switch sel.Type {
	case models.PracticeFullPrimary:
		specs = []blockSpec{{group: catalog.GroupPrimary}}
	case models.PracticeHalfPrimary:
		specs = []blockSpec{{group: catalog.GroupPrimary, upTo: orDefault(sel.PrimaryUpTo, DefaultHalfPrimaryCutoff)}}
		usesPrimary = true
	case models.PracticeHalfPrimaryPlusIntermediate:
		specs = []blockSpec{
			{group: catalog.GroupPrimary, upTo: orDefault(sel.PrimaryUpTo, DefaultHalfPrimaryCutoff)},
			{group: catalog.GroupIntermediate, upTo: sel.IntermediateUpTo},
		}
		usesPrimary, usesInt = true, true
	case models.PracticePrimaryPlusIntermediate:
		specs = []blockSpec{
			{group: catalog.GroupPrimary},
			{group: catalog.GroupIntermediate, upTo: sel.IntermediateUpTo},
		}
		usesInt = true
	case models.PracticeFullIntermediate:
		specs = []blockSpec{{group: catalog.GroupIntermediate}}
	case models.PracticeIntermediatePlusAdvancedA:
		specs = []blockSpec{
			{group: catalog.GroupIntermediate},
			{group: catalog.GroupAdvancedA, upTo: sel.AdvancedUpTo},
		}
		usesAdv = true
	case models.PracticeIntermediatePlusAdvancedB:
		specs = []blockSpec{
			{group: catalog.GroupIntermediate},
			{group: catalog.GroupAdvancedB, upTo: sel.AdvancedUpTo},
		}
		usesAdv = true
	case models.PracticeAdvancedA:
		specs = []blockSpec{{group: catalog.GroupAdvancedA}}
	case models.PracticeAdvancedB:
		specs = []blockSpec{{group: catalog.GroupAdvancedB}}
	default:
		return nil, models.Validationf("unsupported practice type %q", sel.Type)
	}

	if sel.PrimaryUpTo != "" && !usesPrimary {
		return nil, models.Validationf("primary_up_to does not apply to %s", sel.Type)
	}
	if sel.IntermediateUpTo != "" && !usesInt {
		return nil, models.Validationf("intermediate_up_to does not apply to %s", sel.Type)
	}
	if sel.AdvancedUpTo != "" && !usesAdv {
		return nil, models.Validationf("advanced_up_to does not apply to %s", sel.Type)
	}
	if len(sel.Blocks) > 0 {
		return nil, models.Validationf("blocks are only allowed for %s", models.PracticeCustom)
	}

	return specs, nil
}

func expandCustom(cat *catalog.Catalog, blocks []Block) ([]Item, error) {
	if len(blocks) == 0 {
		return nil, models.Validationf("custom practice needs at least one block")
	}

	var out []Item
	for i, b := range blocks {
		group, ok := catalog.GroupForSegment(b.Segment)
		if !ok {
			return nil, models.Validationf("block %d: unknown segment %q", i+1, b.Segment)
		}
		if b.OverrideSegment != "" && !b.OverrideSegment.Valid() {
			return nil, models.Validationf("block %d: unknown override segment %q", i+1, b.OverrideSegment)
		}

		source := cat.Group(group)
		var entries []catalog.Entry
		var err error

		if len(b.Slugs) > 0 {
			if b.FromSlug != "" || b.UpToSlug != "" {
				return nil, models.Validationf("block %d: use either slugs or a range, not both", i+1)
			}
			entries, err = pick(source, group, b.Slugs)
		} else {
			entries, err = sliceRange(source, group, b.FromSlug, b.UpToSlug)
		}
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}

		out = append(out, toItems(group, entries, b.OverrideSegment)...)
	}
	return out, nil
}

// sliceRange cuts entries to [from, upTo] (both inclusive, matched by slug).
// Empty bounds mean the start or end of the group.
func sliceRange(entries []catalog.Entry, group catalog.Group, fromSlug, upToSlug string) ([]catalog.Entry, error) {
	fromIdx, toIdx := 0, len(entries)-1

	if fromSlug != "" {
		fromIdx = indexOf(entries, catalog.Slugify(fromSlug))
		if fromIdx < 0 {
			return nil, fmt.Errorf("%w: %w: from slug %q not in %s", models.ErrValidation, ErrCutoffNotFound, fromSlug, group)
		}
	}
	if upToSlug != "" {
		toIdx = indexOf(entries, catalog.Slugify(upToSlug))
		if toIdx < 0 {
			return nil, fmt.Errorf("%w: %w: up-to slug %q not in %s", models.ErrValidation, ErrCutoffNotFound, upToSlug, group)
		}
	}
	if toIdx < fromIdx {
		return nil, fmt.Errorf("%w: %w: %q comes before %q in %s", models.ErrValidation, ErrInvalidRange, upToSlug, fromSlug, group)
	}

	return entries[fromIdx : toIdx+1], nil
}

// pick keeps the requested slugs in canonical catalog order.
func pick(entries []catalog.Entry, group catalog.Group, slugs []string) ([]catalog.Entry, error) {
	wanted := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		slug := catalog.Slugify(s)
		if indexOf(entries, slug) < 0 {
			return nil, fmt.Errorf("%w: %w: slug %q not in %s", models.ErrValidation, ErrCutoffNotFound, s, group)
		}
		wanted[slug] = true
	}

	var out []catalog.Entry
	for _, e := range entries {
		if wanted[e.Slug()] {
			out = append(out, e)
		}
	}
	return out, nil
}

func indexOf(entries []catalog.Entry, slug string) int {
	for i, e := range entries {
		if e.Slug() == slug {
			return i
		}
	}
	return -1
}

func toItems(group catalog.Group, entries []catalog.Entry, override models.Segment) []Item {
	items := make([]Item, len(entries))
	for i, e := range entries {
		seg := catalog.SegmentFor(group, e.Name)
		if override != "" {
			seg = override
		}
		items[i] = Item{
			PoseName: e.Name,
			PoseSlug: e.Slug(),
			Segment:  seg,
			TwoSided: e.TwoSided,
		}
	}
	return items
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
