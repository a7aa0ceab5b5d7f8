// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package plan

import (
	"fmt"
	"strings"

	"github.com/danielhkuo/yoga-journal/models"
)

// DefaultLabel renders a human-readable label for a selection, used when
// the caller does not supply one.
func DefaultLabel(sel Selection) string {
	if sel.Type == models.PracticeCustom {
		parts := make([]string, 0, len(sel.Blocks))
		for _, b := range sel.Blocks {
			parts = append(parts, blockLabel(b))
		}
		if len(parts) == 0 {
			return "Custom"
		}
		return fmt.Sprintf("Custom (%s)", strings.Join(parts, " + "))
	}

	base := humanize(string(sel.Type))
	specs, err := presetBlocks(sel)
	if err != nil {
		return base
	}

	var cuts []string
	for _, s := range specs {
		if s.upTo == "" {
			continue
		}
		if len(specs) == 1 {
			cuts = append(cuts, "to "+s.upTo)
		} else {
			cuts = append(cuts, fmt.Sprintf("%s to %s", strings.ToLower(humanize(string(s.group))), s.upTo))
		}
	}
	if len(cuts) == 0 {
		return base
	}
	return fmt.Sprintf("%s (%s)", base, strings.Join(cuts, ", "))
}

func blockLabel(b Block) string {
	label := humanize(string(b.Segment))
	switch {
	case len(b.Slugs) > 0:
		label += fmt.Sprintf(" (%d poses)", len(b.Slugs))
	case b.FromSlug != "" && b.UpToSlug != "":
		label += fmt.Sprintf(" from %s to %s", b.FromSlug, b.UpToSlug)
	case b.FromSlug != "":
		label += " from " + b.FromSlug
	case b.UpToSlug != "":
		label += " to " + b.UpToSlug
	}
	if b.OverrideSegment != "" {
		label += " as " + strings.ToLower(humanize(string(b.OverrideSegment)))
	}
	return label
}

// humanize turns an enum like ADVANCED_A into "Advanced A".
func humanize(s string) string {
	words := strings.Split(strings.ToLower(s), "_")
	for i, w := range words {
		switch {
		case len(w) == 1:
			words[i] = strings.ToUpper(w)
		case i == 0 && w != "":
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
