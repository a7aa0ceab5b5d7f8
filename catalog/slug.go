// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/danielhkuo/yoga-journal/models"
)

var (
	nonAlnum    = regexp.MustCompile(`[^a-z0-9]+`)
	sunBPattern = regexp.MustCompile(`(?i)surya\s+namaskar\s+b`)
)

// Slugify lowercases name, strips diacritics, collapses every run of
// non-alphanumerics into one hyphen and trims hyphens from both ends.
func Slugify(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.ToLower(name))
	if err != nil {
		stripped = strings.ToLower(name)
	}
	return strings.Trim(nonAlnum.ReplaceAllString(stripped, "-"), "-")
}

// SunSegment picks SUN_A or SUN_B from a sun salutation name.
// Anything that is not recognisably B defaults to A.
func SunSegment(name string) models.Segment {
	if sunBPattern.MatchString(name) {
		return models.SegmentSunB
	}
	return models.SegmentSunA
}
