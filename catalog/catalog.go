// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/yoga-journal/models"
)

// Group is a canonical block of the catalog.
type Group string

const (
	GroupSun          Group = "SUN"
	GroupStanding     Group = "STANDING"
	GroupPrimary      Group = "PRIMARY"
	GroupIntermediate Group = "INTERMEDIATE"
	GroupAdvancedA    Group = "ADVANCED_A"
	GroupAdvancedB    Group = "ADVANCED_B"
	GroupFinishing    Group = "FINISHING"
)

// Groups lists every catalog group in practice order.
var Groups = []Group{
	GroupSun,
	GroupStanding,
	GroupPrimary,
	GroupIntermediate,
	GroupAdvancedA,
	GroupAdvancedB,
	GroupFinishing,
}

var (
	ErrUnknownGroup  = errors.New("unknown catalog group")
	ErrDuplicateSlug = errors.New("duplicate pose slug")
	ErrEmptyName     = errors.New("empty pose name")
)

// Entry is one pose in the catalog.
type Entry struct {
	Name        string `yaml:"name"`
	TwoSided    bool   `yaml:"two_sided"`
	EnglishName string `yaml:"english,omitempty"`
}

// Slug returns the URL-safe identifier derived from the pose name.
func (e Entry) Slug() string {
	return Slugify(e.Name)
}

// Series is a pre-composed full series (standing + block + finishing).
type Series struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Groups      []Group `yaml:"groups"`
	Poses       []Entry `yaml:"-"`
}

type file struct {
	Version int `yaml:"version"`
	Groups  []struct {
		Key   Group   `yaml:"key"`
		Poses []Entry `yaml:"poses"`
	} `yaml:"groups"`
	Series []Series `yaml:"series"`
}

// Catalog is the immutable, ordered pose reference data.
// All accessors return copies.
type Catalog struct {
	version int
	groups  map[Group][]Entry
	series  []Series
	bySlug  map[string]Entry
}

//go:embed poses.yaml
var embedded []byte

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(bytes.NewReader(embedded))
		if err != nil {
			panic(fmt.Sprintf("embedded pose catalog is invalid: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// Load parses and validates a catalog document.
func Load(r io.Reader) (*Catalog, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	c := &Catalog{
		version: f.Version,
		groups:  make(map[Group][]Entry),
		bySlug:  make(map[string]Entry),
	}

	for _, g := range f.Groups {
		if !knownGroup(g.Key) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, g.Key)
		}
		for _, p := range g.Poses {
			if p.Name == "" {
				return nil, fmt.Errorf("%w in group %s", ErrEmptyName, g.Key)
			}
			slug := p.Slug()
			if _, dup := c.bySlug[slug]; dup {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateSlug, slug)
			}
			c.bySlug[slug] = p
		}
		c.groups[g.Key] = append(c.groups[g.Key], g.Poses...)
	}

	for _, s := range f.Series {
		for _, g := range s.Groups {
			if !knownGroup(g) {
				return nil, fmt.Errorf("%w: %q in series %s", ErrUnknownGroup, g, s.Name)
			}
		}
		s.Poses = c.Compose(s.Groups...)
		c.series = append(c.series, s)
	}

	return c, nil
}

func knownGroup(g Group) bool {
	for _, k := range Groups {
		if k == g {
			return true
		}
	}
	return false
}

// Version is the catalog document version.
func (c *Catalog) Version() int {
	return c.version
}

// Group returns the ordered poses of one group.
func (c *Catalog) Group(g Group) []Entry {
	return append([]Entry(nil), c.groups[g]...)
}

// Compose concatenates groups in the given order, keeping each group's order.
func (c *Catalog) Compose(groups ...Group) []Entry {
	var out []Entry
	for _, g := range groups {
		out = append(out, c.groups[g]...)
	}
	return out
}

// All returns every pose in catalog order.
func (c *Catalog) All() []Entry {
	return c.Compose(Groups...)
}

// Series returns the pre-composed full series.
func (c *Catalog) Series() []Series {
	out := make([]Series, len(c.series))
	for i, s := range c.series {
		s.Groups = append([]Group(nil), s.Groups...)
		s.Poses = append([]Entry(nil), s.Poses...)
		out[i] = s
	}
	return out
}

// Lookup finds a pose by slug.
func (c *Catalog) Lookup(slug string) (Entry, bool) {
	e, ok := c.bySlug[slug]
	return e, ok
}

// Len is the total number of poses.
func (c *Catalog) Len() int {
	return len(c.bySlug)
}

// SegmentFor maps a catalog group to the pose's default display segment.
// Sun salutations are split into A and B by name.
func SegmentFor(g Group, name string) models.Segment {
	switch g {
	case GroupSun:
		return SunSegment(name)
	case GroupStanding:
		return models.SegmentStanding
	case GroupPrimary:
		return models.SegmentPrimary
	case GroupIntermediate:
		return models.SegmentIntermediate
	case GroupAdvancedA:
		return models.SegmentAdvancedA
	case GroupAdvancedB:
		return models.SegmentAdvancedB
	case GroupFinishing:
		return models.SegmentFinishing
	}
	return models.SegmentOther
}

// GroupForSegment is the inverse of SegmentFor for series blocks.
func GroupForSegment(s models.Segment) (Group, bool) {
	switch s {
	case models.SegmentPrimary:
		return GroupPrimary, true
	case models.SegmentIntermediate:
		return GroupIntermediate, true
	case models.SegmentAdvancedA:
		return GroupAdvancedA, true
	case models.SegmentAdvancedB:
		return GroupAdvancedB, true
	}
	return "", false
}

// SeedPose is a catalog entry resolved to its persisted shape.
type SeedPose struct {
	Slug           string
	Name           string
	EnglishName    string
	Segment        models.Segment
	OrderInSegment int
	IsTwoSided     bool
}

// SeedPoses flattens the catalog into rows for the pose table.
func (c *Catalog) SeedPoses() []SeedPose {
	var out []SeedPose
	for _, g := range Groups {
		for i, e := range c.groups[g] {
			out = append(out, SeedPose{
				Slug:           e.Slug(),
				Name:           e.Name,
				EnglishName:    e.EnglishName,
				Segment:        SegmentFor(g, e.Name),
				OrderInSegment: i + 1,
				IsTwoSided:     e.TwoSided,
			})
		}
	}
	return out
}
