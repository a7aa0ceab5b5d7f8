// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog holds the canonical Ashtanga pose sequence.

The catalog is a versioned YAML document embedded in the binary
(poses.yaml). It is parsed once by Default and never changes afterwards:

	cat := catalog.Default()
	primary := cat.Group(catalog.GroupPrimary)

# Groups

	SUN → STANDING → PRIMARY | INTERMEDIATE | ADVANCED_A | ADVANCED_B → FINISHING

Each group is ordered. Compose concatenates groups and Series returns the
four full series (standing, one body block, finishing).

# Slugs

Every pose is identified by Slugify(name): lowercase ASCII, diacritics
stripped, non-alphanumeric runs collapsed to "-". Slugs are unique across
the whole catalog; Load rejects documents that break this.

# Seeding

SeedPoses flattens the catalog into pose rows with their display segment
and 1-based order within the segment. db.SeedPoses upserts them by slug.
*/
package catalog
