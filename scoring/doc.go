// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scoring computes card and session overall scores.

All functions are pure and depend only on persisted ratings, so running them
again on unchanged data yields bit-identical results.

# Card score

	overall = round(mean(non-null ratings), 2)

Skipped or unrated cards have no overall score. Pain is averaged as stored.

# Session score

	overall = round(mean(card overall scores), 2)

over non-skipped cards with a score; nil when there are none.

# Completeness

MissingMetrics and Incomplete report which rating axes block publishing.

# Field selection

ParseMetrics and Select project cards onto a fixed set of metrics
(ease, comfort, stability, pain, breath, focus, overall_score).
*/
package scoring
