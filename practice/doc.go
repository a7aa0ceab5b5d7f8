// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package practice owns the lifecycle of practice sessions and their score
cards.

A Service ties the plan expander and scoring engine to a Store:

  - CreateSession expands a selection, resolves every slug against the
    seeded pose table and inserts the session with its cards in one
    transaction. Two-sided poses produce a RIGHT card then a LEFT card.
  - UpdateScoreCard applies a partial rating update and recomputes the
    card and session overall scores.
  - Publish and Unpublish move a session between DRAFT and PUBLISHED.
    Publishing requires every non-skipped card to be fully rated.
  - PoseTrend and SessionSummary are read-only views over a user's history.

Every operation takes the caller's user id and only sees sessions that user
owns. Foreign ids are reported as models.ErrNotFound.

# State machine

	DRAFT --publish--> PUBLISHED --unpublish--> DRAFT
	ARCHIVED rejects both transitions and card edits with models.ErrConflict

# Stores

Store is implemented over SQL by package store and in memory by
testutil.MemStore.
*/
package practice
