// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Command yogactl is the operator CLI for yoga-journal.

	yogactl seed -t postgres -d "postgres://..."
	yogactl plan --type HALF_PRIMARY --primary-up-to marichyasana-d
	yogactl plan --block PRIMARY:marichyasana-a..navasana --block INTERMEDIATE=pasasana
	yogactl catalog --group intermediate

seed creates the schema and upserts the embedded pose catalog, the same
steps the server runs at start. plan and catalog work offline against the
embedded catalog.
*/
package main
