// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics exposes Prometheus collectors for the API.

HTTP traffic is recorded by InstrumentHandler, installed as mux middleware so
requests are labelled with their route template. Domain events are recorded
by the practice service:

	metrics.RecordSessionCreated("FULL_PRIMARY", 83)
	metrics.RecordTransition("publish", metrics.ResultIncomplete)

Handler serves the registry at /metrics.
*/
package metrics
