// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

/*
Package registry provides a thread-safe registry for feedback storage
connectors.

# Overview

The Registry is the central collection of named connectors. It handles:

  - Registration with last-write-wins replacement per name
  - Lookup by name and stable, registration-ordered listing
  - Availability discovery with per-connector isolation
  - Batch health checking with the same isolation rule

# Creating and populating

	reg := registry.New()
	reg.Register(linearConnector)
	reg.Register(postgresConnector)

The registry is expected to be populated once at startup (see
handler.NewFromEnv) and treated as read-mostly afterwards.

# Discovery

DetectAvailable asks each connector whether it is configured well enough to
attempt a store right now:

	available := reg.DetectAvailable(ctx)

Partial failure is the steady state here, not an edge case: a probe that
panics or returns false excludes that connector and nothing else. N-1 broken
connectors never prevent correctly reporting on the one healthy connector.

# Health

	for name, healthy := range reg.CheckHealth(ctx) {
	    if !healthy {
	        log.Printf("connector %s unhealthy", name)
	    }
	}
*/
package registry
