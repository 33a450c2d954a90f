// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

/*
Package base provides the core interface and types for feedback storage
connectors in FeedbackFlow.

# Overview

A connector encapsulates exactly one storage backend (an issue tracker, a
database, a stream, a discard sink) behind a uniform interface so the
submission handler can fan one feedback record out to all of them without
knowing anything backend-specific.

# Connector Interface

All connectors implement:

	type Connector interface {
	    Detect(ctx context.Context) bool
	    HealthCheck(ctx context.Context) (*HealthStatus, error)
	    Store(ctx context.Context, rec *feedback.Record) (*StorageResult, error)
	    Name() string
	    Type() string
	}

Detect is the cheap availability probe: "are my credentials present, is my
handle injected?" It never fails for ordinary misconfiguration; it returns
false. HealthCheck is the liveness probe and may hit the network. Store does
the real write and reports its outcome as data.

# The never-fail contract

A failed store is an expected, steady-state outcome, so it travels as a
StorageResult rather than as an error:

	res, err := connector.Store(ctx, rec)
	if err != nil {
	    res = base.Failure(err) // defensive conversion at the boundary
	}
	if !res.Success {
	    log.Printf("store failed (retryable=%v): %s", res.Retryable, res.Error)
	}

Retryability is classified by failure kind: network, timeout, and rate-limit
failures are retryable; authentication and authorization failures are not;
anything unclassified fails open toward allowing a retry. See Classify and
ClassifyStatus.

# Optional capabilities

Connectors with durable storage may additionally implement
AnalyticsProvider. Callers discover it with a type assertion:

	if ap, ok := connector.(base.AnalyticsProvider); ok {
	    snapshot, err := ap.Analytics(ctx)
	    ...
	}

# Thread Safety

All Connector implementations must be safe for concurrent use. A single
submission calls HealthCheck and Store concurrently, and submissions run
concurrently with each other.
*/
package base
