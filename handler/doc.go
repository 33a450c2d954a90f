// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

/*
Package handler orchestrates one feedback submission across every currently
available storage connector.

# Overview

ProcessFeedback is the heart of the pipeline:

 1. Generate a fresh correlation identifier (uuid v4).
 2. Ask the registry which connectors are available right now.
 3. If none are: return the fixed "no storage connectors available" result.
    A fresh install with no backend configured is a normal state, not an
    error.
 4. Otherwise dispatch the store to every available connector concurrently,
    annotating each entry with a health flag probed alongside the store.
 5. Wait for all attempts to settle; one connector's failure (or panic, or
    timeout) never cancels the others' in-flight calls.
 6. Overall success means at least one connector captured the record: a
    degraded secondary backend must not mask a successful primary capture.
 7. Return one aggregated, client-safe result. The method never fails out;
    even an internal defect is recovered into a top-level error result.

The per-connector detail in the result exists for operators and logs, keyed
by the correlation identifier; the end user only ever sees the aggregate
outcome.

# Assembly

NewFromEnv builds the handler from whatever credentials the environment
offers (Linear, PostgreSQL, Redis), falling back to the accept-and-discard
mock connector so a zero-configuration deployment still works.
*/
package handler
