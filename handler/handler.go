// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"feedbackflow/platform/connectors/base"
	"feedbackflow/platform/connectors/registry"
	"feedbackflow/platform/feedback"
	"feedbackflow/platform/shared/logger"
)

// ErrNoConnectors is the fixed top-level message returned when zero
// connectors are available at dispatch time. This is a normal terminal
// state (a fresh install with nothing configured), not an exception.
const ErrNoConnectors = "no storage connectors available"

const (
	// DefaultStoreTimeout bounds one connector's store attempt so a single
	// unresponsive backend cannot stall the whole fan-out.
	DefaultStoreTimeout = 15 * time.Second
	// DefaultHealthTimeout bounds the per-connector health probe.
	DefaultHealthTimeout = 5 * time.Second
)

// ConnectorResult is one connector's entry in the aggregated result.
type ConnectorResult struct {
	Connector string                 `json:"connector"`
	Success   bool                   `json:"success"`
	ID        string                 `json:"id,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Retryable bool                   `json:"retryable,omitempty"`
	Healthy   bool                   `json:"healthy"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// AggregatedResult is the outcome of one full submission across every
// connector that was available at dispatch time. Success is true iff at
// least one connector succeeded; Error is set only when zero connectors
// were available to attempt, or when an unexpected internal failure was
// converted into a result. Never mutated after being returned.
type AggregatedResult struct {
	CorrelationID string            `json:"correlationId"`
	Success       bool              `json:"success"`
	Results       []ConnectorResult `json:"results"`
	Error         string            `json:"error,omitempty"`
}

// Options tunes the per-connector time budgets.
type Options struct {
	StoreTimeout  time.Duration
	HealthTimeout time.Duration
}

// FeedbackHandler dispatches one feedback submission to every currently
// available connector, concurrently, isolating per-connector failures. It
// is stateless across calls: each ProcessFeedback invocation is an
// independent transaction whose only shared state is the read-mostly
// registry.
type FeedbackHandler struct {
	registry      *registry.Registry
	storeTimeout  time.Duration
	healthTimeout time.Duration
	logger        *logger.Logger
}

// New creates a handler over reg with default time budgets.
func New(reg *registry.Registry) *FeedbackHandler {
	return NewWithOptions(reg, Options{})
}

// NewWithOptions creates a handler with explicit time budgets. Zero values
// fall back to the defaults.
func NewWithOptions(reg *registry.Registry, opts Options) *FeedbackHandler {
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = DefaultStoreTimeout
	}
	if opts.HealthTimeout <= 0 {
		opts.HealthTimeout = DefaultHealthTimeout
	}
	return &FeedbackHandler{
		registry:      reg,
		storeTimeout:  opts.StoreTimeout,
		healthTimeout: opts.HealthTimeout,
		logger:        logger.New("feedback-handler"),
	}
}

// ProcessFeedback runs one submission end to end and always returns a
// well-formed result: connector failures become per-connector entries, an
// empty available set becomes the fixed ErrNoConnectors result, and any
// unexpected internal failure is recovered into a top-level error result
// rather than propagating.
func (h *FeedbackHandler) ProcessFeedback(ctx context.Context, rec *feedback.Record) (result *AggregatedResult) {
	correlationID := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			h.logger.Error(correlationID, "submission processing panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
			promSubmissionsTotal.WithLabelValues("error").Inc()
			result = &AggregatedResult{
				CorrelationID: correlationID,
				Success:       false,
				Results:       []ConnectorResult{},
				Error:         "internal error processing feedback",
			}
		}
	}()

	start := time.Now()

	// The dispatch set is fixed at this moment; a connector that becomes
	// available later in the same call is not retroactively included.
	available := h.registry.DetectAvailable(ctx)
	if len(available) == 0 {
		h.logger.Warn(correlationID, "no storage connectors available", map[string]interface{}{
			"registered": len(h.registry.Names()),
			"page":       rec.Page,
		})
		promSubmissionsTotal.WithLabelValues("unavailable").Inc()
		return &AggregatedResult{
			CorrelationID: correlationID,
			Success:       false,
			Results:       []ConnectorResult{},
			Error:         ErrNoConnectors,
		}
	}

	results := make([]ConnectorResult, len(available))
	var wg sync.WaitGroup

	for i, connector := range available {
		wg.Add(1)
		go func(idx int, c base.Connector) {
			defer wg.Done()
			results[idx] = h.dispatchOne(ctx, c, rec, correlationID)
		}(i, connector)
	}
	wg.Wait()

	overall := false
	for _, entry := range results {
		if entry.Success {
			overall = true
			break
		}
	}

	status := "failure"
	if overall {
		status = "success"
	}
	promSubmissionsTotal.WithLabelValues(status).Inc()

	h.logger.Info(correlationID, "submission processed", map[string]interface{}{
		"page":        rec.Page,
		"category":    string(rec.Category),
		"connectors":  len(results),
		"success":     overall,
		"duration_ms": float64(time.Since(start).Milliseconds()),
	})

	return &AggregatedResult{
		CorrelationID: correlationID,
		Success:       overall,
		Results:       results,
	}
}

// dispatchOne runs the store attempt and the health probe for a single
// connector, converting every failure mode (error, nil result, panic,
// timeout) into a well-formed entry.
func (h *FeedbackHandler) dispatchOne(ctx context.Context, c base.Connector, rec *feedback.Record, correlationID string) ConnectorResult {
	// Health annotation runs concurrently with the store; its failure never
	// blocks or fails the store attempt.
	hctx, hcancel := context.WithTimeout(ctx, h.healthTimeout)
	defer hcancel()
	healthCh := make(chan bool, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				healthCh <- false
			}
		}()
		status, err := c.HealthCheck(hctx)
		healthCh <- err == nil && status != nil && status.Healthy
	}()

	start := time.Now()
	res := h.safeStore(ctx, c, rec)
	duration := time.Since(start)

	// A probe still running at its deadline counts as unhealthy; waiting it
	// out would let one stuck probe stall the fan-out.
	var healthy bool
	select {
	case healthy = <-healthCh:
	case <-hctx.Done():
	}

	status := "failure"
	if res.Success {
		status = "success"
	} else {
		h.logger.Warn(correlationID, "connector store failed", map[string]interface{}{
			"connector": c.Name(),
			"type":      c.Type(),
			"error":     res.Error,
			"retryable": res.Retryable,
		})
	}
	promStoreTotal.WithLabelValues(c.Name(), status).Inc()
	promStoreDuration.WithLabelValues(c.Name()).Observe(float64(duration.Milliseconds()))

	return ConnectorResult{
		Connector: c.Name(),
		Success:   res.Success,
		ID:        res.ID,
		Error:     res.Error,
		Retryable: res.Retryable,
		Healthy:   healthy,
		Metadata:  res.Metadata,
	}
}

// storeOutcome carries one store attempt's return values across the
// goroutine boundary in safeStore.
type storeOutcome struct {
	res *base.StorageResult
	err error
}

// safeStore invokes Store under the per-connector timeout budget,
// converting an escaped error, a nil result, a panic, or a blown deadline
// into a typed failure. The contract says connectors self-police; this is
// the layer that does not trust them to. The attempt runs in its own
// goroutine so a connector that ignores its context cannot hold the
// fan-out past the budget: when the deadline fires first, the straggler is
// abandoned and its late outcome discarded.
func (h *FeedbackHandler) safeStore(ctx context.Context, c base.Connector, rec *feedback.Record) *base.StorageResult {
	sctx, cancel := context.WithTimeout(ctx, h.storeTimeout)
	defer cancel()

	outCh := make(chan storeOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				outCh <- storeOutcome{err: fmt.Errorf("connector %s panicked during store: %v", c.Name(), r)}
			}
		}()
		res, err := c.Store(sctx, rec)
		outCh <- storeOutcome{res: res, err: err}
	}()

	var out storeOutcome
	select {
	case out = <-outCh:
	case <-sctx.Done():
		return base.FailureMessage(
			fmt.Sprintf("%s.Store: timed out after %s", c.Name(), h.storeTimeout),
			true,
		)
	}

	if out.err != nil {
		if sctx.Err() == context.DeadlineExceeded {
			return base.FailureMessage(
				fmt.Sprintf("%s.Store: timed out after %s", c.Name(), h.storeTimeout),
				true,
			)
		}
		return base.Failure(out.err)
	}
	if out.res == nil {
		return base.FailureMessage(c.Name()+".Store: connector returned no result", true)
	}
	return out.res
}

// HealthStatus reports a name-to-healthy mapping for every registered
// connector, available or not.
func (h *FeedbackHandler) HealthStatus(ctx context.Context) map[string]bool {
	return h.registry.CheckHealth(ctx)
}

// RegisteredConnectors returns the registered connector names for
// diagnostics.
func (h *FeedbackHandler) RegisteredConnectors() []string {
	return h.registry.Names()
}

// Analytics collects snapshots from every connector that offers the
// optional analytics capability; connectors without it are simply absent
// from the map. A failing provider is logged and skipped.
func (h *FeedbackHandler) Analytics(ctx context.Context) map[string]*base.AnalyticsSnapshot {
	snapshots := make(map[string]*base.AnalyticsSnapshot)

	for _, connector := range h.registry.List() {
		provider, ok := connector.(base.AnalyticsProvider)
		if !ok {
			continue
		}
		snapshot, err := provider.Analytics(ctx)
		if err != nil {
			h.logger.ErrorWithErr("", "analytics collection failed", err, map[string]interface{}{
				"connector": connector.Name(),
			})
			continue
		}
		snapshots[connector.Name()] = snapshot
	}
	return snapshots
}
