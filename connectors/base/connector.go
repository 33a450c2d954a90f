// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

package base

import (
	"context"
	"time"

	"feedbackflow/platform/feedback"
)

// Connector is the contract every feedback storage backend implements.
// Implementations are expected to translate their own failures into a
// StorageResult rather than returning errors; the handler defensively
// converts anything that escapes (error or panic) into a failed result,
// so one mis-implemented backend degrades gracefully instead of crashing
// the fan-out.
type Connector interface {
	// Detect answers "is this backend configured well enough to attempt a
	// store right now?" (credentials present, handle injected). It must be
	// side-effect-free and must return false for expected misconfiguration
	// rather than failing. Callers treat a panicking probe as unavailable.
	Detect(ctx context.Context) bool

	// HealthCheck is a lightweight liveness probe and may perform network
	// I/O. Any failure resolves to an unhealthy status, never to a failure
	// of the caller.
	HealthCheck(ctx context.Context) (*HealthStatus, error)

	// Store performs the actual write. The returned result carries the
	// backend-assigned id on success, or a message plus retryability
	// classification on failure.
	Store(ctx context.Context, rec *feedback.Record) (*StorageResult, error)

	// Name is the unique registry name of this connector instance.
	Name() string
	// Type identifies the backend kind (linear, postgres, redis, mock).
	Type() string
}

// AnalyticsProvider is an optional capability: connectors with durable
// storage can report aggregate statistics. Callers check for it with a type
// assertion and treat absence as "not offered", not as an error.
type AnalyticsProvider interface {
	Analytics(ctx context.Context) (*AnalyticsSnapshot, error)
}

// StorageResult is the outcome of one connector's store attempt. Exactly one
// of success-with-id or failure-with-error holds; Retryable is meaningful
// only when Success is false.
type StorageResult struct {
	Success   bool                   `json:"success"`
	ID        string                 `json:"id,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Retryable bool                   `json:"retryable,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Stored builds a successful result with the backend-assigned id.
func Stored(id string) *StorageResult {
	return &StorageResult{Success: true, ID: id}
}

// Failure builds a failed result from an error, classifying retryability
// from the failure kind.
func Failure(err error) *StorageResult {
	return &StorageResult{
		Success:   false,
		Error:     err.Error(),
		Retryable: Classify(err),
	}
}

// FailureMessage builds a failed result with an explicit classification.
func FailureMessage(msg string, retryable bool) *StorageResult {
	return &StorageResult{Success: false, Error: msg, Retryable: retryable}
}

// HealthStatus reports the result of a connector liveness probe.
type HealthStatus struct {
	Healthy   bool              `json:"healthy"`
	Latency   time.Duration     `json:"latency"`
	Details   map[string]string `json:"details,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Error     string            `json:"error,omitempty"`
}

// AnalyticsSnapshot is the aggregate view an AnalyticsProvider reports.
type AnalyticsSnapshot struct {
	Connector  string           `json:"connector"`
	Total      int64            `json:"total"`
	ByCategory map[string]int64 `json:"byCategory,omitempty"`
}

// ConnectorError represents errors specific to connector operations.
type ConnectorError struct {
	ConnectorName string
	Operation     string
	Message       string
	Cause         error
}

func (e *ConnectorError) Error() string {
	if e.Cause != nil {
		return e.ConnectorName + "." + e.Operation + ": " + e.Message + " (cause: " + e.Cause.Error() + ")"
	}
	return e.ConnectorName + "." + e.Operation + ": " + e.Message
}

func (e *ConnectorError) Unwrap() error {
	return e.Cause
}

// NewConnectorError creates a new ConnectorError.
func NewConnectorError(connectorName, operation, message string, cause error) *ConnectorError {
	return &ConnectorError{
		ConnectorName: connectorName,
		Operation:     operation,
		Message:       message,
		Cause:         cause,
	}
}
