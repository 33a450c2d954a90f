// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

// Package mock provides the zero-configuration fallback connector. It is
// always available and accepts every record, retaining a bounded window in
// memory. A fresh deployment with no real backend configured degrades to
// this connector instead of failing outright.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"feedbackflow/platform/connectors/base"
	"feedbackflow/platform/feedback"
)

// DefaultRetain is how many records the connector keeps in memory.
const DefaultRetain = 128

// MockConnector accepts and discards feedback, keeping only the most recent
// records for diagnostics and analytics.
type MockConnector struct {
	name   string
	retain int

	mu      sync.Mutex
	records []*feedback.Record
	total   int64
	byCat   map[string]int64
}

// New creates a mock connector registered under name.
func New(name string) *MockConnector {
	return &MockConnector{
		name:   name,
		retain: DefaultRetain,
		byCat:  make(map[string]int64),
	}
}

// Detect implements base.Connector. The mock backend needs no configuration
// and is always available.
func (c *MockConnector) Detect(ctx context.Context) bool {
	return true
}

// HealthCheck implements base.Connector. In-memory storage is always healthy.
func (c *MockConnector) HealthCheck(ctx context.Context) (*base.HealthStatus, error) {
	return &base.HealthStatus{
		Healthy:   true,
		Timestamp: time.Now(),
	}, nil
}

// Store implements base.Connector.
func (c *MockConnector) Store(ctx context.Context, rec *feedback.Record) (*base.StorageResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = append(c.records, rec)
	if len(c.records) > c.retain {
		c.records = c.records[len(c.records)-c.retain:]
	}
	c.total++
	c.byCat[string(rec.Category)]++

	res := base.Stored("mock-" + uuid.NewString())
	res.Metadata = map[string]interface{}{"retained": len(c.records)}
	return res, nil
}

// Analytics implements base.AnalyticsProvider over what the connector has
// accepted since process start.
func (c *MockConnector) Analytics(ctx context.Context) (*base.AnalyticsSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	byCat := make(map[string]int64, len(c.byCat))
	for k, v := range c.byCat {
		byCat[k] = v
	}
	return &base.AnalyticsSnapshot{
		Connector:  c.name,
		Total:      c.total,
		ByCategory: byCat,
	}, nil
}

// Stored returns a copy of the currently retained records, oldest first.
func (c *MockConnector) Stored() []*feedback.Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*feedback.Record, len(c.records))
	copy(out, c.records)
	return out
}

// Name returns the connector instance name.
func (c *MockConnector) Name() string { return c.name }

// Type returns the connector type.
func (c *MockConnector) Type() string { return "mock" }
