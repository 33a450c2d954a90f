// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

// Package redis provides a stream connector: each feedback record is
// appended to a Redis stream, typically consumed by a downstream pipeline.
// The stream entry ID is the backend-assigned identifier.
package redis

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"

	"feedbackflow/platform/connectors/base"
	"feedbackflow/platform/feedback"
)

// DefaultStream is the stream feedback entries are appended to.
const DefaultStream = "feedback:submissions"

// RedisConnector implements base.Connector over a Redis stream.
type RedisConnector struct {
	name   string
	client *redis.Client
	stream string
	logger *log.Logger
}

// New creates a redis connector over an injected client. A nil client is
// valid: the connector reports itself unavailable.
func New(name string, client *redis.Client, stream string) *RedisConnector {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisConnector{
		name:   name,
		client: client,
		stream: stream,
		logger: log.New(os.Stdout, "[FEEDBACK_REDIS] ", log.LstdFlags),
	}
}

// Open creates a connector with its own client for addr.
func Open(name, addr, password, stream string) *RedisConnector {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return New(name, client, stream)
}

// Close releases the underlying client.
func (c *RedisConnector) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Detect implements base.Connector: available when a client was injected.
func (c *RedisConnector) Detect(ctx context.Context) bool {
	return c.client != nil
}

// HealthCheck implements base.Connector with a ping.
func (c *RedisConnector) HealthCheck(ctx context.Context) (*base.HealthStatus, error) {
	if c.client == nil {
		return &base.HealthStatus{
			Healthy:   false,
			Timestamp: time.Now(),
			Error:     "client not configured",
		}, nil
	}

	start := time.Now()
	err := c.client.Ping(ctx).Err()
	latency := time.Since(start)

	if err != nil {
		return &base.HealthStatus{
			Healthy:   false,
			Latency:   latency,
			Timestamp: time.Now(),
			Error:     err.Error(),
		}, nil
	}
	return &base.HealthStatus{
		Healthy:   true,
		Latency:   latency,
		Timestamp: time.Now(),
	}, nil
}

// Store implements base.Connector by appending one stream entry.
func (c *RedisConnector) Store(ctx context.Context, rec *feedback.Record) (*base.StorageResult, error) {
	if c.client == nil {
		return base.FailureMessage(c.name+".Store: client not configured", false), nil
	}

	values := map[string]interface{}{
		"page":      rec.Page,
		"category":  string(rec.Category),
		"comment":   rec.Comment,
		"timestamp": rec.Timestamp,
	}
	if rec.SectionID != "" {
		values["section_id"] = rec.SectionID
	}
	if rec.HighlightedText != "" {
		values["highlighted_text"] = rec.HighlightedText
	}
	if rec.SuggestedTag != "" {
		values["suggested_tag"] = rec.SuggestedTag
	}
	if rec.UserEmail != "" {
		values["user_email"] = rec.UserEmail
	}
	if rec.UserID != "" {
		values["user_id"] = rec.UserID
	}
	if rec.UserName != "" {
		values["user_name"] = rec.UserName
	}
	if rec.UserAgent != "" {
		values["user_agent"] = rec.UserAgent
	}

	id, err := c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.stream,
		Values: values,
	}).Result()
	if err != nil {
		return base.Failure(base.NewConnectorError(c.name, "Store", "stream append failed", err)), nil
	}

	c.logger.Printf("Appended entry %s to stream %s", id, c.stream)
	res := base.Stored(id)
	res.Metadata = map[string]interface{}{"stream": c.stream}
	return res, nil
}

// Name returns the connector instance name.
func (c *RedisConnector) Name() string { return c.name }

// Type returns the connector type.
func (c *RedisConnector) Type() string { return "redis" }
