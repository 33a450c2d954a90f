// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"log"

	"feedbackflow/platform/connectors/config"
	"feedbackflow/platform/connectors/linear"
	"feedbackflow/platform/connectors/mock"
	"feedbackflow/platform/connectors/postgres"
	"feedbackflow/platform/connectors/redis"
	"feedbackflow/platform/connectors/registry"
)

// Environment keys the factory probes for. A connector is registered only
// when its required keys resolve; a deployment with none of them configured
// gets the mock fallback so the pipeline accepts feedback from day one.
const (
	EnvLinearAPIKey = "LINEAR_API_KEY"
	EnvLinearTeamID = "LINEAR_TEAM_ID"
	EnvDatabaseURL  = "DATABASE_URL"
	EnvRedisAddr    = "REDIS_ADDR"
)

// NewFromEnv assembles a handler with connectors chosen by which
// credentials are present in res. It never fails: a backend whose setup
// errors is logged and skipped, and when nothing real is configured the
// handler degrades to a single accept-and-discard mock connector.
func NewFromEnv(res *config.Resolver) *FeedbackHandler {
	reg := registry.New()

	if apiKey := res.Get(EnvLinearAPIKey); apiKey != "" {
		reg.Register(linear.New("linear", linear.Config{
			APIKey:   apiKey,
			TeamID:   res.Get(EnvLinearTeamID),
			Endpoint: res.Get("LINEAR_ENDPOINT"),
			Timeout:  res.GetDuration("LINEAR_TIMEOUT", 0),
		}))
	}

	if dsn := res.Get(EnvDatabaseURL); dsn != "" {
		pg, err := postgres.Open("postgres", dsn, res.Get("FEEDBACK_TABLE"))
		if err != nil {
			log.Printf("Skipping postgres connector: %v", err)
		} else {
			reg.Register(pg)
		}
	}

	if addr := res.Get(EnvRedisAddr); addr != "" {
		reg.Register(redis.Open("redis", addr, res.Get("REDIS_PASSWORD"), res.Get("REDIS_STREAM")))
	}

	if reg.Count() == 0 {
		log.Printf("No storage backends configured, falling back to mock connector")
		reg.Register(mock.New("mock"))
	}

	h := New(reg)
	h.logger.Info("", "feedback handler assembled", map[string]interface{}{
		"connectors": reg.Names(),
	})
	return h
}
