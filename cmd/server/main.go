// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

// Package main is the entry point for the FeedbackFlow submission service.
//
// The service accepts structured feedback from the documentation widget and
// fans each submission out to every configured storage backend.
//
// Usage:
//
//	./server
//
// Environment Variables:
//
//	PORT - HTTP server port (default: 8080)
//	LINEAR_API_KEY, LINEAR_TEAM_ID - Linear issue-tracker backend (optional)
//	DATABASE_URL - PostgreSQL backend (optional)
//	REDIS_ADDR - Redis stream backend (optional)
//
// With none of the backend variables set, the service runs with the
// accept-and-discard mock connector.
package main

import (
	"log"
	"net/http"

	"feedbackflow/platform/api"
	"feedbackflow/platform/connectors/config"
	"feedbackflow/platform/handler"
)

func main() {
	res := config.FromEnv()

	h := handler.NewFromEnv(res)
	server := api.NewServer(h)

	port := res.GetDefault("PORT", "8080")
	log.Printf("FeedbackFlow listening on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, server.Router()))
}
