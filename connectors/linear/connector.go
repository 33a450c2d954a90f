// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

// Package linear provides the issue-tracker connector. Each stored feedback
// record becomes a Linear issue in the configured team, created through the
// Linear GraphQL API.
package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"feedbackflow/platform/connectors/base"
	"feedbackflow/platform/feedback"
)

const (
	// DefaultEndpoint is the Linear GraphQL API endpoint.
	DefaultEndpoint = "https://api.linear.app/graphql"
	// DefaultTimeout bounds one API call.
	DefaultTimeout = 10 * time.Second
	// MaxResponseSize caps how much of a response body is read (1MB).
	MaxResponseSize = 1 * 1024 * 1024
)

// Config holds the credentials and settings for the Linear connector.
type Config struct {
	APIKey   string        // personal or OAuth API key, sent as Authorization
	TeamID   string        // team the issues are created in
	Endpoint string        // override for tests; defaults to DefaultEndpoint
	Timeout  time.Duration // per-call budget; defaults to DefaultTimeout
}

// LinearConnector implements base.Connector against the Linear API.
type LinearConnector struct {
	name       string
	config     Config
	httpClient *http.Client
	logger     *log.Logger
}

// New creates a Linear connector registered under name.
func New(name string, config Config) *LinearConnector {
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	return &LinearConnector{
		name:       name,
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     log.New(os.Stdout, "[FEEDBACK_LINEAR] ", log.LstdFlags),
	}
}

// Detect implements base.Connector: the connector is available when both the
// API key and the team id are configured. No network I/O is performed.
func (c *LinearConnector) Detect(ctx context.Context) bool {
	return c.config.APIKey != "" && c.config.TeamID != ""
}

// HealthCheck implements base.Connector with an authenticated no-op call
// (the viewer query).
func (c *LinearConnector) HealthCheck(ctx context.Context) (*base.HealthStatus, error) {
	start := time.Now()
	_, status, err := c.graphql(ctx, `query { viewer { id } }`, nil)
	latency := time.Since(start)

	if err != nil {
		return &base.HealthStatus{
			Healthy:   false,
			Latency:   latency,
			Timestamp: time.Now(),
			Error:     err.Error(),
		}, nil
	}
	if status != http.StatusOK {
		return &base.HealthStatus{
			Healthy:   false,
			Latency:   latency,
			Timestamp: time.Now(),
			Error:     fmt.Sprintf("unexpected status %d", status),
		}, nil
	}
	return &base.HealthStatus{
		Healthy:   true,
		Latency:   latency,
		Timestamp: time.Now(),
	}, nil
}

// issueCreateResponse is the part of the issueCreate payload we consume.
type issueCreateResponse struct {
	Data struct {
		IssueCreate struct {
			Success bool `json:"success"`
			Issue   struct {
				ID         string `json:"id"`
				Identifier string `json:"identifier"`
				URL        string `json:"url"`
			} `json:"issue"`
		} `json:"issueCreate"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Store implements base.Connector by creating one issue per record.
func (c *LinearConnector) Store(ctx context.Context, rec *feedback.Record) (*base.StorageResult, error) {
	mutation := `mutation IssueCreate($input: IssueCreateInput!) {
		issueCreate(input: $input) {
			success
			issue { id identifier url }
		}
	}`
	variables := map[string]interface{}{
		"input": map[string]interface{}{
			"teamId":      c.config.TeamID,
			"title":       issueTitle(rec),
			"description": issueDescription(rec),
		},
	}

	body, status, err := c.graphql(ctx, mutation, variables)
	if err != nil {
		return base.Failure(base.NewConnectorError(c.name, "Store", "issue creation request failed", err)), nil
	}
	if status != http.StatusOK {
		return base.FailureMessage(
			fmt.Sprintf("%s.Store: issue creation returned status %d", c.name, status),
			base.ClassifyStatus(status),
		), nil
	}

	var parsed issueCreateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return base.FailureMessage(fmt.Sprintf("%s.Store: malformed API response: %v", c.name, err), true), nil
	}
	if len(parsed.Errors) > 0 {
		msg := parsed.Errors[0].Message
		return base.Failure(base.NewConnectorError(c.name, "Store", "API error: "+msg, nil)), nil
	}
	if !parsed.Data.IssueCreate.Success {
		return base.FailureMessage(c.name+".Store: issue creation reported failure", true), nil
	}

	issue := parsed.Data.IssueCreate.Issue
	res := base.Stored(issue.ID)
	res.Metadata = map[string]interface{}{
		"identifier": issue.Identifier,
		"url":        issue.URL,
	}
	c.logger.Printf("Created issue %s for page %s", issue.Identifier, rec.Page)
	return res, nil
}

// graphql posts one GraphQL request and returns the raw body and status.
func (c *LinearConnector) graphql(ctx context.Context, query string, variables map[string]interface{}) ([]byte, int, error) {
	payload := map[string]interface{}{"query": query}
	if variables != nil {
		payload["variables"] = variables
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// issueTitle builds a compact, scannable issue title.
func issueTitle(rec *feedback.Record) string {
	return fmt.Sprintf("[Docs %s] %s", rec.Category, rec.Page)
}

// issueDescription renders the record as issue markdown.
func issueDescription(rec *feedback.Record) string {
	var b strings.Builder
	b.WriteString(rec.Comment)
	b.WriteString("\n\n---\n")
	fmt.Fprintf(&b, "**Page:** %s\n", rec.Page)
	fmt.Fprintf(&b, "**Category:** %s\n", rec.Category)
	if rec.SectionID != "" {
		fmt.Fprintf(&b, "**Section:** %s\n", rec.SectionID)
	}
	if rec.HighlightedText != "" {
		fmt.Fprintf(&b, "**Highlighted text:**\n> %s\n", rec.HighlightedText)
	}
	if rec.SuggestedTag != "" {
		fmt.Fprintf(&b, "**Suggested tag:** %s\n", rec.SuggestedTag)
	}
	if rec.UserEmail != "" {
		fmt.Fprintf(&b, "**Reporter:** %s\n", rec.UserEmail)
	}
	if rec.UserAgent != "" {
		fmt.Fprintf(&b, "**User agent:** %s\n", rec.UserAgent)
	}
	if rec.Timestamp != "" {
		fmt.Fprintf(&b, "**Submitted:** %s\n", rec.Timestamp)
	}
	return b.String()
}

// Name returns the connector instance name.
func (c *LinearConnector) Name() string { return c.name }

// Type returns the connector type.
func (c *LinearConnector) Type() string { return "linear" }
