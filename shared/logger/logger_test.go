// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"
)

// capture redirects the standard logger and returns the parsed JSON entry.
func capture(t *testing.T, fn func()) LogEntry {
	t.Helper()

	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	fn()

	line := buf.String()
	// Strip the date/time prefix the standard logger prepends.
	idx := strings.Index(line, "{")
	if idx < 0 {
		t.Fatalf("no JSON in log output: %q", line)
	}

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(line[idx:])), &entry); err != nil {
		t.Fatalf("failed to parse log entry: %v (line: %q)", err, line)
	}
	return entry
}

func TestInfoCarriesCorrelationID(t *testing.T) {
	l := New("feedback-handler")
	entry := capture(t, func() {
		l.Info("corr-123", "feedback processed", map[string]interface{}{
			"connectors": 2,
		})
	})

	if entry.Level != INFO {
		t.Errorf("expected level INFO, got %s", entry.Level)
	}
	if entry.Component != "feedback-handler" {
		t.Errorf("expected component feedback-handler, got %s", entry.Component)
	}
	if entry.CorrelationID != "corr-123" {
		t.Errorf("expected correlation_id corr-123, got %s", entry.CorrelationID)
	}
	if entry.Message != "feedback processed" {
		t.Errorf("unexpected message: %s", entry.Message)
	}
	if entry.Fields["connectors"] != float64(2) {
		t.Errorf("expected connectors field 2, got %v", entry.Fields["connectors"])
	}
	if entry.Timestamp == "" {
		t.Error("expected non-empty timestamp")
	}
}

func TestWarnAndErrorLevels(t *testing.T) {
	l := New("test")

	entry := capture(t, func() { l.Warn("", "slow connector", nil) })
	if entry.Level != WARN {
		t.Errorf("expected WARN, got %s", entry.Level)
	}
	if entry.CorrelationID != "" {
		t.Errorf("empty correlation id must stay empty, got %q", entry.CorrelationID)
	}

	entry = capture(t, func() { l.Error("corr-9", "store failed", nil) })
	if entry.Level != ERROR {
		t.Errorf("expected ERROR, got %s", entry.Level)
	}
}

func TestErrorWithErrAddsErrorField(t *testing.T) {
	l := New("test")
	entry := capture(t, func() {
		l.ErrorWithErr("corr-1", "store failed", errors.New("connection refused"), nil)
	})

	if entry.Fields["error"] != "connection refused" {
		t.Errorf("expected error field, got %v", entry.Fields["error"])
	}
}

func TestErrorWithErrNilError(t *testing.T) {
	l := New("test")
	entry := capture(t, func() {
		l.ErrorWithErr("", "something", nil, map[string]interface{}{"k": "v"})
	})

	if _, ok := entry.Fields["error"]; ok {
		t.Error("nil error must not add an error field")
	}
	if entry.Fields["k"] != "v" {
		t.Errorf("existing fields must be preserved, got %v", entry.Fields)
	}
}
