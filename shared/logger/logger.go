// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

// Package logger provides structured JSON logging for the feedback pipeline.
// Every submission carries a correlation identifier; log lines emitted on its
// behalf include it so one submission can be traced across connectors and
// across the backends' own logs.
package logger

import (
	"encoding/json"
	"log"
	"time"
)

// LogLevel represents the severity of a log entry.
type LogLevel string

const (
	DEBUG LogLevel = "DEBUG"
	INFO  LogLevel = "INFO"
	WARN  LogLevel = "WARN"
	ERROR LogLevel = "ERROR"
)

// Logger emits structured log entries for one component.
type Logger struct {
	Component string
}

// LogEntry is the JSON shape of one log line.
type LogEntry struct {
	Timestamp     string                 `json:"timestamp"`
	Level         LogLevel               `json:"level"`
	Component     string                 `json:"component"`
	CorrelationID string                 `json:"correlation_id,omitempty"`
	Message       string                 `json:"message"`
	Fields        map[string]interface{} `json:"fields,omitempty"`
}

// New creates a Logger for the specified component.
func New(component string) *Logger {
	return &Logger{Component: component}
}

// Log writes one structured entry to stdout.
func (l *Logger) Log(level LogLevel, correlationID, message string, fields map[string]interface{}) {
	entry := LogEntry{
		Timestamp:     time.Now().UTC().Format(time.RFC3339Nano),
		Level:         level,
		Component:     l.Component,
		CorrelationID: correlationID,
		Message:       message,
		Fields:        fields,
	}

	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		// Fallback to plain text if JSON marshaling fails
		log.Printf("ERROR: Failed to marshal log entry: %v", err)
		return
	}
	log.Println(string(jsonBytes))
}

// Info logs an informational message.
func (l *Logger) Info(correlationID, message string, fields map[string]interface{}) {
	l.Log(INFO, correlationID, message, fields)
}

// Warn logs a warning message.
func (l *Logger) Warn(correlationID, message string, fields map[string]interface{}) {
	l.Log(WARN, correlationID, message, fields)
}

// Error logs an error message.
func (l *Logger) Error(correlationID, message string, fields map[string]interface{}) {
	l.Log(ERROR, correlationID, message, fields)
}

// Debug logs a debug message.
func (l *Logger) Debug(correlationID, message string, fields map[string]interface{}) {
	l.Log(DEBUG, correlationID, message, fields)
}

// ErrorWithErr logs an error message carrying the error text as a field.
func (l *Logger) ErrorWithErr(correlationID, message string, err error, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	l.Error(correlationID, message, fields)
}
