// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

// Package feedback defines the feedback record submitted by the documentation
// widget and its ingress validation. A record is validated once, at the HTTP
// boundary, before any storage connector sees it; after that it is treated as
// immutable for the duration of the submission.
package feedback

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Category is the closed set of feedback categories the widget offers.
type Category string

const (
	CategoryBug        Category = "Bug"
	CategoryTypo       Category = "Typo"
	CategoryConfusing  Category = "Confusing"
	CategoryOutdated   Category = "Outdated"
	CategorySuggestion Category = "Suggestion"
	CategoryOther      Category = "Other"
)

// Categories lists all valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryBug,
		CategoryTypo,
		CategoryConfusing,
		CategoryOutdated,
		CategorySuggestion,
		CategoryOther,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryBug, CategoryTypo, CategoryConfusing, CategoryOutdated,
		CategorySuggestion, CategoryOther:
		return true
	}
	return false
}

const (
	// MaxCommentLength bounds the free-text comment.
	MaxCommentLength = 5000
	// MaxSuggestedTagLength bounds the optional suggested tag.
	MaxSuggestedTagLength = 100
)

// emailPattern is intentionally loose: one @, no whitespace, a dot in the
// domain. Full RFC 5322 validation buys nothing for an optional field.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Record is one feedback submission from a documentation page.
type Record struct {
	Page            string   `json:"page"`
	Category        Category `json:"category"`
	Comment         string   `json:"comment"`
	Timestamp       string   `json:"timestamp"`
	UserAgent       string   `json:"userAgent,omitempty"`
	HighlightedText string   `json:"highlightedText,omitempty"`
	SectionID       string   `json:"sectionId,omitempty"`
	SuggestedTag    string   `json:"suggestedTag,omitempty"`
	UserEmail       string   `json:"userEmail,omitempty"`
	UserID          string   `json:"userId,omitempty"`
	UserName        string   `json:"userName,omitempty"`
}

// ValidationError describes why a record was rejected at ingress.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid feedback: %s %s", e.Field, e.Message)
}

// Validate checks the record against the ingress contract. A record that
// fails validation must never reach a connector.
func (r *Record) Validate() error {
	if r.Page == "" {
		return &ValidationError{Field: "page", Message: "is required"}
	}
	if !strings.HasPrefix(r.Page, "/") {
		return &ValidationError{Field: "page", Message: "must start with /"}
	}
	if !r.Category.Valid() {
		return &ValidationError{Field: "category", Message: fmt.Sprintf("%q is not a known category", string(r.Category))}
	}
	if r.Comment == "" {
		return &ValidationError{Field: "comment", Message: "is required"}
	}
	if utf8.RuneCountInString(r.Comment) > MaxCommentLength {
		return &ValidationError{Field: "comment", Message: fmt.Sprintf("exceeds %d characters", MaxCommentLength)}
	}
	if r.Timestamp == "" {
		return &ValidationError{Field: "timestamp", Message: "is required"}
	}
	if _, err := time.Parse(time.RFC3339, r.Timestamp); err != nil {
		return &ValidationError{Field: "timestamp", Message: "is not a valid RFC 3339 datetime"}
	}
	if utf8.RuneCountInString(r.SuggestedTag) > MaxSuggestedTagLength {
		return &ValidationError{Field: "suggestedTag", Message: fmt.Sprintf("exceeds %d characters", MaxSuggestedTagLength)}
	}
	if r.UserEmail != "" && !emailPattern.MatchString(r.UserEmail) {
		return &ValidationError{Field: "userEmail", Message: "is not a valid email address"}
	}
	return nil
}
