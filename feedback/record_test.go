// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

package feedback

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validRecord() *Record {
	return &Record{
		Page:      "/docs/getting-started",
		Category:  CategoryBug,
		Comment:   "The example in step 3 does not compile",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func TestRecord_Validate_Valid(t *testing.T) {
	rec := validRecord()
	if err := rec.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecord_Validate_OptionalFields(t *testing.T) {
	rec := validRecord()
	rec.UserAgent = "Mozilla/5.0"
	rec.HighlightedText = "some highlighted text"
	rec.SectionID = "step-3"
	rec.SuggestedTag = "golang"
	rec.UserEmail = "reader@example.com"
	rec.UserID = "u-123"
	rec.UserName = "Reader"

	if err := rec.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecord_Validate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Record)
		field  string
	}{
		{"missing page", func(r *Record) { r.Page = "" }, "page"},
		{"page without leading slash", func(r *Record) { r.Page = "docs/x" }, "page"},
		{"unknown category", func(r *Record) { r.Category = "Rant" }, "category"},
		{"empty category", func(r *Record) { r.Category = "" }, "category"},
		{"missing comment", func(r *Record) { r.Comment = "" }, "comment"},
		{"oversized comment", func(r *Record) { r.Comment = strings.Repeat("x", MaxCommentLength+1) }, "comment"},
		{"missing timestamp", func(r *Record) { r.Timestamp = "" }, "timestamp"},
		{"garbage timestamp", func(r *Record) { r.Timestamp = "not-a-datetime" }, "timestamp"},
		{"date without time", func(r *Record) { r.Timestamp = "2026-08-31" }, "timestamp"},
		{"oversized tag", func(r *Record) { r.SuggestedTag = strings.Repeat("t", MaxSuggestedTagLength+1) }, "suggestedTag"},
		{"malformed email", func(r *Record) { r.UserEmail = "not-an-email" }, "userEmail"},
		{"email without domain dot", func(r *Record) { r.UserEmail = "a@b" }, "userEmail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(rec)

			err := rec.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}
}

func TestRecord_Validate_CommentBoundaries(t *testing.T) {
	rec := validRecord()
	rec.Comment = "x"
	if err := rec.Validate(); err != nil {
		t.Errorf("1-char comment should be valid: %v", err)
	}

	rec.Comment = strings.Repeat("x", MaxCommentLength)
	if err := rec.Validate(); err != nil {
		t.Errorf("%d-char comment should be valid: %v", MaxCommentLength, err)
	}
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Errorf("category %q should be valid", c)
		}
	}
	if Category("bug").Valid() {
		t.Error("category matching is case-sensitive; 'bug' should be invalid")
	}
}
