// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

package mock

import (
	"context"
	"fmt"
	"testing"
	"time"

	"feedbackflow/platform/feedback"
)

func testRecord(page string) *feedback.Record {
	return &feedback.Record{
		Page:      page,
		Category:  feedback.CategoryBug,
		Comment:   "test",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func TestAlwaysAvailableAndHealthy(t *testing.T) {
	c := New("mock")
	if !c.Detect(context.Background()) {
		t.Error("mock connector must always be available")
	}
	status, err := c.HealthCheck(context.Background())
	if err != nil || !status.Healthy {
		t.Errorf("mock connector must always be healthy: %v / %+v", err, status)
	}
}

func TestStore(t *testing.T) {
	c := New("mock")
	res, err := c.Store(context.Background(), testRecord("/docs/a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got: %s", res.Error)
	}
	if res.ID == "" {
		t.Error("expected an assigned id")
	}

	stored := c.Stored()
	if len(stored) != 1 || stored[0].Page != "/docs/a" {
		t.Errorf("unexpected stored records: %v", stored)
	}
}

func TestStore_RetentionBounded(t *testing.T) {
	c := New("mock")
	for i := 0; i < DefaultRetain+25; i++ {
		if _, err := c.Store(context.Background(), testRecord(fmt.Sprintf("/docs/%d", i))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	stored := c.Stored()
	if len(stored) != DefaultRetain {
		t.Fatalf("expected %d retained records, got %d", DefaultRetain, len(stored))
	}
	// Oldest retained record is the 26th submitted.
	if stored[0].Page != "/docs/25" {
		t.Errorf("expected oldest retained to be /docs/25, got %s", stored[0].Page)
	}
}

func TestAnalytics(t *testing.T) {
	c := New("mock")
	_, _ = c.Store(context.Background(), testRecord("/a"))
	rec := testRecord("/b")
	rec.Category = feedback.CategoryTypo
	_, _ = c.Store(context.Background(), rec)
	_, _ = c.Store(context.Background(), testRecord("/c"))

	snapshot, err := c.Analytics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.Total != 3 {
		t.Errorf("expected total 3, got %d", snapshot.Total)
	}
	if snapshot.ByCategory["Bug"] != 2 || snapshot.ByCategory["Typo"] != 1 {
		t.Errorf("unexpected category counts: %v", snapshot.ByCategory)
	}
}

func TestAnalytics_CountsSurviveEviction(t *testing.T) {
	c := New("mock")
	total := DefaultRetain + 10
	for i := 0; i < total; i++ {
		_, _ = c.Store(context.Background(), testRecord("/docs/x"))
	}

	snapshot, err := c.Analytics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.Total != int64(total) {
		t.Errorf("expected total %d, got %d", total, snapshot.Total)
	}
}
