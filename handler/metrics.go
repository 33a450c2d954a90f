// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics
var (
	promSubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedbackflow_submissions_total",
			Help: "Total number of feedback submissions processed",
		},
		[]string{"status"},
	)
	promStoreTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedbackflow_connector_store_total",
			Help: "Total number of per-connector store attempts",
		},
		[]string{"connector", "status"},
	)
	promStoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedbackflow_connector_store_duration_milliseconds",
			Help:    "Per-connector store duration in milliseconds",
			Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000, 10000},
		},
		[]string{"connector"},
	)
)

func init() {
	// Register Prometheus metrics
	prometheus.MustRegister(promSubmissionsTotal)
	prometheus.MustRegister(promStoreTotal)
	prometheus.MustRegister(promStoreDuration)
}
