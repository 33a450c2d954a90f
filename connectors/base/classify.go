// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

package base

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
)

// Retryability classification. The contract is the categories, not the
// mechanism: network/timeout/rate-limit failures are worth resubmitting,
// authentication/authorization failures are not, and anything unclassified
// fails open toward allowing a retry.

// authPatterns mark failures that resubmitting will not fix.
var authPatterns = []string{
	"unauthorized",
	"unauthenticated",
	"forbidden",
	"permission denied",
	"access denied",
	"invalid api key",
	"invalid token",
	"authentication",
	"password authentication failed",
	"401",
	"403",
}

// transientPatterns mark failures that are plausibly transient.
var transientPatterns = []string{
	"connection refused",
	"connection reset",
	"connection timed out",
	"timeout",
	"timed out",
	"temporary failure",
	"service unavailable",
	"too many requests",
	"rate limit",
	"429",
	"502",
	"503",
	"504",
}

// Classify reports whether a store failure is worth retrying.
//
// A store cut off by its per-connector deadline counts as retryable: the
// backend may simply have been slow, and the submission never completed.
func Classify(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range authPatterns {
		if strings.Contains(msg, pattern) {
			return false
		}
	}
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}

	// Unclassified failures fail open.
	return true
}

// ClassifyStatus reports retryability for an HTTP response status code.
func ClassifyStatus(code int) bool {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return false
	case http.StatusTooManyRequests:
		return true
	}
	if code >= 500 {
		return true
	}
	// Other 4xx responses mean the request itself was rejected, but the
	// unclassified default still fails open.
	return true
}
