// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

// Package config resolves connector credentials and settings from either a
// platform-provided key/value map or the process environment. Hosting
// platforms that inject configuration as a map (edge runtimes, function
// platforms) layer it over os.Getenv; plain deployments just use the
// environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// Resolver looks up configuration keys, preferring an explicit key/value map
// over the process environment.
type Resolver struct {
	values map[string]string
}

// NewResolver creates a resolver backed by a platform-provided map. A nil
// map is valid and falls through to the environment for every key.
func NewResolver(values map[string]string) *Resolver {
	return &Resolver{values: values}
}

// FromEnv creates a resolver that reads the process environment only.
func FromEnv() *Resolver {
	return &Resolver{}
}

// Get returns the value for key, or "" when it is set nowhere.
func (r *Resolver) Get(key string) string {
	if v, ok := r.values[key]; ok && v != "" {
		return v
	}
	return os.Getenv(key)
}

// GetDefault returns the value for key, or def when it is set nowhere.
func (r *Resolver) GetDefault(key, def string) string {
	if v := r.Get(key); v != "" {
		return v
	}
	return def
}

// GetDuration parses the value for key as a time.Duration, falling back to
// def when the key is unset or malformed.
func (r *Resolver) GetDuration(key string, def time.Duration) time.Duration {
	v := r.Get(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// GetInt parses the value for key as an int, falling back to def when the
// key is unset or malformed.
func (r *Resolver) GetInt(key string, def int) int {
	v := r.Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
