// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"context"
	"log"
	"os"
	"sync"

	"feedbackflow/platform/connectors/base"
)

// Registry manages all registered feedback storage connectors.
// Thread-safe for concurrent access; in practice it is populated once at
// startup and read-only afterwards, so submissions never contend on it.
type Registry struct {
	connectors map[string]base.Connector
	order      []string // registration order, stable for a process lifetime
	mu         sync.RWMutex
	logger     *log.Logger
}

// New creates an empty connector registry.
func New() *Registry {
	return &Registry{
		connectors: make(map[string]base.Connector),
		logger:     log.New(os.Stdout, "[FEEDBACK_REGISTRY] ", log.LstdFlags),
	}
}

// Register adds a connector under its declared name. Registering a name that
// already exists replaces the prior connector (last write wins); it does not
// accumulate duplicates.
func (r *Registry) Register(connector base.Connector) {
	name := connector.Name()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.connectors[name]; exists {
		r.logger.Printf("Replacing connector '%s' (type: %s)", name, connector.Type())
	} else {
		r.order = append(r.order, name)
		r.logger.Printf("Registered connector '%s' (type: %s)", name, connector.Type())
	}
	r.connectors[name] = connector
}

// Get retrieves a connector by name. The second return value reports whether
// the name is registered.
func (r *Registry) Get(name string) (base.Connector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	connector, ok := r.connectors[name]
	return connector, ok
}

// List returns all registered connectors in registration order.
func (r *Registry) List() []base.Connector {
	r.mu.RLock()
	defer r.mu.RUnlock()

	connectors := make([]base.Connector, 0, len(r.order))
	for _, name := range r.order {
		connectors = append(connectors, r.connectors[name])
	}
	return connectors
}

// Names returns all registered connector names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Count returns the number of registered connectors.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.connectors)
}

// DetectAvailable returns the subset of registered connectors that currently
// report themselves available, in registration order. Each probe runs
// independently: a probe that panics marks that connector unavailable and is
// logged, without aborting discovery for the others.
func (r *Registry) DetectAvailable(ctx context.Context) []base.Connector {
	available := make([]base.Connector, 0, r.Count())

	for _, connector := range r.List() {
		if r.safeDetect(ctx, connector) {
			available = append(available, connector)
		}
	}
	return available
}

// safeDetect runs one availability probe, converting a panic into "not
// available".
func (r *Registry) safeDetect(ctx context.Context, connector base.Connector) (available bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Printf("Availability probe panicked for connector '%s': %v", connector.Name(), rec)
			available = false
		}
	}()
	return connector.Detect(ctx)
}

// CheckHealth performs health checks on every registered connector and
// returns a name-to-healthy mapping. A probe that errors, panics, or reports
// an unhealthy status maps that connector to false; one broken connector
// never prevents reporting on the others.
func (r *Registry) CheckHealth(ctx context.Context) map[string]bool {
	results := make(map[string]bool)

	for _, connector := range r.List() {
		results[connector.Name()] = r.safeHealthCheck(ctx, connector)
	}
	return results
}

func (r *Registry) safeHealthCheck(ctx context.Context, connector base.Connector) (healthy bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Printf("Health check panicked for connector '%s': %v", connector.Name(), rec)
			healthy = false
		}
	}()

	status, err := connector.HealthCheck(ctx)
	if err != nil {
		r.logger.Printf("Health check failed for connector '%s': %v", connector.Name(), err)
		return false
	}
	return status != nil && status.Healthy
}
