// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loader

import (
	"context"
	"maps"
	"sync"
)

// Registry is an in-memory module table for plugins compiled into the host.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Exports
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Exports)}
}

// Register installs exports under moduleID, replacing any previous module.
func (r *Registry) Register(moduleID string, exports Exports) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.modules[moduleID] = maps.Clone(exports)
	return r
}

// LoadModule implements [Loader]. The returned Exports is a shallow copy.
func (r *Registry) LoadModule(ctx context.Context, moduleID string) (Exports, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	exports, ok := r.modules[moduleID]
	if !ok {
		return nil, notFound(moduleID)
	}

	return maps.Clone(exports), nil
}
