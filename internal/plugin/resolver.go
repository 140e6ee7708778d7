// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package plugin

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-plugin-config/internal/host"
	"github.com/MKhiriev/go-plugin-config/internal/loader"
)

// ConfigureFunc is the setup callable a plugin exports. It receives the host
// and the fully merged configuration.
type ConfigureFunc func(ctx context.Context, h *host.Host, data map[string]any) error

// Resolver turns specs into merge content and configure callables.
type Resolver struct {
	loader loader.Loader
}

// NewResolver returns a Resolver loading modules through l.
func NewResolver(l loader.Loader) *Resolver {
	return &Resolver{loader: l}
}

// LoadExported loads moduleID and returns its export. Loader errors are
// returned unchanged; a missing export yields an error wrapping
// [ErrExportNotFound] that names the export and the module.
func (r *Resolver) LoadExported(ctx context.Context, moduleID, export string) (any, error) {
	exports, err := r.loader.LoadModule(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	value, ok := exports[export]
	if !ok {
		return nil, &exportNotFoundError{moduleID: moduleID, export: export}
	}

	return value, nil
}

// Defaults resolves the content merged for spec.
func (r *Resolver) Defaults(ctx context.Context, spec Spec) (map[string]any, error) {
	if spec.IsInline() {
		return spec.Value(), nil
	}

	value, err := r.LoadExported(ctx, spec.ModuleID(), spec.DefaultsExport())
	if err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	case loader.Exports:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %s of %s is %T, want a mapping",
			ErrInvalidExport, spec.DefaultsExport(), spec.ModuleID(), value)
	}
}

// Configure resolves the configure callable of spec. Inline specs have none
// and yield (nil, nil).
func (r *Resolver) Configure(ctx context.Context, spec Spec) (ConfigureFunc, error) {
	if spec.IsInline() {
		return nil, nil
	}

	value, err := r.LoadExported(ctx, spec.ModuleID(), ConfigureExport)
	if err != nil {
		return nil, err
	}

	switch fn := value.(type) {
	case ConfigureFunc:
		return fn, nil
	case func(context.Context, *host.Host, map[string]any) error:
		return fn, nil
	case func(context.Context, map[string]any) error:
		return func(ctx context.Context, _ *host.Host, data map[string]any) error {
			return fn(ctx, data)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s of %s is %T, want a callable",
			ErrInvalidExport, ConfigureExport, spec.ModuleID(), value)
	}
}
