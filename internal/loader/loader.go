// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package loader defines the module loader contract used to resolve plugin
// modules and ships the loaders available to the host: an in-memory
// [Registry], a [FileLoader] for JSON/YAML/TOML documents and a [Chain] that
// combines several loaders.
package loader

import (
	"context"
	"errors"
	"fmt"
)

//go:generate mockgen -source=loader.go -destination=../mock/loader_mock.go -package=mock

// ErrModuleNotFound is returned (wrapped) when a loader cannot locate a
// module identifier.
var ErrModuleNotFound = errors.New("module not found")

// Exports maps export names of a loaded module to their values. A plugin
// module typically exports "defaults" (a mapping) and "configure" (a
// callable).
type Exports map[string]any

// Loader resolves a module identifier to its exports.
type Loader interface {
	LoadModule(ctx context.Context, moduleID string) (Exports, error)
}

// LoaderFunc adapts a function to the [Loader] interface.
type LoaderFunc func(ctx context.Context, moduleID string) (Exports, error)

// LoadModule calls f(ctx, moduleID).
func (f LoaderFunc) LoadModule(ctx context.Context, moduleID string) (Exports, error) {
	return f(ctx, moduleID)
}

func notFound(moduleID string) error {
	return fmt.Errorf("%w: %s", ErrModuleNotFound, moduleID)
}
