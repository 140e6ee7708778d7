// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loader

import (
	"context"
	"errors"
)

type chain []Loader

// Chain returns a Loader that asks each loader in order and returns the first
// module found. Errors other than [ErrModuleNotFound] stop the search.
func Chain(loaders ...Loader) Loader {
	return chain(loaders)
}

func (c chain) LoadModule(ctx context.Context, moduleID string) (Exports, error) {
	for _, l := range c {
		exports, err := l.LoadModule(ctx, moduleID)
		if errors.Is(err, ErrModuleNotFound) {
			continue
		}

		return exports, err
	}

	return nil, notFound(moduleID)
}
