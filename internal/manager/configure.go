// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package manager

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-plugin-config/internal/host"
	"github.com/MKhiriev/go-plugin-config/internal/plugin"
)

// ErrUnsupportedInput is returned by [Run] for input that is neither a plugin
// list nor a manager callback.
var ErrUnsupportedInput = errors.New("unsupported configure input")

// Configure builds a Manager over the host's store and loader, registers it
// on the host container, merges the defaults of every spec and then
// configures every spec, both in list order.
func Configure(ctx context.Context, h *host.Host, specs []plugin.Spec) error {
	m := attach(h)
	m.log.Debug().Int("plugins", len(specs)).Msg("configuring plugins")

	if _, err := m.MergeDefaults(ctx, specs); err != nil {
		return err
	}

	return m.ConfigurePlugins(ctx, h, specs)
}

// ConfigureWith registers a Manager on the host and hands it to fn, which
// decides what to merge and configure. The result of fn is passed through.
func ConfigureWith[T any](ctx context.Context, h *host.Host, fn func(context.Context, *Manager) (T, error)) (T, error) {
	return fn(ctx, attach(h))
}

// Run dispatches on the shape of input: a []plugin.Spec or a decoded []any
// list runs [Configure]; a func(*Manager) error or
// func(context.Context, *Manager) error runs as a callback. Any other input
// yields [ErrUnsupportedInput].
func Run(ctx context.Context, h *host.Host, input any) error {
	switch v := input.(type) {
	case []plugin.Spec:
		return Configure(ctx, h, v)
	case []any:
		specs, err := plugin.ParseList(v)
		if err != nil {
			return err
		}
		return Configure(ctx, h, specs)
	case func(*Manager) error:
		return v(attach(h))
	case func(context.Context, *Manager) error:
		return v(ctx, attach(h))
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedInput, input)
	}
}

func attach(h *host.Host) *Manager {
	m := New(h.Store(), h.Loader, h.Logger)
	host.Register(h.Container, m)

	return m
}
