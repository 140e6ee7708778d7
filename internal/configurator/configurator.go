// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package configurator builds single-shot configure functions that apply one
// inline configuration to a singleton held by the host container, without
// loading any plugin.
package configurator

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-plugin-config/internal/host"
)

var (
	// ErrNotRegistered is returned when the host container holds no instance
	// of the configured type.
	ErrNotRegistered = errors.New("instance not registered")

	// ErrNoConfigureMethod is returned when no method was given and the
	// instance does not implement [Configurable].
	ErrNoConfigureMethod = errors.New("no configure method")

	// ErrUnsupportedInput is returned for a configuration that is neither a
	// mapping nor a callback.
	ErrUnsupportedInput = errors.New("unsupported configuration input")
)

// Configurable is implemented by types that accept a plain configuration
// mapping. It is the setter used when [Make] receives no method.
type Configurable interface {
	Configure(cfg map[string]any) error
}

// Method applies a configuration mapping to an instance.
type Method[S any] func(instance S, cfg map[string]any) error

// Configurator applies configuration to the S singleton of a host.
type Configurator[S any] struct {
	method Method[S]
}

// Make returns a Configurator that applies mappings through method, or
// through [Configurable] when method is nil.
func Make[S any](method Method[S]) *Configurator[S] {
	return &Configurator[S]{method: method}
}

// Configure fetches the S singleton from h and applies configOrCallback:
// nil applies an empty mapping, a map[string]any goes through the setter,
// and a func(S) or func(S) error receives the instance to mutate directly.
// The instance is returned in every case.
func (c *Configurator[S]) Configure(h *host.Host, configOrCallback any) (S, error) {
	instance, ok := host.Get[S](h.Container)
	if !ok {
		var zero S
		return zero, fmt.Errorf("%w: %T", ErrNotRegistered, zero)
	}

	switch v := configOrCallback.(type) {
	case nil:
		return instance, c.apply(instance, map[string]any{})
	case map[string]any:
		return instance, c.apply(instance, v)
	case func(S):
		v(instance)
		return instance, nil
	case func(S) error:
		return instance, v(instance)
	default:
		return instance, fmt.Errorf("%w: %T", ErrUnsupportedInput, configOrCallback)
	}
}

func (c *Configurator[S]) apply(instance S, cfg map[string]any) error {
	if c.method != nil {
		return c.method(instance, cfg)
	}

	configurable, ok := any(instance).(Configurable)
	if !ok {
		return fmt.Errorf("%w: %T does not implement Configurable", ErrNoConfigureMethod, instance)
	}

	return configurable.Configure(cfg)
}
