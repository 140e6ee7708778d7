// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package host models the application that consumes plugin configuration:
// a [Container] of singletons, the module loader used to resolve plugins and
// the logger shared by the pipeline.
package host

import (
	"reflect"
	"sync"

	"github.com/MKhiriev/go-plugin-config/internal/loader"
	"github.com/MKhiriev/go-plugin-config/internal/logger"
	"github.com/MKhiriev/go-plugin-config/internal/store"
)

// Container holds one instance per type. It is safe for concurrent use.
type Container struct {
	mu        sync.RWMutex
	instances map[reflect.Type]any
}

// NewContainer returns an empty Container.
func NewContainer() *Container {
	return &Container{instances: make(map[reflect.Type]any)}
}

// Register installs v as the singleton of type T, replacing any previous one.
func Register[T any](c *Container, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.instances[typeOf[T]()] = v
}

// Get returns the singleton of type T and whether one is registered.
func Get[T any](c *Container) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.instances[typeOf[T]()].(T)
	return v, ok
}

// GetOrRegister returns the singleton of type T, registering the result of
// create when none exists yet.
func GetOrRegister[T any](c *Container, create func() T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := typeOf[T]()
	if v, ok := c.instances[key].(T); ok {
		return v
	}

	v := create()
	c.instances[key] = v
	return v
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Host is handed to the configuration pipeline and to every plugin's
// configure callable.
type Host struct {
	Container *Container
	Loader    loader.Loader
	Logger    *logger.Logger
}

// New returns a Host with a fresh container holding an empty config store.
// A nil logger is replaced with [logger.Nop].
func New(l loader.Loader, log *logger.Logger) *Host {
	if log == nil {
		log = logger.Nop()
	}

	h := &Host{
		Container: NewContainer(),
		Loader:    l,
		Logger:    log,
	}
	Register(h.Container, store.New())

	return h
}

// Store returns the host's config store, creating it on first use.
func (h *Host) Store() *store.Store {
	return GetOrRegister(h.Container, store.New)
}
