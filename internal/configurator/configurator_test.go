// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package configurator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-plugin-config/internal/host"
	"github.com/MKhiriev/go-plugin-config/internal/loader"
	"github.com/MKhiriev/go-plugin-config/internal/store"
)

type plainSettings struct {
	values map[string]any
}

func newTestHost() *host.Host {
	return host.New(loader.NewRegistry(), nil)
}

// ── default setter ────────────────────────────────────────────────────────────

// TestConfigure_StoreDefaultSetter verifies that the store's own Configure
// method is used when no method is given.
func TestConfigure_StoreDefaultSetter(t *testing.T) {
	h := newTestHost()
	h.Store().Merge(map[string]any{"db": map[string]any{"host": "localhost"}})

	s, err := Make[*store.Store](nil).Configure(h, map[string]any{
		"db": map[string]any{"port": 5432},
	})
	require.NoError(t, err)

	assert.Same(t, h.Store(), s)
	assert.Equal(t, map[string]any{
		"db": map[string]any{"host": "localhost", "port": 5432},
	}, s.Data())
}

func TestConfigure_NilConfig(t *testing.T) {
	h := newTestHost()

	s, err := Make[*store.Store](nil).Configure(h, nil)
	require.NoError(t, err)
	assert.Empty(t, s.Data())
}

func TestConfigure_NoConfigureMethod(t *testing.T) {
	h := newTestHost()
	host.Register(h.Container, &plainSettings{})

	_, err := Make[*plainSettings](nil).Configure(h, map[string]any{"a": 1})
	assert.ErrorIs(t, err, ErrNoConfigureMethod)
}

// ── explicit method ───────────────────────────────────────────────────────────

func TestConfigure_ExplicitMethod(t *testing.T) {
	h := newTestHost()
	registered := &plainSettings{}
	host.Register(h.Container, registered)

	c := Make[*plainSettings](func(p *plainSettings, cfg map[string]any) error {
		p.values = cfg
		return nil
	})

	got, err := c.Configure(h, map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Same(t, registered, got)
	assert.Equal(t, map[string]any{"a": 1}, registered.values)
}

func TestConfigure_MethodError(t *testing.T) {
	h := newTestHost()
	methodErr := errors.New("rejected")

	_, err := Make[*store.Store](func(*store.Store, map[string]any) error { return methodErr }).
		Configure(h, map[string]any{})
	assert.Same(t, methodErr, err)
}

// ── callbacks ─────────────────────────────────────────────────────────────────

// TestConfigure_Callback verifies that a callback mutates the store directly
// and bypasses the setter.
func TestConfigure_Callback(t *testing.T) {
	h := newTestHost()
	c := Make[*store.Store](func(*store.Store, map[string]any) error {
		t.Fatal("setter must not be called for callbacks")
		return nil
	})

	s, err := c.Configure(h, func(s *store.Store) {
		s.Put("feature.enabled", true)
	})
	require.NoError(t, err)

	v, ok := s.Fetch("feature.enabled")
	require.True(t, ok)
	assert.Equal(t, true, v)
}

func TestConfigure_CallbackError(t *testing.T) {
	h := newTestHost()
	callbackErr := errors.New("callback failed")

	_, err := Make[*store.Store](nil).Configure(h, func(*store.Store) error { return callbackErr })
	assert.Same(t, callbackErr, err)
}

// ── errors ────────────────────────────────────────────────────────────────────

func TestConfigure_NotRegistered(t *testing.T) {
	_, err := Make[*plainSettings](nil).Configure(newTestHost(), nil)
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestConfigure_UnsupportedInput(t *testing.T) {
	_, err := Make[*store.Store](nil).Configure(newTestHost(), []string{"a"})
	assert.ErrorIs(t, err, ErrUnsupportedInput)
}
