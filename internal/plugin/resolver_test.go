// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package plugin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-plugin-config/internal/host"
	"github.com/MKhiriev/go-plugin-config/internal/loader"
	"github.com/MKhiriev/go-plugin-config/internal/mock"
)

func newTestResolver(t *testing.T) (*Resolver, *mock.MockLoader) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLoader := mock.NewMockLoader(ctrl)

	return NewResolver(mockLoader), mockLoader
}

// ── LoadExported ──────────────────────────────────────────────────────────────

func TestLoadExported_Success(t *testing.T) {
	r, mockLoader := newTestResolver(t)
	ctx := context.Background()

	mockLoader.EXPECT().LoadModule(ctx, "app/cache").
		Return(loader.Exports{"defaults": map[string]any{"a": 1}}, nil)

	value, err := r.LoadExported(ctx, "app/cache", "defaults")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, value)
}

// TestLoadExported_MissingExport verifies that the error names both the
// export and the module.
func TestLoadExported_MissingExport(t *testing.T) {
	r, mockLoader := newTestResolver(t)
	ctx := context.Background()

	mockLoader.EXPECT().LoadModule(ctx, "app/cache").Return(loader.Exports{}, nil)

	_, err := r.LoadExported(ctx, "app/cache", "missingExport")
	require.ErrorIs(t, err, ErrExportNotFound)
	assert.EqualError(t, err, "missingExport not found for app/cache")
}

// TestLoadExported_LoaderErrorUnchanged verifies that loader failures are not
// wrapped.
func TestLoadExported_LoaderErrorUnchanged(t *testing.T) {
	r, mockLoader := newTestResolver(t)
	ctx := context.Background()
	loadErr := errors.New("disk on fire")

	mockLoader.EXPECT().LoadModule(ctx, "app/cache").Return(nil, loadErr)

	_, err := r.LoadExported(ctx, "app/cache", "defaults")
	assert.Same(t, loadErr, err)
}

// ── Defaults ──────────────────────────────────────────────────────────────────

func TestDefaults_Inline(t *testing.T) {
	r, _ := newTestResolver(t)

	got, err := r.Defaults(context.Background(), Inline(map[string]any{"key": "xy"}))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"key": "xy"}, got)
}

func TestDefaults_ExportNames(t *testing.T) {
	r, mockLoader := newTestResolver(t)
	ctx := context.Background()
	exports := loader.Exports{
		"defaults":      map[string]any{"foo": "default"},
		"otherDefaults": loader.Exports{"foo": "other"},
	}

	mockLoader.EXPECT().LoadModule(ctx, "m").Return(exports, nil).Times(2)

	got, err := r.Defaults(ctx, Module("m"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"foo": "default"}, got)

	got, err = r.Defaults(ctx, ModuleExport("m", "otherDefaults"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"foo": "other"}, got)
}

func TestDefaults_NotAMapping(t *testing.T) {
	r, mockLoader := newTestResolver(t)
	ctx := context.Background()

	mockLoader.EXPECT().LoadModule(ctx, "m").Return(loader.Exports{"defaults": "nope"}, nil)

	_, err := r.Defaults(ctx, Module("m"))
	assert.ErrorIs(t, err, ErrInvalidExport)
}

// ── Configure ─────────────────────────────────────────────────────────────────

func TestConfigure_InlineHasNone(t *testing.T) {
	r, _ := newTestResolver(t)

	fn, err := r.Configure(context.Background(), Inline(map[string]any{"a": 1}))
	require.NoError(t, err)
	assert.Nil(t, fn)
}

// TestConfigure_AlwaysReadsConfigureExport verifies that a module export
// spec still resolves the module's "configure" export.
func TestConfigure_AlwaysReadsConfigureExport(t *testing.T) {
	r, mockLoader := newTestResolver(t)
	ctx := context.Background()
	var called bool

	mockLoader.EXPECT().LoadModule(ctx, "m").Return(loader.Exports{
		"configure": ConfigureFunc(func(context.Context, *host.Host, map[string]any) error {
			called = true
			return nil
		}),
	}, nil)

	fn, err := r.Configure(ctx, ModuleExport("m", "otherDefaults"))
	require.NoError(t, err)
	require.NoError(t, fn(ctx, nil, nil))
	assert.True(t, called)
}

func TestConfigure_CallableShapes(t *testing.T) {
	h := host.New(loader.NewRegistry(), nil)
	data := map[string]any{"a": 1}

	tests := []struct {
		name   string
		export func(t *testing.T) any
	}{
		{
			name: "named func type",
			export: func(t *testing.T) any {
				return ConfigureFunc(func(_ context.Context, got *host.Host, d map[string]any) error {
					assert.Same(t, h, got)
					assert.Equal(t, data, d)
					return nil
				})
			},
		},
		{
			name: "plain func with host",
			export: func(t *testing.T) any {
				return func(_ context.Context, got *host.Host, d map[string]any) error {
					assert.Same(t, h, got)
					assert.Equal(t, data, d)
					return nil
				}
			},
		},
		{
			name: "func without host",
			export: func(t *testing.T) any {
				return func(_ context.Context, d map[string]any) error {
					assert.Equal(t, data, d)
					return nil
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, mockLoader := newTestResolver(t)
			ctx := context.Background()

			mockLoader.EXPECT().LoadModule(ctx, "m").
				Return(loader.Exports{"configure": tt.export(t)}, nil)

			fn, err := r.Configure(ctx, Module("m"))
			require.NoError(t, err)
			assert.NoError(t, fn(ctx, h, data))
		})
	}
}

func TestConfigure_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing export", func(t *testing.T) {
		r, mockLoader := newTestResolver(t)
		mockLoader.EXPECT().LoadModule(ctx, "m").
			Return(loader.Exports{"defaults": map[string]any{}}, nil)

		_, err := r.Configure(ctx, Module("m"))
		require.ErrorIs(t, err, ErrExportNotFound)
		assert.EqualError(t, err, "configure not found for m")
	})

	t.Run("not callable", func(t *testing.T) {
		r, mockLoader := newTestResolver(t)
		mockLoader.EXPECT().LoadModule(ctx, "m").
			Return(loader.Exports{"configure": "later"}, nil)

		_, err := r.Configure(ctx, Module("m"))
		assert.ErrorIs(t, err, ErrInvalidExport)
	})
}
