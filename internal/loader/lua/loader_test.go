// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package lua

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	glua "github.com/yuin/gopher-lua"

	"github.com/MKhiriev/go-plugin-config/internal/loader"
)

const cacheModule = `
return {
  defaults = {
    cache = { ttl = "5m", size = 128, ratio = 0.5, backends = { "memory", "disk" } },
  },
  configure = function(data)
    if data.cache.ttl ~= "5m" then
      error("unexpected ttl " .. tostring(data.cache.ttl))
    end
  end,
  strict = function(data)
    if data.required == nil then
      error("required is missing")
    end
  end,
}
`

func newTestLoader(t *testing.T) *Loader {
	t.Helper()

	l := NewLoaderFS(fstest.MapFS{
		"plugins/cache.lua":  {Data: []byte(cacheModule)},
		"plugins/scalar.lua": {Data: []byte(`return 42`)},
		"plugins/broken.lua": {Data: []byte(`return {`)},
		"plugins/panics.lua": {Data: []byte(`error("boom")`)},
		"plugins/os.lua":     {Data: []byte(`return { has_os = os ~= nil, has_io = io ~= nil }`)},
	})
	t.Cleanup(func() { require.NoError(t, l.Close()) })

	return l
}

// ── LoadModule ────────────────────────────────────────────────────────────────

func TestLoadModule_Defaults(t *testing.T) {
	exports, err := newTestLoader(t).LoadModule(context.Background(), "plugins/cache")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"cache": map[string]any{
			"ttl":      "5m",
			"size":     int64(128),
			"ratio":    0.5,
			"backends": []any{"memory", "disk"},
		},
	}, exports["defaults"])
}

func TestLoadModule_ConfigureIsCallable(t *testing.T) {
	exports, err := newTestLoader(t).LoadModule(context.Background(), "plugins/cache")
	require.NoError(t, err)

	configure, ok := exports["configure"].(func(context.Context, map[string]any) error)
	require.True(t, ok, "configure export has type %T", exports["configure"])

	err = configure(context.Background(), map[string]any{"cache": map[string]any{"ttl": "5m"}})
	assert.NoError(t, err)

	err = configure(context.Background(), map[string]any{"cache": map[string]any{"ttl": "1h"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected ttl 1h")
}

// TestLoadModule_DefaultConfigure verifies that a data-only script still
// exports a callable configure.
func TestLoadModule_DefaultConfigure(t *testing.T) {
	l := NewLoaderFS(fstest.MapFS{
		"data.lua": {Data: []byte(`return { defaults = { level = "info" } }`)},
	})
	t.Cleanup(func() { require.NoError(t, l.Close()) })

	exports, err := l.LoadModule(context.Background(), "data")
	require.NoError(t, err)

	configure, ok := exports[loader.ConfigureExport].(func(context.Context, map[string]any) error)
	require.True(t, ok, "configure export has type %T", exports[loader.ConfigureExport])
	assert.NoError(t, configure(context.Background(), map[string]any{}))
	assert.Equal(t, map[string]any{"level": "info"}, exports["defaults"])
}

func TestLoadModule_NotFound(t *testing.T) {
	_, err := newTestLoader(t).LoadModule(context.Background(), "plugins/missing")
	assert.ErrorIs(t, err, loader.ErrModuleNotFound)
}

func TestLoadModule_InvalidModuleID(t *testing.T) {
	_, err := newTestLoader(t).LoadModule(context.Background(), "../plugins/cache")
	assert.ErrorIs(t, err, loader.ErrInvalidModuleID)
}

func TestLoadModule_NotATable(t *testing.T) {
	_, err := newTestLoader(t).LoadModule(context.Background(), "plugins/scalar")
	assert.ErrorIs(t, err, ErrInvalidModule)
}

func TestLoadModule_ScriptErrors(t *testing.T) {
	l := newTestLoader(t)

	_, err := l.LoadModule(context.Background(), "plugins/broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling")

	_, err = l.LoadModule(context.Background(), "plugins/panics")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

// TestLoadModule_Sandbox verifies that os and io are not available to scripts.
func TestLoadModule_Sandbox(t *testing.T) {
	exports, err := newTestLoader(t).LoadModule(context.Background(), "plugins/os")
	require.NoError(t, err)

	assert.Equal(t, false, exports["has_os"])
	assert.Equal(t, false, exports["has_io"])
}

// TestClose_DisablesCallables verifies that callables fail after Close.
func TestClose_DisablesCallables(t *testing.T) {
	l := NewLoaderFS(fstest.MapFS{"m.lua": {Data: []byte(cacheModule)}})

	exports, err := l.LoadModule(context.Background(), "m")
	require.NoError(t, err)
	require.NoError(t, l.Close())

	configure := exports["strict"].(func(context.Context, map[string]any) error)
	assert.ErrorIs(t, configure(context.Background(), map[string]any{}), ErrLoaderClosed)

	_, err = l.LoadModule(context.Background(), "m")
	assert.ErrorIs(t, err, ErrLoaderClosed)
}

// ── conversions ───────────────────────────────────────────────────────────────

func TestToGo(t *testing.T) {
	L := glua.NewState()
	defer L.Close()

	seq := L.NewTable()
	seq.Append(glua.LString("a"))
	seq.Append(glua.LNumber(2))

	sparse := L.NewTable()
	sparse.RawSetInt(2, glua.LTrue)

	tests := []struct {
		name     string
		input    glua.LValue
		expected any
	}{
		{name: "nil", input: glua.LNil, expected: nil},
		{name: "bool", input: glua.LTrue, expected: true},
		{name: "integer", input: glua.LNumber(7), expected: int64(7)},
		{name: "float", input: glua.LNumber(1.25), expected: 1.25},
		{name: "string", input: glua.LString("s"), expected: "s"},
		{name: "sequence", input: seq, expected: []any{"a", int64(2)}},
		{name: "sparse table", input: sparse, expected: map[string]any{"2": true}},
		{name: "empty table", input: L.NewTable(), expected: map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, toGo(tt.input))
		})
	}
}

func TestToGo_Cycle(t *testing.T) {
	L := glua.NewState()
	defer L.Close()

	tbl := L.NewTable()
	tbl.RawSetString("self", tbl)

	assert.Equal(t, map[string]any{"self": nil}, toGo(tbl))
}

// TestToLua_RoundTrip verifies that configuration data survives a trip
// through Lua.
func TestToLua_RoundTrip(t *testing.T) {
	L := glua.NewState()
	defer L.Close()

	data := map[string]any{
		"name":  "app",
		"port":  int64(8080),
		"debug": true,
		"tags":  []any{"a", "b"},
		"db":    map[string]any{"host": "localhost"},
	}

	assert.Equal(t, data, toGo(toLua(L, data)))
}
