// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package lua loads plugin modules written in Lua.
//
// A module is a script that returns a table; every string-keyed entry of the
// table is an export. Tables and scalars are converted to Go values, Lua
// functions become callables of type func(context.Context, map[string]any) error
// that receive a copy of the merged configuration:
//
//	return {
//	  defaults = { cache = { ttl = "5m" } },
//	  configure = function(data)
//	    if data.cache.ttl == "" then error("cache.ttl is required") end
//	  end,
//	}
//
// A module without a configure entry gets [loader.NoopConfigure].
//
// Scripts run in a restricted state with only the base, table, string and
// math libraries opened.
package lua

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"

	glua "github.com/yuin/gopher-lua"

	"github.com/MKhiriev/go-plugin-config/internal/loader"
)

// Extension is the file extension of Lua modules.
const Extension = ".lua"

var (
	// ErrLoaderClosed is returned when a module is loaded or called after Close.
	ErrLoaderClosed = errors.New("lua loader is closed")

	// ErrInvalidModule is returned when a script does not return a table.
	ErrInvalidModule = errors.New("lua module must return a table")
)

// Loader implements [loader.Loader] for Lua scripts below a root directory.
// Each loaded module keeps its own Lua state alive until [Loader.Close] so
// exported functions stay callable. Calls into Lua are serialized.
type Loader struct {
	fsys fs.FS

	mu     sync.Mutex
	states []*glua.LState
	closed bool
}

// NewLoader returns a Loader rooted at dir.
func NewLoader(dir string) *Loader {
	return NewLoaderFS(os.DirFS(dir))
}

// NewLoaderFS returns a Loader reading scripts from fsys.
func NewLoaderFS(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadModule implements [loader.Loader]. The module "app/cache" is read from
// app/cache.lua.
func (l *Loader) LoadModule(ctx context.Context, moduleID string) (loader.Exports, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !fs.ValidPath(moduleID) || moduleID == "." {
		return nil, fmt.Errorf("%w: %q", loader.ErrInvalidModuleID, moduleID)
	}

	name := path.Clean(moduleID) + Extension
	src, err := fs.ReadFile(l.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", loader.ErrModuleNotFound, moduleID)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading lua module %s: %w", name, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, ErrLoaderClosed
	}

	L := newState()
	module, err := run(L, name, src)
	if err != nil {
		L.Close()
		return nil, err
	}
	l.states = append(l.states, L)

	exports := make(loader.Exports)
	module.ForEach(func(key, value glua.LValue) {
		exportName, ok := key.(glua.LString)
		if !ok {
			return
		}

		if fn, isFunc := value.(*glua.LFunction); isFunc {
			exports[string(exportName)] = l.callable(L, fn)
			return
		}
		exports[string(exportName)] = toGo(value)
	})
	if _, ok := exports[loader.ConfigureExport]; !ok {
		exports[loader.ConfigureExport] = loader.NoopConfigure
	}

	return exports, nil
}

// Close releases every Lua state created by the loader.
func (l *Loader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, L := range l.states {
		L.Close()
	}
	l.states = nil
	l.closed = true

	return nil
}

// callable wraps a Lua function as a configure-style Go function.
func (l *Loader) callable(L *glua.LState, fn *glua.LFunction) func(context.Context, map[string]any) error {
	return func(ctx context.Context, data map[string]any) error {
		l.mu.Lock()
		defer l.mu.Unlock()

		if l.closed {
			return ErrLoaderClosed
		}

		L.SetContext(ctx)
		defer L.RemoveContext()

		return L.CallByParam(glua.P{Fn: fn, NRet: 0, Protect: true}, toLua(L, data))
	}
}

func newState() *glua.LState {
	L := glua.NewState(glua.Options{SkipOpenLibs: true})

	for _, lib := range []struct {
		name string
		open glua.LGFunction
	}{
		{glua.BaseLibName, glua.OpenBase},
		{glua.TabLibName, glua.OpenTable},
		{glua.StringLibName, glua.OpenString},
		{glua.MathLibName, glua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(glua.LString(lib.name))
		L.Call(1, 0)
	}

	return L
}

func run(L *glua.LState, name string, src []byte) (*glua.LTable, error) {
	chunk, err := L.Load(bytes.NewReader(src), name)
	if err != nil {
		return nil, fmt.Errorf("error compiling lua module %s: %w", name, err)
	}

	if err = L.CallByParam(glua.P{Fn: chunk, NRet: 1, Protect: true}); err != nil {
		return nil, fmt.Errorf("error running lua module %s: %w", name, err)
	}

	ret := L.Get(-1)
	L.Pop(1)

	module, ok := ret.(*glua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: %s returned %s", ErrInvalidModule, name, ret.Type())
	}

	return module, nil
}
