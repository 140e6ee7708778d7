// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"io"

	"github.com/MKhiriev/go-plugin-config/internal/config"
	"github.com/MKhiriev/go-plugin-config/internal/loader"
	"github.com/MKhiriev/go-plugin-config/internal/loader/lua"
	"github.com/MKhiriev/go-plugin-config/models"
)

// BuiltinModuleID names the module served from memory with the build
// metadata of the running binary.
const BuiltinModuleID = "configmgr"

// BuiltinModules returns the in-memory modules that are always resolvable.
func BuiltinModules(info models.AppBuildInfo) *loader.Registry {
	return loader.NewRegistry().Register(BuiltinModuleID, loader.Exports{
		"defaults": map[string]any{
			"configmgr": map[string]any{
				"version": info.BuildVersion(),
				"commit":  info.BuildCommit(),
			},
		},
		"configure": func(context.Context, map[string]any) error { return nil },
	})
}

// NewLoader chains the builtin registry, the data-file loader and the Lua
// loader, in that order. Directories left empty are skipped. The returned
// closer releases the Lua states and must be called once the configured
// plugins are no longer used.
func NewLoader(cfg config.Plugins, info models.AppBuildInfo) (loader.Loader, io.Closer) {
	loaders := []loader.Loader{BuiltinModules(info)}

	if cfg.ModulesDir != "" {
		loaders = append(loaders, loader.NewFileLoader(cfg.ModulesDir))
	}

	var closer io.Closer = nopCloser{}
	if cfg.LuaDir != "" {
		l := lua.NewLoader(cfg.LuaDir)
		loaders = append(loaders, l)
		closer = l
	}

	return loader.Chain(loaders...), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
