// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level settings container of the configmgr
// command. It is populated by merging values from environment variables,
// command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-wide settings such as the log level.
	App App `envPrefix:"APP_"`

	// Plugins locates the plugin manifest and the directories modules are
	// loaded from.
	Plugins Plugins `envPrefix:"PLUGINS_"`

	// Snapshot configures where merged configurations are persisted.
	// Persistence is off when DSN is empty.
	Snapshot Snapshot `envPrefix:"SNAPSHOT_"`

	// Server configures the read-only HTTP API. The API is off when
	// HTTPAddress is empty.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON settings file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds process-wide settings.
type App struct {
	// LogLevel is a zerolog level name ("debug", "info", "warn", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is the semantic version string reported by /api/version
	// (e.g. "1.2.3") when the binary was built without a linked version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Plugins holds the locations plugin modules are read from.
type Plugins struct {
	// Manifest is the path of the YAML or JSON plugin list.
	// Env: PLUGINS_MANIFEST
	Manifest string `env:"MANIFEST"`

	// ModulesDir is the root of JSON, YAML and TOML plugin modules.
	// Env: PLUGINS_MODULES_DIR
	ModulesDir string `env:"MODULES_DIR"`

	// LuaDir is the root of Lua plugin modules.
	// Env: PLUGINS_LUA_DIR
	LuaDir string `env:"LUA_DIR"`
}

// Snapshot holds the database settings of the snapshot repository.
type Snapshot struct {
	// Driver is "sqlite3" or "pgx".
	// Env: SNAPSHOT_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the data source name handed to the driver.
	// Env: SNAPSHOT_DSN
	DSN string `env:"DSN"`
}

// Server holds network and timeout settings for the HTTP API.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the settings from all
// available sources in the following priority order (last source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags parsed from args
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
