// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_LOG_LEVEL": "warn",
		"APP_VERSION":   "1.2.3",

		"PLUGINS_MANIFEST":    "plugins.yaml",
		"PLUGINS_MODULES_DIR": "/etc/configmgr/modules",
		"PLUGINS_LUA_DIR":     "/etc/configmgr/lua",

		"SNAPSHOT_DRIVER": "sqlite3",
		"SNAPSHOT_DSN":    "file:snapshots.db",

		"SERVER_ADDRESS":         "localhost:8080",
		"SERVER_REQUEST_TIMEOUT": "30s",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "plugins.yaml", cfg.Plugins.Manifest)
	assert.Equal(t, "/etc/configmgr/modules", cfg.Plugins.ModulesDir)
	assert.Equal(t, "/etc/configmgr/lua", cfg.Plugins.LuaDir)
	assert.Equal(t, "sqlite3", cfg.Snapshot.Driver)
	assert.Equal(t, "file:snapshots.db", cfg.Snapshot.DSN)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	clearEnvVars(t)

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{"SERVER_REQUEST_TIMEOUT": "soon"})

	err := parseEnv(&StructuredConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",
		"APP_LOG_LEVEL", "APP_VERSION",
		"PLUGINS_MANIFEST", "PLUGINS_MODULES_DIR", "PLUGINS_LUA_DIR",
		"SNAPSHOT_DRIVER", "SNAPSHOT_DSN",
		"SERVER_ADDRESS", "SERVER_REQUEST_TIMEOUT",
	}
	for _, k := range keys {
		if old, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { _ = os.Setenv(k, old) })
		}
		_ = os.Unsetenv(k)
	}
}
