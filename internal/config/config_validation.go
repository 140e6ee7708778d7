// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Snapshot drivers accepted by [Snapshot.Driver].
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// validate checks that the final merged [StructuredConfig] can be used at
// startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Plugins.Manifest == "" {
		return fmt.Errorf("%w: manifest path is required", ErrInvalidPluginsConfigs)
	}

	if cfg.App.LogLevel != "" {
		if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
		}
	}

	if cfg.Snapshot.DSN != "" || cfg.Snapshot.Driver != "" {
		switch cfg.Snapshot.Driver {
		case DriverSQLite, DriverPostgres:
		default:
			return fmt.Errorf("%w: unknown driver %q", ErrInvalidSnapshotConfigs, cfg.Snapshot.Driver)
		}
		if cfg.Snapshot.DSN == "" {
			return fmt.Errorf("%w: dsn is required", ErrInvalidSnapshotConfigs)
		}
	}

	return nil
}
