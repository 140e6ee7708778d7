// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package snapshot

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-plugin-config/internal/config"
	"github.com/MKhiriev/go-plugin-config/internal/logger"
)

// Open connects to the database selected by cfg.Driver and applies the
// migrations. An empty driver yields a nil DB and no error.
func Open(ctx context.Context, cfg config.Snapshot, log *logger.Logger) (*DB, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.Driver {
	case "":
		return nil, nil
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DSN, log)
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DSN, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
