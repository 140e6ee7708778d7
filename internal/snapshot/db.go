// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package snapshot

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-plugin-config/internal/logger"
	"github.com/MKhiriev/go-plugin-config/migrations"
)

// DB is a database connection together with the SQL dialect it speaks.
type DB struct {
	*sql.DB
	dialect     string
	placeholder sq.PlaceholderFormat
	isDuplicate func(err error) bool
	logger      *logger.Logger
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Dialect returns the goose dialect of the connection.
func (db *DB) Dialect() string {
	return db.dialect
}
