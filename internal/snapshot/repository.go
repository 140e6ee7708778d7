// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package snapshot

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-plugin-config/internal/logger"
	"github.com/MKhiriev/go-plugin-config/internal/store"
)

//go:generate mockgen -source=repository.go -destination=../mock/snapshot_repository_mock.go -package=mock

const (
	sessionsTable  = "config_sessions"
	snapshotsTable = "config_snapshots"
)

// insertBatchSize bounds the rows of one INSERT so that the bind variables
// stay below the SQLite and Postgres limits.
var insertBatchSize = 500

// Repository persists merged configurations keyed by session id.
type Repository interface {
	// Save stores data under sessionID. Saving a session twice yields
	// [ErrSnapshotExists].
	Save(ctx context.Context, sessionID string, data map[string]any) error
	// Load returns the configuration saved under sessionID.
	Load(ctx context.Context, sessionID string) (map[string]any, error)
}

type sqlRepository struct {
	db      *DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// NewRepository returns a [Repository] over db. Each saved session gets a
// row in config_sessions, so empty configurations persist too. Leaves are
// stored as one config_snapshots row per escaped path (see
// [store.Store.Flatten]) holding the JSON encoded value.
func NewRepository(db *DB, log *logger.Logger) Repository {
	log.Debug().Str("dialect", db.dialect).Msg("creating snapshot repository")
	return &sqlRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(db.placeholder),
		logger:  log,
	}
}

func (r *sqlRepository) Save(ctx context.Context, sessionID string, data map[string]any) error {
	log := r.logger.With().Str("session", sessionID).Logger()

	flat := store.NewWithData(data).Flatten()
	paths := slices.Sorted(maps.Keys(flat))

	values := make([]string, len(paths))
	for i, path := range paths {
		value, err := json.Marshal(flat[path])
		if err != nil {
			return fmt.Errorf("error encoding %s: %w", path, err)
		}
		values[i] = string(value)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*sqlRepository.Save").Msg("error starting transaction")
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	defer tx.Rollback()

	query, args, err := r.builder.Insert(sessionsTable).Columns("session_id").Values(sessionID).ToSql()
	if err != nil {
		return fmt.Errorf("error building session insert: %w", err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sqlRepository.Save").Msg("error inserting session")
		if r.db.isDuplicate(err) {
			return ErrSnapshotExists
		}
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	for start := 0; start < len(paths); start += insertBatchSize {
		end := min(start+insertBatchSize, len(paths))

		insert := r.builder.Insert(snapshotsTable).Columns("session_id", "path", "value")
		for i := start; i < end; i++ {
			insert = insert.Values(sessionID, paths[i], values[i])
		}

		query, args, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("error building snapshot insert: %w", err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "*sqlRepository.Save").Int("offset", start).Msg("error inserting snapshot")
			return fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	log.Info().Int("paths", len(flat)).Msg("snapshot saved")

	return nil
}

func (r *sqlRepository) Load(ctx context.Context, sessionID string) (map[string]any, error) {
	query, args, err := r.builder.
		Select("session_id").
		From(sessionsTable).
		Where(sq.Eq{"session_id": sessionID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building session query: %w", err)
	}

	var found string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		r.logger.Err(err).Str("func", "*sqlRepository.Load").Msg("error querying session")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	query, args, err = r.builder.
		Select("path", "value").
		From(snapshotsTable).
		Where(sq.Eq{"session_id": sessionID}).
		OrderBy("path").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building snapshot query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "*sqlRepository.Load").Msg("error querying snapshot")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	flat := make(map[string]any)
	for rows.Next() {
		var path, raw string
		if err = rows.Scan(&path, &raw); err != nil {
			return nil, err
		}

		value, err := decodeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", path, err)
		}
		flat[path] = value
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return store.Expand(flat), nil
}

// decodeValue decodes a stored leaf, keeping integral numbers as int64.
func decodeValue(raw string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	return normalizeNumbers(v), nil
}

func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	case []any:
		for i := range val {
			val[i] = normalizeNumbers(val[i])
		}
		return val
	case map[string]any:
		for k := range val {
			val[k] = normalizeNumbers(val[k])
		}
		return val
	default:
		return v
	}
}
