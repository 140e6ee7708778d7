// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app wires the configmgr pipeline: it builds the module loader
// chain, runs the plugin manager against the host and persists the merged
// result.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-plugin-config/internal/host"
	"github.com/MKhiriev/go-plugin-config/internal/logger"
	"github.com/MKhiriev/go-plugin-config/internal/manager"
	"github.com/MKhiriev/go-plugin-config/internal/plugin"
	"github.com/MKhiriev/go-plugin-config/internal/snapshot"
)

// Result is the outcome of one configuration run.
type Result struct {
	// Session identifies the run in logs and in the snapshot table.
	Session string `json:"session"`
	// Data is a detached copy of the merged configuration.
	Data map[string]any `json:"data"`
}

// App runs plugin lists against one host.
type App struct {
	host      *host.Host
	snapshots snapshot.Repository
	logger    *logger.Logger
}

// New returns an App over h. snapshots may be nil to skip persistence.
func New(h *host.Host, snapshots snapshot.Repository, log *logger.Logger) *App {
	return &App{
		host:      h,
		snapshots: snapshots,
		logger:    log,
	}
}

// Build merges and configures specs, then saves the merged data when a
// snapshot repository is set.
func (a *App) Build(ctx context.Context, specs []plugin.Spec) (Result, error) {
	res, err := manager.ConfigureWith(ctx, a.host, func(ctx context.Context, m *manager.Manager) (Result, error) {
		if _, err := m.MergeDefaults(ctx, specs); err != nil {
			return Result{}, err
		}
		if err := m.ConfigurePlugins(ctx, a.host, specs); err != nil {
			return Result{}, err
		}

		return Result{Session: m.Session(), Data: m.Store().Snapshot()}, nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("error configuring plugins: %w", err)
	}

	if a.snapshots == nil {
		return res, nil
	}

	if err = a.snapshots.Save(ctx, res.Session, res.Data); err != nil {
		if errors.Is(err, snapshot.ErrSnapshotExists) {
			a.logger.Warn().Str("session", res.Session).Msg("snapshot already saved")
			return res, nil
		}
		return Result{}, fmt.Errorf("error saving snapshot: %w", err)
	}

	return res, nil
}

// BuildFromManifest reads the plugin list at path and runs [App.Build].
func (a *App) BuildFromManifest(ctx context.Context, path string) (Result, error) {
	specs, err := plugin.LoadManifest(path)
	if err != nil {
		return Result{}, err
	}
	a.logger.Info().Str("manifest", path).Int("plugins", len(specs)).Msg("plugin manifest loaded")

	return a.Build(ctx, specs)
}

// WriteJSON writes data to w as indented JSON.
func WriteJSON(w io.Writer, data map[string]any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("error encoding configuration: %w", err)
	}
	return nil
}
