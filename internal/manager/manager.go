// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package manager runs the plugin configuration pipeline: every spec's
// defaults are merged into the config store in list order, then every
// module-backed spec's configure callable is invoked in the same order with
// the fully merged data.
package manager

import (
	"context"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-plugin-config/internal/host"
	"github.com/MKhiriev/go-plugin-config/internal/loader"
	"github.com/MKhiriev/go-plugin-config/internal/logger"
	"github.com/MKhiriev/go-plugin-config/internal/plugin"
	"github.com/MKhiriev/go-plugin-config/internal/store"
)

// Manager merges plugin defaults into a store and configures plugins.
// A Manager is not meant for concurrent pipelines; phases run sequentially.
type Manager struct {
	store    *store.Store
	resolver *plugin.Resolver
	session  string
	log      *logger.Logger
}

// New returns a Manager mutating s and loading modules through l. A nil log
// discards output.
func New(s *store.Store, l loader.Loader, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}

	session := uuid.NewString()
	return &Manager{
		store:    s,
		resolver: plugin.NewResolver(l),
		session:  session,
		log:      &logger.Logger{Logger: log.With().Str("session", session).Logger()},
	}
}

// Store returns the store the manager merges into.
func (m *Manager) Store() *store.Store {
	return m.store
}

// Session returns the id attached to every log entry of this manager.
func (m *Manager) Session() string {
	return m.session
}

// LoadExported loads moduleID and returns the named export.
func (m *Manager) LoadExported(ctx context.Context, moduleID, export string) (any, error) {
	return m.resolver.LoadExported(ctx, moduleID, export)
}

// MergeDefault resolves the defaults of spec and merges them into the store.
func (m *Manager) MergeDefault(ctx context.Context, spec plugin.Spec) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	defaults, err := m.resolver.Defaults(ctx, spec)
	if err != nil {
		return err
	}

	m.store.Merge(defaults)
	m.log.Debug().Str("plugin", spec.String()).Msg("merged plugin defaults")

	return nil
}

// MergeDefaults merges the defaults of every spec in order and returns the
// store. The first failure stops the phase; merges already applied stay.
func (m *Manager) MergeDefaults(ctx context.Context, specs []plugin.Spec) (*store.Store, error) {
	for i := range specs {
		if err := m.MergeDefault(ctx, specs[i]); err != nil {
			return m.store, err
		}
	}

	return m.store, nil
}

// ConfigurePlugin invokes the configure callable of spec with h and the
// merged data. Inline specs are skipped.
func (m *Manager) ConfigurePlugin(ctx context.Context, h *host.Host, spec plugin.Spec) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	configure, err := m.resolver.Configure(ctx, spec)
	if err != nil {
		return err
	}
	if configure == nil {
		return nil
	}

	if err = configure(ctx, h, m.store.Data()); err != nil {
		return err
	}
	m.log.Info().Str("plugin", spec.String()).Msg("configured plugin")

	return nil
}

// ConfigurePlugins configures every spec in order, stopping at the first
// failure.
func (m *Manager) ConfigurePlugins(ctx context.Context, h *host.Host, specs []plugin.Spec) error {
	for i := range specs {
		if err := m.ConfigurePlugin(ctx, h, specs[i]); err != nil {
			return err
		}
	}

	return nil
}
