// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package handler groups the transport handlers of configmgr.
package handler

import (
	"github.com/MKhiriev/go-plugin-config/internal/config"
	"github.com/MKhiriev/go-plugin-config/internal/handler/http"
	"github.com/MKhiriev/go-plugin-config/internal/logger"
	"github.com/MKhiriev/go-plugin-config/internal/snapshot"
	"github.com/MKhiriev/go-plugin-config/internal/store"
	"github.com/MKhiriev/go-plugin-config/models"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers creates the handlers enabled by cfg. snapshots may be nil.
func NewHandlers(s *store.Store, snapshots snapshot.Repository, buildInfo models.AppBuildInfo, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(s, snapshots, buildInfo, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
