// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-plugin-config/internal/logger"
	"github.com/MKhiriev/go-plugin-config/internal/snapshot"
	"github.com/MKhiriev/go-plugin-config/internal/store"
	"github.com/MKhiriev/go-plugin-config/models"
)

// Handler serves the merged configuration of one store and, when a
// repository is configured, the snapshots saved by earlier runs.
type Handler struct {
	store     *store.Store
	snapshots snapshot.Repository
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

// NewHandler returns a Handler reading from s. snapshots may be nil, in which
// case the snapshot routes are not mounted.
func NewHandler(s *store.Store, snapshots snapshot.Repository, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Bool("snapshots", snapshots != nil).Msg("http handler created")
	return &Handler{
		store:     s,
		snapshots: snapshots,
		buildInfo: buildInfo,
		logger:    logger,
	}
}
