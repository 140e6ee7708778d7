// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// settings groups are incomplete or invalid.
var (
	// ErrInvalidPluginsConfigs indicates invalid plugin settings
	// (for example, a missing manifest path).
	ErrInvalidPluginsConfigs = errors.New("invalid plugins configuration")
	// ErrInvalidSnapshotConfigs indicates invalid snapshot settings
	// (for example, an unknown driver or a driver without DSN).
	ErrInvalidSnapshotConfigs = errors.New("invalid snapshot configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, an unknown log level).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
)
