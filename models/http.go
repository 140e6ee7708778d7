// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ConfigEntry is the value stored under one dot-delimited namespace of the
// merged configuration.
type ConfigEntry struct {
	// Namespace is the requested path, e.g. "cache.ttl".
	Namespace string `json:"namespace"`

	// Value is the subtree or leaf found under Namespace.
	Value any `json:"value"`
}

// Snapshot is a merged configuration persisted under a session id.
type Snapshot struct {
	SessionID string         `json:"session_id"`
	Data      map[string]any `json:"data"`
}
