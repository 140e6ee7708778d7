// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package snapshot

import "errors"

var (
	// ErrSnapshotExists is returned when a session was already saved.
	ErrSnapshotExists = errors.New("snapshot already exists")

	// ErrSnapshotNotFound is returned when no rows exist for a session.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrUnknownDriver is returned by [Open] for unsupported drivers.
	ErrUnknownDriver = errors.New("unknown snapshot driver")
)
