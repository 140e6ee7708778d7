// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package plugin

import "errors"

var (
	// ErrExportNotFound is returned when a loaded module lacks a requested export.
	ErrExportNotFound = errors.New("export not found")

	// ErrInvalidExport is returned when an export has the wrong shape for the
	// phase reading it.
	ErrInvalidExport = errors.New("invalid export")

	// ErrInvalidSpec is returned when a list entry cannot be turned into a Spec.
	ErrInvalidSpec = errors.New("invalid plugin spec")
)

// exportNotFoundError names both the export and the module it was looked up in.
type exportNotFoundError struct {
	moduleID string
	export   string
}

func (e *exportNotFoundError) Error() string {
	return e.export + " not found for " + e.moduleID
}

func (e *exportNotFoundError) Unwrap() error {
	return ErrExportNotFound
}
