// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrNamespaceNotFound is reported when a requested namespace does not
	// exist in the merged configuration.
	ErrNamespaceNotFound = errors.New("namespace not found")
	// ErrInternal hides storage failures from API callers.
	ErrInternal = errors.New("internal error")
)
