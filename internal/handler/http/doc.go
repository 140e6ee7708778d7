// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the read-only HTTP API over the merged plugin
// configuration.
//
// Request tracing and access logging are handled by middleware before
// requests reach the handlers.
package http
