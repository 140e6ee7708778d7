// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides settings loading, merging, and validation for the
// configmgr command.
//
// Settings are assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON settings file
//
// The main entry point is [GetStructuredConfig].
package config
