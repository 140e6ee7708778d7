// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-plugin-config/internal/logger"
	"github.com/MKhiriev/go-plugin-config/models"
)

// ── run ───────────────────────────────────────────────────────────────────────

func TestRun_ConfigError(t *testing.T) {
	err := run(context.Background(), []string{"-unknown"}, logger.Nop())
	assert.ErrorContains(t, err, "error getting configs")
}

// TestRun_BuildError verifies that failures come back as errors instead of exiting.
func TestRun_BuildError(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "missing.yaml")

	err := run(context.Background(), []string{"-m", manifest}, logger.Nop())
	assert.ErrorContains(t, err, "error building configuration")
}

// ── printBuildInfo ────────────────────────────────────────────────────────────

func TestPrintBuildInfo(t *testing.T) {
	var buf bytes.Buffer

	info := printBuildInfo(&buf, models.NewAppBuildInfo("", "", "").OrVersion("1.2.3"))

	assert.Equal(t, "1.2.3", info.BuildVersion())
	assert.Equal(t, "N/A", info.BuildDate())
	assert.Equal(t, "N/A", info.BuildCommit())
	assert.Equal(t, "Build version: 1.2.3\nBuild date: N/A\nBuild commit: N/A\n", buf.String())
}

func TestPrintBuildInfo_Unset(t *testing.T) {
	var buf bytes.Buffer

	info := printBuildInfo(&buf, models.NewAppBuildInfo("", "", "").OrVersion(""))
	assert.Equal(t, "N/A", info.BuildVersion())
}
