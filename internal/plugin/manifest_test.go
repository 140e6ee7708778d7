// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package plugin

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestYAML = `
plugins:
  - test/resources/test-configs
  - moduleId: test/resources/test-configs
    exportName: otherDefaults
  - key: xy
    keeper: not-kept
`

func TestReadManifest_YAML(t *testing.T) {
	specs, err := ReadManifest(strings.NewReader(manifestYAML))
	require.NoError(t, err)

	assert.Equal(t, []Spec{
		Module("test/resources/test-configs"),
		ModuleExport("test/resources/test-configs", "otherDefaults"),
		Inline(map[string]any{"key": "xy", "keeper": "not-kept"}),
	}, specs)
}

func TestReadManifest_JSON(t *testing.T) {
	specs, err := ReadManifest(strings.NewReader(
		`{"plugins": ["a", {"moduleId": "b", "exportName": "c"}, {"d": {"e": true}}]}`,
	))
	require.NoError(t, err)

	assert.Equal(t, []Spec{
		Module("a"),
		ModuleExport("b", "c"),
		Inline(map[string]any{"d": map[string]any{"e": true}}),
	}, specs)
}

func TestReadManifest_Empty(t *testing.T) {
	specs, err := ReadManifest(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestReadManifest_Errors(t *testing.T) {
	_, err := ReadManifest(strings.NewReader("plugins: [a, "))
	assert.ErrorContains(t, err, "error decoding plugin manifest")

	_, err = ReadManifest(strings.NewReader("plugins: [a, 42]"))
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugins.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifestYAML), 0o600))

	specs, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Len(t, specs, 3)

	_, err = LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "error opening plugin manifest")
}
