// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package plugin

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the on-disk form of a plugin list:
//
//	plugins:
//	  - app/logging
//	  - moduleId: app/cache
//	    exportName: productionDefaults
//	  - cache:
//	      size: 256
//
// JSON documents of the same shape are accepted as well.
type Manifest struct {
	Plugins []any `yaml:"plugins"`
}

// ReadManifest decodes a manifest from r and parses its plugin list.
func ReadManifest(r io.Reader) ([]Spec, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("error decoding plugin manifest: %w", err)
	}

	return ParseList(m.Plugins)
}

// LoadManifest reads the manifest file at path.
func LoadManifest(path string) ([]Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening plugin manifest: %w", err)
	}
	defer f.Close()

	specs, err := ReadManifest(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return specs, nil
}
