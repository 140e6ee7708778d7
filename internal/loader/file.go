// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidModuleID is returned when a module identifier cannot be mapped
// to a file (for example it escapes the loader root).
var ErrInvalidModuleID = errors.New("invalid module id")

// ConfigureExport is the export run after the defaults are merged.
const ConfigureExport = "configure"

// NoopConfigure is the configure export of modules that declare none.
func NoopConfigure(context.Context, map[string]any) error { return nil }

// decodeFunc parses a module document into its exports.
type decodeFunc func(data []byte, v any) error

// FileLoader resolves module identifiers to documents below a root
// directory. The module "app/base" is looked up as app/base.json,
// app/base.yaml, app/base.yml and app/base.toml, in that order; every
// top-level key of the document becomes an export.
//
// Documents carry no behaviour, so a document without a "configure" key is
// given a no-op configure callable.
type FileLoader struct {
	fsys fs.FS
}

// fileFormats lists the supported extensions in lookup order.
var fileFormats = []struct {
	ext    string
	decode decodeFunc
}{
	{ext: ".json", decode: json.Unmarshal},
	{ext: ".yaml", decode: yaml.Unmarshal},
	{ext: ".yml", decode: yaml.Unmarshal},
	{ext: ".toml", decode: toml.Unmarshal},
}

// NewFileLoader returns a FileLoader rooted at dir.
func NewFileLoader(dir string) *FileLoader {
	return NewFileLoaderFS(os.DirFS(dir))
}

// NewFileLoaderFS returns a FileLoader reading from fsys.
func NewFileLoaderFS(fsys fs.FS) *FileLoader {
	return &FileLoader{fsys: fsys}
}

// LoadModule implements [Loader].
func (l *FileLoader) LoadModule(ctx context.Context, moduleID string) (Exports, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !fs.ValidPath(moduleID) || moduleID == "." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidModuleID, moduleID)
	}

	for _, format := range fileFormats {
		name := path.Clean(moduleID) + format.ext

		data, err := fs.ReadFile(l.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error reading module %s: %w", name, err)
		}

		exports := make(Exports)
		if err = format.decode(data, &exports); err != nil {
			return nil, fmt.Errorf("error decoding module %s: %w", name, err)
		}
		if _, ok := exports[ConfigureExport]; !ok {
			exports[ConfigureExport] = NoopConfigure
		}

		return exports, nil
	}

	return nil, notFound(moduleID)
}
