// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON settings file.
type StructuredJSONConfig struct {
	App struct {
		LogLevel string `json:"log_level"`
		Version  string `json:"version"`
	} `json:"app,omitempty"`

	Plugins struct {
		Manifest   string `json:"manifest"`
		ModulesDir string `json:"modules_dir"`
		LuaDir     string `json:"lua_dir"`
	} `json:"plugins,omitempty"`

	Snapshot struct {
		Driver string `json:"driver"`
		DSN    string `json:"dsn"`
	} `json:"snapshot,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			LogLevel: jsonCfg.App.LogLevel,
			Version:  jsonCfg.App.Version,
		},
		Plugins: Plugins{
			Manifest:   jsonCfg.Plugins.Manifest,
			ModulesDir: jsonCfg.Plugins.ModulesDir,
			LuaDir:     jsonCfg.Plugins.LuaDir,
		},
		Snapshot: Snapshot{
			Driver: jsonCfg.Snapshot.Driver,
			DSN:    jsonCfg.Snapshot.DSN,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
