// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the command-line settings in args.
//
// Flags:
//
//	-a HTTP API address in format [host]:[port]
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-m plugin manifest path
//	-modules JSON/YAML/TOML plugin module directory
//	-lua Lua plugin module directory
//	-snapshot-driver snapshot database driver (sqlite3 or pgx)
//	-d snapshot database DSN
//	-log-level log level (debug, info, warn, error)
//	-c/-config json file path with settings
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var requestTimeout time.Duration
	var manifest, modulesDir, luaDir string
	var snapshotDriver, snapshotDSN string
	var logLevel string
	var jsonConfigPath string

	fs := flag.NewFlagSet("configmgr", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&manifest, "m", "", "Plugin manifest path")
	fs.StringVar(&modulesDir, "modules", "", "Plugin module directory")
	fs.StringVar(&luaDir, "lua", "", "Lua plugin module directory")
	fs.StringVar(&snapshotDriver, "snapshot-driver", "", "Snapshot database driver (sqlite3, pgx)")
	fs.StringVar(&snapshotDSN, "d", "", "Snapshot database DSN")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
		},
		Plugins: Plugins{
			Manifest:   manifest,
			ModulesDir: modulesDir,
			LuaDir:     luaDir,
		},
		Snapshot: Snapshot{
			Driver: snapshotDriver,
			DSN:    snapshotDSN,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
