// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command configmgr merges the defaults of the plugins listed in a manifest,
// runs their configure callables and prints the merged configuration as
// JSON. It can persist the result as a snapshot and serve it over HTTP.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/go-plugin-config/internal/app"
	"github.com/MKhiriev/go-plugin-config/internal/config"
	"github.com/MKhiriev/go-plugin-config/internal/handler"
	"github.com/MKhiriev/go-plugin-config/internal/host"
	"github.com/MKhiriev/go-plugin-config/internal/logger"
	"github.com/MKhiriev/go-plugin-config/internal/server"
	"github.com/MKhiriev/go-plugin-config/internal/snapshot"
	"github.com/MKhiriev/go-plugin-config/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	// stdout carries the merged configuration only
	log := logger.NewLoggerTo(os.Stderr, "configmgr")

	if err := run(context.Background(), os.Args[1:], log); err != nil {
		log.Fatal().Err(err).Msg("configmgr failed")
	}
}

// run returns instead of exiting so that deferred closes always happen.
func run(ctx context.Context, args []string, log *logger.Logger) error {
	cfg, err := config.GetStructuredConfig(args)
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	if err = log.SetLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("error setting log level: %w", err)
	}

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit).OrVersion(cfg.App.Version)
	buildInfo = printBuildInfo(os.Stderr, buildInfo)

	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := snapshot.Open(ctx, cfg.Snapshot, log)
	if err != nil {
		return fmt.Errorf("error opening snapshot database: %w", err)
	}
	var snapshots snapshot.Repository
	if db != nil {
		defer db.Close()
		snapshots = snapshot.NewRepository(db, log)
	}

	modules, closer := app.NewLoader(cfg.Plugins, buildInfo)
	defer closer.Close()

	h := host.New(modules, log)
	res, err := app.New(h, snapshots, log).BuildFromManifest(ctx, cfg.Plugins.Manifest)
	if err != nil {
		return fmt.Errorf("error building configuration: %w", err)
	}
	log.Info().Str("session", res.Session).Msg("configuration built")

	if err = app.WriteJSON(os.Stdout, res.Data); err != nil {
		return fmt.Errorf("error writing configuration: %w", err)
	}

	if cfg.Server.HTTPAddress == "" {
		return nil
	}

	handlers, err := handler.NewHandlers(h.Store(), snapshots, buildInfo, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers.HTTP.Init(), cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}
	srv.RunServer()

	return nil
}

// printBuildInfo writes the build banner to w and returns info with unset
// fields reported as "N/A".
func printBuildInfo(w io.Writer, info models.AppBuildInfo) models.AppBuildInfo {
	info = models.NewAppBuildInfo(orNA(info.BuildVersion()), orNA(info.BuildDate()), orNA(info.BuildCommit()))

	fmt.Fprintf(w, "Build version: %s\n", info.BuildVersion())
	fmt.Fprintf(w, "Build date: %s\n", info.BuildDate())
	fmt.Fprintf(w, "Build commit: %s\n", info.BuildCommit())

	return info
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
