// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/magicolala/chess-openings-analyzer/internal/server"
)

var serveAddr string

// serveCmd runs the HTTP API.
//
// # Examples
//
//	openings-analyzer serve
//	openings-analyzer serve --addr :9090
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyzer as an HTTP API",
	RunE:  runServeCommand,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"Listen address (default from the config file)")
}

func runServeCommand(cmd *cobra.Command, args []string) error {
	logger := slog.Default()

	defaults, err := analysisConfig(cfg.Analysis)
	if err != nil {
		return err
	}
	analyzer, cleanup, err := buildAnalyzer(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	engine, err := buildTraps()
	if err != nil {
		return err
	}

	srv := &server.Server{
		Analyzer: analyzer,
		Dueler:   analyzer,
		Traps:    engine,
		Defaults: defaults,
		Logger:   logger,
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	logger.Info("serving analyzer API", "addr", addr)
	return srv.Router().Run(addr)
}
