// Package main is the entry point for the CodeCraft API server.
//
// The main package stays minimal — its job is to:
//  1. Set up logging
//  2. Load configuration from the environment
//  3. Start the application
//
// All actual logic lives in imported packages (internal/server,
// internal/handler, ...). The cmd/ directory is the Go convention for
// executable entry points; a project with more binaries would add
// cmd/migrate, cmd/cli, and so on.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prajyots60/CODE-CRAFT/internal/config"
	"github.com/prajyots60/CODE-CRAFT/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// Load fails fast on missing secrets: a server that cannot verify
	// webhooks or session tokens should not come up at all.
	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Ensure the database directory exists before sqlite tries to open
	// the file (like `mkdir -p`).
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
