package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"roomplanner/internal/config"
	"roomplanner/internal/sim"
)

func main() {
	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := config.LoadEnv(".env"); err != nil {
		slog.Warn("could not read .env", "error", err)
	}
	cfg := config.Load()

	session, err := sim.New(cfg)
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
	if err := session.Run(); err != nil {
		slog.Error("session ended with error", "error", err)
		os.Exit(1)
	}
}
