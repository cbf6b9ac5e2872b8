// Package main is the entry point for the travelmaster command.
// Its sole responsibility is wiring dependencies together and running the
// command tree. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pkordes/travelmaster/internal/cli"
	"github.com/pkordes/travelmaster/internal/config"
	"github.com/pkordes/travelmaster/internal/metrics"
	"github.com/pkordes/travelmaster/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	// --- Config -----------------------------------------------------------
	// A .env file in the working directory is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to read .env", "error", err)
		return 1
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		return 1
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		slog.Error("configuration error", "error", err)
		return 1
	}

	// --- Logger -----------------------------------------------------------
	// Logs go to stderr so command output on stdout stays pipeable.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---------------------------------------------------------
	st, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		return 1
	}
	defer st.Close()
	logger.Debug("store opened", "dialect", st.Dialect().String())

	// --- Metrics ----------------------------------------------------------
	reg := prometheus.NewRegistry()
	app := cli.NewApp(st, logger, metrics.New(reg))

	code := 0
	if err := cli.Execute(ctx, app, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", cli.Message(err))
		code = 1
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteFile(reg, cfg.MetricsFile); err != nil {
			logger.Error("failed to write metrics", "path", cfg.MetricsFile, "error", err)
			code = 1
		}
	}
	return code
}
