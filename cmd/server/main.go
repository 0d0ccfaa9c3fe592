package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/EJ-L/code-treat-data/internal/audit"
	"github.com/EJ-L/code-treat-data/internal/config"
	"github.com/EJ-L/code-treat-data/internal/dataset"
	"github.com/EJ-L/code-treat-data/internal/logging"
	"github.com/EJ-L/code-treat-data/internal/pathguard"
	"github.com/EJ-L/code-treat-data/internal/record"
	"github.com/EJ-L/code-treat-data/internal/web"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"dataset_root", cfg.Dataset.Root,
		"max_file_size", cfg.Dataset.MaxFileSize,
		"max_lines", cfg.Dataset.MaxLines,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	guard, err := pathguard.New(cfg.Dataset.Root, pathguard.Directories, cfg.Dataset.Extensions)
	if err != nil {
		slog.Error("failed to create path guard", "error", err)
		os.Exit(1)
	}
	slog.Info("serving dataset directories",
		"root", guard.Root(),
		"directories", len(pathguard.Directories),
	)

	ctx := context.Background()

	// Audit persistence is optional: without a database URL the recorder
	// degrades to structured logging only.
	var recorder audit.Recorder = audit.LogRecorder{}
	if cfg.Audit.DatabaseURL != "" {
		poolConfig, err := pgxpool.ParseConfig(cfg.Audit.DatabaseURL)
		if err != nil {
			slog.Error("failed to parse audit database URL", "error", err)
			os.Exit(1)
		}
		poolConfig.MaxConns = int32(cfg.Audit.MaxConns)

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			slog.Error("failed to connect to audit database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		recorder, err = audit.NewPgRecorder(ctx, pool)
		if err != nil {
			slog.Error("failed to initialize audit store", "error", err)
			os.Exit(1)
		}
		slog.Info("audit persistence enabled")
	}

	parser := record.NewParser(cfg.Dataset.MaxLines)
	service := dataset.NewService(guard, parser, recorder, cfg.Dataset.MaxFileSize, cfg.Dataset.Extensions)

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
