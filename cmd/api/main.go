package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"relevance-workbench/internal/config"
	"relevance-workbench/internal/executor"
	"relevance-workbench/internal/handlers"
	"relevance-workbench/internal/http"
	"relevance-workbench/internal/lab"
	"relevance-workbench/internal/runner"
	"relevance-workbench/internal/service"
	"relevance-workbench/internal/storage"
	"relevance-workbench/internal/tasks"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API edits query templates, extracts their knobs, versions templates and rulesets,
// and runs search configurations against an external execution service.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Relevance Workbench API
//   description: |
//     Versioned query template and ruleset editing for search relevance tuning.
//     Each run persists only what changed and executes the resulting search configuration.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	templateRepo := storage.NewQueryTemplateRepo(db)
	rulesetRepo := storage.NewRulesetRepo(db)
	versionRepo := storage.NewRulesetVersionRepo(db)
	configRepo := storage.NewSearchConfigurationRepo(db)
	executionRepo := storage.NewExecutionRepo(db)

	// Task channel: Redis when configured, in-process otherwise
	var (
		channel       tasks.Channel
		channelHealth handlers.Pinger
	)
	if cfg.RedisURL != "" {
		redisChannel, err := tasks.NewRedisChannel(tasks.RedisConfig{
			URL:      cfg.RedisURL,
			Password: cfg.RedisPassword,
			Channel:  cfg.TaskChannel,
		}, logger)
		if err != nil {
			log.Fatalf("Failed to connect to Redis task channel: %v", err)
		}
		channel = redisChannel
		channelHealth = handlers.PingFunc(redisChannel.Ping)
		slog.Info("Redis task channel ready", "channel", cfg.TaskChannel)
	} else {
		channel = tasks.NewMemoryChannel()
		slog.Info("Tracking tasks in memory")
	}
	defer func() {
		_ = channel.Close()
	}()

	tracker := tasks.NewTracker()
	go func() {
		if err := tracker.Run(ctx, channel); err != nil {
			slog.Error("Task tracker stopped", "error", err)
		}
	}()

	// Create execution client (external service layer)
	executorClient := executor.NewClient(cfg.ExecutorURL, cfg.ExecutorTimeout)
	slog.Debug("Executor configuration", "base_url", cfg.ExecutorURL, "timeout", cfg.ExecutorTimeout)

	orchestrator := runner.NewOrchestrator(
		templateRepo,
		rulesetRepo,
		versionRepo,
		configRepo,
		executorClient,
		tasks.NewBoard(channel, logger),
		cfg.DefaultKnobValue,
		logger,
	)

	workbench := service.NewWorkbench(service.Deps{
		Templates:    templateRepo,
		Rulesets:     rulesetRepo,
		Versions:     versionRepo,
		Configs:      configRepo,
		Executions:   executionRepo,
		Sessions:     lab.NewRegistry(configRepo, cfg.WindowSize),
		Runner:       orchestrator,
		Tracker:      tracker,
		DefaultValue: cfg.DefaultKnobValue,
	})

	// Create router with dependencies
	router := http.NewRouter(&http.Deps{
		Workbench:   workbench,
		Database:    db,
		TaskChannel: channelHealth,
	})

	// Start API server
	addr := ":" + cfg.APIPort
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("API server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
	slog.Info("API server stopped")
}
