package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"messbook/internal/amqp"
	"messbook/internal/assistant"
	"messbook/internal/assistant/gemini"
	"messbook/internal/config"
	"messbook/internal/core"
	apphttp "messbook/internal/http"
	"messbook/internal/ledger"
	applog "messbook/internal/log"
	"messbook/internal/services"
	"messbook/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}

	// Rehydrate the in-memory ledger from the last session.
	mode := core.ModeShared
	if cfg.MessMode == "single" {
		mode = core.ModeSingle
	}
	store := ledger.New(mode)
	snap, err := repo.LoadSnapshot(ctx, store.Mode())
	if err != nil {
		logger.Error("Failed to load ledger snapshot", "error", err)
		os.Exit(1)
	}
	store.Restore(snap)

	// AMQP is optional: without it the worker's catch-up scan still drains
	// the pending records.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, sync messages disabled", "error", err)
		}
	}

	svc := services.NewLedgerService(store, repo, amqpClient)
	defer svc.Close()

	var parser assistant.Parser
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger.WithComponent(applog.ComponentAssistant).Logger)
		if err != nil {
			logger.Error("Failed to initialize Gemini client", "error", err)
			os.Exit(1)
		}
		parser = geminiClient
		logger.Info("Assistant enabled")
	} else {
		logger.Info("Assistant disabled - no GEMINI_API_KEY provided")
	}

	srv := apphttp.NewServer(":"+cfg.Port, svc, parser, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting messbook server",
		"port", cfg.Port,
		"mode", cfg.MessMode,
		"members", len(snap.Members),
		"deposits", len(snap.Deposits),
		"expenses", len(snap.Expenses))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
