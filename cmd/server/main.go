package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/chessdb/chessdb/internal/api"
	"github.com/chessdb/chessdb/internal/factory"
	postgresstorage "github.com/chessdb/chessdb/internal/storage/postgres"
	redisstorage "github.com/chessdb/chessdb/internal/storage/redis"
)

func main() {
	// Local overrides from .env, ignored when absent
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	// Configure the selected backend
	switch cfg.StorageType {
	case factory.StorageTypeRedis:
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	case factory.StorageTypePostgres:
		databaseURL := os.Getenv("DATABASE_URL")
		if databaseURL == "" {
			logger.Error("DATABASE_URL required when STORAGE_TYPE=postgres")
			os.Exit(1)
		}
		postgresCfg := postgresstorage.DefaultConfig()
		postgresCfg.URL = databaseURL
		cfg.PostgresConfig = &postgresCfg
	}

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create application factory
	app, err := factory.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Optional bootstrap ingest of a local dataset
	if path := os.Getenv("GAMES_CSV"); path != "" {
		report, err := app.IngestService.IngestFile(ctx, path)
		if err != nil {
			logger.Error("bootstrap ingest failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("bootstrap ingest complete",
			slog.String("path", path),
			slog.Int("processed", report.Processed),
			slog.Int("skipped", report.Skipped),
			slog.Int("failed", report.Failed),
		)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		PlayerController: app.PlayerController,
		GameController:   app.GameController,
		IngestService:    app.IngestService,
		ListingService:   app.ListingService,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("port", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(router, serverConfig, logger)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
