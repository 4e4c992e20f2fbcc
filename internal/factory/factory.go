package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/chessdb/chessdb/internal/services/game"
	"github.com/chessdb/chessdb/internal/services/ingest"
	"github.com/chessdb/chessdb/internal/services/listing"
	"github.com/chessdb/chessdb/internal/services/player"
	"github.com/chessdb/chessdb/internal/storage"
	"github.com/chessdb/chessdb/internal/storage/memory"
	postgresstorage "github.com/chessdb/chessdb/internal/storage/postgres"
	redisstorage "github.com/chessdb/chessdb/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// Services
	IngestService    *ingest.Service
	PlayerController *player.Controller
	GameController   *game.Controller
	ListingService   *listing.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresConfig holds Postgres connection settings (required if StorageType is "postgres")
	PostgresConfig *postgresstorage.Config
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		postgresStore, err := postgresstorage.New(ctx, *cfg.PostgresConfig)
		if err != nil {
			return nil, err
		}
		store = postgresStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}

	return newWithStorage(store, logger), nil
}

// newWithStorage creates an App on top of the given store (useful for testing)
func newWithStorage(store storage.Storage, logger *slog.Logger) *App {
	ingestService := ingest.New(store, logger)
	playerController := player.NewController(store, logger)
	gameController := game.NewController(store, logger)
	listingService := listing.New(store)

	return &App{
		Storage:          store,
		IngestService:    ingestService,
		PlayerController: playerController,
		GameController:   gameController,
		ListingService:   listingService,
	}
}
