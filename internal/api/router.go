package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chessdb/chessdb/internal/api/handler"
	"github.com/chessdb/chessdb/internal/api/middleware"
	"github.com/chessdb/chessdb/internal/services/game"
	"github.com/chessdb/chessdb/internal/services/ingest"
	"github.com/chessdb/chessdb/internal/services/listing"
	"github.com/chessdb/chessdb/internal/services/player"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	PlayerController *player.Controller
	GameController   *game.Controller
	IngestService    *ingest.Service
	ListingService   *listing.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.PlayerController)
	gameHandler := handler.NewGameHandler(cfg.GameController)
	listingHandler := handler.NewListingHandler(cfg.ListingService)
	ingestHandler := handler.NewIngestHandler(cfg.IngestService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Bulk ingestion
	api.HandleFunc("/ingest", ingestHandler.Upload).Methods(http.MethodPost)

	// Player routes
	api.HandleFunc("/players", playerHandler.AddOrUpdate).Methods(http.MethodPut)
	api.HandleFunc("/players", listingHandler.Players).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Delete).Methods(http.MethodDelete)

	// Game routes
	api.HandleFunc("/games", gameHandler.Add).Methods(http.MethodPost)
	api.HandleFunc("/games", listingHandler.Games).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Delete).Methods(http.MethodDelete)

	// Reference entity routes
	api.HandleFunc("/time-controls", listingHandler.TimeControls).Methods(http.MethodGet)
	api.HandleFunc("/openings", listingHandler.Openings).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
