package player

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/chessdb/chessdb/internal/model"
	"github.com/chessdb/chessdb/internal/storage"
)

// Controller handles manual player mutations while keeping game references
// consistent
type Controller struct {
	storage storage.Storage
	logger  *slog.Logger
}

// NewController creates a new player Controller
func NewController(storage storage.Storage, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		logger:  logger,
	}
}

// AddOrUpdatePlayer inserts a player or overwrites the rating of an
// existing one in place. Both fields are required and the rating must be an
// integer; validation happens before any write.
func (c *Controller) AddOrUpdatePlayer(ctx context.Context, id string, ratingText string) (*model.Player, error) {
	if id == "" {
		return nil, model.NewValidationError("id", "required field is empty")
	}
	if ratingText == "" {
		return nil, model.NewValidationError("rating", "required field is empty")
	}
	rating, err := strconv.Atoi(ratingText)
	if err != nil {
		return nil, model.NewValidationError("rating", "not an integer")
	}

	player := &model.Player{ID: model.PlayerID(id), Rating: rating}
	if err := c.storage.SavePlayer(ctx, player); err != nil {
		return nil, &model.PersistenceError{Op: "save player", Err: err}
	}
	return player, nil
}

// GetPlayer retrieves a player by id
func (c *Controller) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return c.storage.GetPlayer(ctx, id)
}

// DeletePlayer removes a player and, first, every game referencing it as
// white or black. The cascade is one batch predicate delete, not a
// requery loop.
func (c *Controller) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	removed, err := c.storage.DeleteGamesByPlayer(ctx, id)
	if err != nil {
		return &model.PersistenceError{Op: "delete games for player", Err: err}
	}

	if err := c.storage.DeletePlayer(ctx, id); err != nil {
		return &model.PersistenceError{Op: "delete player", Err: err}
	}

	c.logger.Info("player deleted",
		slog.String("player_id", string(id)),
		slog.Int("games_removed", removed),
	)
	return nil
}

// Interface for dependency injection
type ControllerInterface interface {
	AddOrUpdatePlayer(ctx context.Context, id string, ratingText string) (*model.Player, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error
}

var _ ControllerInterface = (*Controller)(nil)

// ErrPlayerNotFound is re-exported for callers that only import this package
var ErrPlayerNotFound = model.ErrPlayerNotFound
