package game

import (
	"context"
	"errors"
	"log/slog"

	"github.com/chessdb/chessdb/internal/model"
	"github.com/chessdb/chessdb/internal/storage"
)

// Controller handles manual game mutations, enforcing referential
// consistency against players, time controls and openings
type Controller struct {
	storage storage.Storage
	logger  *slog.Logger
}

// NewController creates a new game Controller
func NewController(storage storage.Storage, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		logger:  logger,
	}
}

// Input carries the fields for a manual game add. All fields are required.
type Input struct {
	ID              model.GameID
	Rated           bool
	CreatedAt       float64
	LastMoveAt      float64
	TurnCount       int
	VictoryStatus   string
	Winner          model.Winner
	TimeControlCode model.TimeControlCode
	WhiteID         model.PlayerID
	BlackID         model.PlayerID
	Moves           string
	OpeningName     model.OpeningName
	OpeningPly      int
}

// requiredFields drives required-field validation in a fixed order
func (in Input) requiredFields() []struct{ name, value string } {
	return []struct{ name, value string }{
		{"id", string(in.ID)},
		{"victory_status", in.VictoryStatus},
		{"winner", string(in.Winner)},
		{"time_control_code", string(in.TimeControlCode)},
		{"white_id", string(in.WhiteID)},
		{"black_id", string(in.BlackID)},
		{"moves", in.Moves},
		{"opening_name", string(in.OpeningName)},
	}
}

// AddGame validates and inserts a game. Checks run in a fixed order and the
// first failure is returned: required fields, white player, black player,
// time control, opening, then id conflict. Nothing is written unless every
// check passes. WhiteID == BlackID is accepted; self-play records are valid.
func (c *Controller) AddGame(ctx context.Context, in Input) (*model.Game, error) {
	for _, field := range in.requiredFields() {
		if field.value == "" {
			return nil, model.NewValidationError(field.name, "required field is empty")
		}
	}
	switch in.Winner {
	case model.WinnerWhite, model.WinnerBlack, model.WinnerDraw:
	default:
		return nil, model.NewValidationError("winner", "must be white, black or draw")
	}

	if _, err := c.storage.GetPlayer(ctx, in.WhiteID); err != nil {
		return nil, refError(err, model.ErrPlayerNotFound, model.KindPlayer, "white")
	}
	if _, err := c.storage.GetPlayer(ctx, in.BlackID); err != nil {
		return nil, refError(err, model.ErrPlayerNotFound, model.KindPlayer, "black")
	}
	if _, err := c.storage.GetTimeControl(ctx, in.TimeControlCode); err != nil {
		return nil, refError(err, model.ErrTimeControlNotFound, model.KindTimeControl, string(in.TimeControlCode))
	}
	if _, err := c.storage.GetOpening(ctx, in.OpeningName); err != nil {
		return nil, refError(err, model.ErrOpeningNotFound, model.KindOpening, string(in.OpeningName))
	}

	exists, err := c.storage.GameExists(ctx, in.ID)
	if err != nil {
		return nil, &model.PersistenceError{Op: "check game id", Err: err}
	}
	if exists {
		return nil, &model.ConflictError{Kind: model.KindGame, ID: string(in.ID)}
	}

	game := &model.Game{
		ID:              in.ID,
		Rated:           in.Rated,
		CreatedAt:       in.CreatedAt,
		LastMoveAt:      in.LastMoveAt,
		TurnCount:       in.TurnCount,
		VictoryStatus:   in.VictoryStatus,
		Winner:          in.Winner,
		TimeControlCode: in.TimeControlCode,
		WhiteID:         in.WhiteID,
		BlackID:         in.BlackID,
		Moves:           in.Moves,
		OpeningName:     in.OpeningName,
		OpeningPly:      in.OpeningPly,
	}
	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, &model.PersistenceError{Op: "save game", Err: err}
	}

	c.logger.Info("game added", slog.String("game_id", string(game.ID)))
	return game, nil
}

// refError maps a storage miss to a ReferenceError, passing through
// infrastructure failures as PersistenceError
func refError(err, notFound error, kind model.EntityKind, ref string) error {
	if errors.Is(err, notFound) {
		return &model.ReferenceError{Kind: kind, Ref: ref}
	}
	return &model.PersistenceError{Op: "check " + string(kind), Err: err}
}

// GetGame retrieves a game by id
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, id)
}

// DeleteGame removes a game. Games have no dependents, so there is no
// cascade.
func (c *Controller) DeleteGame(ctx context.Context, id model.GameID) error {
	if err := c.storage.DeleteGame(ctx, id); err != nil {
		return &model.PersistenceError{Op: "delete game", Err: err}
	}
	return nil
}

// Interface for dependency injection
type ControllerInterface interface {
	AddGame(ctx context.Context, in Input) (*model.Game, error)
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
}

var _ ControllerInterface = (*Controller)(nil)
