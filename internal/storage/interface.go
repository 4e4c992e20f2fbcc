package storage

import (
	"context"

	"github.com/chessdb/chessdb/internal/model"
)

// Batch is a set of writes applied as one atomic unit. Players are upserts
// (last write wins on rating); time controls, openings and games are plain
// inserts; callers decide what belongs in the batch before applying it.
type Batch struct {
	Players      []*model.Player
	TimeControls []*model.TimeControl
	Openings     []*model.Opening
	Games        []*model.Game
}

// IsEmpty reports whether the batch contains no writes
func (b Batch) IsEmpty() bool {
	return len(b.Players) == 0 && len(b.TimeControls) == 0 &&
		len(b.Openings) == 0 && len(b.Games) == 0
}

// Storage defines the interface for data persistence. List operations are
// paged by offset/limit and return items in lexicographic identifier order.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error
	ListPlayers(ctx context.Context, offset, limit int) ([]*model.Player, error)
	CountPlayers(ctx context.Context) (int64, error)

	// Time control operations
	SaveTimeControl(ctx context.Context, tc *model.TimeControl) error
	GetTimeControl(ctx context.Context, code model.TimeControlCode) (*model.TimeControl, error)
	ListTimeControls(ctx context.Context, offset, limit int) ([]*model.TimeControl, error)
	CountTimeControls(ctx context.Context) (int64, error)

	// Opening operations
	SaveOpening(ctx context.Context, opening *model.Opening) error
	GetOpening(ctx context.Context, name model.OpeningName) (*model.Opening, error)
	ListOpenings(ctx context.Context, offset, limit int) ([]*model.Opening, error)
	CountOpenings(ctx context.Context) (int64, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	GameExists(ctx context.Context, id model.GameID) (bool, error)
	ListGames(ctx context.Context, offset, limit int) ([]*model.Game, error)
	CountGames(ctx context.Context) (int64, error)

	// DeleteGamesByPlayer removes every game where the player appears as
	// white or black, in a single pass. Returns the number removed.
	DeleteGamesByPlayer(ctx context.Context, id model.PlayerID) (int, error)

	// ApplyBatch applies all writes in the batch atomically: either every
	// write is visible afterwards or none is.
	ApplyBatch(ctx context.Context, batch Batch) error
}
