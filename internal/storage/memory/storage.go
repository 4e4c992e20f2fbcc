package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/chessdb/chessdb/internal/model"
	"github.com/chessdb/chessdb/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players      map[model.PlayerID]*model.Player
	timeControls map[model.TimeControlCode]*model.TimeControl
	openings     map[model.OpeningName]*model.Opening
	games        map[model.GameID]*model.Game
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:      make(map[model.PlayerID]*model.Player),
		timeControls: make(map[model.TimeControlCode]*model.TimeControl),
		openings:     make(map[model.OpeningName]*model.Opening),
		games:        make(map[model.GameID]*model.Game),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// page slices a sorted key list by offset/limit
func page(keys []string, offset, limit int) []string {
	if offset >= len(keys) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(keys) {
		end = len(keys)
	}
	return keys[offset:end]
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context, offset, limit int) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.players))
	for id := range s.players {
		keys = append(keys, string(id))
	}
	sort.Strings(keys)
	result := make([]*model.Player, 0, limit)
	for _, key := range page(keys, offset, limit) {
		result = append(result, s.players[model.PlayerID(key)])
	}
	return result, nil
}

func (s *Storage) CountPlayers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.players)), nil
}

// Time control operations

func (s *Storage) SaveTimeControl(ctx context.Context, tc *model.TimeControl) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeControls[tc.Code] = tc
	return nil
}

func (s *Storage) GetTimeControl(ctx context.Context, code model.TimeControlCode) (*model.TimeControl, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tc, ok := s.timeControls[code]
	if !ok {
		return nil, model.ErrTimeControlNotFound
	}
	return tc, nil
}

func (s *Storage) ListTimeControls(ctx context.Context, offset, limit int) ([]*model.TimeControl, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.timeControls))
	for code := range s.timeControls {
		keys = append(keys, string(code))
	}
	sort.Strings(keys)
	result := make([]*model.TimeControl, 0, limit)
	for _, key := range page(keys, offset, limit) {
		result = append(result, s.timeControls[model.TimeControlCode(key)])
	}
	return result, nil
}

func (s *Storage) CountTimeControls(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.timeControls)), nil
}

// Opening operations

func (s *Storage) SaveOpening(ctx context.Context, opening *model.Opening) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openings[opening.Name] = opening
	return nil
}

func (s *Storage) GetOpening(ctx context.Context, name model.OpeningName) (*model.Opening, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	opening, ok := s.openings[name]
	if !ok {
		return nil, model.ErrOpeningNotFound
	}
	return opening, nil
}

func (s *Storage) ListOpenings(ctx context.Context, offset, limit int) ([]*model.Opening, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.openings))
	for name := range s.openings {
		keys = append(keys, string(name))
	}
	sort.Strings(keys)
	result := make([]*model.Opening, 0, limit)
	for _, key := range page(keys, offset, limit) {
		result = append(result, s.openings[model.OpeningName(key)])
	}
	return result, nil
}

func (s *Storage) CountOpenings(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.openings)), nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.games[id]
	return ok, nil
}

func (s *Storage) ListGames(ctx context.Context, offset, limit int) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.games))
	for id := range s.games {
		keys = append(keys, string(id))
	}
	sort.Strings(keys)
	result := make([]*model.Game, 0, limit)
	for _, key := range page(keys, offset, limit) {
		result = append(result, s.games[model.GameID(key)])
	}
	return result, nil
}

func (s *Storage) CountGames(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.games)), nil
}

func (s *Storage) DeleteGamesByPlayer(ctx context.Context, id model.PlayerID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for gameID, game := range s.games {
		if game.WhiteID == id || game.BlackID == id {
			delete(s.games, gameID)
			removed++
		}
	}
	return removed, nil
}

// ApplyBatch applies every write under a single lock section, so readers
// never observe a partially-applied batch. In-memory writes cannot fail, so
// all-or-nothing holds trivially.
func (s *Storage) ApplyBatch(ctx context.Context, batch storage.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, player := range batch.Players {
		s.players[player.ID] = player
	}
	for _, tc := range batch.TimeControls {
		s.timeControls[tc.Code] = tc
	}
	for _, opening := range batch.Openings {
		s.openings[opening.Name] = opening
	}
	for _, game := range batch.Games {
		s.games[game.ID] = game
	}
	return nil
}
