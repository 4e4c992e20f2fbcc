package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chessdb/chessdb/internal/model"
	"github.com/chessdb/chessdb/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Entities are stored as JSON values; per-kind SET indexes provide listing,
// counting and the games-by-player lookup used for cascade deletes.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// listIDs returns the sorted, paged identifiers from an index set
func (s *Storage) listIDs(ctx context.Context, indexKey string, offset, limit int) ([]string, error) {
	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)

	if offset >= len(ids) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(ids) {
		end = len(ids)
	}
	return ids[offset:end], nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Pipeline keeps the value and the index in sync
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, playerKey(player.ID), data, 0)
	pipe.SAdd(ctx, playersIndexKey(), string(player.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, playerKey(id))
	pipe.SRem(ctx, playersIndexKey(), string(id))
	pipe.Del(ctx, gamesByPlayerIndexKey(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListPlayers(ctx context.Context, offset, limit int) ([]*model.Player, error) {
	ids, err := s.listIDs(ctx, playersIndexKey(), offset, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Player{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = playerKey(model.PlayerID(id))
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Index may be momentarily ahead of a delete
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue
		}
		players = append(players, &player)
	}
	return players, nil
}

func (s *Storage) CountPlayers(ctx context.Context) (int64, error) {
	return s.client.SCard(ctx, playersIndexKey()).Result()
}

// Time control operations

func (s *Storage) SaveTimeControl(ctx context.Context, tc *model.TimeControl) error {
	data, err := json.Marshal(tc)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, timeControlKey(tc.Code), data, 0)
	pipe.SAdd(ctx, timeControlsIndexKey(), string(tc.Code))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetTimeControl(ctx context.Context, code model.TimeControlCode) (*model.TimeControl, error) {
	data, err := s.client.Get(ctx, timeControlKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTimeControlNotFound
		}
		return nil, err
	}

	var tc model.TimeControl
	if err := json.Unmarshal(data, &tc); err != nil {
		return nil, err
	}
	return &tc, nil
}

func (s *Storage) ListTimeControls(ctx context.Context, offset, limit int) ([]*model.TimeControl, error) {
	ids, err := s.listIDs(ctx, timeControlsIndexKey(), offset, limit)
	if err != nil {
		return nil, err
	}

	result := make([]*model.TimeControl, 0, len(ids))
	for _, id := range ids {
		result = append(result, &model.TimeControl{Code: model.TimeControlCode(id)})
	}
	return result, nil
}

func (s *Storage) CountTimeControls(ctx context.Context) (int64, error) {
	return s.client.SCard(ctx, timeControlsIndexKey()).Result()
}

// Opening operations

func (s *Storage) SaveOpening(ctx context.Context, opening *model.Opening) error {
	data, err := json.Marshal(opening)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, openingKey(opening.Name), data, 0)
	pipe.SAdd(ctx, openingsIndexKey(), string(opening.Name))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetOpening(ctx context.Context, name model.OpeningName) (*model.Opening, error) {
	data, err := s.client.Get(ctx, openingKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrOpeningNotFound
		}
		return nil, err
	}

	var opening model.Opening
	if err := json.Unmarshal(data, &opening); err != nil {
		return nil, err
	}
	return &opening, nil
}

func (s *Storage) ListOpenings(ctx context.Context, offset, limit int) ([]*model.Opening, error) {
	ids, err := s.listIDs(ctx, openingsIndexKey(), offset, limit)
	if err != nil {
		return nil, err
	}

	result := make([]*model.Opening, 0, len(ids))
	for _, id := range ids {
		result = append(result, &model.Opening{Name: model.OpeningName(id)})
	}
	return result, nil
}

func (s *Storage) CountOpenings(ctx context.Context) (int64, error) {
	return s.client.SCard(ctx, openingsIndexKey()).Result()
}

// Game operations

// addGame queues the writes for one game onto a pipeline
func addGame(ctx context.Context, pipe redis.Pipeliner, game *model.Game, data []byte) {
	pipe.Set(ctx, gameKey(game.ID), data, 0)
	pipe.SAdd(ctx, gamesIndexKey(), string(game.ID))
	pipe.SAdd(ctx, gamesByPlayerIndexKey(game.WhiteID), string(game.ID))
	pipe.SAdd(ctx, gamesByPlayerIndexKey(game.BlackID), string(game.ID))
}

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	addGame(ctx, pipe, game, data)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	// Read first so the player indexes can be cleaned up
	game, err := s.GetGame(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, gameKey(id))
	pipe.SRem(ctx, gamesIndexKey(), string(id))
	pipe.SRem(ctx, gamesByPlayerIndexKey(game.WhiteID), string(id))
	pipe.SRem(ctx, gamesByPlayerIndexKey(game.BlackID), string(id))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	exists, err := s.client.Exists(ctx, gameKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) ListGames(ctx context.Context, offset, limit int) ([]*model.Game, error) {
	ids, err := s.listIDs(ctx, gamesIndexKey(), offset, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Game{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = gameKey(model.GameID(id))
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var game model.Game
		if err := json.Unmarshal([]byte(val.(string)), &game); err != nil {
			continue
		}
		games = append(games, &game)
	}
	return games, nil
}

func (s *Storage) CountGames(ctx context.Context) (int64, error) {
	return s.client.SCard(ctx, gamesIndexKey()).Result()
}

func (s *Storage) DeleteGamesByPlayer(ctx context.Context, id model.PlayerID) (int, error) {
	indexKey := gamesByPlayerIndexKey(id)

	gameIDs, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return 0, err
	}
	if len(gameIDs) == 0 {
		return 0, nil
	}

	// Fetch the games so the opponents' indexes can be cleaned up too
	keys := make([]string, len(gameIDs))
	for i, gameID := range gameIDs {
		keys[i] = gameKey(model.GameID(gameID))
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return 0, err
	}

	pipe := s.client.TxPipeline()
	removed := 0
	for _, val := range values {
		if val == nil {
			continue
		}
		var game model.Game
		if err := json.Unmarshal([]byte(val.(string)), &game); err != nil {
			continue
		}
		pipe.Del(ctx, gameKey(game.ID))
		pipe.SRem(ctx, gamesIndexKey(), string(game.ID))
		pipe.SRem(ctx, gamesByPlayerIndexKey(game.WhiteID), string(game.ID))
		pipe.SRem(ctx, gamesByPlayerIndexKey(game.BlackID), string(game.ID))
		removed++
	}
	pipe.Del(ctx, indexKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return removed, nil
}

// ApplyBatch applies the whole batch in one transactional pipeline, so the
// server executes every write atomically (MULTI/EXEC)
func (s *Storage) ApplyBatch(ctx context.Context, batch storage.Batch) error {
	if batch.IsEmpty() {
		return nil
	}

	pipe := s.client.TxPipeline()

	for _, player := range batch.Players {
		data, err := json.Marshal(player)
		if err != nil {
			return err
		}
		pipe.Set(ctx, playerKey(player.ID), data, 0)
		pipe.SAdd(ctx, playersIndexKey(), string(player.ID))
	}
	for _, tc := range batch.TimeControls {
		data, err := json.Marshal(tc)
		if err != nil {
			return err
		}
		pipe.Set(ctx, timeControlKey(tc.Code), data, 0)
		pipe.SAdd(ctx, timeControlsIndexKey(), string(tc.Code))
	}
	for _, opening := range batch.Openings {
		data, err := json.Marshal(opening)
		if err != nil {
			return err
		}
		pipe.Set(ctx, openingKey(opening.Name), data, 0)
		pipe.SAdd(ctx, openingsIndexKey(), string(opening.Name))
	}
	for _, game := range batch.Games {
		data, err := json.Marshal(game)
		if err != nil {
			return err
		}
		addGame(ctx, pipe, game, data)
	}

	_, err := pipe.Exec(ctx)
	return err
}
