package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chessdb/chessdb/internal/model"
	"github.com/chessdb/chessdb/internal/storage"
)

// Storage is a Postgres-backed implementation of the storage interface
type Storage struct {
	pool *pgxpool.Pool
}

// New creates a new Postgres storage instance and verifies the connection
func New(ctx context.Context, cfg Config) (*Storage, error) {
	pool, err := pgxpool.New(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("could not create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("could not connect to postgres: %w", err)
	}

	s := &Storage{pool: pool}
	if cfg.CreateSchema {
		if err := s.CreateSchema(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("could not create schema: %w", err)
		}
	}
	return s, nil
}

// NewWithPool creates a Postgres storage with an existing pool (for testing)
func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

// Close closes the connection pool
func (s *Storage) Close() {
	s.pool.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

const gameColumns = `id, rated, created_at, last_move_at, turn_count,
    victory_status, winner, time_control_code, white_id, black_id, moves,
    opening_name, opening_ply`

func scanGame(row pgx.Row) (*model.Game, error) {
	g := &model.Game{}
	err := row.Scan(
		&g.ID,
		&g.Rated,
		&g.CreatedAt,
		&g.LastMoveAt,
		&g.TurnCount,
		&g.VictoryStatus,
		&g.Winner,
		&g.TimeControlCode,
		&g.WhiteID,
		&g.BlackID,
		&g.Moves,
		&g.OpeningName,
		&g.OpeningPly,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	_, err := s.pool.Exec(ctx, `
        INSERT INTO players (id, rating)
        VALUES ($1, $2)
        ON CONFLICT (id) DO UPDATE SET rating = EXCLUDED.rating
    `, player.ID, player.Rating)
	if err != nil {
		return fmt.Errorf("could not save player: %w", err)
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	row := s.pool.QueryRow(ctx, `SELECT id, rating FROM players WHERE id = $1`, id)

	p := &model.Player{}
	if err := row.Scan(&p.ID, &p.Rating); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	return err
}

func (s *Storage) ListPlayers(ctx context.Context, offset, limit int) ([]*model.Player, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT id, rating FROM players
        ORDER BY id
        OFFSET $1 LIMIT $2
    `, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []*model.Player{}
	for rows.Next() {
		p := &model.Player{}
		if err := rows.Scan(&p.ID, &p.Rating); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *Storage) CountPlayers(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM players`).Scan(&count)
	return count, err
}

// Time control operations

func (s *Storage) SaveTimeControl(ctx context.Context, tc *model.TimeControl) error {
	_, err := s.pool.Exec(ctx, `
        INSERT INTO time_controls (code)
        VALUES ($1)
        ON CONFLICT (code) DO NOTHING
    `, tc.Code)
	return err
}

func (s *Storage) GetTimeControl(ctx context.Context, code model.TimeControlCode) (*model.TimeControl, error) {
	row := s.pool.QueryRow(ctx, `SELECT code FROM time_controls WHERE code = $1`, code)

	tc := &model.TimeControl{}
	if err := row.Scan(&tc.Code); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrTimeControlNotFound
		}
		return nil, err
	}
	return tc, nil
}

func (s *Storage) ListTimeControls(ctx context.Context, offset, limit int) ([]*model.TimeControl, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT code FROM time_controls
        ORDER BY code
        OFFSET $1 LIMIT $2
    `, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tcs := []*model.TimeControl{}
	for rows.Next() {
		tc := &model.TimeControl{}
		if err := rows.Scan(&tc.Code); err != nil {
			return nil, err
		}
		tcs = append(tcs, tc)
	}
	return tcs, rows.Err()
}

func (s *Storage) CountTimeControls(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM time_controls`).Scan(&count)
	return count, err
}

// Opening operations

func (s *Storage) SaveOpening(ctx context.Context, opening *model.Opening) error {
	_, err := s.pool.Exec(ctx, `
        INSERT INTO openings (name)
        VALUES ($1)
        ON CONFLICT (name) DO NOTHING
    `, opening.Name)
	return err
}

func (s *Storage) GetOpening(ctx context.Context, name model.OpeningName) (*model.Opening, error) {
	row := s.pool.QueryRow(ctx, `SELECT name FROM openings WHERE name = $1`, name)

	o := &model.Opening{}
	if err := row.Scan(&o.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOpeningNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *Storage) ListOpenings(ctx context.Context, offset, limit int) ([]*model.Opening, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT name FROM openings
        ORDER BY name
        OFFSET $1 LIMIT $2
    `, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	openings := []*model.Opening{}
	for rows.Next() {
		o := &model.Opening{}
		if err := rows.Scan(&o.Name); err != nil {
			return nil, err
		}
		openings = append(openings, o)
	}
	return openings, rows.Err()
}

func (s *Storage) CountOpenings(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM openings`).Scan(&count)
	return count, err
}

// Game operations

const insertGameSQL = `
    INSERT INTO games (` + gameColumns + `)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    ON CONFLICT (id) DO NOTHING
`

func gameArgs(g *model.Game) []any {
	return []any{
		g.ID, g.Rated, g.CreatedAt, g.LastMoveAt, g.TurnCount,
		g.VictoryStatus, g.Winner, g.TimeControlCode, g.WhiteID, g.BlackID,
		g.Moves, g.OpeningName, g.OpeningPly,
	}
}

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	_, err := s.pool.Exec(ctx, insertGameSQL, gameArgs(game)...)
	if err != nil {
		return fmt.Errorf("could not save game: %w", err)
	}
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id)

	game, err := scanGame(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	return err
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM games WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (s *Storage) ListGames(ctx context.Context, offset, limit int) ([]*model.Game, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT `+gameColumns+` FROM games
        ORDER BY id
        OFFSET $1 LIMIT $2
    `, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []*model.Game{}
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

func (s *Storage) CountGames(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM games`).Scan(&count)
	return count, err
}

// DeleteGamesByPlayer removes every game referencing the player in one
// statement; no requery loop
func (s *Storage) DeleteGamesByPlayer(ctx context.Context, id model.PlayerID) (int, error) {
	tag, err := s.pool.Exec(ctx, `
        DELETE FROM games WHERE white_id = $1 OR black_id = $1
    `, id)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// ApplyBatch applies the whole batch inside one transaction
func (s *Storage) ApplyBatch(ctx context.Context, batch storage.Batch) error {
	if batch.IsEmpty() {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, player := range batch.Players {
		if _, err := tx.Exec(ctx, `
            INSERT INTO players (id, rating)
            VALUES ($1, $2)
            ON CONFLICT (id) DO UPDATE SET rating = EXCLUDED.rating
        `, player.ID, player.Rating); err != nil {
			return fmt.Errorf("could not upsert player %s: %w", player.ID, err)
		}
	}
	for _, tc := range batch.TimeControls {
		if _, err := tx.Exec(ctx, `
            INSERT INTO time_controls (code)
            VALUES ($1)
            ON CONFLICT (code) DO NOTHING
        `, tc.Code); err != nil {
			return fmt.Errorf("could not insert time control %s: %w", tc.Code, err)
		}
	}
	for _, opening := range batch.Openings {
		if _, err := tx.Exec(ctx, `
            INSERT INTO openings (name)
            VALUES ($1)
            ON CONFLICT (name) DO NOTHING
        `, opening.Name); err != nil {
			return fmt.Errorf("could not insert opening %s: %w", opening.Name, err)
		}
	}
	for _, game := range batch.Games {
		if _, err := tx.Exec(ctx, insertGameSQL, gameArgs(game)...); err != nil {
			return fmt.Errorf("could not insert game %s: %w", game.ID, err)
		}
	}

	return tx.Commit(ctx)
}
