package postgres

import "context"

// schema is the DDL for the four entity tables. Games carry foreign keys to
// the three parent kinds; the indexes on white_id/black_id back the cascade
// delete.
const schema = `
CREATE TABLE IF NOT EXISTS players (
    id     TEXT PRIMARY KEY,
    rating INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS time_controls (
    code TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS openings (
    name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS games (
    id                TEXT PRIMARY KEY,
    rated             BOOLEAN NOT NULL,
    created_at        DOUBLE PRECISION NOT NULL,
    last_move_at      DOUBLE PRECISION NOT NULL,
    turn_count        INTEGER NOT NULL,
    victory_status    TEXT NOT NULL,
    winner            TEXT NOT NULL,
    time_control_code TEXT NOT NULL REFERENCES time_controls (code),
    white_id          TEXT NOT NULL REFERENCES players (id),
    black_id          TEXT NOT NULL REFERENCES players (id),
    moves             TEXT NOT NULL,
    opening_name      TEXT NOT NULL REFERENCES openings (name),
    opening_ply       INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_games_white_id ON games (white_id);
CREATE INDEX IF NOT EXISTS idx_games_black_id ON games (black_id);
`

// CreateSchema creates the tables and indexes if they do not exist
func (s *Storage) CreateSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}
