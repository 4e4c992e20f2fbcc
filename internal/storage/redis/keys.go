package redis

import (
	"fmt"

	"github.com/chessdb/chessdb/internal/model"
)

// Key prefix for all archive data
const keyPrefix = "chessdb"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// timeControlKey returns the Redis key for a TimeControl
func timeControlKey(code model.TimeControlCode) string {
	return fmt.Sprintf("%s:time_control:%s", keyPrefix, code)
}

// openingKey returns the Redis key for an Opening
func openingKey(name model.OpeningName) string {
	return fmt.Sprintf("%s:opening:%s", keyPrefix, name)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// Index sets hold entity identifiers (not full keys) per kind, for listing
// and counting

func playersIndexKey() string {
	return keyPrefix + ":idx:players"
}

func timeControlsIndexKey() string {
	return keyPrefix + ":idx:time_controls"
}

func openingsIndexKey() string {
	return keyPrefix + ":idx:openings"
}

func gamesIndexKey() string {
	return keyPrefix + ":idx:games"
}

// gamesByPlayerIndexKey returns the Redis key for the SET of game ids in
// which the player appears as white or black
func gamesByPlayerIndexKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:idx:games_by_player:%s", keyPrefix, id)
}
