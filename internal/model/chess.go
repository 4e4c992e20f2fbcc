package model

// PlayerID uniquely identifies a player across the system
type PlayerID string

// TimeControlCode identifies a time control (e.g. "10+0", "15+15")
type TimeControlCode string

// OpeningName identifies an opening by its canonical name
type OpeningName string

// GameID uniquely identifies a game
type GameID string

// Player represents a rated player. Rating is the only mutable attribute;
// re-ingesting a player overwrites it (last write wins).
type Player struct {
	ID     PlayerID `json:"id"`
	Rating int      `json:"rating"`
}

// TimeControl records that a time control code exists. The code is the
// entire payload.
type TimeControl struct {
	Code TimeControlCode `json:"code"`
}

// Opening records that an opening name exists
type Opening struct {
	Name OpeningName `json:"name"`
}

// Winner represents the outcome of a game from white's perspective
type Winner string

const (
	WinnerWhite Winner = "white"
	WinnerBlack Winner = "black"
	WinnerDraw  Winner = "draw"
)

// Game is a single archived chess game. A Game is immutable once created;
// its TimeControlCode, WhiteID, BlackID and OpeningName must reference
// existing entities at creation time.
type Game struct {
	ID              GameID          `json:"id"`
	Rated           bool            `json:"rated"`
	CreatedAt       float64         `json:"created_at"`
	LastMoveAt      float64         `json:"last_move_at"`
	TurnCount       int             `json:"turn_count"`
	VictoryStatus   string          `json:"victory_status"`
	Winner          Winner          `json:"winner"`
	TimeControlCode TimeControlCode `json:"time_control_code"`
	WhiteID         PlayerID        `json:"white_id"`
	BlackID         PlayerID        `json:"black_id"`
	Moves           string          `json:"moves"`
	OpeningName     OpeningName     `json:"opening_name"`
	OpeningPly      int             `json:"opening_ply"`
}

// EntityKind names one of the four persisted collections
type EntityKind string

const (
	KindPlayer      EntityKind = "player"
	KindTimeControl EntityKind = "time_control"
	KindOpening     EntityKind = "opening"
	KindGame        EntityKind = "game"
)
