package request

import "encoding/json"

// AddPlayerRequest is the request body for creating or updating a player.
// Rating is a json.Number so non-integer values surface as a validation
// error rather than a decode error.
type AddPlayerRequest struct {
	ID     string      `json:"id"`
	Rating json.Number `json:"rating"`
}

// AddGameRequest is the request body for adding a game
type AddGameRequest struct {
	ID              string  `json:"id"`
	Rated           bool    `json:"rated"`
	CreatedAt       float64 `json:"created_at"`
	LastMoveAt      float64 `json:"last_move_at"`
	TurnCount       int     `json:"turns"`
	VictoryStatus   string  `json:"victory_status"`
	Winner          string  `json:"winner"`
	TimeControlCode string  `json:"time_control_code"`
	WhiteID         string  `json:"white_id"`
	BlackID         string  `json:"black_id"`
	Moves           string  `json:"moves"`
	OpeningName     string  `json:"opening_name"`
	OpeningPly      int     `json:"opening_ply"`
}
