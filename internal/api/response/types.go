package response

import (
	"github.com/chessdb/chessdb/internal/model"
	"github.com/chessdb/chessdb/internal/services/listing"
)

// Player represents a player in API responses
type Player struct {
	ID     string `json:"id"`
	Rating int    `json:"rating"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:     string(p.ID),
		Rating: p.Rating,
	}
}

// TimeControl represents a time control in API responses
type TimeControl struct {
	Code string `json:"code"`
}

// TimeControlFromModel converts a model.TimeControl
func TimeControlFromModel(tc *model.TimeControl) TimeControl {
	return TimeControl{Code: string(tc.Code)}
}

// Opening represents an opening in API responses
type Opening struct {
	Name string `json:"name"`
}

// OpeningFromModel converts a model.Opening
func OpeningFromModel(o *model.Opening) Opening {
	return Opening{Name: string(o.Name)}
}

// Game represents a game in API responses
type Game struct {
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

// GameFromModel converts a model.Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:              string(g.ID),
		Rated:           g.Rated,
		CreatedAt:       g.CreatedAt,
		LastMoveAt:      g.LastMoveAt,
		TurnCount:       g.TurnCount,
		VictoryStatus:   g.VictoryStatus,
		Winner:          string(g.Winner),
		TimeControlCode: string(g.TimeControlCode),
		WhiteID:         string(g.WhiteID),
		BlackID:         string(g.BlackID),
		Moves:           g.Moves,
		OpeningName:     string(g.OpeningName),
		OpeningPly:      g.OpeningPly,
	}
}

// Page wraps one page of results with pagination metadata
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// PageFromListing converts a listing page, mapping each item through convert
func PageFromListing[M, T any](p listing.Page[M], convert func(M) T) Page[T] {
	items := make([]T, len(p.Items))
	for i, item := range p.Items {
		items[i] = convert(item)
	}
	return Page[T]{
		Items:      items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}

// IngestReport summarizes an ingestion run in API responses
type IngestReport struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}
