package ingest

import (
	"strconv"
	"strings"

	"github.com/chessdb/chessdb/internal/model"
)

// Column layout of a bulk input row. The contract layout has 15 columns;
// the legacy games.csv export has 16, with the opening ECO code inserted
// before the opening name. Both are accepted, distinguished by arity.
const (
	colID = iota
	colRated
	colCreatedAt
	colLastMoveAt
	colTurns
	colVictoryStatus
	colWinner
	colTimeControl
	colWhiteID
	colWhiteRating
	colBlackID
	colBlackRating
	colMoves

	contractColumns = 15
	legacyColumns   = 16
)

// MaxMovesLength bounds the encoded move list, matching the legacy column
// width
const MaxMovesLength = 2048

// Record is one normalized bulk input row: the player, time-control and
// opening candidates plus the game itself, ready for the upsert engine.
// Normalization performs no store access.
type Record struct {
	White       model.Player
	Black       model.Player
	TimeControl model.TimeControl
	Opening     model.Opening
	Game        model.Game
}

// ParseRow normalizes one positional row into a Record. rowNum is the
// 1-based row number used in error reporting. All fields are required;
// numeric fields must parse; the winner must be one of white/black/draw.
func ParseRow(rowNum int, fields []string) (*Record, error) {
	var openingNameCol, openingPlyCol int
	switch len(fields) {
	case contractColumns:
		openingNameCol, openingPlyCol = 13, 14
	case legacyColumns:
		// Column 13 is the ECO code, which the archive does not record
		openingNameCol, openingPlyCol = 14, 15
	default:
		return nil, &model.MalformedRecordError{
			Row:    rowNum,
			Field:  "row",
			Reason: "expected 15 or 16 columns, got " + strconv.Itoa(len(fields)),
		}
	}

	p := &rowParser{rowNum: rowNum, fields: fields}

	rec := &Record{
		White: model.Player{
			ID:     model.PlayerID(p.str(colWhiteID, "white_id")),
			Rating: p.intval(colWhiteRating, "white_rating"),
		},
		Black: model.Player{
			ID:     model.PlayerID(p.str(colBlackID, "black_id")),
			Rating: p.intval(colBlackRating, "black_rating"),
		},
		TimeControl: model.TimeControl{
			Code: model.TimeControlCode(p.str(colTimeControl, "time_control_code")),
		},
		Opening: model.Opening{
			Name: model.OpeningName(p.str(openingNameCol, "opening_name")),
		},
		Game: model.Game{
			ID:            model.GameID(p.str(colID, "id")),
			Rated:         p.boolean(colRated, "rated"),
			CreatedAt:     p.float(colCreatedAt, "created_at"),
			LastMoveAt:    p.float(colLastMoveAt, "last_move_at"),
			TurnCount:     p.intval(colTurns, "turns"),
			VictoryStatus: p.str(colVictoryStatus, "victory_status"),
			Winner:        p.winner(colWinner, "winner"),
			Moves:         p.str(colMoves, "moves"),
			OpeningPly:    p.intval(openingPlyCol, "opening_ply"),
		},
	}
	if p.err != nil {
		return nil, p.err
	}

	if len(rec.Game.Moves) > MaxMovesLength {
		return nil, &model.MalformedRecordError{
			Row:    rowNum,
			Field:  "moves",
			Reason: "exceeds maximum length",
		}
	}

	// Cross-field references resolved after all columns parsed
	rec.Game.TimeControlCode = rec.TimeControl.Code
	rec.Game.WhiteID = rec.White.ID
	rec.Game.BlackID = rec.Black.ID
	rec.Game.OpeningName = rec.Opening.Name

	return rec, nil
}

// rowParser accumulates the first parse failure while extracting typed
// fields, so ParseRow reads as a flat field list
type rowParser struct {
	rowNum int
	fields []string
	err    error
}

func (p *rowParser) fail(field, reason string) {
	if p.err == nil {
		p.err = &model.MalformedRecordError{Row: p.rowNum, Field: field, Reason: reason}
	}
}

func (p *rowParser) str(col int, field string) string {
	val := strings.TrimSpace(p.fields[col])
	if val == "" {
		p.fail(field, "required field is empty")
	}
	return val
}

func (p *rowParser) intval(col int, field string) int {
	val := p.str(col, field)
	n, err := strconv.Atoi(val)
	if err != nil {
		p.fail(field, "not an integer")
		return 0
	}
	return n
}

func (p *rowParser) float(col int, field string) float64 {
	val := p.str(col, field)
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		p.fail(field, "not a number")
		return 0
	}
	return f
}

func (p *rowParser) boolean(col int, field string) bool {
	val := p.str(col, field)
	b, err := strconv.ParseBool(strings.ToLower(val))
	if err != nil {
		p.fail(field, "not a boolean")
		return false
	}
	return b
}

func (p *rowParser) winner(col int, field string) model.Winner {
	val := model.Winner(strings.ToLower(p.str(col, field)))
	switch val {
	case model.WinnerWhite, model.WinnerBlack, model.WinnerDraw:
		return val
	default:
		p.fail(field, "must be white, black or draw")
		return ""
	}
}
