package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessdb/chessdb/internal/model"
)

// contractRow returns a valid 15-column row
func contractRow() []string {
	return []string{
		"g1", "true", "1504210000000", "1504210005000", "13",
		"outoftime", "white", "15+2", "bourgris", "1500",
		"a-00", "1191", "d4 d5 c4", "Slav Defense", "5",
	}
}

// legacyRow returns a valid 16-column row with the ECO code at column 13
func legacyRow() []string {
	return []string{
		"g1", "TRUE", "1504210000000", "1504210005000", "13",
		"outoftime", "white", "15+2", "bourgris", "1500",
		"a-00", "1191", "d4 d5 c4", "D10", "Slav Defense", "5",
	}
}

func TestParseRowContractLayout(t *testing.T) {
	rec, err := ParseRow(1, contractRow())
	require.NoError(t, err)

	assert.Equal(t, model.PlayerID("bourgris"), rec.White.ID)
	assert.Equal(t, 1500, rec.White.Rating)
	assert.Equal(t, model.PlayerID("a-00"), rec.Black.ID)
	assert.Equal(t, 1191, rec.Black.Rating)
	assert.Equal(t, model.TimeControlCode("15+2"), rec.TimeControl.Code)
	assert.Equal(t, model.OpeningName("Slav Defense"), rec.Opening.Name)

	assert.Equal(t, model.GameID("g1"), rec.Game.ID)
	assert.True(t, rec.Game.Rated)
	assert.Equal(t, 13, rec.Game.TurnCount)
	assert.Equal(t, "outoftime", rec.Game.VictoryStatus)
	assert.Equal(t, model.WinnerWhite, rec.Game.Winner)
	assert.Equal(t, "d4 d5 c4", rec.Game.Moves)
	assert.Equal(t, 5, rec.Game.OpeningPly)

	// Game references resolve to the candidate entities
	assert.Equal(t, rec.White.ID, rec.Game.WhiteID)
	assert.Equal(t, rec.Black.ID, rec.Game.BlackID)
	assert.Equal(t, rec.TimeControl.Code, rec.Game.TimeControlCode)
	assert.Equal(t, rec.Opening.Name, rec.Game.OpeningName)
}

func TestParseRowLegacyLayoutSkipsEco(t *testing.T) {
	rec, err := ParseRow(1, legacyRow())
	require.NoError(t, err)

	assert.Equal(t, model.OpeningName("Slav Defense"), rec.Opening.Name)
	assert.Equal(t, 5, rec.Game.OpeningPly)
	assert.True(t, rec.Game.Rated)
}

func TestParseRowWrongArity(t *testing.T) {
	_, err := ParseRow(3, []string{"g1", "true"})

	var malformed *model.MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 3, malformed.Row)
}

func TestParseRowMalformedFields(t *testing.T) {
	cases := []struct {
		name  string
		col   int
		value string
		field string
	}{
		{"non-numeric white rating", colWhiteRating, "strong", "white_rating"},
		{"non-numeric black rating", colBlackRating, "12.5x", "black_rating"},
		{"non-numeric turns", colTurns, "thirteen", "turns"},
		{"non-numeric created_at", colCreatedAt, "yesterday", "created_at"},
		{"non-boolean rated", colRated, "probably", "rated"},
		{"invalid winner", colWinner, "nobody", "winner"},
		{"empty game id", colID, "", "id"},
		{"empty moves", colMoves, "  ", "moves"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := contractRow()
			fields[tc.col] = tc.value

			_, err := ParseRow(7, fields)

			var malformed *model.MalformedRecordError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, 7, malformed.Row)
			assert.Equal(t, tc.field, malformed.Field)
		})
	}
}

func TestParseRowMovesTooLong(t *testing.T) {
	fields := contractRow()
	long := make([]byte, MaxMovesLength+1)
	for i := range long {
		long[i] = 'e'
	}
	fields[colMoves] = string(long)

	var malformed *model.MalformedRecordError
	_, err := ParseRow(1, fields)
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "moves", malformed.Field)
}

func TestParseRowWinnerCaseInsensitive(t *testing.T) {
	fields := contractRow()
	fields[colWinner] = "Draw"

	rec, err := ParseRow(1, fields)
	require.NoError(t, err)
	assert.Equal(t, model.WinnerDraw, rec.Game.Winner)
}
