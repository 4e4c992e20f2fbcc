package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/chessdb/chessdb/internal/model"
	"github.com/chessdb/chessdb/internal/storage/memory"
	"github.com/chessdb/chessdb/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.controller = NewController(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

// seedReferences stores the players and reference entities validInput points at
func (s *ControllerSuite) seedReferences() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "alice", Rating: 1500}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "bob", Rating: 1400}))
	s.Require().NoError(s.storage.SaveTimeControl(s.ctx, &model.TimeControl{Code: "10+0"}))
	s.Require().NoError(s.storage.SaveOpening(s.ctx, &model.Opening{Name: "Sicilian Defense"}))
}

func validInput() Input {
	return Input{
		ID:              "g1",
		Rated:           true,
		CreatedAt:       1504210000000,
		LastMoveAt:      1504210005000,
		TurnCount:       31,
		VictoryStatus:   "resign",
		Winner:          model.WinnerWhite,
		TimeControlCode: "10+0",
		WhiteID:         "alice",
		BlackID:         "bob",
		Moves:           "e4 c5 Nf3",
		OpeningName:     "Sicilian Defense",
		OpeningPly:      2,
	}
}

func (s *ControllerSuite) TestAddGame() {
	s.seedReferences()

	game, err := s.controller.AddGame(s.ctx, validInput())
	s.Require().NoError(err)
	s.Equal(model.GameID("g1"), game.ID)

	stored, err := s.storage.GetGame(s.ctx, "g1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("alice"), stored.WhiteID)
	s.Equal(model.WinnerWhite, stored.Winner)
}

func (s *ControllerSuite) TestAddGameMissingRequiredField() {
	s.seedReferences()

	in := validInput()
	in.Moves = ""

	_, err := s.controller.AddGame(s.ctx, in)

	var verr *model.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal("moves", verr.Field)

	count, _ := s.storage.CountGames(s.ctx)
	s.Equal(int64(0), count)
}

func (s *ControllerSuite) TestAddGameInvalidWinner() {
	s.seedReferences()

	in := validInput()
	in.Winner = "nobody"

	_, err := s.controller.AddGame(s.ctx, in)

	var verr *model.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal("winner", verr.Field)
}

func (s *ControllerSuite) TestAddGameUnknownWhitePlayer() {
	s.seedReferences()

	in := validInput()
	in.WhiteID = "ghost"

	_, err := s.controller.AddGame(s.ctx, in)

	var rerr *model.ReferenceError
	s.Require().ErrorAs(err, &rerr)
	s.Equal(model.KindPlayer, rerr.Kind)
	s.Equal("white", rerr.Ref)
}

func (s *ControllerSuite) TestAddGameUnknownBlackPlayer() {
	s.seedReferences()

	in := validInput()
	in.BlackID = "ghost"

	_, err := s.controller.AddGame(s.ctx, in)

	var rerr *model.ReferenceError
	s.Require().ErrorAs(err, &rerr)
	s.Equal("black", rerr.Ref)
}

func (s *ControllerSuite) TestAddGameUnknownTimeControl() {
	s.seedReferences()

	in := validInput()
	in.TimeControlCode = "3+0"

	_, err := s.controller.AddGame(s.ctx, in)

	var rerr *model.ReferenceError
	s.Require().ErrorAs(err, &rerr)
	s.Equal(model.KindTimeControl, rerr.Kind)
}

func (s *ControllerSuite) TestAddGameUnknownOpening() {
	s.seedReferences()

	in := validInput()
	in.OpeningName = "Grob Attack"

	_, err := s.controller.AddGame(s.ctx, in)

	var rerr *model.ReferenceError
	s.Require().ErrorAs(err, &rerr)
	s.Equal(model.KindOpening, rerr.Kind)
}

// White is checked before black, so a row missing both players reports white
func (s *ControllerSuite) TestAddGameWhiteCheckedFirst() {
	s.Require().NoError(s.storage.SaveTimeControl(s.ctx, &model.TimeControl{Code: "10+0"}))
	s.Require().NoError(s.storage.SaveOpening(s.ctx, &model.Opening{Name: "Sicilian Defense"}))

	_, err := s.controller.AddGame(s.ctx, validInput())

	var rerr *model.ReferenceError
	s.Require().ErrorAs(err, &rerr)
	s.Equal("white", rerr.Ref)
}

func (s *ControllerSuite) TestAddGameDuplicateID() {
	s.seedReferences()

	_, err := s.controller.AddGame(s.ctx, validInput())
	s.Require().NoError(err)

	_, err = s.controller.AddGame(s.ctx, validInput())

	var cerr *model.ConflictError
	s.Require().ErrorAs(err, &cerr)
	s.Equal(model.KindGame, cerr.Kind)
	s.Equal("g1", cerr.ID)

	count, _ := s.storage.CountGames(s.ctx)
	s.Equal(int64(1), count)
}

func (s *ControllerSuite) TestAddGameSelfPlay() {
	s.seedReferences()

	in := validInput()
	in.BlackID = "alice"

	game, err := s.controller.AddGame(s.ctx, in)
	s.Require().NoError(err)
	s.Equal(game.WhiteID, game.BlackID)
}

func (s *ControllerSuite) TestDeleteGame() {
	s.seedReferences()

	_, err := s.controller.AddGame(s.ctx, validInput())
	s.Require().NoError(err)

	s.Require().NoError(s.controller.DeleteGame(s.ctx, "g1"))

	_, err = s.storage.GetGame(s.ctx, "g1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestGetGameNotFound() {
	_, err := s.controller.GetGame(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrGameNotFound)
}
