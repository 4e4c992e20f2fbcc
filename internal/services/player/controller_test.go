package player

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

func (s *ControllerSuite) TestAddPlayer() {
	player, err := s.controller.AddOrUpdatePlayer(s.ctx, "alice", "1500")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("alice"), player.ID)
	s.Equal(1500, player.Rating)

	stored, err := s.storage.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1500, stored.Rating)
}

func (s *ControllerSuite) TestUpdatePlayerOverwritesInPlace() {
	_, err := s.controller.AddOrUpdatePlayer(s.ctx, "alice", "1500")
	s.Require().NoError(err)

	_, err = s.controller.AddOrUpdatePlayer(s.ctx, "alice", "1650")
	s.Require().NoError(err)

	stored, err := s.storage.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1650, stored.Rating)

	count, err := s.storage.CountPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *ControllerSuite) TestAddPlayerValidation() {
	cases := []struct {
		name   string
		id     string
		rating string
		field  string
	}{
		{"empty id", "", "1500", "id"},
		{"empty rating", "alice", "", "rating"},
		{"non-integer rating", "alice", "strong", "rating"},
		{"float rating", "alice", "1500.5", "rating"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.controller.AddOrUpdatePlayer(s.ctx, tc.id, tc.rating)

			var verr *model.ValidationError
			s.Require().ErrorAs(err, &verr)
			s.Equal(tc.field, verr.Field)
		})
	}

	// Nothing was written by the failed attempts
	count, err := s.storage.CountPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), count)
}

func (s *ControllerSuite) TestGetPlayerNotFound() {
	_, err := s.controller.GetPlayer(s.ctx, "ghost")
	s.ErrorIs(err, ErrPlayerNotFound)
}

func (s *ControllerSuite) TestDeletePlayerCascadesGames() {
	s.seedPlayers("alice", "bob", "carol")
	s.seedGame("g1", "alice", "bob")
	s.seedGame("g2", "carol", "alice")
	s.seedGame("g3", "bob", "carol")

	err := s.controller.DeletePlayer(s.ctx, "alice")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	// Both games referencing alice are gone, the unrelated one survives
	_, err = s.storage.GetGame(s.ctx, "g1")
	s.ErrorIs(err, model.ErrGameNotFound)
	_, err = s.storage.GetGame(s.ctx, "g2")
	s.ErrorIs(err, model.ErrGameNotFound)
	_, err = s.storage.GetGame(s.ctx, "g3")
	s.NoError(err)
}

func (s *ControllerSuite) TestDeletePlayerWithoutGames() {
	s.seedPlayers("alice")

	err := s.controller.DeletePlayer(s.ctx, "alice")
	s.Require().NoError(err)

	count, err := s.storage.CountPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), count)
}

func (s *ControllerSuite) seedPlayers(ids ...model.PlayerID) {
	for _, id := range ids {
		s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: id, Rating: 1500}))
	}
}

func (s *ControllerSuite) seedGame(id model.GameID, white, black model.PlayerID) {
	s.Require().NoError(s.storage.SaveTimeControl(s.ctx, &model.TimeControl{Code: "10+0"}))
	s.Require().NoError(s.storage.SaveOpening(s.ctx, &model.Opening{Name: "Sicilian Defense"}))
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{
		ID:              id,
		Rated:           true,
		TurnCount:       20,
		VictoryStatus:   "resign",
		Winner:          model.WinnerWhite,
		TimeControlCode: "10+0",
		WhiteID:         white,
		BlackID:         black,
		Moves:           "e4 c5",
		OpeningName:     "Sicilian Defense",
		OpeningPly:      2,
	}))
}
