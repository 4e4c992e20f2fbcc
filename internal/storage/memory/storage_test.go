package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/chessdb/chessdb/internal/model"
	"github.com/chessdb/chessdb/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) saveGame(id, white, black string) {
	game := &model.Game{
		ID:              model.GameID(id),
		WhiteID:         model.PlayerID(white),
		BlackID:         model.PlayerID(black),
		TimeControlCode: "10+0",
		OpeningName:     "Sicilian Defense",
		Winner:          model.WinnerWhite,
	}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{ID: "alice", Rating: 1500}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(1500, retrieved.Rating)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestSavePlayerOverwritesRating() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "alice", Rating: 1500})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "alice", Rating: 1600})

	retrieved, err := s.storage.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1600, retrieved.Rating)

	count, _ := s.storage.CountPlayers(s.ctx)
	s.Equal(int64(1), count)
}

func (s *StorageSuite) TestDeletePlayer() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "alice", Rating: 1500})

	err := s.storage.DeletePlayer(s.ctx, "alice")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListPlayersOrderedAndPaged() {
	for i := 0; i < 5; i++ {
		id := model.PlayerID(fmt.Sprintf("player-%d", i))
		_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: id, Rating: 1000 + i})
	}

	players, err := s.storage.ListPlayers(s.ctx, 2, 2)
	s.Require().NoError(err)
	s.Len(players, 2)
	s.Equal(model.PlayerID("player-2"), players[0].ID)
	s.Equal(model.PlayerID("player-3"), players[1].ID)
}

func (s *StorageSuite) TestListPlayersOffsetPastEnd() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "alice", Rating: 1500})

	players, err := s.storage.ListPlayers(s.ctx, 10, 5)
	s.Require().NoError(err)
	s.Empty(players)
}

// Time control tests

func (s *StorageSuite) TestSaveAndGetTimeControl() {
	err := s.storage.SaveTimeControl(s.ctx, &model.TimeControl{Code: "10+0"})
	s.Require().NoError(err)

	tc, err := s.storage.GetTimeControl(s.ctx, "10+0")
	s.Require().NoError(err)
	s.Equal(model.TimeControlCode("10+0"), tc.Code)
}

func (s *StorageSuite) TestGetTimeControlNotFound() {
	_, err := s.storage.GetTimeControl(s.ctx, "3+2")
	s.ErrorIs(err, model.ErrTimeControlNotFound)
}

// Opening tests

func (s *StorageSuite) TestSaveAndGetOpening() {
	err := s.storage.SaveOpening(s.ctx, &model.Opening{Name: "Sicilian Defense"})
	s.Require().NoError(err)

	opening, err := s.storage.GetOpening(s.ctx, "Sicilian Defense")
	s.Require().NoError(err)
	s.Equal(model.OpeningName("Sicilian Defense"), opening.Name)
}

func (s *StorageSuite) TestGetOpeningNotFound() {
	_, err := s.storage.GetOpening(s.ctx, "Bongcloud Attack")
	s.ErrorIs(err, model.ErrOpeningNotFound)
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	s.saveGame("g1", "alice", "bob")

	game, err := s.storage.GetGame(s.ctx, "g1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("alice"), game.WhiteID)
	s.Equal(model.PlayerID("bob"), game.BlackID)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGameExists() {
	s.saveGame("g1", "alice", "bob")

	exists, err := s.storage.GameExists(s.ctx, "g1")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.GameExists(s.ctx, "g2")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestDeleteGame() {
	s.saveGame("g1", "alice", "bob")

	err := s.storage.DeleteGame(s.ctx, "g1")
	s.Require().NoError(err)

	_, err = s.storage.GetGame(s.ctx, "g1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteGamesByPlayer() {
	s.saveGame("g1", "alice", "bob")   // alice as white
	s.saveGame("g2", "carol", "alice") // alice as black
	s.saveGame("g3", "carol", "bob")   // unrelated

	removed, err := s.storage.DeleteGamesByPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(2, removed)

	_, err = s.storage.GetGame(s.ctx, "g1")
	s.ErrorIs(err, model.ErrGameNotFound)
	_, err = s.storage.GetGame(s.ctx, "g2")
	s.ErrorIs(err, model.ErrGameNotFound)

	_, err = s.storage.GetGame(s.ctx, "g3")
	s.Require().NoError(err)
}

func (s *StorageSuite) TestDeleteGamesByPlayerNoMatches() {
	s.saveGame("g1", "alice", "bob")

	removed, err := s.storage.DeleteGamesByPlayer(s.ctx, "dave")
	s.Require().NoError(err)
	s.Equal(0, removed)

	count, _ := s.storage.CountGames(s.ctx)
	s.Equal(int64(1), count)
}

// Batch tests

func (s *StorageSuite) TestApplyBatch() {
	batch := storage.Batch{
		Players: []*model.Player{
			{ID: "alice", Rating: 1500},
			{ID: "bob", Rating: 1400},
		},
		TimeControls: []*model.TimeControl{{Code: "10+0"}},
		Openings:     []*model.Opening{{Name: "Sicilian Defense"}},
		Games: []*model.Game{{
			ID: "g1", WhiteID: "alice", BlackID: "bob",
			TimeControlCode: "10+0", OpeningName: "Sicilian Defense",
			Winner: model.WinnerDraw,
		}},
	}

	err := s.storage.ApplyBatch(s.ctx, batch)
	s.Require().NoError(err)

	player, err := s.storage.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1500, player.Rating)

	_, err = s.storage.GetTimeControl(s.ctx, "10+0")
	s.Require().NoError(err)
	_, err = s.storage.GetOpening(s.ctx, "Sicilian Defense")
	s.Require().NoError(err)
	_, err = s.storage.GetGame(s.ctx, "g1")
	s.Require().NoError(err)
}

func (s *StorageSuite) TestApplyBatchUpsertsPlayers() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "alice", Rating: 1500})

	err := s.storage.ApplyBatch(s.ctx, storage.Batch{
		Players: []*model.Player{{ID: "alice", Rating: 1650}},
	})
	s.Require().NoError(err)

	player, _ := s.storage.GetPlayer(s.ctx, "alice")
	s.Equal(1650, player.Rating)
}
