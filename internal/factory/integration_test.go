package factory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/chessdb/chessdb/internal/model"
	"github.com/chessdb/chessdb/internal/services/game"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) ingestRows(rows ...[]string) {
	report := s.app.IngestService.IngestBatch(s.ctx, rows)
	s.Require().Zero(report.Failed)
}

func gameRow(gameID, white, black string) []string {
	return []string{
		gameID, "true", "1504210000000", "1504210005000", "13",
		"mate", "white", "10+0", white, "1500",
		black, "1400", "e4 e5 Nf3", "King's Pawn Game", "3",
	}
}

// Test: ingest a dataset, browse it, then manually extend and prune it
func (s *IntegrationSuite) TestIngestBrowseAndMutate() {
	// Step 1: Bulk ingest three games between four players
	s.ingestRows(
		gameRow("g1", "alice", "bob"),
		gameRow("g2", "alice", "carol"),
		gameRow("g3", "dave", "bob"),
	)

	// Step 2: Browse the resulting entity sets
	players, err := s.app.ListingService.ListPlayers(s.ctx, 1, 10)
	s.Require().NoError(err)
	s.Equal(int64(4), players.TotalItems)

	games, err := s.app.ListingService.ListGames(s.ctx, 1, 10)
	s.Require().NoError(err)
	s.Equal(int64(3), games.TotalItems)

	// Step 3: Manually add a game between existing players
	added, err := s.app.GameController.AddGame(s.ctx, game.Input{
		ID:              "g4",
		Rated:           true,
		TurnCount:       40,
		VictoryStatus:   "resign",
		Winner:          model.WinnerBlack,
		TimeControlCode: "10+0",
		WhiteID:         "carol",
		BlackID:         "dave",
		Moves:           "d4 Nf6 c4",
		OpeningName:     "King's Pawn Game",
		OpeningPly:      3,
	})
	s.Require().NoError(err)
	s.Equal(model.GameID("g4"), added.ID)

	// Step 4: Deleting alice cascades to g1 and g2, leaving g3 and g4
	s.Require().NoError(s.app.PlayerController.DeletePlayer(s.ctx, "alice"))

	games, err = s.app.ListingService.ListGames(s.ctx, 1, 10)
	s.Require().NoError(err)
	s.Equal(int64(2), games.TotalItems)
	s.Equal(model.GameID("g3"), games.Items[0].ID)
	s.Equal(model.GameID("g4"), games.Items[1].ID)

	players, err = s.app.ListingService.ListPlayers(s.ctx, 1, 10)
	s.Require().NoError(err)
	s.Equal(int64(3), players.TotalItems)
}

// Test: re-running the same ingest leaves the dataset unchanged
func (s *IntegrationSuite) TestReingestAfterManualChanges() {
	rows := [][]string{
		gameRow("g1", "alice", "bob"),
		gameRow("g2", "carol", "dave"),
	}

	first := s.app.IngestService.IngestBatch(s.ctx, rows)
	s.Equal(2, first.Processed)

	// Manual rating update between runs
	_, err := s.app.PlayerController.AddOrUpdatePlayer(s.ctx, "alice", "1800")
	s.Require().NoError(err)

	second := s.app.IngestService.IngestBatch(s.ctx, rows)
	s.Equal(2, second.Skipped)

	// The skipped rows still refreshed alice back to the CSV rating
	alice, err := s.app.PlayerController.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1500, alice.Rating)

	games, err := s.app.Memory.CountGames(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), games)
}

// Test: paging across a larger ingested dataset
func (s *IntegrationSuite) TestPagedBrowsing() {
	rows := make([][]string, 0, 25)
	for i := 0; i < 25; i++ {
		white := fmt.Sprintf("white-%02d", i)
		black := fmt.Sprintf("black-%02d", i)
		rows = append(rows, gameRow(fmt.Sprintf("g%02d", i), white, black))
	}
	s.ingestRows(rows...)

	page, err := s.app.ListingService.ListGames(s.ctx, 3, 10)
	s.Require().NoError(err)
	s.Len(page.Items, 5)
	s.Equal(3, page.TotalPages)
	s.Equal(int64(25), page.TotalItems)
}
