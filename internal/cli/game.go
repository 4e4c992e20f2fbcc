package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game management commands",
	}

	cmd.AddCommand(newGameAddCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameDeleteCmd())
	cmd.AddCommand(newGameListCmd())

	return cmd
}

func newGameAddCmd() *cobra.Command {
	var game Game

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a game between existing players",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			game.ID = args[0]

			var result Game
			if err := client.Post("/api/v1/games", game, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&game.WhiteID, "white", "", "White player id (required)")
	cmd.Flags().StringVar(&game.BlackID, "black", "", "Black player id (required)")
	cmd.Flags().StringVar(&game.Winner, "winner", "", "Winner: white, black or draw (required)")
	cmd.Flags().StringVar(&game.VictoryStatus, "victory-status", "", "How the game ended (required)")
	cmd.Flags().StringVar(&game.TimeControlCode, "time-control", "", "Time control code (required)")
	cmd.Flags().StringVar(&game.OpeningName, "opening", "", "Opening name (required)")
	cmd.Flags().StringVar(&game.Moves, "moves", "", "Moves in standard notation (required)")
	cmd.Flags().IntVar(&game.TurnCount, "turns", 0, "Number of turns")
	cmd.Flags().IntVar(&game.OpeningPly, "opening-ply", 0, "Opening ply count")
	cmd.Flags().BoolVar(&game.Rated, "rated", false, "Whether the game was rated")
	cmd.Flags().Float64Var(&game.CreatedAt, "created-at", 0, "Start timestamp (epoch millis)")
	cmd.Flags().Float64Var(&game.LastMoveAt, "last-move-at", 0, "Last move timestamp (epoch millis)")
	_ = cmd.MarkFlagRequired("white")
	_ = cmd.MarkFlagRequired("black")
	_ = cmd.MarkFlagRequired("winner")
	_ = cmd.MarkFlagRequired("victory-status")
	_ = cmd.MarkFlagRequired("time-control")
	_ = cmd.MarkFlagRequired("opening")
	_ = cmd.MarkFlagRequired("moves")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get("/api/v1/games/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/games/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Game %s deleted", args[0]))
			return nil
		},
	}
}

func newGameListCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Page[Game]

			path := fmt.Sprintf("/api/v1/games?page=%d&page_size=%d", page, pageSize)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 100, "Page size")

	return cmd
}
