package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file.csv>",
		Short: "Bulk ingest a CSV dataset",
		Long: `Uploads a CSV dataset for bulk ingestion. Each row inserts its game
if the game id is new, refreshes both player ratings, and registers any
time control or opening not seen before. Re-running the same file is safe.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("could not open %s: %w", args[0], err)
			}
			defer func() { _ = file.Close() }()

			var result IngestReport
			if err := client.Upload("/api/v1/ingest", file, "text/csv", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
