package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTimeControlsCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "time-controls",
		Short: "List time controls",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Page[TimeControl]

			path := fmt.Sprintf("/api/v1/time-controls?page=%d&page_size=%d", page, pageSize)
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

func newOpeningsCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "openings",
		Short: "List openings",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Page[Opening]

			path := fmt.Sprintf("/api/v1/openings?page=%d&page_size=%d", page, pageSize)
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
