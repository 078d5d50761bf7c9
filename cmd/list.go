package cmd

import (
	"fmt"
	"time"

	historyrender "github.com/bnema/holameeto/internal/adapters/render/history"
	"github.com/bnema/holameeto/internal/domain"
	"github.com/spf13/cobra"
)

func newListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"history", "ls"},
		Short:   "Show recent meetings",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := app.meetings.History(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				out := make([]recordOutput, 0, len(records))
				for _, rec := range records {
					out = append(out, toRecordOutput(rec))
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			rendered, err := app.historyRenderer(records, historyrender.RenderOptions{
				Now:      app.now(),
				Location: time.Local,
				Max:      domain.MaxHistoryItems,
			})
			if err != nil {
				return fmt.Errorf("render history: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
