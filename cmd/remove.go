package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID|N",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove one meeting from the history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.meetings.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", rec.ID)
			return err
		},
	}
}

func newClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every meeting from the history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.meetings.ClearHistory(cmd.Context())
		},
	}
}
