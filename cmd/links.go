package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCurrentCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Print the most recent meeting link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := app.meetings.Current(cmd.Context())
			if err != nil {
				return err
			}

			return writeRecord(cmd.OutOrStdout(), rec, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newCopyCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "copy [ID|N]",
		Short: "Copy a meeting link to the clipboard",
		Long:  "Copy a meeting link to the clipboard. Pick it by id or by its position in `hm list`; the most recent link is used by default.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.links.Copy(cmd.Context(), refArg(args))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rec.Link)
			return err
		},
	}
}

func newShareCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "share [ID|N]",
		Short: "Print a ready-to-send invitation and copy the link",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			share, err := app.links.Share(cmd.Context(), refArg(args))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), share.Text)
			return err
		},
	}
}

func newOpenCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open [ID|N]",
		Short: "Open a meeting link in the default browser",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.links.Open(cmd.Context(), refArg(args))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rec.Link)
			return err
		},
	}
}
