package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func newNewCmd(app *app) *cobra.Command {
	var label string
	var asJSON bool
	var copyLink bool
	var openLink bool

	cmd := &cobra.Command{
		Use:     "new [LABEL...]",
		Aliases: []string{"generate"},
		Short:   "Generate a new meeting link",
		Long:    "Generate a new Jitsi Meet link and add it to the history. An optional label becomes part of the room name.",
		Example: "  hm new\n  hm new --label \"Team Sync\"\n  hm new Design review --copy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if label == "" {
				label = strings.Join(args, " ")
			}

			rec, err := app.meetings.Generate(cmd.Context(), label)
			if err != nil {
				return err
			}

			if err := writeRecord(cmd.OutOrStdout(), rec, asJSON); err != nil {
				return err
			}

			if copyLink {
				// Failures are already reported; the link is on stdout.
				_, _ = app.links.Copy(cmd.Context(), string(rec.ID))
			}
			if openLink {
				if _, err := app.links.Open(cmd.Context(), string(rec.ID)); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "Optional meeting label (nickname)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVarP(&copyLink, "copy", "c", false, "Copy the new link to the clipboard")
	cmd.Flags().BoolVarP(&openLink, "open", "o", false, "Open the new link in the browser")

	return cmd
}
