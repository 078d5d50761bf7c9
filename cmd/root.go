package cmd

import (
	"fmt"

	"github.com/bnema/holameeto/internal/logger"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var quiet bool
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "hm",
		Short:         "HolaMeeto (hm): instant Jitsi Meet links",
		Long:          "hm (HolaMeeto) generates Jitsi Meet links on the spot and keeps your last 7 meetings at hand to list, copy, share, open or remove.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp(stderrOf{cmd: rootCmd})
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only report failures on stderr")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		app.notifier.SetQuiet(quiet)
		if logLevel != "" {
			if err := logger.SetLogLevel(logLevel); err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
		}
		return nil
	}
	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		app.close()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newNewCmd(app),
		newListCmd(app),
		newCurrentCmd(app),
		newCopyCmd(app),
		newShareCmd(app),
		newOpenCmd(app),
		newRemoveCmd(app),
		newClearCmd(app),
	)

	return rootCmd
}

// stderrOf resolves the command's error writer on every write, so output
// redirected with SetErr after wiring is still honored.
type stderrOf struct {
	cmd *cobra.Command
}

func (w stderrOf) Write(p []byte) (int, error) {
	return w.cmd.ErrOrStderr().Write(p)
}
