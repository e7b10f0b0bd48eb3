package main

import (
	"github.com/spf13/cobra"
)

// Execute runs the root command.
func Execute() error {
	return newRootCommand().Execute()
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	cmd := &cobra.Command{
		Use:   "cornerman",
		Short: "Interactive release search console for Sportarr",
		Long: "Cornerman drives a Sportarr server through a single interactive search slot:\n" +
			"open a slot for an event, search the configured indexers, inspect the\n" +
			"candidate releases, and send one to the download client. The heavy lifting\n" +
			"happens in the cornermand daemon; this CLI is a thin front end over its\n" +
			"unix socket.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&ctx.socketFlag, "socket", "", "Path to the daemon socket (defaults to the configured log directory)")
	cmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "Path to the configuration file")

	cmd.AddCommand(
		newOpenCommand(ctx),
		newSearchCommand(ctx),
		newResultsCommand(ctx),
		newGrabCommand(ctx),
		newConfirmCommand(ctx),
		newCancelCommand(ctx),
		newCloseCommand(ctx),
		newFilesCommand(ctx),
		newStatusCommand(ctx),
		newLogsCommand(ctx),
		newRenameCommand(ctx),
		newConfigCommand(ctx),
		newTestNotifyCommand(ctx),
		newDaemonCommand(ctx),
	)

	return cmd
}
