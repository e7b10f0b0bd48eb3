package main

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"

	"cornerman/internal/daemonrun"
	"cornerman/internal/ipc"
)

func newDaemonCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run or stop the cornerman daemon",
	}
	cmd.AddCommand(newDaemonRunCommand(ctx), newDaemonStopCommand(ctx))
	return cmd
}

func newDaemonRunCommand(ctx *commandContext) *cobra.Command {
	var (
		logLevel string
		develop  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the daemon in the foreground",
		Long: "Runs cornermand in the foreground until interrupted or stopped with\n" +
			"`cornerman daemon stop`. Only one instance can run per log directory.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return daemonrun.Run(cmd.Context(), cfg, daemonrun.Options{
				LogLevel:    logLevel,
				Development: develop,
			})
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "", "Override the configured log level for this run")
	cmd.Flags().BoolVar(&develop, "develop", false, "Enable development logging (source locations)")
	return cmd
}

func newDaemonStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Ask a running daemon to shut down",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stdout := cmd.OutOrStdout()
			path := ctx.socketPath()
			client, err := ipc.Dial(path)
			if err != nil {
				if errors.Is(err, syscall.ENOENT) || errors.Is(err, syscall.ECONNREFUSED) {
					fmt.Fprintln(stdout, "Daemon is not running.")
					return nil
				}
				return wrapDialError(path, err)
			}
			defer client.Close()

			resp, err := client.Stop()
			if err != nil {
				return err
			}
			if resp.Stopping {
				fmt.Fprintln(stdout, "Daemon is shutting down.")
			}
			return nil
		},
	}
}
