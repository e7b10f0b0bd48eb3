package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cornerman/internal/ipc"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification through the configured ntfy topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.TestNotification()
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if resp.Sent {
					fmt.Fprintln(stdout, "Test notification sent.")
					return nil
				}
				message := resp.Message
				if message == "" {
					message = "notification was not sent"
				}
				fmt.Fprintln(stdout, message)
				return nil
			})
		},
	}
}
