package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"cornerman/internal/ipc"
	"cornerman/internal/session"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon health and the state of the search slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Status()
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				colorize := shouldColorize(stdout)

				fmt.Fprintln(stdout, renderSectionHeader("Daemon"))
				runningKind, runningMsg := statusError, "no"
				if resp.Running {
					runningKind = statusOK
					runningMsg = fmt.Sprintf("pid %d, started %s", resp.PID, humanize.Time(resp.StartedAt))
				}
				fmt.Fprintln(stdout, renderStatusLine("Running", runningKind, runningMsg, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Socket", statusInfo, resp.SocketPath, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Log", statusInfo, resp.LogPath, colorize))

				if len(resp.Checks) > 0 {
					fmt.Fprintln(stdout)
					fmt.Fprintln(stdout, renderSectionHeader("Checks"))
					for _, check := range resp.Checks {
						kind := statusOK
						if !check.Passed {
							kind = statusError
						}
						fmt.Fprintln(stdout, renderStatusLine(check.Name, kind, check.Detail, colorize))
					}
				}

				fmt.Fprintln(stdout)
				fmt.Fprintln(stdout, renderSectionHeader("Session"))
				slot := resp.Session
				if !slot.Open {
					fmt.Fprintln(stdout, renderStatusLine("Slot", statusInfo, "no open session", colorize))
					return nil
				}
				fmt.Fprintln(stdout, renderStatusLine("Target", statusInfo, formatTarget(slot.Target), colorize))

				stateKind := statusInfo
				switch slot.State {
				case session.StateFailed:
					stateKind = statusError
				case session.StatePopulated:
					stateKind = statusOK
				}
				stateMsg := string(slot.State)
				if slot.Error != "" {
					stateMsg += ": " + slot.Error
				}
				fmt.Fprintln(stdout, renderStatusLine("State", stateKind, stateMsg, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Results", statusInfo, fmt.Sprintf("%d release(s)", len(slot.Results)), colorize))
				if len(slot.Files) > 0 {
					fmt.Fprintln(stdout, renderStatusLine("Files", statusInfo, fmt.Sprintf("%d on disk", len(slot.Files)), colorize))
				}
				if slot.Confirmation != nil {
					fmt.Fprintln(stdout, renderStatusLine("Pending", statusWarn,
						fmt.Sprintf("blocklist override for %s", slot.Confirmation.Candidate.Title), colorize))
				}
				if slot.Downloading >= 0 {
					fmt.Fprintln(stdout, renderStatusLine("Grabbing", statusInfo, fmt.Sprintf("row %d", slot.Downloading+1), colorize))
				}
				return nil
			})
		},
	}
}
