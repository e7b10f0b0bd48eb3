package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"cornerman/internal/ipc"
)

func newOpenCommand(ctx *commandContext) *cobra.Command {
	var part string

	cmd := &cobra.Command{
		Use:   "open <event-id>",
		Short: "Open the search slot for an event",
		Long: "Opens the daemon's single search slot for the given event. Opening a new\n" +
			"target discards whatever the slot held before.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid event id %q", args[0])
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Open(eventID, part)
				if err != nil {
					return err
				}
				snap := resp.Session
				stdout := cmd.OutOrStdout()
				fmt.Fprintf(stdout, "Opened search slot for %s (session %s)\n", formatTarget(snap.Target), snap.SessionID)
				if len(snap.Files) > 0 {
					fmt.Fprintln(stdout)
					fmt.Fprintln(stdout, "Existing files:")
					renderPartFiles(stdout, snap.Files)
				}
				fmt.Fprintln(stdout)
				fmt.Fprintln(stdout, "Run `cornerman search` to query the indexers.")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&part, "part", "", "Restrict the search to one card part (e.g. \"Main Card\")")
	return cmd
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		eventID int64
		part    string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the indexers for the open slot",
		Long: "Searches the configured indexers for the open slot. With --event the slot\n" +
			"is (re)opened for that event first, so a single invocation replaces the\n" +
			"open/search pair.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if part != "" && eventID <= 0 {
				return errors.New("--part requires --event")
			}
			return ctx.withClient(func(client *ipc.Client) error {
				if eventID > 0 {
					if _, err := client.Open(eventID, part); err != nil {
						return err
					}
				}
				resp, err := client.Search()
				if err != nil {
					return err
				}
				renderSession(cmd.OutOrStdout(), resp.Session)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&eventID, "event", 0, "Open the slot for this event before searching")
	cmd.Flags().StringVar(&part, "part", "", "Restrict the opened slot to one card part (requires --event)")
	return cmd
}

func newResultsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "Show the current search results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Session()
				if err != nil {
					return err
				}
				if !resp.Session.Open {
					return errNoOpenSession
				}
				renderSession(cmd.OutOrStdout(), resp.Session)
				return nil
			})
		},
	}
}

func newGrabCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "grab <row>",
		Short: "Send a result row to the download client",
		Long: "Grabs the release shown at the given row of the results table. Blocklisted\n" +
			"releases are parked for confirmation instead of grabbed outright.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[0])
			if err != nil || row < 1 {
				return fmt.Errorf("invalid row %q; rows are numbered from 1", args[0])
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Grab(row - 1)
				if err != nil {
					return err
				}
				return renderGrabOutcome(cmd.OutOrStdout(), resp.Outcome)
			})
		},
	}
}

func newConfirmCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm",
		Short: "Confirm grabbing a blocklisted release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Confirm()
				if err != nil {
					return err
				}
				return renderGrabOutcome(cmd.OutOrStdout(), resp.Outcome)
			})
		},
	}
}

func newCancelCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a pending blocklist confirmation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.Cancel(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Blocklist override cancelled.")
				return nil
			})
		},
	}
}

func newCloseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "close",
		Short: "Close the search slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.CloseSession(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Session closed.")
				return nil
			})
		},
	}
}

func newFilesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "Show files already acquired for the open event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Session()
				if err != nil {
					return err
				}
				snap := resp.Session
				if !snap.Open {
					return errNoOpenSession
				}
				stdout := cmd.OutOrStdout()
				if len(snap.Files) == 0 {
					fmt.Fprintf(stdout, "No files on disk for %s.\n", formatTarget(snap.Target))
					return nil
				}
				renderPartFiles(stdout, snap.Files)
				return nil
			})
		},
	}
}

var errNoOpenSession = errors.New("no open session; run `cornerman open <event-id>` first")

func renderGrabOutcome(stdout io.Writer, outcome ipc.GrabOutcome) error {
	switch {
	case outcome.Pending:
		fmt.Fprintf(stdout, "%s is blocklisted.\n", outcome.Title)
		fmt.Fprintln(stdout, "Run `cornerman confirm` to grab it anyway, or `cornerman cancel` to back out.")
		return nil
	case outcome.Grabbed:
		fmt.Fprintf(stdout, "Sent %s to the download client.\n", outcome.Title)
		if outcome.DownloadID != "" {
			fmt.Fprintf(stdout, "Download ID: %s\n", outcome.DownloadID)
		}
		fmt.Fprintln(stdout, "Session closed.")
		return nil
	default:
		return errors.New(outcome.Message)
	}
}
