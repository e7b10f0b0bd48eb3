package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"cornerman/internal/ipc"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Preview or apply library file renames",
	}
	cmd.AddCommand(newRenamePreviewCommand(ctx), newRenameApplyCommand(ctx))
	return cmd
}

func newRenamePreviewCommand(ctx *commandContext) *cobra.Command {
	var scope renameScopeFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the renames Sportarr would perform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.RenamePreview(ipc.RenamePreviewRequest{
					Organization: scope.organization,
					EventID:      scope.eventID,
					FightCardID:  scope.fightCardID,
				})
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if len(resp.Items) == 0 {
					fmt.Fprintln(stdout, "Nothing to rename.")
					return nil
				}
				renderRenameItems(stdout, resp.Items)
				fmt.Fprintf(stdout, "\n%d file(s) would be renamed. Run `cornerman rename apply` with the same scope to proceed.\n", len(resp.Items))
				return nil
			})
		},
	}

	scope.register(cmd)
	return cmd
}

func newRenameApplyCommand(ctx *commandContext) *cobra.Command {
	var scope renameScopeFlags

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Ask Sportarr to rename the files in scope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.RenameApply(ipc.RenameApplyRequest{
					Organization: scope.organization,
					EventID:      scope.eventID,
					FightCardID:  scope.fightCardID,
				})
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if len(resp.Items) == 0 {
					fmt.Fprintln(stdout, "Nothing to rename.")
					return nil
				}
				renderRenameItems(stdout, resp.Items)
				fmt.Fprintf(stdout, "\nRenamed %d file(s).\n", len(resp.Items))
				return nil
			})
		},
	}

	scope.register(cmd)
	return cmd
}

// renameScopeFlags holds the mutually exclusive scope selectors. The daemon
// rejects requests that set none or more than one.
type renameScopeFlags struct {
	organization string
	eventID      int64
	fightCardID  int64
}

func (f *renameScopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.organization, "organization", "", "Rename every file for an organization (e.g. UFC)")
	cmd.Flags().Int64Var(&f.eventID, "event-id", 0, "Rename the files of a single event")
	cmd.Flags().Int64Var(&f.fightCardID, "fight-card-id", 0, "Rename the files of a single fight card")
}

func renderRenameItems(stdout io.Writer, items []ipc.RenameItem) {
	headers := []string{"Existing", "New", "Changes"}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		changes := make([]string, 0, len(item.Changes))
		for _, change := range item.Changes {
			changes = append(changes, fmt.Sprintf("%s: %s -> %s", change.Field, change.OldValue, change.NewValue))
		}
		rows = append(rows, []string{item.ExistingPath, item.NewPath, strings.Join(changes, "; ")})
	}
	renderTable(stdout, headers, rows, nil)
}
