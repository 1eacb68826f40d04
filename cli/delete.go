package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// confirm asks the user a yes/no question on stdin. Anything other than
// "y" or "yes" counts as no.
func (a *App) confirm(prompt string) bool {
	fmt.Fprintf(a.out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// deleteCommand removes a single entry by ID.
func (a *App) deleteCommand() *cobra.Command {
	var (
		id  int64
		yes bool
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := a.store.GetEntry(cmd.Context(), id)
			if err != nil {
				return err
			}

			if !yes {
				prompt := fmt.Sprintf("Delete entry #%d (%s %q %s)?", entry.ID, entry.Date, entry.Project, entry.Description)
				if !a.confirm(prompt) {
					fmt.Fprintln(a.out, "Aborted.")
					return nil
				}
			}

			if err := a.store.DeleteEntry(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted entry #%d\n", id)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "ID of the entry to delete")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.MarkFlagRequired("id")
	return cmd
}

// clearCommand deletes every entry in the database.
func (a *App) clearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !a.confirm("Delete ALL logged entries? This cannot be undone.") {
				fmt.Fprintln(a.out, "Aborted.")
				return nil
			}

			count, err := a.store.ClearEntries(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted %d entries\n", count)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
