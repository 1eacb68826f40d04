package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastrep/fastrep/model"
)

// updateCommand modifies an existing entry; only the given flags change.
func (a *App) updateCommand() *cobra.Command {
	var (
		id          int64
		project     string
		description string
		dateStr     string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an existing entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			update := &model.EntryUpdate{}
			if cmd.Flags().Changed("project") {
				update.Project = &project
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if cmd.Flags().Changed("date") {
				d, err := model.ParseDate(dateStr)
				if err != nil {
					return err
				}
				update.Date = &d
			}

			if update.IsEmpty() {
				return fmt.Errorf("nothing to update: pass at least one of --project, --description, --date")
			}

			entry, err := a.store.UpdateEntry(cmd.Context(), id, update)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Updated entry #%d: %s %q %s\n", entry.ID, entry.Date, entry.Project, entry.Description)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "ID of the entry to update")
	cmd.Flags().StringVarP(&project, "project", "p", "", "New project name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVar(&dateStr, "date", "", "New date as YYYY-MM-DD")
	cmd.MarkFlagRequired("id")
	return cmd
}
