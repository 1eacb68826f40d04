package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fastrep/fastrep/model"
)

// listCommand prints logged entries, newest first.
func (a *App) listCommand() *cobra.Command {
	var (
		fromStr string
		toStr   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work-log entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (fromStr == "") != (toStr == "") {
				return fmt.Errorf("--from and --to must be specified together")
			}

			var entries []*model.Entry
			var err error
			if fromStr != "" {
				var from, to model.Date
				if from, err = model.ParseDate(fromStr); err != nil {
					return err
				}
				if to, err = model.ParseDate(toStr); err != nil {
					return err
				}
				entries, err = a.store.ListEntries(cmd.Context(), from, to)
			} else {
				entries, err = a.store.ListAllEntries(cmd.Context())
			}
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintln(a.out, "No entries logged yet.")
				return nil
			}

			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tPROJECT\tDESCRIPTION")
			for _, e := range entries {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, e.Date, e.Project, e.Description)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "Start date as YYYY-MM-DD")
	cmd.Flags().StringVar(&toStr, "to", "", "End date as YYYY-MM-DD")
	return cmd
}
