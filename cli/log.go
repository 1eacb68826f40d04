package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastrep/fastrep/model"
)

// logCommand records a new work-log entry.
func (a *App) logCommand() *cobra.Command {
	var (
		project     string
		description string
		dateStr     string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a work-log entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date := model.Today()
			if dateStr != "" {
				var err error
				date, err = model.ParseDate(dateStr)
				if err != nil {
					return err
				}
			}

			if project == "" {
				project = model.DefaultProject
			}

			entry, err := model.NewEntry(project, description, date)
			if err != nil {
				return err
			}
			if err := a.store.CreateEntry(cmd.Context(), entry); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Logged entry #%d under %q for %s\n", entry.ID, entry.Project, entry.Date)
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project name (default "+model.DefaultProject+")")
	cmd.Flags().StringVarP(&description, "description", "d", "", "What you worked on")
	cmd.Flags().StringVar(&dateStr, "date", "", "Entry date as YYYY-MM-DD (default today)")
	cmd.MarkFlagRequired("description")
	return cmd
}
