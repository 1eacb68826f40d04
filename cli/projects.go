package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// projectsCommand lists the distinct project names in use.
func (a *App) projectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List project names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := a.store.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(a.out, "No projects yet.")
				return nil
			}
			for _, p := range projects {
				fmt.Fprintln(a.out, p)
			}
			return nil
		},
	}
}
