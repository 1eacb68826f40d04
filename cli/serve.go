package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastrep/fastrep/api"
)

// serveCommand starts the local web dashboard and HTTP API.
func (a *App) serveCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summarizer, err := a.newSummarizer()
			if err != nil {
				return err
			}
			if summarizer == nil {
				fmt.Fprintln(a.errOut, "Note: no AI provider configured, summarization is disabled")
			}

			server := api.NewServer(a.store, a.config, summarizer)
			return server.Run(":" + port)
		},
	}

	cmd.Flags().StringVar(&port, "port", a.config.Port, "Port to listen on")
	return cmd
}
