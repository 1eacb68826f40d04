// Package cli implements the fastrep command-line interface.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fastrep/fastrep/config"
	"github.com/fastrep/fastrep/store"
	"github.com/fastrep/fastrep/summarize"
)

// App holds the dependencies shared by all commands.
type App struct {
	store  store.Store
	config *config.Config

	out    io.Writer
	errOut io.Writer
	in     io.Reader
}

// NewApp creates the CLI application with the given store and configuration.
func NewApp(st store.Store, cfg *config.Config) *App {
	return &App{
		store:  st,
		config: cfg,
		out:    os.Stdout,
		errOut: os.Stderr,
		in:     os.Stdin,
	}
}

// rootCommand assembles the full command tree.
func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "fastrep",
		Short: "FastRep – a personal work-log tracker",
		Long: `fastrep records short, dated notes about what you worked on and turns
them into weekly, biweekly, or monthly text reports. Data is stored in a
local SQLite database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(a.logCommand())
	root.AddCommand(a.listCommand())
	root.AddCommand(a.projectsCommand())
	root.AddCommand(a.updateCommand())
	root.AddCommand(a.deleteCommand())
	root.AddCommand(a.clearCommand())
	root.AddCommand(a.reportCommand())
	root.AddCommand(a.serveCommand())
	return root
}

// Execute runs the CLI with the given arguments (excluding the program name).
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.SetIn(a.in)
	return root.ExecuteContext(ctx)
}

// newSummarizer builds the configured AI provider. It returns nil without
// error when no provider is usable, so callers can degrade gracefully.
func (a *App) newSummarizer() (summarize.Provider, error) {
	ai := a.config.AI
	cfg := summarize.Config{
		Provider:      ai.Provider,
		APIKey:        ai.APIKey,
		Model:         ai.Model,
		Endpoint:      ai.Endpoint,
		LocalToolPath: ai.LocalToolPath,
	}
	if ai.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(ai.TimeoutSeconds) * time.Second
	}

	provider, err := summarize.New(cfg)
	if err != nil {
		if errors.Is(err, summarize.ErrUnavailable) {
			return nil, nil
		}
		return nil, err
	}
	return provider, nil
}
