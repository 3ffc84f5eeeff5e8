// Package cli holds the shared command-line plumbing.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Input carries the dependencies handed to every command.
type Input struct {
	Logger *slog.Logger
}

// CLI is the root command container.
type CLI struct {
	root *cobra.Command
}

// NewCLI creates the root command.
func NewCLI(name, short string) *CLI {
	return &CLI{
		root: &cobra.Command{
			Use:           name,
			Short:         short,
			SilenceErrors: true,
			SilenceUsage:  true,
		},
	}
}

// AddCommands registers subcommands on the root.
func (c *CLI) AddCommands(cmds ...*cobra.Command) {
	c.root.AddCommand(cmds...)
}

// Run executes the CLI.
func (c *CLI) Run() error {
	return c.root.Execute()
}

// WithContext adapts a command body to cobra's RunE, wiring a context that
// cancels on SIGINT/SIGTERM and a logger writing to stderr.
func WithContext(run func(ctx context.Context, input Input) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		input := Input{
			Logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
		}
		return run(ctx, input)
	}
}
