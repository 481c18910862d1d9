// Package commands implements the CLI commands for the muleboot bootstrapper.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/muleboot/internal/build"
	"go.trai.ch/muleboot/internal/core/domain"
)

// Bootstrapper is the application surface the CLI drives.
type Bootstrapper interface {
	// Run prepares the environment and hands control to the application.
	Run(ctx context.Context) error
	// Status reports the bootstrap state without changing it.
	Status(ctx context.Context, w io.Writer) error
}

// CLI represents the command line interface for muleboot.
type CLI struct {
	app     Bootstrapper
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a Bootstrapper) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   domain.ToolName,
		Short: "Prepare the " + domain.ProductTag + " Python environment and launch the application",
		Long: "muleboot resolves the project root from its own location, creates the isolated\n" +
			"environment when missing, upgrades pip, writes a default requirements.txt when\n" +
			"none exists, installs the requirements and hands control to app.py.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.String(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Run(cmd.Context())
		},
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	c.rootCmd = rootCmd
	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(stdout, stderr io.Writer) {
	c.rootCmd.SetOut(stdout)
	c.rootCmd.SetErr(stderr)
}
