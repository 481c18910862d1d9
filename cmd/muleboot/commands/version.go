package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/muleboot/internal/build"
	"go.trai.ch/muleboot/internal/core/domain"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", domain.ToolName, build.String())
		},
	}
}
