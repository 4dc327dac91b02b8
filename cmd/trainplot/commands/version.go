package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/livp123/trainplot/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the current version of trainplot`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "trainplot %s\n", version.Version)
		},
	}
}
