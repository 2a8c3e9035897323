package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joeatwork/coach/internal/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "coach %s\n", version.Info())
			return nil
		},
	}
}
