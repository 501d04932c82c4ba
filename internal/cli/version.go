package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the release version of the chests tool.
const Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/chests"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the chests version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "chests v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
