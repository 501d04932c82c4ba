package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize chests configuration and save storage",
		Long:  "Create the configuration and save data directories, then initialize the save store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.attachStore()
			if err != nil {
				return err
			}
			if err := store.Detach(); err != nil {
				return systemErr("finalize storage", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "chests initialized\nconfig: %s\ndata:   %s\n",
				a.settings.ConfigDir, a.settings.DataDir)
			return nil
		},
	}
}
