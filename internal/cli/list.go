package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/chests/internal/containers"
	"github.com/mesh-intelligence/chests/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	var (
		kind     string
		location string
		all      bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List containers in the save",
		Long: `List every container in the save, sorted by configured order then name.
Ignored containers are hidden unless --all is given.

Example:
  chests list
  chests list --kind chest --location Farm
  chests list --all --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := types.EntityFilter{Location: location}
			if kind != "" {
				if !types.ValidKind(types.Kind(kind)) {
					return errUnknownKindFlag(kind)
				}
				filter.Kind = types.Kind(kind)
			}

			s, err := a.openSession(filter)
			if err != nil {
				return err
			}
			defer s.close()

			cs := s.containers()
			if !all {
				cs = containers.Visible(cs)
			}
			containers.Sort(cs)

			views := make([]*containerView, 0, len(cs))
			for _, c := range cs {
				views = append(views, s.view(c, s.views[c], false))
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), views)
			}
			return writeTable(cmd.OutOrStdout(), views)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "only list this kind (chest, storage-furniture, shipping-bin)")
	cmd.Flags().StringVar(&location, "location", "", "only list containers at this location")
	cmd.Flags().BoolVar(&all, "all", false, "include ignored containers")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Display a container with its configuration and items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				c, e, err := s.container(args[0])
				if err != nil {
					return err
				}
				v := s.view(c, e, true)
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), v)
				}
				writeDetail(cmd.OutOrStdout(), v)
				return nil
			})
		},
	}
}
