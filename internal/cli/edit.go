package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/chests/pkg/types"
)

// errAutomateNotConfigurable is returned when automation settings are
// changed on a kind that does not take part in automation.
var errAutomateNotConfigurable = errors.New("automation is not configurable for this container")

func errUnknownKindFlag(kind string) error {
	names := make([]string, len(types.Kinds))
	for i, k := range types.Kinds {
		names[i] = string(k)
	}
	return fmt.Errorf("%w %q (valid: %s)", types.ErrUnknownKind, kind, strings.Join(names, ", "))
}

func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Set a container's display name",
		Long:  "Set a container's display name. An empty name restores the default.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				c, e, err := s.container(args[0])
				if err != nil {
					return err
				}
				c.Data().Name = args[1]
				if err := s.save(c); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s renamed to %q\n", e.EntityID(), c.Data().DisplayName(e.Label()))
				return nil
			})
		},
	}
}

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> <field> <value>",
		Short: "Set one configuration field of a container",
		Long: `Set one configuration field of a container.

Fields: name, category, order, ignored, automate-store, automate-take.
Automation fields are rejected for containers that do not take part in
automation.

Example:
  chests set 0199... order 3
  chests set 0199... ignored true
  chests set 0199... automate-take prefer`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, field, value := args[0], args[1], args[2]
			return a.withSession(func(s *session) error {
				c, e, err := s.container(id)
				if err != nil {
					return err
				}
				if isAutomateField(field) && !c.CanConfigureAutomate() {
					return fmt.Errorf("%w: %s", errAutomateNotConfigurable, c.Kind())
				}
				if err := c.Data().Set(field, value); err != nil {
					return err
				}
				if err := s.save(c); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s set to %q\n", e.EntityID(), field, value)
				return nil
			})
		},
	}
}

func isAutomateField(field string) bool {
	key := strings.TrimPrefix(field, types.ModDataPrefix)
	return key == strings.TrimPrefix(types.KeyAutomateStore, types.ModDataPrefix) ||
		key == strings.TrimPrefix(types.KeyAutomateTake, types.ModDataPrefix)
}

func newAcceptsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "accepts <id> <category>",
		Short: "Report whether a container accepts items of a category",
		Long: `Report whether a container accepts items of a category. The category
is a name (clothing, vegetable, ...) or a numeric host code.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := types.ParseCategory(args[1])
			if err != nil {
				return fmt.Errorf("%w: %q", err, args[1])
			}
			return a.withSession(func(s *session) error {
				c, e, err := s.container(args[0])
				if err != nil {
					return err
				}
				err = checkItem(c, &types.Item{Name: category.String(), Category: category})
				if err != nil && !errors.Is(err, types.ErrDepositRejected) {
					return err
				}
				ok := err == nil
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]any{
						"entity_id": e.EntityID(),
						"category":  category.String(),
						"accepts":   ok,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), ok)
				return nil
			})
		},
	}
}

// checkItem runs the container's acceptance check. A host that cannot
// classify items yet is a system error; a refusal is returned as is.
func checkItem(c types.Container, item *types.Item) error {
	err := c.CheckItem(item)
	if errors.Is(err, types.ErrInitialization) {
		return systemErr("category catalog", err)
	}
	return err
}
