package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/chests/pkg/types"
)

func newAddEntityCmd(a *app) *cobra.Command {
	var (
		kind     string
		location string
		label    string
		capacity int
	)
	cmd := &cobra.Command{
		Use:   "add-entity",
		Short: "Add a storage entity to the save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !types.ValidKind(types.Kind(kind)) {
				return errUnknownKindFlag(kind)
			}
			if capacity < 0 {
				return fmt.Errorf("%w: negative capacity", types.ErrInvalidData)
			}
			return a.withSession(func(s *session) error {
				e, err := s.world.Add(&types.EntityRecord{
					Kind:     types.Kind(kind),
					Location: location,
					Label:    label,
					Capacity: capacity,
				})
				if err != nil {
					return systemErr("add entity", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), e.EntityID())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(types.KindChest), "entity kind (chest, storage-furniture, shipping-bin)")
	cmd.Flags().StringVar(&location, "location", "Farm", "location the entity sits in")
	cmd.Flags().StringVar(&label, "label", "", "host-side label shown when the container has no name")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "slot capacity, 0 for unbounded")
	return cmd
}

func newPutItemCmd(a *app) *cobra.Command {
	var (
		category string
		stack    int
		price    int
		force    bool
	)
	cmd := &cobra.Command{
		Use:   "put-item <id> <name>",
		Short: "Deposit an item into a container",
		Long: `Deposit an item into a container through its interaction surface.
The container's category filter applies unless --force is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := types.ParseCategory(category)
			if err != nil {
				return fmt.Errorf("%w: %q", err, category)
			}
			item := &types.Item{Name: args[1], Category: cat, Stack: stack, Price: price}
			return a.withSession(func(s *session) error {
				c, e, err := s.container(args[0])
				if err != nil {
					return err
				}
				if force {
					c.Inventory().Add(item)
				} else {
					if err := checkItem(c, item); err != nil {
						return err
					}
					if err := depositThroughMenu(c, item); err != nil {
						return err
					}
				}
				if err := s.save(c); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", item.ItemID, e.EntityID())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "none", "item category name or numeric code")
	cmd.Flags().IntVar(&stack, "stack", 1, "stack size")
	cmd.Flags().IntVar(&price, "price", 0, "sell price")
	cmd.Flags().BoolVar(&force, "force", false, "skip the category filter")
	return cmd
}

func depositThroughMenu(c types.Container, item *types.Item) error {
	m, err := c.OpenMenu()
	if err != nil {
		return err
	}
	defer m.Close()
	d, ok := m.(depositor)
	if !ok {
		return fmt.Errorf("%w: surface %s takes no deposits", types.ErrDepositRejected, m.Context())
	}
	return d.Deposit(item)
}

func newTakeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "take <id> <item-id>",
		Short: "Withdraw an item from a container",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				c, e, err := s.container(args[0])
				if err != nil {
					return err
				}
				var item *types.Item
				for _, it := range c.Inventory().Items() {
					if it != nil && it.ItemID == args[1] {
						item = it
						break
					}
				}
				if item == nil {
					return fmt.Errorf("%w: %s in %s", types.ErrItemNotAvailable, args[1], e.EntityID())
				}

				m, err := c.OpenMenu()
				if err != nil {
					return err
				}
				wd, ok := m.(withdrawer)
				if !ok {
					m.Close()
					return fmt.Errorf("%w: surface %s allows no withdrawals", types.ErrItemNotAvailable, m.Context())
				}
				err = wd.Withdraw(item)
				m.Close()
				if err != nil {
					return err
				}
				if err := s.save(c); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "took %s (%s) from %s\n", item.Name, item.ItemID, e.EntityID())
				return nil
			})
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a storage entity and its items from the save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				if _, ok := s.world.Entity(args[0]); !ok {
					return errNoSuchContainer(args[0])
				}
				if err := s.world.Remove(args[0]); err != nil {
					return systemErr("delete", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}
}
