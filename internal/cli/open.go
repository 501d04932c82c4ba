package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/chests/internal/menu"
	"github.com/mesh-intelligence/chests/internal/world"
	"github.com/mesh-intelligence/chests/pkg/types"
)

// depositor and withdrawer are the item operations both surface types offer.
type depositor interface {
	Deposit(item *types.Item) error
}

type withdrawer interface {
	Withdraw(item *types.Item) error
}

// lockable is satisfied by host entities that carry a mutex.
type lockable interface {
	Mutex() *world.Mutex
}

func newOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "Open a container's interaction surface and print it",
		Long: `Open a container the way the game would, print what the surface shows,
then close it. Lockable containers are locked for the configured actor while
open and released on close.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				c, e, err := s.container(args[0])
				if err != nil {
					return err
				}
				m, err := c.OpenMenu()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Opened %s (%s) as %s\n", e.EntityID(), c.Kind(), m.Context())
				writeSurface(out, m)
				m.Close()

				if l, ok := e.(lockable); ok && l.Mutex() != nil {
					holder := l.Mutex().Holder()
					if holder == "" {
						holder = "none"
					}
					fmt.Fprintf(out, "Closed; lock holder: %s\n", holder)
				} else {
					fmt.Fprintln(out, "Closed")
				}
				return nil
			})
		},
	}
}

// writeSurface prints the entries a surface shows.
func writeSurface(w io.Writer, m types.Menu) {
	switch sm := m.(type) {
	case *menu.ShopMenu:
		stock := sm.Stock()
		for _, it := range sm.Items() {
			ps := stock[it]
			fmt.Fprintf(w, "  %s x%d price=%d stock=%d\n", it.Name, it.Stack, ps.Price, ps.Stock)
		}
	case *menu.GrabMenu:
		inv := sm.Inventory()
		for i := 0; i < inv.Len(); i++ {
			if it := inv.At(i); it != nil {
				fmt.Fprintf(w, "  [%d] %s x%d\n", i, it.Name, it.Stack)
			}
		}
	}
}
