package containers

import (
	"github.com/mesh-intelligence/chests/internal/menu"
	"github.com/mesh-intelligence/chests/pkg/types"
)

// ChestMenuContext is the context tag of a chest's grab surface.
const ChestMenuContext = "Chest"

// chestAutomate: automation can target chests.
const chestAutomate = true

// Chest is a container over a host chest. Chests accept any item.
type Chest struct {
	base
	chest types.Chest
}

var _ types.Container = (*Chest)(nil)

// NewChest wraps a host chest.
func NewChest(env *Env, chest types.Chest) *Chest {
	return &Chest{
		base:  newBase(env, types.KindChest, chest.EntityID(), chest.ModData()),
		chest: chest,
	}
}

// Native returns the wrapped host chest.
func (c *Chest) Native() types.Chest {
	return c.chest
}

// Kind returns types.KindChest.
func (c *Chest) Kind() types.Kind {
	return types.KindChest
}

// Inventory returns the chest's own item list.
func (c *Chest) Inventory() *types.Inventory {
	if c == nil {
		return nil
	}
	return c.chest.Items()
}

// CanConfigureAutomate returns true.
func (c *Chest) CanConfigureAutomate() bool {
	return chestAutomate
}

// CanAcceptItem accepts every non-nil item.
func (c *Chest) CanAcceptItem(item *types.Item) bool {
	return item != nil
}

// CheckItem refuses only a nil item.
func (c *Chest) CheckItem(item *types.Item) error {
	if item == nil {
		return types.ErrDepositRejected
	}
	return nil
}

// IsSameAs reports whether other wraps this chest's storage.
func (c *Chest) IsSameAs(other types.Container) bool {
	return sameContainer(c.Inventory(), other)
}

// IsSameInventory reports whether inv is this chest's inventory.
func (c *Chest) IsSameInventory(inv *types.Inventory) bool {
	return sameInventory(c.Inventory(), inv)
}

// OpenMenu opens a grab surface over the chest. Chests with a lock are
// locked for the env's actor until the surface is torn down.
func (c *Chest) OpenMenu() (types.Menu, error) {
	release, err := c.env.acquireForOpen(c.chest.Lock(), c.entityID)
	if err != nil {
		return nil, err
	}

	m, err := c.env.Menus.OpenGrab(menu.GrabOptions{
		Inventory: c.Inventory(),
		Capacity:  c.chest.Capacity(),
		Context:   ChestMenuContext,
		Source:    c.chest,
		Check:     c.CheckItem,
		Cleanup:   release,
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
