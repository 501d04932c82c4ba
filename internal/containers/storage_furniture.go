package containers

import (
	"github.com/mesh-intelligence/chests/internal/menu"
	"github.com/mesh-intelligence/chests/pkg/types"
)

// furnitureAutomate: automation does not support storage furniture.
const furnitureAutomate = false

// StorageFurniture is a container over host furniture with built-in storage
// (a dresser). It only accepts the categories a dresser shop deals in.
type StorageFurniture struct {
	base
	furniture types.StorageFurniture
}

var _ types.Container = (*StorageFurniture)(nil)

// NewStorageFurniture wraps host storage furniture.
func NewStorageFurniture(env *Env, furniture types.StorageFurniture) *StorageFurniture {
	return &StorageFurniture{
		base:      newBase(env, types.KindStorageFurniture, furniture.EntityID(), furniture.ModData()),
		furniture: furniture,
	}
}

// Native returns the wrapped host furniture.
func (c *StorageFurniture) Native() types.StorageFurniture {
	return c.furniture
}

// Kind returns types.KindStorageFurniture.
func (c *StorageFurniture) Kind() types.Kind {
	return types.KindStorageFurniture
}

// Inventory returns the furniture's held items.
func (c *StorageFurniture) Inventory() *types.Inventory {
	if c == nil {
		return nil
	}
	return c.furniture.HeldItems()
}

// CanConfigureAutomate returns false.
func (c *StorageFurniture) CanConfigureAutomate() bool {
	return furnitureAutomate
}

// CanAcceptItem reports whether a dresser deals in the item's category.
func (c *StorageFurniture) CanAcceptItem(item *types.Item) bool {
	return c.acceptsByRegistry(types.KindStorageFurniture, item)
}

// CheckItem is CanAcceptItem with the refusal or registry error attached.
func (c *StorageFurniture) CheckItem(item *types.Item) error {
	return c.checkByRegistry(types.KindStorageFurniture, item)
}

// IsSameAs reports whether other wraps this furniture's storage.
func (c *StorageFurniture) IsSameAs(other types.Container) bool {
	return sameContainer(c.Inventory(), other)
}

// IsSameInventory reports whether inv is this furniture's inventory.
func (c *StorageFurniture) IsSameInventory(inv *types.Inventory) bool {
	return sameInventory(c.Inventory(), inv)
}

// OpenMenu locks the furniture for the env's actor and opens a shop surface
// listing every held item for free. The lock is released when the surface
// is torn down.
func (c *StorageFurniture) OpenMenu() (types.Menu, error) {
	release, err := c.env.acquireForOpen(c.furniture.Lock(), c.entityID)
	if err != nil {
		return nil, err
	}

	m, err := c.env.Menus.OpenShop(menu.ShopOptions{
		Items:      c.Inventory(),
		Context:    c.furniture.ShopMenuContext(),
		Source:     c.furniture,
		OnWithdraw: c.furniture.OnItemWithdrawn,
		Check:      c.CheckItem,
		OnDeposit:  c.furniture.OnItemDeposited,
		Cleanup:    release,
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
