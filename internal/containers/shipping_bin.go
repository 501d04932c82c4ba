package containers

import (
	"github.com/mesh-intelligence/chests/internal/menu"
	"github.com/mesh-intelligence/chests/pkg/types"
)

// ShippingBinMenuContext is the context tag of a shipping bin's surface.
const ShippingBinMenuContext = "ShippingBin"

const shippingBinAutomate = true

// ShippingBin is a container over the host shipping bin. It accepts the
// categories the bin buys and has no lock.
type ShippingBin struct {
	base
	bin types.ShippingBin
}

var _ types.Container = (*ShippingBin)(nil)

// NewShippingBin wraps a host shipping bin.
func NewShippingBin(env *Env, bin types.ShippingBin) *ShippingBin {
	return &ShippingBin{
		base: newBase(env, types.KindShippingBin, bin.EntityID(), bin.ModData()),
		bin:  bin,
	}
}

// Native returns the wrapped host bin.
func (c *ShippingBin) Native() types.ShippingBin {
	return c.bin
}

// Kind returns types.KindShippingBin.
func (c *ShippingBin) Kind() types.Kind {
	return types.KindShippingBin
}

// Inventory returns the bin's item list.
func (c *ShippingBin) Inventory() *types.Inventory {
	if c == nil {
		return nil
	}
	return c.bin.Items()
}

// CanConfigureAutomate returns true.
func (c *ShippingBin) CanConfigureAutomate() bool {
	return shippingBinAutomate
}

// CanAcceptItem reports whether the bin buys the item's category.
func (c *ShippingBin) CanAcceptItem(item *types.Item) bool {
	return c.acceptsByRegistry(types.KindShippingBin, item)
}

// CheckItem is CanAcceptItem with the refusal or registry error attached.
func (c *ShippingBin) CheckItem(item *types.Item) error {
	return c.checkByRegistry(types.KindShippingBin, item)
}

// IsSameAs reports whether other wraps this bin's storage.
func (c *ShippingBin) IsSameAs(other types.Container) bool {
	return sameContainer(c.Inventory(), other)
}

// IsSameInventory reports whether inv is this bin's inventory.
func (c *ShippingBin) IsSameInventory(inv *types.Inventory) bool {
	return sameInventory(c.Inventory(), inv)
}

// OpenMenu opens a grab surface over the bin.
func (c *ShippingBin) OpenMenu() (types.Menu, error) {
	c.env.prepareOpen()

	m, err := c.env.Menus.OpenGrab(menu.GrabOptions{
		Inventory: c.Inventory(),
		Context:   ShippingBinMenuContext,
		Source:    c.bin,
		Check:     c.CheckItem,
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
