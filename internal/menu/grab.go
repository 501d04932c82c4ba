package menu

import (
	"fmt"

	"github.com/mesh-intelligence/chests/pkg/types"
)

// GrabOptions describes a grid surface over an inventory.
type GrabOptions struct {
	// Inventory is the container's live inventory.
	Inventory *types.Inventory
	// Capacity limits the number of occupied slots; 0 means unbounded.
	Capacity int
	// Context is the surface's context tag.
	Context string
	// Source is the host entity the surface is opened for.
	Source any
	// Check filters deposits; its error is returned from Deposit. Nil accepts
	// everything.
	Check func(item *types.Item) error
	// Cleanup runs exactly once when the surface is torn down.
	Cleanup func()
}

// GrabMenu is a grid surface that moves items in and out of an inventory.
type GrabMenu struct {
	surface

	inventory *types.Inventory
	capacity  int
	check     func(item *types.Item) error
}

var _ types.Menu = (*GrabMenu)(nil)

// OpenGrab builds a grid surface and makes it the active menu.
func (b *Bridge) OpenGrab(opts GrabOptions) (*GrabMenu, error) {
	inv := opts.Inventory
	if inv == nil {
		inv = types.NewInventory()
	}
	m := &GrabMenu{
		surface: surface{
			bridge:  b,
			context: opts.Context,
			source:  opts.Source,
			cleanup: opts.Cleanup,
		},
		inventory: inv,
		capacity:  opts.Capacity,
		check:     opts.Check,
	}
	m.self = m

	if err := b.activate(m); err != nil {
		return nil, fmt.Errorf("activating grab menu: %w", err)
	}
	return m, nil
}

// Inventory returns the inventory the surface edits.
func (m *GrabMenu) Inventory() *types.Inventory {
	return m.inventory
}

// Withdraw removes item from the inventory.
func (m *GrabMenu) Withdraw(item *types.Item) error {
	if m.Closed() {
		return types.ErrMenuClosed
	}
	if !m.inventory.Remove(item) {
		return types.ErrItemNotAvailable
	}
	return nil
}

// Deposit adds item to the inventory if the filter and capacity allow it.
func (m *GrabMenu) Deposit(item *types.Item) error {
	if m.Closed() {
		return types.ErrMenuClosed
	}
	if item == nil {
		return types.ErrDepositRejected
	}
	if m.check != nil {
		if err := m.check(item); err != nil {
			return err
		}
	}
	if m.capacity > 0 && m.inventory.Count() >= m.capacity {
		return types.ErrInventoryFull
	}
	m.inventory.Add(item)
	return nil
}
