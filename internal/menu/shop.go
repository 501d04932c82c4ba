package menu

import (
	"fmt"
	"sync"

	"github.com/mesh-intelligence/chests/pkg/types"
)

// PriceAndStock is the listing a shop surface shows for one item.
type PriceAndStock struct {
	Price int
	Stock int
}

// freeListing makes a shop behave as a free withdraw/deposit view.
var freeListing = PriceAndStock{Price: 0, Stock: 1}

// ShopOptions describes a shop surface.
type ShopOptions struct {
	// Items are listed at zero price with unit stock. Empty slots are skipped.
	Items *types.Inventory
	// Context is the host's shop context tag.
	Context string
	// Source is the host entity the shop is opened for.
	Source any
	// OnWithdraw is called when the actor takes an item; false refuses.
	OnWithdraw func(item *types.Item) bool
	// Check filters deposits before OnDeposit; its error is returned from
	// Deposit. Nil accepts everything.
	Check func(item *types.Item) error
	// OnDeposit is called when the actor stores an item; false refuses.
	OnDeposit func(item *types.Item) bool
	// Cleanup runs exactly once when the surface is torn down.
	Cleanup func()
}

// ShopMenu is a shop-shaped surface over a container.
type ShopMenu struct {
	surface

	onWithdraw func(item *types.Item) bool
	onDeposit  func(item *types.Item) bool
	check      func(item *types.Item) error

	stockMu sync.Mutex
	stock   map[*types.Item]PriceAndStock
	order   []*types.Item
}

var _ types.Menu = (*ShopMenu)(nil)

// OpenShop builds a shop surface and makes it the active menu. If the host
// refuses to activate it the surface is torn down, its cleanup runs, and the
// error is returned.
func (b *Bridge) OpenShop(opts ShopOptions) (*ShopMenu, error) {
	m := &ShopMenu{
		surface: surface{
			bridge:  b,
			context: opts.Context,
			source:  opts.Source,
			cleanup: opts.Cleanup,
		},
		onWithdraw: opts.OnWithdraw,
		onDeposit:  opts.OnDeposit,
		check:      opts.Check,
		stock:      make(map[*types.Item]PriceAndStock),
	}
	m.self = m

	if opts.Items != nil {
		for _, item := range opts.Items.Items() {
			if item == nil {
				continue
			}
			if _, dup := m.stock[item]; dup {
				continue
			}
			m.stock[item] = freeListing
			m.order = append(m.order, item)
		}
	}

	if err := b.activate(m); err != nil {
		return nil, fmt.Errorf("activating shop menu: %w", err)
	}
	return m, nil
}

// Stock returns a copy of the current listing.
func (m *ShopMenu) Stock() map[*types.Item]PriceAndStock {
	m.stockMu.Lock()
	defer m.stockMu.Unlock()
	out := make(map[*types.Item]PriceAndStock, len(m.stock))
	for k, v := range m.stock {
		out[k] = v
	}
	return out
}

// Items returns the listed items in display order.
func (m *ShopMenu) Items() []*types.Item {
	m.stockMu.Lock()
	defer m.stockMu.Unlock()
	out := make([]*types.Item, 0, len(m.order))
	for _, item := range m.order {
		if _, ok := m.stock[item]; ok {
			out = append(out, item)
		}
	}
	return out
}

// Withdraw takes a listed item through the backend's withdraw callback.
func (m *ShopMenu) Withdraw(item *types.Item) error {
	if m.Closed() {
		return types.ErrMenuClosed
	}
	m.stockMu.Lock()
	_, listed := m.stock[item]
	m.stockMu.Unlock()
	if !listed {
		return types.ErrItemNotAvailable
	}
	if m.onWithdraw != nil && !m.onWithdraw(item) {
		return types.ErrItemNotAvailable
	}

	m.stockMu.Lock()
	delete(m.stock, item)
	m.stockMu.Unlock()
	return nil
}

// Deposit stores an item through the backend's deposit callback and lists it.
func (m *ShopMenu) Deposit(item *types.Item) error {
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
	if m.onDeposit != nil && !m.onDeposit(item) {
		return types.ErrDepositRejected
	}

	m.stockMu.Lock()
	defer m.stockMu.Unlock()
	if _, ok := m.stock[item]; !ok {
		m.order = append(m.order, item)
	}
	m.stock[item] = freeListing
	return nil
}
