package menu

import (
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/chests/pkg/types"
)

type fakeScreen struct {
	mu     sync.Mutex
	active types.Menu
	fail   error
	sets   int
}

func (s *fakeScreen) SetActiveMenu(m types.Menu) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m != nil && s.fail != nil {
		return s.fail
	}
	s.sets++
	s.active = m
	return nil
}

func (s *fakeScreen) ActiveMenu() types.Menu {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// counter is a cleanup action that records how often it ran.
type counter struct {
	mu sync.Mutex
	n  int
}

func (c *counter) run() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *counter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func newTestBridge() (*Bridge, *fakeScreen) {
	screen := &fakeScreen{}
	return NewBridge(screen, zerolog.Nop()), screen
}

func TestOpenShop_FreeListing(t *testing.T) {
	b, screen := newTestBridge()
	shirt := &types.Item{Name: "Shirt", Category: types.CategoryClothing, Price: 50}
	hat := &types.Item{Name: "Cowboy Hat", Category: types.CategoryHat, Price: 1000}
	inv := types.NewInventory(shirt, nil, hat)

	m, err := b.OpenShop(ShopOptions{Items: inv, Context: "Dresser"})
	require.NoError(t, err)

	assert.Same(t, m, screen.ActiveMenu())
	assert.Same(t, m, b.Active())
	assert.Equal(t, "Dresser", m.Context())
	assert.Equal(t, map[*types.Item]PriceAndStock{
		shirt: {Price: 0, Stock: 1},
		hat:   {Price: 0, Stock: 1},
	}, m.Stock())
	assert.Equal(t, []*types.Item{shirt, hat}, m.Items())
}

func TestOpenShop_CleanupRunsOnceOnEveryExitPath(t *testing.T) {
	exits := map[string]func(m types.Menu){
		"close":       func(m types.Menu) { m.Close() },
		"force close": func(m types.Menu) { m.ForceClose() },
		"abort":       func(m types.Menu) { m.Abort(errors.New("render failed")) },
	}

	for name, exit := range exits {
		t.Run(name, func(t *testing.T) {
			b, screen := newTestBridge()
			var released counter

			m, err := b.OpenShop(ShopOptions{Context: "Dresser", Cleanup: released.run})
			require.NoError(t, err)
			assert.Equal(t, 0, released.count())

			exit(m)
			assert.Equal(t, 1, released.count())
			assert.True(t, m.Closed())
			assert.Nil(t, screen.ActiveMenu())
			assert.Nil(t, b.Active())

			m.Close()
			m.ForceClose()
			m.Abort(errors.New("again"))
			assert.Equal(t, 1, released.count(), "teardown must be idempotent")
		})
	}
}

func TestOpenShop_ConcurrentClosesReleaseOnce(t *testing.T) {
	b, _ := newTestBridge()
	var released counter
	m, err := b.OpenShop(ShopOptions{Cleanup: released.run})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); m.Close() }()
		go func() { defer wg.Done(); m.ForceClose() }()
	}
	wg.Wait()
	assert.Equal(t, 1, released.count())
}

func TestOpenShop_ActivationFailureRunsCleanup(t *testing.T) {
	b, screen := newTestBridge()
	screen.fail = errors.New("another menu is modal")
	var released counter

	m, err := b.OpenShop(ShopOptions{Cleanup: released.run})
	require.Error(t, err)
	assert.Nil(t, m)
	assert.Equal(t, 1, released.count())
	assert.Nil(t, b.Active())
}

func TestBridge_OpeningReplacesActiveSurface(t *testing.T) {
	b, screen := newTestBridge()
	var first, second counter

	m1, err := b.OpenShop(ShopOptions{Context: "first", Cleanup: first.run})
	require.NoError(t, err)
	m2, err := b.OpenGrab(GrabOptions{Context: "second", Cleanup: second.run})
	require.NoError(t, err)

	assert.True(t, m1.Closed())
	assert.Equal(t, 1, first.count())
	assert.False(t, m2.Closed())
	assert.Equal(t, 0, second.count())
	assert.Same(t, m2, screen.ActiveMenu())
	assert.Same(t, m2, b.Active())

	m2.Close()
	assert.Equal(t, 1, second.count())
}

func TestShopMenu_WithdrawDeposit(t *testing.T) {
	b, _ := newTestBridge()
	shirt := &types.Item{Name: "Shirt", Category: types.CategoryClothing}
	rock := &types.Item{Name: "Stone", Category: types.CategoryMineral}
	inv := types.NewInventory(shirt)

	var withdrawn, deposited []*types.Item
	m, err := b.OpenShop(ShopOptions{
		Items: inv,
		OnWithdraw: func(item *types.Item) bool {
			withdrawn = append(withdrawn, item)
			return inv.Remove(item)
		},
		OnDeposit: func(item *types.Item) bool {
			if item.Category != types.CategoryClothing {
				return false
			}
			deposited = append(deposited, item)
			inv.Add(item)
			return true
		},
	})
	require.NoError(t, err)

	require.NoError(t, m.Withdraw(shirt))
	assert.Empty(t, m.Stock())
	assert.Equal(t, 0, inv.Count())
	assert.ErrorIs(t, m.Withdraw(shirt), types.ErrItemNotAvailable)

	assert.ErrorIs(t, m.Deposit(rock), types.ErrDepositRejected)
	require.NoError(t, m.Deposit(shirt))
	assert.Equal(t, PriceAndStock{Price: 0, Stock: 1}, m.Stock()[shirt])
	assert.Equal(t, []*types.Item{shirt}, withdrawn)
	assert.Equal(t, []*types.Item{shirt}, deposited)

	m.Close()
	assert.ErrorIs(t, m.Withdraw(shirt), types.ErrMenuClosed)
	assert.ErrorIs(t, m.Deposit(shirt), types.ErrMenuClosed)
}

func TestGrabMenu_FilterAndCapacity(t *testing.T) {
	b, _ := newTestBridge()
	carrot := &types.Item{Name: "Carrot", Category: types.CategoryVegetable}
	melon := &types.Item{Name: "Melon", Category: types.CategoryFruit}
	sword := &types.Item{Name: "Sword", Category: types.CategoryWeapon}
	inv := types.NewInventory(carrot)

	m, err := b.OpenGrab(GrabOptions{
		Inventory: inv,
		Capacity:  2,
		Check: func(item *types.Item) error {
			if item.Category == types.CategoryWeapon {
				return types.ErrDepositRejected
			}
			return nil
		},
	})
	require.NoError(t, err)
	assert.Same(t, inv, m.Inventory())

	assert.ErrorIs(t, m.Deposit(sword), types.ErrDepositRejected)
	require.NoError(t, m.Deposit(melon))
	assert.ErrorIs(t, m.Deposit(&types.Item{Name: "Pumpkin", Category: types.CategoryVegetable}), types.ErrInventoryFull)

	require.NoError(t, m.Withdraw(carrot))
	assert.ErrorIs(t, m.Withdraw(carrot), types.ErrItemNotAvailable)
	assert.Equal(t, 1, inv.Count())
}
