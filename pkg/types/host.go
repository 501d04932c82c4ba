package types

import "errors"

// ModData is a host entity's generic string-keyed metadata map. It is a map
// and therefore shared: writes through a ModData value are writes to the
// entity's own metadata.
type ModData map[string]string

// Lock is a host exclusive-access lock, held by one actor at a time.
// Acquire is reentrant for the current holder.
type Lock interface {
	// Acquire takes the lock for holder. Returns ErrLockHeld if another
	// holder has it and ErrInvalidHolder if holder is empty.
	Acquire(holder string) error

	// Release gives the lock up. Returns ErrNotLockHolder if holder does not
	// hold it and ErrLockNotHeld if nobody does.
	Release(holder string) error

	// Holder returns the current holder, or "" when the lock is free.
	Holder() string
}

// Chest is a host chest entity.
type Chest interface {
	EntityID() string
	Items() *Inventory
	ModData() ModData
	// Lock returns nil for chests that do not support multi-actor contention.
	Lock() Lock
	// Capacity returns the number of slots the chest offers; 0 means unbounded.
	Capacity() int
}

// StorageFurniture is host furniture with built-in storage, such as a dresser.
type StorageFurniture interface {
	EntityID() string
	HeldItems() *Inventory
	ModData() ModData
	Lock() Lock
	// OnItemWithdrawn is called by the shop surface when the actor takes item.
	OnItemWithdrawn(item *Item) bool
	// OnItemDeposited is called by the shop surface when the actor stores item.
	OnItemDeposited(item *Item) bool
	// ShopMenuContext returns the context tag the host uses for this
	// furniture's shop surface.
	ShopMenuContext() string
}

// ShippingBin is a host shipping bin. Bins have no lock.
type ShippingBin interface {
	EntityID() string
	Items() *Inventory
	ModData() ModData
}

// Catalog is the host's classification source: a shop context that knows
// which item categories it deals in.
type Catalog interface {
	CategoriesToSellHere() []Category
}

// CatalogFactory constructs throwaway catalogs for a context tag.
type CatalogFactory interface {
	// NewCatalog returns an error wrapping ErrInitialization when the host
	// cannot build the catalog yet.
	NewCatalog(context string) (Catalog, error)
}

// Menu is a host interaction surface.
type Menu interface {
	// Context returns the surface's context tag.
	Context() string
	// Close tears the surface down normally.
	Close()
	// ForceClose tears the surface down because the host forced it shut.
	ForceClose()
	// Abort tears the surface down because of err.
	Abort(err error)
	// Closed reports whether the surface has been torn down.
	Closed() bool
}

// Screen is the host UI. At most one menu is active at a time.
type Screen interface {
	SetActiveMenu(m Menu) error
	ActiveMenu() Menu
}

// Lock errors.
var (
	ErrLockHeld      = errors.New("lock is held")
	ErrNotLockHolder = errors.New("caller is not the lock holder")
	ErrLockNotHeld   = errors.New("lock is not held")
	ErrInvalidHolder = errors.New("holder cannot be empty")
)

// Host initialization errors.
var (
	ErrInitialization = errors.New("classification source unavailable")
)
