package types

import "errors"

// Kind names a storage backend. The set of kinds is closed; each kind has
// exactly one Container implementation.
type Kind string

// Supported backend kinds.
const (
	KindChest            Kind = "chest"
	KindStorageFurniture Kind = "storage-furniture"
	KindShippingBin      Kind = "shipping-bin"
)

// Kinds lists all supported kinds for enumeration.
var Kinds = []Kind{
	KindChest,
	KindStorageFurniture,
	KindShippingBin,
}

// ValidKind reports whether k is a supported kind.
func ValidKind(k Kind) bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Container is the uniform view over one host storage entity.
//
// A Container does not own the entity. Inventory returns the entity's own
// inventory, so reads and writes through it act on real storage. Data is the
// container's persisted configuration; it is owned by the Container for the
// session and only written back to the entity's metadata by SaveData.
type Container interface {
	// Kind returns the backend kind.
	Kind() Kind

	// Inventory returns the shared, mutable inventory of the entity.
	Inventory() *Inventory

	// Data returns the container's persisted configuration.
	Data() *ContainerData

	// CanConfigureAutomate reports whether automation integrations may target
	// this kind of container. It is constant per kind.
	CanConfigureAutomate() bool

	// CanAcceptItem reports whether item may be stored here. Rejection is a
	// normal false result, never an error.
	CanAcceptItem(item *Item) bool

	// CheckItem is CanAcceptItem with the reason attached: nil when item is
	// accepted, an error wrapping ErrDepositRejected when it is refused, and
	// one wrapping ErrInitialization when the host cannot classify items yet.
	CheckItem(item *Item) error

	// IsSameAs reports whether other wraps the same underlying storage.
	IsSameAs(other Container) bool

	// IsSameInventory reports whether inv is this container's inventory.
	// Identity, not contents, is compared.
	IsSameInventory(inv *Inventory) bool

	// OpenMenu opens the interaction surface for this container and makes it
	// the host's active menu. For lockable backends the lock is acquired
	// first and released when the surface is torn down; if the lock is held
	// elsewhere OpenMenu returns an error wrapping ErrLockUnavailable and
	// opens nothing.
	OpenMenu() (Menu, error)

	// SaveData writes Data back into the entity's metadata. Items are not
	// touched.
	SaveData()
}

// Container errors.
var (
	ErrUnknownKind      = errors.New("unknown container kind")
	ErrLockUnavailable  = errors.New("container is locked by another actor")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrMenuClosed       = errors.New("menu is closed")
	ErrDepositRejected  = errors.New("item not accepted by container")
	ErrInventoryFull    = errors.New("inventory is full")
	ErrItemNotAvailable = errors.New("item not available")
)
