// Package world is a small reference host: it implements the host boundary
// interfaces over entity records from a save store, so the tool can run
// outside the game. It holds items, metadata, and locks; it simulates
// nothing else.
package world

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/chests/pkg/types"
)

// DresserContext is the shop context tag of storage furniture.
const DresserContext = "Dresser"

// Entity is a host storage entity that can be converted back to a record.
type Entity interface {
	EntityID() string
	Kind() types.Kind
	Location() string
	Label() string
	ModData() types.ModData
	Record() *types.EntityRecord
}

// Player is the actor interacting with storage. Items withdrawn from
// furniture go to the pocket; deposits come from it.
type Player struct {
	Name   string
	Pocket *types.Inventory
}

// NewPlayer returns a player with an empty pocket.
func NewPlayer(name string) *Player {
	return &Player{Name: name, Pocket: types.NewInventory()}
}

// entity holds the state every kind shares.
type entity struct {
	id        string
	location  string
	label     string
	capacity  int
	modData   types.ModData
	items     *types.Inventory
	createdAt time.Time
}

func newEntity(rec *types.EntityRecord) entity {
	md := make(types.ModData, len(rec.ModData))
	for k, v := range rec.ModData {
		md[k] = v
	}
	return entity{
		id:        rec.EntityID,
		location:  rec.Location,
		label:     rec.Label,
		capacity:  rec.Capacity,
		modData:   md,
		items:     types.NewInventory(rec.Items...),
		createdAt: rec.CreatedAt,
	}
}

func (e *entity) EntityID() string       { return e.id }
func (e *entity) Location() string       { return e.location }
func (e *entity) Label() string          { return e.label }
func (e *entity) ModData() types.ModData { return e.modData }

func (e *entity) record(kind types.Kind) *types.EntityRecord {
	md := make(types.ModData, len(e.modData))
	for k, v := range e.modData {
		md[k] = v
	}
	return &types.EntityRecord{
		EntityID:  e.id,
		Kind:      kind,
		Location:  e.location,
		Label:     e.label,
		Capacity:  e.capacity,
		ModData:   md,
		Items:     e.items.Items(),
		CreatedAt: e.createdAt,
	}
}

// Chest is a host chest.
type Chest struct {
	entity
	lock *Mutex
}

var _ types.Chest = (*Chest)(nil)

func (c *Chest) Kind() types.Kind            { return types.KindChest }
func (c *Chest) Items() *types.Inventory     { return c.items }
func (c *Chest) Capacity() int               { return c.capacity }
func (c *Chest) Record() *types.EntityRecord { return c.record(types.KindChest) }

// Lock returns the chest's lock, or nil for chests without one.
func (c *Chest) Lock() types.Lock {
	if c.lock == nil {
		return nil
	}
	return c.lock
}

// Mutex returns the concrete lock for inspection.
func (c *Chest) Mutex() *Mutex {
	return c.lock
}

// Furniture is host storage furniture such as a dresser.
type Furniture struct {
	entity
	lock   *Mutex
	player *Player
}

var _ types.StorageFurniture = (*Furniture)(nil)

func (f *Furniture) Kind() types.Kind            { return types.KindStorageFurniture }
func (f *Furniture) HeldItems() *types.Inventory { return f.items }
func (f *Furniture) Lock() types.Lock            { return f.lock }
func (f *Furniture) Mutex() *Mutex               { return f.lock }
func (f *Furniture) ShopMenuContext() string     { return DresserContext }
func (f *Furniture) Record() *types.EntityRecord { return f.record(types.KindStorageFurniture) }

// OnItemWithdrawn moves item from the furniture to the player's pocket.
func (f *Furniture) OnItemWithdrawn(item *types.Item) bool {
	if !f.items.RemoveAndShift(item) {
		return false
	}
	if f.player != nil {
		f.player.Pocket.Add(item)
	}
	return true
}

// OnItemDeposited moves item from the player's pocket into the furniture.
func (f *Furniture) OnItemDeposited(item *types.Item) bool {
	if item == nil {
		return false
	}
	if f.player != nil {
		f.player.Pocket.RemoveAndShift(item)
	}
	f.items.Add(item)
	return true
}

// ShippingBin is the host shipping bin.
type ShippingBin struct {
	entity
}

var _ types.ShippingBin = (*ShippingBin)(nil)

func (b *ShippingBin) Kind() types.Kind            { return types.KindShippingBin }
func (b *ShippingBin) Items() *types.Inventory     { return b.items }
func (b *ShippingBin) Record() *types.EntityRecord { return b.record(types.KindShippingBin) }

// NewChest builds a chest from rec. Lockable chests get their own lock.
func NewChest(rec *types.EntityRecord, lockable bool) *Chest {
	c := &Chest{entity: newEntity(rec)}
	if lockable {
		c.lock = &Mutex{}
	}
	return c
}

// NewFurniture builds storage furniture from rec. Withdrawals go to player.
func NewFurniture(rec *types.EntityRecord, player *Player) *Furniture {
	return &Furniture{entity: newEntity(rec), lock: &Mutex{}, player: player}
}

// NewShippingBin builds a shipping bin from rec.
func NewShippingBin(rec *types.EntityRecord) *ShippingBin {
	return &ShippingBin{entity: newEntity(rec)}
}

// FromRecord builds the host entity for rec. Chests and furniture are
// lockable; bins are not.
func FromRecord(rec *types.EntityRecord, player *Player) (Entity, error) {
	if rec == nil {
		return nil, types.ErrInvalidData
	}
	switch rec.Kind {
	case types.KindChest:
		return NewChest(rec, true), nil
	case types.KindStorageFurniture:
		return NewFurniture(rec, player), nil
	case types.KindShippingBin:
		return NewShippingBin(rec), nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownKind, rec.Kind)
	}
}
