package types

// Inventory is an ordered sequence of optional items owned by a host
// entity. A nil slot is an empty slot.
//
// An Inventory is always passed as *Inventory and never copied: the pointer
// is the identity of the underlying storage. Two containers refer to the same
// storage exactly when their inventories are the same pointer, regardless of
// contents.
type Inventory struct {
	slots []*Item
}

// NewInventory returns an inventory holding the given items in order.
func NewInventory(items ...*Item) *Inventory {
	inv := &Inventory{slots: make([]*Item, 0, len(items))}
	inv.slots = append(inv.slots, items...)
	return inv
}

// Len returns the number of slots, including empty ones.
func (inv *Inventory) Len() int {
	return len(inv.slots)
}

// Count returns the number of non-empty slots.
func (inv *Inventory) Count() int {
	n := 0
	for _, it := range inv.slots {
		if it != nil {
			n++
		}
	}
	return n
}

// At returns the item in slot i, or nil when the slot is empty or out of range.
func (inv *Inventory) At(i int) *Item {
	if i < 0 || i >= len(inv.slots) {
		return nil
	}
	return inv.slots[i]
}

// Set stores item in slot i, growing the inventory with empty slots if needed.
// Negative indexes are ignored.
func (inv *Inventory) Set(i int, item *Item) {
	if i < 0 {
		return
	}
	for len(inv.slots) <= i {
		inv.slots = append(inv.slots, nil)
	}
	inv.slots[i] = item
}

// Add stores item in the first empty slot, or appends it.
// Returns the slot index used.
func (inv *Inventory) Add(item *Item) int {
	for i, it := range inv.slots {
		if it == nil {
			inv.slots[i] = item
			return i
		}
	}
	inv.slots = append(inv.slots, item)
	return len(inv.slots) - 1
}

// IndexOf returns the slot holding item (compared by pointer), or -1.
func (inv *Inventory) IndexOf(item *Item) int {
	if item == nil {
		return -1
	}
	for i, it := range inv.slots {
		if it == item {
			return i
		}
	}
	return -1
}

// Remove empties the slot holding item. The slot itself is kept so other
// items do not move. Returns false if the item is not in the inventory.
func (inv *Inventory) Remove(item *Item) bool {
	i := inv.IndexOf(item)
	if i < 0 {
		return false
	}
	inv.slots[i] = nil
	return true
}

// RemoveAndShift deletes the slot holding item so every later slot moves
// down by one. Returns false if the item is not in the inventory.
func (inv *Inventory) RemoveAndShift(item *Item) bool {
	i := inv.IndexOf(item)
	if i < 0 {
		return false
	}
	copy(inv.slots[i:], inv.slots[i+1:])
	inv.slots[len(inv.slots)-1] = nil
	inv.slots = inv.slots[:len(inv.slots)-1]
	return true
}

// Clear empties every slot.
func (inv *Inventory) Clear() {
	inv.slots = inv.slots[:0]
}

// Items returns a snapshot of the slots. The returned slice is a copy, but
// the items it points to are the live host items.
func (inv *Inventory) Items() []*Item {
	out := make([]*Item, len(inv.slots))
	copy(out, inv.slots)
	return out
}
