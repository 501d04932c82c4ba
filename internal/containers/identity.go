package containers

import "github.com/mesh-intelligence/chests/pkg/types"

// sameInventory compares inventories by identity. Two different inventories
// with equal contents are different storage.
func sameInventory(a, b *types.Inventory) bool {
	return a != nil && b != nil && a == b
}

// sameContainer reports whether other wraps the storage behind inv.
func sameContainer(inv *types.Inventory, other types.Container) bool {
	if other == nil {
		return false
	}
	return sameInventory(inv, other.Inventory())
}

// FindByInventory returns the container whose inventory is inv, or nil.
func FindByInventory(cs []types.Container, inv *types.Inventory) types.Container {
	for _, c := range cs {
		if c != nil && c.IsSameInventory(inv) {
			return c
		}
	}
	return nil
}

// Dedupe drops containers that wrap storage already seen earlier in cs,
// keeping the first wrapper. Order is preserved.
func Dedupe(cs []types.Container) []types.Container {
	out := make([]types.Container, 0, len(cs))
	for _, c := range cs {
		if c == nil {
			continue
		}
		dup := false
		for _, kept := range out {
			if kept.IsSameAs(c) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}
