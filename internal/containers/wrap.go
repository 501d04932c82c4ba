package containers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/chests/pkg/types"
)

// Wrap returns the Container variant for a host entity. Storage furniture is
// matched first, then chests, then shipping bins, because a chest also
// satisfies the narrower shipping bin interface.
func Wrap(env *Env, entity any) (types.Container, error) {
	switch e := entity.(type) {
	case types.StorageFurniture:
		return NewStorageFurniture(env, e), nil
	case types.Chest:
		return NewChest(env, e), nil
	case types.ShippingBin:
		return NewShippingBin(env, e), nil
	default:
		return nil, fmt.Errorf("%w: %T", types.ErrUnknownKind, entity)
	}
}

// WrapAll wraps every entity. An unsupported entity fails the whole call.
func WrapAll(env *Env, entities []any) ([]types.Container, error) {
	out := make([]types.Container, 0, len(entities))
	for _, e := range entities {
		c, err := Wrap(env, e)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Filter returns the containers for which keep returns true.
func Filter(cs []types.Container, keep func(types.Container) bool) []types.Container {
	out := make([]types.Container, 0, len(cs))
	for _, c := range cs {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// Visible drops containers the player marked as ignored.
func Visible(cs []types.Container) []types.Container {
	return Filter(cs, func(c types.Container) bool { return !c.Data().IsIgnored })
}

// Sort orders containers by configured order, then case-insensitive name,
// then kind. The sort is stable so unnamed containers keep host order.
func Sort(cs []types.Container) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i].Data(), cs[j].Data()
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if an != bn {
			return an < bn
		}
		return cs[i].Kind() < cs[j].Kind()
	})
}
