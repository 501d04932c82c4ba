package world

import (
	"fmt"
	"sync"

	"github.com/mesh-intelligence/chests/pkg/types"
)

// ShippingBinContext is the catalog context of the shipping bin.
const ShippingBinContext = "ShippingBin"

// DefaultCatalogContexts returns the categories each built-in shop context
// deals in.
func DefaultCatalogContexts() map[string][]types.Category {
	return map[string][]types.Category{
		DresserContext: {
			types.CategoryClothing,
			types.CategoryHat,
			types.CategoryRing,
			types.CategoryBoots,
			types.CategoryTrinket,
		},
		ShippingBinContext: {
			types.CategoryGem,
			types.CategoryFish,
			types.CategoryEgg,
			types.CategoryMilk,
			types.CategoryCooking,
			types.CategoryMineral,
			types.CategoryMeat,
			types.CategoryArtisan,
			types.CategorySyrup,
			types.CategoryMonsterLoot,
			types.CategoryVegetable,
			types.CategoryFruit,
			types.CategoryFlower,
			types.CategoryForage,
		},
	}
}

type catalog []types.Category

func (c catalog) CategoriesToSellHere() []types.Category {
	out := make([]types.Category, len(c))
	copy(out, c)
	return out
}

// Catalogs is the host's catalog factory. It refuses to build catalogs
// until the host is marked ready.
type Catalogs struct {
	mu       sync.Mutex
	contexts map[string][]types.Category
	ready    bool
	built    map[string]int
}

var _ types.CatalogFactory = (*Catalogs)(nil)

// NewCatalogs returns a ready factory over the given contexts.
func NewCatalogs(contexts map[string][]types.Category) *Catalogs {
	return &Catalogs{
		contexts: contexts,
		ready:    true,
		built:    make(map[string]int),
	}
}

// SetReady marks the host as loaded or not.
func (c *Catalogs) SetReady(ready bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ready = ready
}

// NewCatalog builds a throwaway catalog for context.
func (c *Catalogs) NewCatalog(context string) (types.Catalog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		return nil, fmt.Errorf("%w: host is not loaded", types.ErrInitialization)
	}
	cats, ok := c.contexts[context]
	if !ok {
		return nil, fmt.Errorf("%w: no shop context %q", types.ErrInitialization, context)
	}
	c.built[context]++
	return catalog(cats), nil
}

// Built returns how many catalogs were built for context.
func (c *Catalogs) Built(context string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.built[context]
}
