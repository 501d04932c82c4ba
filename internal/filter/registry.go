// Package filter holds the process-wide classification data that restricted
// containers consult to decide which items they accept.
//
// A restricted kind is bound to a host catalog context. The first lookup for
// a kind builds a throwaway catalog for that context and keeps the set of
// categories it sells; every later lookup, from any container of that kind,
// reads the cached set.
package filter

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/chests/pkg/types"
)

// Catalog contexts used by the default registry.
const (
	ContextDresser     = "Dresser"
	ContextShippingBin = "ShippingBin"
)

// CategorySet is a read-only set of category codes.
type CategorySet struct {
	m map[types.Category]struct{}
}

func newCategorySet(categories []types.Category) CategorySet {
	m := make(map[types.Category]struct{}, len(categories))
	for _, c := range categories {
		m[c] = struct{}{}
	}
	return CategorySet{m: m}
}

// Contains reports whether c is in the set.
func (s CategorySet) Contains(c types.Category) bool {
	_, ok := s.m[c]
	return ok
}

// Len returns the number of categories in the set.
func (s CategorySet) Len() int {
	return len(s.m)
}

// Sorted returns the categories in descending code order (clothing last).
func (s CategorySet) Sorted() []types.Category {
	out := make([]types.Category, 0, len(s.m))
	for c := range s.m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

// entry is the compute-once cache slot for one kind. ready is set only after
// set is fully built, so a reader that observes ready can use set without
// taking mu.
type entry struct {
	context string
	ready   atomic.Bool
	mu      sync.Mutex
	set     CategorySet
}

// Registry caches accepted categories per restricted kind. It is safe for
// concurrent use; the catalog for a kind is built at most once.
type Registry struct {
	source types.CatalogFactory
	log    zerolog.Logger

	mu      sync.RWMutex
	entries map[types.Kind]*entry
}

// NewRegistry returns an empty registry reading catalogs from source.
func NewRegistry(source types.CatalogFactory, log zerolog.Logger) *Registry {
	return &Registry{
		source:  source,
		log:     log.With().Str("component", "filter").Logger(),
		entries: make(map[types.Kind]*entry),
	}
}

// NewDefaultRegistry returns a registry with the built-in restricted kinds:
// storage furniture sells like a dresser, shipping bins take what the bin
// buys.
func NewDefaultRegistry(source types.CatalogFactory, log zerolog.Logger) *Registry {
	r := NewRegistry(source, log)
	r.Register(types.KindStorageFurniture, ContextDresser)
	r.Register(types.KindShippingBin, ContextShippingBin)
	return r
}

// Register binds kind to a catalog context. Registering a kind again
// replaces its binding and drops any cached set.
func (r *Registry) Register(kind types.Kind, catalogContext string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[kind] = &entry{context: catalogContext}
}

// Restricted reports whether kind has a registered acceptance filter.
func (r *Registry) Restricted(kind types.Kind) bool {
	return r.lookup(kind) != nil
}

func (r *Registry) lookup(kind types.Kind) *entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[kind]
}

// Categories returns the categories accepted by kind. The first call per kind
// builds the catalog; failure returns an error wrapping
// types.ErrInitialization and caches nothing, so a later call retries.
// An unregistered kind returns an error wrapping types.ErrUnknownKind.
func (r *Registry) Categories(kind types.Kind) (CategorySet, error) {
	e := r.lookup(kind)
	if e == nil {
		return CategorySet{}, fmt.Errorf("%w: %s has no category filter", types.ErrUnknownKind, kind)
	}
	if e.ready.Load() {
		return e.set, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ready.Load() {
		return e.set, nil
	}

	catalog, err := r.source.NewCatalog(e.context)
	if err == nil && catalog == nil {
		err = errors.New("host returned no catalog")
	}
	if err != nil {
		r.log.Warn().Err(err).Str("kind", string(kind)).Str("context", e.context).Msg("catalog not ready")
		if errors.Is(err, types.ErrInitialization) {
			return CategorySet{}, fmt.Errorf("building %s catalog: %w", e.context, err)
		}
		return CategorySet{}, fmt.Errorf("%w: building %s catalog: %w", types.ErrInitialization, e.context, err)
	}

	e.set = newCategorySet(catalog.CategoriesToSellHere())
	e.ready.Store(true)

	r.log.Debug().
		Str("kind", string(kind)).
		Str("context", e.context).
		Int("categories", e.set.Len()).
		Msg("cached accepted categories")
	return e.set, nil
}

// Accepts reports whether kind accepts items of category c.
func (r *Registry) Accepts(kind types.Kind, c types.Category) (bool, error) {
	set, err := r.Categories(kind)
	if err != nil {
		return false, err
	}
	return set.Contains(c), nil
}
