// Package containers implements the Container contract for each supported
// host storage backend.
//
// Every variant is a thin, non-owning view over a host entity plus the
// configuration record parsed from the entity's metadata. Variants are built
// with an explicit *Env carrying the process-scoped services they share.
package containers

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/chests/internal/filter"
	"github.com/mesh-intelligence/chests/internal/menu"
	"github.com/mesh-intelligence/chests/pkg/types"
)

// DefaultActor is the lock holder used when none is configured.
const DefaultActor = "local-player"

// Env is the process-scoped context shared by all containers.
type Env struct {
	// Filters caches accepted categories per restricted kind.
	Filters *filter.Registry
	// Menus opens interaction surfaces.
	Menus *menu.Bridge
	// Actor is the lock holder name used when opening surfaces.
	Actor string
	// Log is the parent logger for container events.
	Log zerolog.Logger
}

// NewEnv wires the default filter registry and a menu bridge.
func NewEnv(catalogs types.CatalogFactory, screen types.Screen, actor string, log zerolog.Logger) *Env {
	if actor == "" {
		actor = DefaultActor
	}
	return &Env{
		Filters: filter.NewDefaultRegistry(catalogs, log),
		Menus:   menu.NewBridge(screen, log),
		Actor:   actor,
		Log:     log.With().Str("component", "containers").Logger(),
	}
}

// acquire takes lock for the env's actor and returns the matching release.
// A nil lock means the backend is not lockable; release is then a no-op.
// The returned release is safe to call more than once; only the first call
// releases.
func (e *Env) acquire(lock types.Lock, entityID string) (func(), error) {
	if lock == nil {
		return func() {}, nil
	}
	if err := lock.Acquire(e.Actor); err != nil {
		if errors.Is(err, types.ErrLockHeld) {
			return nil, fmt.Errorf("%w: %s is held by %s", types.ErrLockUnavailable, entityID, lock.Holder())
		}
		return nil, fmt.Errorf("acquiring lock on %s: %w", entityID, err)
	}
	e.Log.Debug().Str("entity", entityID).Str("holder", e.Actor).Msg("lock acquired")

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := lock.Release(e.Actor); err != nil {
				e.Log.Warn().Err(err).Str("entity", entityID).Msg("releasing lock")
				return
			}
			e.Log.Debug().Str("entity", entityID).Str("holder", e.Actor).Msg("lock released")
		})
	}, nil
}

// acquireForOpen takes lock for a new surface and retires the active one.
// If the lock is held elsewhere the active surface is left alone. When the
// actor already holds the lock through the active surface, that surface is
// torn down first so the lock is released and then taken again.
func (e *Env) acquireForOpen(lock types.Lock, entityID string) (func(), error) {
	if lock != nil && lock.Holder() == e.Actor {
		e.prepareOpen()
		return e.acquire(lock, entityID)
	}
	release, err := e.acquire(lock, entityID)
	if err != nil {
		return nil, err
	}
	e.prepareOpen()
	return release, nil
}

// prepareOpen tears down whatever surface is active.
func (e *Env) prepareOpen() {
	if active := e.Menus.Active(); active != nil {
		active.ForceClose()
	}
}

// base holds what every variant shares: the entity's metadata map and the
// configuration parsed from it.
type base struct {
	env      *Env
	entityID string
	modData  types.ModData
	data     *types.ContainerData
	log      zerolog.Logger
}

func newBase(env *Env, kind types.Kind, entityID string, md types.ModData) base {
	log := env.Log.With().Str("kind", string(kind)).Str("entity", entityID).Logger()
	data, err := types.ContainerDataFromModData(md)
	if err != nil {
		log.Warn().Err(err).Msg("ignoring malformed container data")
	}
	return base{
		env:      env,
		entityID: entityID,
		modData:  md,
		data:     data,
		log:      log,
	}
}

// EntityID returns the host entity's ID.
func (b *base) EntityID() string {
	return b.entityID
}

// Data returns the container's persisted configuration.
func (b *base) Data() *types.ContainerData {
	return b.data
}

// SaveData writes Data back into the entity's metadata.
func (b *base) SaveData() {
	b.data.ToModData(b.modData)
}

// checkByRegistry consults the filter registry for a restricted kind. A
// registry failure is returned as is, so callers can tell an unready host
// from a refused item.
func (b *base) checkByRegistry(kind types.Kind, item *types.Item) error {
	if item == nil {
		return types.ErrDepositRejected
	}
	ok, err := b.env.Filters.Accepts(kind, item.Category)
	if err != nil {
		return fmt.Errorf("checking %s for %s: %w", item.Name, b.entityID, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s (%s)", types.ErrDepositRejected, item.Name, item.Category)
	}
	return nil
}

// acceptsByRegistry is checkByRegistry as a yes/no answer. A registry
// failure answers no and is logged.
func (b *base) acceptsByRegistry(kind types.Kind, item *types.Item) bool {
	err := b.checkByRegistry(kind, item)
	if err != nil && !errors.Is(err, types.ErrDepositRejected) {
		b.log.Warn().Err(err).Msg("category filter unavailable")
	}
	return err == nil
}
