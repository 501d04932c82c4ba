package world

import (
	"fmt"
	"sort"

	"github.com/mesh-intelligence/chests/pkg/types"
)

// World is the set of storage entities loaded from a save store.
type World struct {
	store    types.SaveStore
	player   *Player
	entities []Entity
	byID     map[string]Entity
}

// Load reads every record matching filter and builds its host entity.
func Load(store types.SaveStore, filter types.EntityFilter, player *Player) (*World, error) {
	recs, err := store.FetchEntities(filter)
	if err != nil {
		return nil, fmt.Errorf("fetching entities: %w", err)
	}
	w := &World{
		store:  store,
		player: player,
		byID:   make(map[string]Entity, len(recs)),
	}
	for _, rec := range recs {
		e, err := FromRecord(rec, player)
		if err != nil {
			return nil, fmt.Errorf("loading entity %s: %w", rec.EntityID, err)
		}
		w.entities = append(w.entities, e)
		w.byID[e.EntityID()] = e
	}
	return w, nil
}

// Player returns the acting player.
func (w *World) Player() *Player {
	return w.player
}

// Entities returns the loaded entities in store order.
func (w *World) Entities() []Entity {
	out := make([]Entity, len(w.entities))
	copy(out, w.entities)
	return out
}

// Natives returns the entities as values for containers.Wrap.
func (w *World) Natives() []any {
	out := make([]any, len(w.entities))
	for i, e := range w.entities {
		out[i] = e
	}
	return out
}

// Entity returns the entity with the given ID.
func (w *World) Entity(id string) (Entity, bool) {
	e, ok := w.byID[id]
	return e, ok
}

// Locations returns the distinct locations, sorted.
func (w *World) Locations() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range w.entities {
		if !seen[e.Location()] {
			seen[e.Location()] = true
			out = append(out, e.Location())
		}
	}
	sort.Strings(out)
	return out
}

// Add persists a new record and loads its entity.
func (w *World) Add(rec *types.EntityRecord) (Entity, error) {
	if !types.ValidKind(rec.Kind) {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownKind, rec.Kind)
	}
	id, err := w.store.PutEntity(rec)
	if err != nil {
		return nil, fmt.Errorf("creating entity: %w", err)
	}
	stored, err := w.store.GetEntity(id)
	if err != nil {
		return nil, fmt.Errorf("reading new entity: %w", err)
	}
	e, err := FromRecord(stored, w.player)
	if err != nil {
		return nil, err
	}
	w.entities = append(w.entities, e)
	w.byID[id] = e
	return e, nil
}

// Flush persists the entity's current items and metadata.
func (w *World) Flush(e Entity) error {
	if _, err := w.store.PutEntity(e.Record()); err != nil {
		return fmt.Errorf("saving entity %s: %w", e.EntityID(), err)
	}
	return nil
}

// Remove deletes the entity from the store and the world.
func (w *World) Remove(id string) error {
	if err := w.store.DeleteEntity(id); err != nil {
		return err
	}
	delete(w.byID, id)
	for i, e := range w.entities {
		if e.EntityID() == id {
			w.entities = append(w.entities[:i], w.entities[i+1:]...)
			break
		}
	}
	return nil
}
