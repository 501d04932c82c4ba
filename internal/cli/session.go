package cli

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/chests/internal/containers"
	"github.com/mesh-intelligence/chests/internal/logging"
	"github.com/mesh-intelligence/chests/internal/sqlite"
	"github.com/mesh-intelligence/chests/internal/world"
	"github.com/mesh-intelligence/chests/pkg/types"
)

// session is an attached save store plus the world and container
// environment built over it. The caller must call close.
type session struct {
	store    types.SaveStore
	world    *world.World
	catalogs *world.Catalogs
	screen   *world.Screen
	env      *containers.Env
	log      zerolog.Logger

	// views pairs each wrapped container with its host entity.
	views map[types.Container]world.Entity
}

// newStore returns a detached store for the configured backend.
func newStore(backend string) (types.SaveStore, error) {
	switch backend {
	case types.BackendSQLite:
		return sqlite.NewBackend(), nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, backend)
	}
}

// attachStore creates and attaches the configured save store.
func (a *app) attachStore() (types.SaveStore, error) {
	store, err := newStore(a.settings.Backend)
	if err != nil {
		return nil, err
	}
	cfg := types.Config{Backend: a.settings.Backend, DataDir: a.settings.DataDir}
	if err := store.Attach(cfg); err != nil {
		return nil, systemErr("attach save store", err)
	}
	return store, nil
}

// openSession attaches the store and loads the entities matching filter.
func (a *app) openSession(filter types.EntityFilter) (*session, error) {
	log := logging.New(a.errOut, a.settings.LogLevel, a.flags.jsonMode)

	store, err := a.attachStore()
	if err != nil {
		return nil, err
	}
	w, err := world.Load(store, filter, world.NewPlayer(a.settings.Actor))
	if err != nil {
		store.Detach()
		return nil, systemErr("load save", err)
	}

	catalogs := world.NewCatalogs(a.settings.Catalogs)
	screen := &world.Screen{}
	s := &session{
		store:    store,
		world:    w,
		catalogs: catalogs,
		screen:   screen,
		env:      containers.NewEnv(catalogs, screen, a.settings.Actor, log),
		log:      logging.Component(log, "cli"),
		views:    make(map[types.Container]world.Entity),
	}
	return s, nil
}

func (s *session) close() error {
	if active := s.env.Menus.Active(); active != nil {
		active.Close()
	}
	if err := s.store.Detach(); err != nil {
		return systemErr("detach save store", err)
	}
	return nil
}

// wrap returns the container view of e, recording its entity.
func (s *session) wrap(e world.Entity) (types.Container, error) {
	c, err := containers.Wrap(s.env, e)
	if err != nil {
		return nil, err
	}
	s.views[c] = e
	return c, nil
}

// containers wraps every loaded entity.
func (s *session) containers() []types.Container {
	var out []types.Container
	for _, e := range s.world.Entities() {
		c, err := s.wrap(e)
		if err != nil {
			s.log.Warn().Err(err).Str("entity", e.EntityID()).Msg("skipping entity")
			continue
		}
		out = append(out, c)
	}
	return out
}

// container wraps the entity with the given ID.
func (s *session) container(id string) (types.Container, world.Entity, error) {
	e, ok := s.world.Entity(id)
	if !ok {
		return nil, nil, errNoSuchContainer(id)
	}
	c, err := s.wrap(e)
	if err != nil {
		return nil, nil, err
	}
	return c, e, nil
}

// save writes c's configuration into its entity and flushes the entity.
func (s *session) save(c types.Container) error {
	c.SaveData()
	if err := s.world.Flush(s.views[c]); err != nil {
		return systemErr("save", err)
	}
	return nil
}

// withSession opens a session over every entity, runs fn and closes it.
func (a *app) withSession(fn func(s *session) error) error {
	s, err := a.openSession(types.EntityFilter{})
	if err != nil {
		return err
	}
	runErr := fn(s)
	if err := s.close(); err != nil && runErr == nil {
		return err
	}
	return runErr
}
