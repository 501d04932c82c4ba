// Package menu opens host interaction surfaces for containers.
//
// The bridge translates a container's inventory into the shape a surface
// needs, wires the withdraw/deposit callbacks, and registers the cleanup
// action (usually a lock release) that must run exactly once when the
// surface goes away, whether it is closed normally, forced shut by the host,
// aborted on error, or replaced by another surface.
package menu

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/chests/pkg/types"
)

// Bridge owns the single active-surface binding.
type Bridge struct {
	screen types.Screen
	log    zerolog.Logger

	mu     sync.Mutex
	active types.Menu
}

// NewBridge returns a bridge that activates surfaces on screen.
func NewBridge(screen types.Screen, log zerolog.Logger) *Bridge {
	return &Bridge{
		screen: screen,
		log:    log.With().Str("component", "menu").Logger(),
	}
}

// Active returns the surface opened through this bridge that is still open,
// or nil.
func (b *Bridge) Active() types.Menu {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// activate tears down the previously active surface, then makes m the
// host's active menu. If the host refuses, m is aborted so its cleanup runs.
func (b *Bridge) activate(m types.Menu) error {
	b.mu.Lock()
	prev := b.active
	b.mu.Unlock()

	if prev != nil && !prev.Closed() {
		prev.ForceClose()
	}

	if err := b.screen.SetActiveMenu(m); err != nil {
		m.Abort(err)
		return err
	}

	b.mu.Lock()
	b.active = m
	b.mu.Unlock()

	b.log.Debug().Str("context", m.Context()).Msg("menu opened")
	return nil
}

// unbind forgets m if it is the active surface and clears it from the host.
func (b *Bridge) unbind(m types.Menu) {
	b.mu.Lock()
	if b.active == m {
		b.active = nil
	}
	b.mu.Unlock()

	if b.screen.ActiveMenu() == m {
		if err := b.screen.SetActiveMenu(nil); err != nil {
			b.log.Warn().Err(err).Msg("clearing active menu")
		}
	}
}

// surface is the teardown state shared by every menu type.
type surface struct {
	bridge  *Bridge
	self    types.Menu
	context string
	source  any
	cleanup func()

	once   sync.Once
	mu     sync.Mutex
	closed bool
}

// Context returns the surface's context tag.
func (s *surface) Context() string {
	return s.context
}

// Source returns the host entity the surface was opened for.
func (s *surface) Source() any {
	return s.source
}

// Closed reports whether the surface has been torn down.
func (s *surface) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close tears the surface down normally.
func (s *surface) Close() {
	s.teardown("closed", nil)
}

// ForceClose tears the surface down because the host forced it shut.
func (s *surface) ForceClose() {
	s.teardown("forced", nil)
}

// Abort tears the surface down because of err.
func (s *surface) Abort(err error) {
	s.teardown("aborted", err)
}

// teardown runs at most once. The cleanup action runs before the binding is
// dropped; the binding is dropped even if cleanup panics.
func (s *surface) teardown(reason string, err error) {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		defer s.bridge.unbind(s.self)

		ev := s.bridge.log.Debug()
		if err != nil {
			ev = s.bridge.log.Warn().Err(err)
		}
		ev.Str("context", s.context).Str("reason", reason).Msg("menu torn down")

		if s.cleanup != nil {
			s.cleanup()
		}
	})
}
