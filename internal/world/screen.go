package world

import (
	"sync"

	"github.com/mesh-intelligence/chests/pkg/types"
)

// Screen is the host UI: it only remembers the active menu.
type Screen struct {
	mu     sync.Mutex
	active types.Menu
}

var _ types.Screen = (*Screen)(nil)

// SetActiveMenu replaces the active menu. nil clears it.
func (s *Screen) SetActiveMenu(m types.Menu) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = m
	return nil
}

// ActiveMenu returns the active menu, or nil.
func (s *Screen) ActiveMenu() types.Menu {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}
