package world

import (
	"sync"

	"github.com/mesh-intelligence/chests/pkg/types"
)

// Mutex is a holder-based exclusive lock. Acquire is reentrant for the
// current holder; a second holder is refused until the first releases.
type Mutex struct {
	mu       sync.Mutex
	holder   string
	acquires int
	releases int
}

var _ types.Lock = (*Mutex)(nil)

// Acquire takes the lock for holder.
func (m *Mutex) Acquire(holder string) error {
	if holder == "" {
		return types.ErrInvalidHolder
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.holder != "" && m.holder != holder {
		return types.ErrLockHeld
	}
	if m.holder == "" {
		m.acquires++
	}
	m.holder = holder
	return nil
}

// Release frees the lock. Releasing a free lock returns ErrLockNotHeld so a
// double release is visible to the caller.
func (m *Mutex) Release(holder string) error {
	if holder == "" {
		return types.ErrInvalidHolder
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.holder == "" {
		return types.ErrLockNotHeld
	}
	if m.holder != holder {
		return types.ErrNotLockHolder
	}
	m.holder = ""
	m.releases++
	return nil
}

// Holder returns the current holder, or "".
func (m *Mutex) Holder() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.holder
}

// Stats returns how many times the lock went from free to held and back.
func (m *Mutex) Stats() (acquires, releases int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.acquires, m.releases
}
