package world

import (
	"errors"
	"testing"

	"github.com/mesh-intelligence/chests/pkg/types"
)

func TestMutex(t *testing.T) {
	t.Run("acquire and release", func(t *testing.T) {
		var m Mutex
		if err := m.Acquire("player-1"); err != nil {
			t.Fatal(err)
		}
		if m.Holder() != "player-1" {
			t.Fatalf("expected holder player-1, got %q", m.Holder())
		}
		if err := m.Release("player-1"); err != nil {
			t.Fatal(err)
		}
		if m.Holder() != "" {
			t.Fatalf("expected free lock, got holder %q", m.Holder())
		}
	})

	t.Run("reentrant for same holder", func(t *testing.T) {
		var m Mutex
		_ = m.Acquire("player-1")
		if err := m.Acquire("player-1"); err != nil {
			t.Fatalf("reacquire should succeed, got %v", err)
		}
		acquires, _ := m.Stats()
		if acquires != 1 {
			t.Fatalf("reentrant acquire must not count twice, got %d", acquires)
		}
	})

	t.Run("different holder is refused", func(t *testing.T) {
		var m Mutex
		_ = m.Acquire("player-1")
		if err := m.Acquire("player-2"); !errors.Is(err, types.ErrLockHeld) {
			t.Fatalf("expected ErrLockHeld, got %v", err)
		}
	})

	t.Run("release by non-holder", func(t *testing.T) {
		var m Mutex
		_ = m.Acquire("player-1")
		if err := m.Release("player-2"); !errors.Is(err, types.ErrNotLockHolder) {
			t.Fatalf("expected ErrNotLockHolder, got %v", err)
		}
	})

	t.Run("double release", func(t *testing.T) {
		var m Mutex
		_ = m.Acquire("player-1")
		_ = m.Release("player-1")
		if err := m.Release("player-1"); !errors.Is(err, types.ErrLockNotHeld) {
			t.Fatalf("expected ErrLockNotHeld, got %v", err)
		}
		_, releases := m.Stats()
		if releases != 1 {
			t.Fatalf("expected 1 release, got %d", releases)
		}
	})

	t.Run("empty holder", func(t *testing.T) {
		var m Mutex
		if err := m.Acquire(""); !errors.Is(err, types.ErrInvalidHolder) {
			t.Fatalf("expected ErrInvalidHolder, got %v", err)
		}
		if err := m.Release(""); !errors.Is(err, types.ErrInvalidHolder) {
			t.Fatalf("expected ErrInvalidHolder, got %v", err)
		}
	})
}
