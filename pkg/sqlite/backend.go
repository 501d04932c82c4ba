// Package sqlite provides the public constructor for the SQLite save store
// while keeping the implementation internal.
package sqlite

import (
	"github.com/mesh-intelligence/chests/internal/sqlite"
	"github.com/mesh-intelligence/chests/pkg/types"
)

// NewBackend creates a new SQLite save store.
// The store is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	store := sqlite.NewBackend()
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".chests-save",
//	})
//	defer store.Detach()
func NewBackend() types.SaveStore {
	return sqlite.NewBackend()
}
