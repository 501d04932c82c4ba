package types

import (
	"errors"
	"time"
)

// EntityRecord is the persisted form of one host storage entity.
type EntityRecord struct {
	EntityID  string    // UUID v7, generated on creation.
	Kind      Kind      // Backend kind.
	Location  string    // Host location the entity sits in.
	Label     string    // Host-side label, used when the container has no name.
	Capacity  int       // Slot capacity; 0 means unbounded.
	ModData   ModData   // Generic metadata, including keys owned by other tooling.
	Items     []*Item   // Slots in order; nil is an empty slot.
	CreatedAt time.Time // Timestamp of creation.
	UpdatedAt time.Time // Timestamp of last modification.
}

// EntityFilter selects entity records. Zero fields match everything.
type EntityFilter struct {
	Kind     Kind
	Location string
}

// SaveStore persists host entities for the reference host. Callers attach
// to a backend, read and write entity records, and detach when done.
type SaveStore interface {
	// Attach connects the store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached if
	// called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	// After Detach, operations return ErrSaveDetached.
	Detach() error

	// GetEntity returns the record with the given ID, or ErrNotFound.
	GetEntity(id string) (*EntityRecord, error)

	// PutEntity creates or updates a record. When rec.EntityID is empty a new
	// UUID v7 is generated. Returns the ID used.
	PutEntity(rec *EntityRecord) (string, error)

	// DeleteEntity removes a record and its items, or returns ErrNotFound.
	DeleteEntity(id string) error

	// FetchEntities returns all records matching filter, ordered by location
	// then creation time.
	FetchEntities(filter EntityFilter) ([]*EntityRecord, error)
}

// Save store lifecycle errors.
var (
	ErrSaveDetached    = errors.New("save store is detached")
	ErrAlreadyAttached = errors.New("save store is already attached")
)

// Entity operation errors.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrInvalidData = errors.New("invalid entity data")
)
