// Package sqlite implements the save store for the reference host. JSONL
// files in the data directory are the source of truth; SQLite is rebuilt
// from them on Attach and serves every query.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/chests/pkg/types"
)

// dbFile is the SQLite file created inside the data directory.
const dbFile = "save.db"

// Backend implements types.SaveStore using SQLite as the query engine and
// JSONL files as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

var _ types.SaveStore = (*Backend)(nil)

// NewBackend creates a detached backend. Call Attach to initialize it.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach initializes the backend with the given configuration. It creates
// DataDir if needed, rebuilds the SQLite schema and loads the JSONL files.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The database is a cache of the JSONL files; start fresh every time.
	dbPath := filepath.Join(dataDir, dbFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	for _, stmt := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return err
	}
	if err := loadAllJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	config.DataDir = dataDir
	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the SQLite connection. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// generateUUID generates a new UUID v7.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
