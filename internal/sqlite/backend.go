// Package sqlite implements the SQLite registry backend for kagproj.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/kagworks/kagproj/pkg/types"
)

// dbFileName is the registry database file created inside DataDir.
const dbFileName = "registry.db"

// Backend implements the Store interface using a SQLite database as the
// source of truth for registered projects and submissions.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tables   map[string]types.Table
}

// Compile-time interface check: Backend must implement Store.
var _ types.Store = (*Backend)(nil)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{
		tables: make(map[string]types.Table),
	}
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, opens the registry database,
// applies the schema, and creates table accessors.
// Returns ErrAlreadyAttached if already attached.
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
		return fmt.Errorf("create data directory: %w", err)
	}

	// foreign_keys is per-connection in SQLite; the DSN pragma applies it
	// to every pooled connection so ON DELETE CASCADE holds.
	dbPath := filepath.Join(dataDir, dbFileName)
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return fmt.Errorf("open registry database: %w", err)
	}

	// Schema uses IF NOT EXISTS; re-attaching to an existing registry
	// preserves its contents.
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("apply schema: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true

	b.tables[types.ProjectsTable] = &projectsTable{backend: b}
	b.tables[types.SubmissionsTable] = &submissionsTable{backend: b}

	return nil
}

// Detach releases backend resources. Idempotent: detaching a detached
// backend succeeds.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	err := b.db.Close()
	b.db = nil
	b.attached = false
	b.tables = make(map[string]types.Table)
	if err != nil {
		return fmt.Errorf("close registry database: %w", err)
	}
	return nil
}

// conn returns the live database handle. Table accessors obtain it per
// operation so a handle retained across Detach fails with
// ErrStoreDetached instead of touching a closed database.
func (b *Backend) conn() (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return b.db, nil
}

// GetTable returns a Table accessor for the specified table name.
// Returns ErrTableNotFound if the table name is not recognized.
// Returns ErrStoreDetached if the backend is not attached.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	table, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return table, nil
}
