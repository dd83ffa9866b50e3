// Tests for the SQLite registry backend lifecycle.
package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kagworks/kagproj/pkg/types"
)

// setupBackend attaches a backend to an isolated temp directory.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}
	if err := b.Attach(cfg); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	// Verify database file created
	dbPath := filepath.Join(tmpDir, "registry.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("registry.db not created")
	}

	// Verify double attach fails
	if err := b.Attach(config); !errors.Is(err, types.ErrAlreadyAttached) {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}

	b.Detach()
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	b := NewBackend()

	err := b.Attach(types.Config{Backend: "", DataDir: t.TempDir()})
	if !errors.Is(err, types.ErrBackendEmpty) {
		t.Errorf("expected ErrBackendEmpty, got %v", err)
	}

	err = b.Attach(types.Config{Backend: "postgres", DataDir: t.TempDir()})
	if !errors.Is(err, types.ErrBackendUnknown) {
		t.Errorf("expected ErrBackendUnknown, got %v", err)
	}
}

func TestBackend_Detach(t *testing.T) {
	b := NewBackend()
	config := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}

	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}

	// Idempotent: detaching again succeeds.
	if err := b.Detach(); err != nil {
		t.Errorf("second Detach failed: %v", err)
	}

	// Tables are unreachable after detach.
	if _, err := b.GetTable(types.ProjectsTable); !errors.Is(err, types.ErrStoreDetached) {
		t.Errorf("expected ErrStoreDetached, got %v", err)
	}
}

func TestBackend_RetainedTableAfterDetach(t *testing.T) {
	b := NewBackend()
	config := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}

	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	projects, err := b.GetTable(types.ProjectsTable)
	if err != nil {
		t.Fatalf("GetTable: %v", err)
	}
	subs, err := b.GetTable(types.SubmissionsTable)
	if err != nil {
		t.Fatalf("GetTable: %v", err)
	}
	id, err := projects.Set("", &types.Project{Name: "titanic", Path: "/tmp/titanic"})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}

	// Handles obtained before Detach fail cleanly, on every operation.
	if _, err := projects.Get(id); !errors.Is(err, types.ErrStoreDetached) {
		t.Errorf("Get: expected ErrStoreDetached, got %v", err)
	}
	if _, err := projects.Set("", &types.Project{Name: "other", Path: "/tmp/other"}); !errors.Is(err, types.ErrStoreDetached) {
		t.Errorf("Set: expected ErrStoreDetached, got %v", err)
	}
	if err := projects.Delete(id); !errors.Is(err, types.ErrStoreDetached) {
		t.Errorf("Delete: expected ErrStoreDetached, got %v", err)
	}
	if _, err := projects.Fetch(nil); !errors.Is(err, types.ErrStoreDetached) {
		t.Errorf("Fetch: expected ErrStoreDetached, got %v", err)
	}
	if _, err := subs.Fetch(map[string]any{"project_id": id}); !errors.Is(err, types.ErrStoreDetached) {
		t.Errorf("submissions Fetch: expected ErrStoreDetached, got %v", err)
	}
}

func TestBackend_GetTable(t *testing.T) {
	b := setupBackend(t)

	for _, name := range types.StandardTableNames {
		if _, err := b.GetTable(name); err != nil {
			t.Errorf("GetTable(%q): %v", name, err)
		}
	}

	if _, err := b.GetTable("leaderboards"); !errors.Is(err, types.ErrTableNotFound) {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}
}

func TestBackend_ReattachPreservesData(t *testing.T) {
	tmpDir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}

	b := NewBackend()
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	tbl, err := b.GetTable(types.ProjectsTable)
	if err != nil {
		t.Fatalf("GetTable: %v", err)
	}
	id, err := tbl.Set("", &types.Project{Name: "titanic", Path: "/tmp/titanic"})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := b.Detach(); err != nil {
		t.Fatalf("Detach: %v", err)
	}

	// A fresh backend on the same data directory sees the project.
	b2 := NewBackend()
	if err := b2.Attach(config); err != nil {
		t.Fatalf("re-Attach: %v", err)
	}
	defer b2.Detach()

	tbl2, err := b2.GetTable(types.ProjectsTable)
	if err != nil {
		t.Fatalf("GetTable: %v", err)
	}
	raw, err := tbl2.Get(id)
	if err != nil {
		t.Fatalf("Get after reattach: %v", err)
	}
	if raw.(*types.Project).Name != "titanic" {
		t.Errorf("project name lost across reattach")
	}
}
