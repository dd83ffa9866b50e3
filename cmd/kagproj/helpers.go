// Shared helpers for kagproj CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kagworks/kagproj/internal/sqlite"
	"github.com/kagworks/kagproj/pkg/types"
)

// attachStore resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func attachStore() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach registry: %w", err)
	}

	return backend, nil
}

// findProject looks a project up by slug. The argument is slugified
// first, so "House Prices" and "house_prices" both resolve.
func findProject(backend *sqlite.Backend, name string) (*types.Project, error) {
	table, err := backend.GetTable(types.ProjectsTable)
	if err != nil {
		return nil, err
	}

	slug := types.Slugify(name)
	matches, err := table.Fetch(map[string]any{"slug": slug})
	if err != nil {
		return nil, fmt.Errorf("fetch project: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("project %q: %w", slug, types.ErrNotFound)
	}

	project, ok := matches[0].(*types.Project)
	if !ok {
		return nil, types.ErrInvalidData
	}
	return project, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "marshal JSON:", err)
		os.Exit(exitSysError)
	}
	fmt.Println(string(out))
}
