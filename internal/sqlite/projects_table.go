// This file implements the projects table accessor for the SQLite backend.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kagworks/kagproj/pkg/types"
)

// Compile-time interface check: projectsTable must implement Table.
var _ types.Table = (*projectsTable)(nil)

// projectFilterKeys lists the filter keys Fetch accepts.
var projectFilterKeys = []string{"name", "slug", "competition"}

// projectsTable implements the Table interface for the project entity.
// Each operation hydrates/dehydrates between SQLite rows and
// *types.Project structs.
type projectsTable struct {
	backend *Backend
}

// scanner abstracts *sql.Row and *sql.Rows for hydration.
type scanner interface {
	Scan(dest ...any) error
}

// Get retrieves a project by ID.
func (pt *projectsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := pt.backend.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT project_id, name, slug, competition, path, created_at, updated_at FROM projects WHERE project_id = ?",
		id,
	)
	project, err := hydrateProject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}
	return project, nil
}

// Set persists a project. If id is empty, generates a UUID v7 and
// creates the project; otherwise updates the existing row. Returns the
// actual ID used.
func (pt *projectsTable) Set(id string, data any) (string, error) {
	project, ok := data.(*types.Project)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := project.Validate(); err != nil {
		return "", err
	}
	if project.Slug == "" {
		project.Slug = types.Slugify(project.Name)
	}
	db, err := pt.backend.conn()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()

	if id == "" {
		// Create: reject a second registration under the same slug.
		var existing string
		err := db.QueryRow(
			"SELECT project_id FROM projects WHERE slug = ?", project.Slug,
		).Scan(&existing)
		if err == nil {
			return "", fmt.Errorf("%w: %s", types.ErrDuplicateSlug, project.Slug)
		}
		if err != sql.ErrNoRows {
			return "", fmt.Errorf("checking slug uniqueness: %w", err)
		}

		newID, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("generating UUID v7: %w", err)
		}
		project.ProjectID = newID.String()
		project.CreatedAt = now
		id = project.ProjectID
	}
	project.UpdatedAt = now

	var exists bool
	err = db.QueryRow(
		"SELECT 1 FROM projects WHERE project_id = ?", id,
	).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		return "", fmt.Errorf("checking project existence: %w", err)
	}

	createdAtStr := project.CreatedAt.Format(time.RFC3339)
	updatedAtStr := project.UpdatedAt.Format(time.RFC3339)

	if exists {
		_, err = db.Exec(
			"UPDATE projects SET name = ?, slug = ?, competition = ?, path = ?, created_at = ?, updated_at = ? WHERE project_id = ?",
			project.Name, project.Slug, project.Competition, project.Path, createdAtStr, updatedAtStr, id,
		)
	} else {
		_, err = db.Exec(
			"INSERT INTO projects (project_id, name, slug, competition, path, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			id, project.Name, project.Slug, project.Competition, project.Path, createdAtStr, updatedAtStr,
		)
	}
	if err != nil {
		return "", fmt.Errorf("persisting project: %w", err)
	}

	return id, nil
}

// Delete removes a project and, via ON DELETE CASCADE, its submissions.
func (pt *projectsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := pt.backend.conn()
	if err != nil {
		return err
	}

	result, err := db.Exec("DELETE FROM projects WHERE project_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch returns all projects matching the filter. Supported filter keys
// are name, slug, and competition; values must be strings and unknown
// keys are rejected. An empty filter returns every project, oldest
// first.
func (pt *projectsTable) Fetch(filter map[string]any) ([]any, error) {
	for key := range filter {
		known := false
		for _, k := range projectFilterKeys {
			if key == k {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("%w: unknown key %q (valid: %s)",
				types.ErrInvalidFilter, key, strings.Join(projectFilterKeys, ", "))
		}
	}
	db, err := pt.backend.conn()
	if err != nil {
		return nil, err
	}

	query := "SELECT project_id, name, slug, competition, path, created_at, updated_at FROM projects"

	var conds []string
	var args []any
	for _, key := range projectFilterKeys {
		v, ok := filter[key]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s", types.ErrInvalidFilter, key)
		}
		conds = append(conds, key+" = ?")
		args = append(args, s)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	// project_id breaks created_at ties; UUID v7 sorts by creation time.
	query += " ORDER BY created_at ASC, project_id ASC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching projects: %w", err)
	}
	defer rows.Close()

	var results []any
	for rows.Next() {
		project, err := hydrateProject(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating project row: %w", err)
		}
		results = append(results, project)
	}
	return results, rows.Err()
}

// hydrateProject scans one projects row into a *types.Project.
func hydrateProject(s scanner) (*types.Project, error) {
	var p types.Project
	var competition sql.NullString
	var createdAt, updatedAt string

	if err := s.Scan(&p.ProjectID, &p.Name, &p.Slug, &competition, &p.Path, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	p.Competition = competition.String

	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
