// This file implements the submissions table accessor for the SQLite backend.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kagworks/kagproj/pkg/types"
)

// Compile-time interface check: submissionsTable must implement Table.
var _ types.Table = (*submissionsTable)(nil)

// submissionsTable implements the Table interface for the submission
// entity.
type submissionsTable struct {
	backend *Backend
}

// Get retrieves a submission by ID.
func (st *submissionsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := st.backend.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT submission_id, project_id, file, score, notes, created_at FROM submissions WHERE submission_id = ?",
		id,
	)
	sub, err := hydrateSubmission(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting submission %s: %w", id, err)
	}
	return sub, nil
}

// Set persists a submission. If id is empty, generates a UUID v7 and
// creates the submission; otherwise updates the existing row. The
// referenced project must exist.
func (st *submissionsTable) Set(id string, data any) (string, error) {
	sub, ok := data.(*types.Submission)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := sub.Validate(); err != nil {
		return "", err
	}
	db, err := st.backend.conn()
	if err != nil {
		return "", err
	}

	// The owning project must be registered.
	var one int
	err = db.QueryRow(
		"SELECT 1 FROM projects WHERE project_id = ?", sub.ProjectID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("project %s: %w", sub.ProjectID, types.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("checking project existence: %w", err)
	}

	if id == "" {
		newID, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("generating UUID v7: %w", err)
		}
		sub.SubmissionID = newID.String()
		sub.CreatedAt = time.Now().UTC()
		id = sub.SubmissionID
	}

	var exists bool
	err = db.QueryRow(
		"SELECT 1 FROM submissions WHERE submission_id = ?", id,
	).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		return "", fmt.Errorf("checking submission existence: %w", err)
	}

	var score sql.NullFloat64
	if sub.Score != nil {
		score = sql.NullFloat64{Float64: *sub.Score, Valid: true}
	}
	createdAtStr := sub.CreatedAt.Format(time.RFC3339)

	if exists {
		_, err = db.Exec(
			"UPDATE submissions SET project_id = ?, file = ?, score = ?, notes = ?, created_at = ? WHERE submission_id = ?",
			sub.ProjectID, sub.File, score, sub.Notes, createdAtStr, id,
		)
	} else {
		_, err = db.Exec(
			"INSERT INTO submissions (submission_id, project_id, file, score, notes, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			id, sub.ProjectID, sub.File, score, sub.Notes, createdAtStr,
		)
	}
	if err != nil {
		return "", fmt.Errorf("persisting submission: %w", err)
	}

	return id, nil
}

// Delete removes a submission by ID.
func (st *submissionsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := st.backend.conn()
	if err != nil {
		return err
	}

	result, err := db.Exec("DELETE FROM submissions WHERE submission_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting submission %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting submission %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch returns all submissions matching the filter, newest first.
// The only supported filter key is project_id; its value must be a
// string and unknown keys are rejected.
func (st *submissionsTable) Fetch(filter map[string]any) ([]any, error) {
	for key := range filter {
		if key != "project_id" {
			return nil, fmt.Errorf("%w: unknown key %q (valid: project_id)",
				types.ErrInvalidFilter, key)
		}
	}
	db, err := st.backend.conn()
	if err != nil {
		return nil, err
	}

	query := "SELECT submission_id, project_id, file, score, notes, created_at FROM submissions"

	var args []any
	if v, ok := filter["project_id"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: project_id", types.ErrInvalidFilter)
		}
		query += " WHERE project_id = ?"
		args = append(args, s)
	}
	// created_at has second granularity, so submission_id breaks ties;
	// UUID v7 sorts by creation time.
	query += " ORDER BY created_at DESC, submission_id DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching submissions: %w", err)
	}
	defer rows.Close()

	var results []any
	for rows.Next() {
		sub, err := hydrateSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating submission row: %w", err)
		}
		results = append(results, sub)
	}
	return results, rows.Err()
}

// hydrateSubmission scans one submissions row into a *types.Submission.
func hydrateSubmission(s scanner) (*types.Submission, error) {
	var sub types.Submission
	var score sql.NullFloat64
	var notes sql.NullString
	var createdAt string

	if err := s.Scan(&sub.SubmissionID, &sub.ProjectID, &sub.File, &score, &notes, &createdAt); err != nil {
		return nil, err
	}

	if score.Valid {
		v := score.Float64
		sub.Score = &v
	}
	sub.Notes = notes.String

	var err error
	if sub.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &sub, nil
}
