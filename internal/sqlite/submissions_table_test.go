// Tests for the submissions table accessor.
package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/kagworks/kagproj/pkg/types"
)

// setupProject attaches a backend and registers one project, returning
// the backend, submissions table, and project ID.
func setupProject(t *testing.T) (*Backend, types.Table, string) {
	t.Helper()
	b := setupBackend(t)

	projects := mustProjectsTable(t, b)
	projectID, err := projects.Set("", &types.Project{Name: "titanic", Path: "/w/titanic"})
	if err != nil {
		t.Fatalf("Set project: %v", err)
	}

	subs, err := b.GetTable(types.SubmissionsTable)
	if err != nil {
		t.Fatalf("GetTable(submissions): %v", err)
	}
	return b, subs, projectID
}

func TestSubmissions_CreateAndGet(t *testing.T) {
	_, subs, projectID := setupProject(t)

	score := 0.77511
	s := &types.Submission{
		ProjectID: projectID,
		File:      "submission_001.csv",
		Score:     &score,
		Notes:     "baseline logistic regression",
	}
	id, err := subs.Set("", s)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated ID")
	}

	raw, err := subs.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got := raw.(*types.Submission)
	if got.File != "submission_001.csv" {
		t.Errorf("file mismatch: %q", got.File)
	}
	if got.Score == nil || *got.Score != score {
		t.Errorf("score mismatch: %v", got.Score)
	}
	if got.Notes != s.Notes {
		t.Errorf("notes mismatch: %q", got.Notes)
	}
}

func TestSubmissions_NilScoreRoundtrip(t *testing.T) {
	_, subs, projectID := setupProject(t)

	id, err := subs.Set("", &types.Submission{ProjectID: projectID, File: "submission_002.csv"})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}

	raw, err := subs.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if raw.(*types.Submission).Score != nil {
		t.Error("expected nil score for unscored submission")
	}
}

func TestSubmissions_UnknownProjectRejected(t *testing.T) {
	b := setupBackend(t)
	subs, err := b.GetTable(types.SubmissionsTable)
	if err != nil {
		t.Fatalf("GetTable: %v", err)
	}

	_, err = subs.Set("", &types.Submission{ProjectID: "ghost", File: "x.csv"})
	if !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown project, got %v", err)
	}
}

func TestSubmissions_ValidationErrors(t *testing.T) {
	_, subs, projectID := setupProject(t)

	if _, err := subs.Set("", 99); !errors.Is(err, types.ErrInvalidData) {
		t.Errorf("expected ErrInvalidData, got %v", err)
	}
	if _, err := subs.Set("", &types.Submission{File: "x.csv"}); !errors.Is(err, types.ErrInvalidProject) {
		t.Errorf("expected ErrInvalidProject, got %v", err)
	}
	if _, err := subs.Set("", &types.Submission{ProjectID: projectID}); !errors.Is(err, types.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
}

func TestSubmissions_FetchByProjectNewestFirst(t *testing.T) {
	b, subs, projectID := setupProject(t)

	// Distinct second-granularity timestamps so ordering is observable.
	base := time.Now().UTC().Add(-time.Minute)
	for i, file := range []string{"submission_001.csv", "submission_002.csv", "submission_003.csv"} {
		s := &types.Submission{ProjectID: projectID, File: file}
		id, err := subs.Set("", s)
		if err != nil {
			t.Fatalf("Set %s: %v", file, err)
		}
		s.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if _, err := subs.Set(id, s); err != nil {
			t.Fatalf("backdate %s: %v", file, err)
		}
	}

	// A second project's submissions must not leak into the filter.
	projects := mustProjectsTable(t, b)
	otherID, err := projects.Set("", &types.Project{Name: "other", Path: "/w/other"})
	if err != nil {
		t.Fatalf("Set other project: %v", err)
	}
	if _, err := subs.Set("", &types.Submission{ProjectID: otherID, File: "noise.csv"}); err != nil {
		t.Fatalf("Set noise submission: %v", err)
	}

	results, err := subs.Fetch(map[string]any{"project_id": projectID})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 submissions, got %d", len(results))
	}
	if results[0].(*types.Submission).File != "submission_003.csv" {
		t.Errorf("expected newest first, got %s", results[0].(*types.Submission).File)
	}

	if _, err := subs.Fetch(map[string]any{"project_id": 7}); !errors.Is(err, types.ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestSubmissions_FetchSameSecondNewestFirst(t *testing.T) {
	_, subs, projectID := setupProject(t)

	// Pin both rows to the same second-granularity timestamp; insertion
	// order must still decide which one is newest.
	stamp := time.Now().UTC().Add(-time.Minute).Truncate(time.Second)
	for _, file := range []string{"submission_001.csv", "submission_002.csv"} {
		s := &types.Submission{ProjectID: projectID, File: file}
		id, err := subs.Set("", s)
		if err != nil {
			t.Fatalf("Set %s: %v", file, err)
		}
		s.CreatedAt = stamp
		if _, err := subs.Set(id, s); err != nil {
			t.Fatalf("repin %s: %v", file, err)
		}
	}

	results, err := subs.Fetch(map[string]any{"project_id": projectID})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(results))
	}
	if got := results[0].(*types.Submission).File; got != "submission_002.csv" {
		t.Errorf("expected later insertion first, got %s", got)
	}
}

func TestSubmissions_FetchUnknownFilterKey(t *testing.T) {
	_, subs, _ := setupProject(t)

	if _, err := subs.Fetch(map[string]any{"file": "x.csv"}); !errors.Is(err, types.ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter for unknown key, got %v", err)
	}
}

func TestSubmissions_DeleteCascadesFromProject(t *testing.T) {
	b, subs, projectID := setupProject(t)

	id, err := subs.Set("", &types.Submission{ProjectID: projectID, File: "submission_001.csv"})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}

	projects := mustProjectsTable(t, b)
	if err := projects.Delete(projectID); err != nil {
		t.Fatalf("Delete project: %v", err)
	}

	if _, err := subs.Get(id); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected cascade delete, got %v", err)
	}
}
