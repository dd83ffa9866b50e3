// Package integration provides CLI integration tests for kagproj.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// kagprojBin is the path to the built kagproj binary.
	kagprojBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetKagprojBin sets the path to the kagproj binary (called from TestMain).
func SetKagprojBin(path string) {
	kagprojBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv provides an isolated test environment with its own config,
// data, and projects directories.
type TestEnv struct {
	t           *testing.T
	TempDir     string
	ConfigDir   string
	DataDir     string
	ProjectsDir string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build kagproj: %v", buildErr)
	}
	if kagprojBin == "" {
		t.Fatal("kagproj binary not built (kagprojBin is empty)")
	}

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")
	projectsDir := filepath.Join(tempDir, "projects")

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := "backend: sqlite\ndata_dir: " + dataDir + "\nprojects_dir: " + projectsDir + "\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{
		t:           t,
		TempDir:     tempDir,
		ConfigDir:   configDir,
		DataDir:     dataDir,
		ProjectsDir: projectsDir,
	}
}

// CmdResult holds the result of a kagproj command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunKagproj executes the kagproj CLI with the given arguments.
func (e *TestEnv) RunKagproj(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.ConfigDir, "--data-dir", e.DataDir}, args...)
	cmd := exec.Command(kagprojBin, allArgs...)
	cmd.Dir = e.TempDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run kagproj: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunKagproj executes the kagproj CLI and fails the test if it
// returns non-zero.
func (e *TestEnv) MustRunKagproj(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunKagproj(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("kagproj %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// Project represents a project entity for JSON parsing.
type Project struct {
	ProjectID   string `json:"ProjectID"`
	Name        string `json:"Name"`
	Slug        string `json:"Slug"`
	Competition string `json:"Competition"`
	Path        string `json:"Path"`
	CreatedAt   string `json:"CreatedAt"`
	UpdatedAt   string `json:"UpdatedAt"`
}

// Submission represents a submission entity for JSON parsing.
type Submission struct {
	SubmissionID string   `json:"SubmissionID"`
	ProjectID    string   `json:"ProjectID"`
	File         string   `json:"File"`
	Score        *float64 `json:"Score"`
	Notes        string   `json:"Notes"`
	CreatedAt    string   `json:"CreatedAt"`
}
