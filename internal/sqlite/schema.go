package sqlite

// Schema DDL for the registry tables. IF NOT EXISTS keeps Attach
// idempotent across runs against the same data directory.
const (
	createProjects = `CREATE TABLE IF NOT EXISTS projects (
    project_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    competition TEXT,
    path TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createSubmissions = `CREATE TABLE IF NOT EXISTS submissions (
    submission_id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    file TEXT NOT NULL,
    score REAL,
    notes TEXT,
    created_at TEXT NOT NULL,
    FOREIGN KEY (project_id) REFERENCES projects(project_id) ON DELETE CASCADE
);`

	createSubmissionsIndex = `CREATE INDEX IF NOT EXISTS idx_submissions_project
    ON submissions(project_id);`
)

// schemaSQL is the full DDL executed on Attach.
const schemaSQL = createProjects + "\n" + createSubmissions + "\n" + createSubmissionsIndex
