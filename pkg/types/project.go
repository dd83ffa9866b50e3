// Project entity represents a scaffolded competition project.
package types

import (
	"strings"
	"time"
)

// Project represents one competition entry tracked by the registry.
type Project struct {
	// ProjectID is a UUID v7, generated on creation.
	ProjectID string

	// Name is the human-readable project name (required, non-empty).
	Name string

	// Slug is the directory-safe form of Name (lowercase, underscores).
	Slug string

	// Competition is the competition URL, if one was given. Unvalidated.
	Competition string

	// Path is the absolute path of the scaffolded project tree.
	Path string

	// CreatedAt is the timestamp of creation.
	CreatedAt time.Time

	// UpdatedAt is the timestamp of last modification.
	UpdatedAt time.Time
}

// Slugify converts a project name into its directory-safe slug:
// lowercased, with spaces collapsed to single underscores.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(slug), "_")
}

// CompetitionSlug returns the competition identifier extracted from the
// Competition URL: the last path segment after trimming any trailing
// slash. Returns "" when no URL was given.
func (p *Project) CompetitionSlug() string {
	if p.Competition == "" {
		return ""
	}
	trimmed := strings.TrimRight(p.Competition, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx == -1 {
		return trimmed
	}
	return trimmed[idx+1:]
}

// Validate checks that the project carries the fields required for
// registration. Returns ErrInvalidName when Name is empty.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	return nil
}
