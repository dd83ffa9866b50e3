// Submission entity represents one scored upload for a project.
package types

import "time"

// Submission records a prediction file submitted to a competition.
type Submission struct {
	// SubmissionID is a UUID v7, generated on creation.
	SubmissionID string

	// ProjectID references the owning project.
	ProjectID string

	// File is the submission file path, relative to the project's
	// data/submissions directory.
	File string

	// Score is the leaderboard score, when known. Nil until scored.
	Score *float64

	// Notes is free-form text about the submission.
	Notes string

	// CreatedAt is the timestamp of creation.
	CreatedAt time.Time
}

// Validate checks that the submission carries the fields required for
// registration.
func (s *Submission) Validate() error {
	if s.ProjectID == "" {
		return ErrInvalidProject
	}
	if s.File == "" {
		return ErrInvalidName
	}
	return nil
}
