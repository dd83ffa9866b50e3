package types

import (
	"errors"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple name passes through lowercased", "Titanic", "titanic"},
		{"spaces become underscores", "House Prices", "house_prices"},
		{"repeated spaces collapse", "Store  Sales   Forecast", "store_sales_forecast"},
		{"surrounding whitespace trimmed", "  digit recognizer ", "digit_recognizer"},
		{"already slugged name unchanged", "spaceship_titanic", "spaceship_titanic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Fatalf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestProjectCompetitionSlug(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"empty URL yields empty slug", "", ""},
		{"plain competition URL", "https://www.kaggle.com/competitions/titanic", "titanic"},
		{"trailing slash trimmed", "https://www.kaggle.com/competitions/titanic/", "titanic"},
		{"bare identifier without slashes", "titanic", "titanic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Project{Competition: tt.url}
			if got := p.CompetitionSlug(); got != tt.want {
				t.Fatalf("CompetitionSlug() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProjectValidate(t *testing.T) {
	t.Run("empty name rejected", func(t *testing.T) {
		p := &Project{Name: "   "}
		if err := p.Validate(); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName, got %v", err)
		}
	})

	t.Run("named project accepted", func(t *testing.T) {
		p := &Project{Name: "titanic"}
		if err := p.Validate(); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	})
}

func TestSubmissionValidate(t *testing.T) {
	t.Run("missing project ID rejected", func(t *testing.T) {
		s := &Submission{File: "submission_001.csv"}
		if err := s.Validate(); !errors.Is(err, ErrInvalidProject) {
			t.Fatalf("expected ErrInvalidProject, got %v", err)
		}
	})

	t.Run("missing file rejected", func(t *testing.T) {
		s := &Submission{ProjectID: "some-id"}
		if err := s.Validate(); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName, got %v", err)
		}
	})

	t.Run("complete submission accepted", func(t *testing.T) {
		s := &Submission{ProjectID: "some-id", File: "submission_001.csv"}
		if err := s.Validate(); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	})
}
