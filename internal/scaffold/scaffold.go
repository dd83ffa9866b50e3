// Package scaffold materializes the fixed competition-project layout on disk.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kagworks/kagproj/pkg/types"
)

//go:embed templates
var templatesFS embed.FS

// Dirs is the fixed directory template created under every project root.
var Dirs = []string{
	"data/raw",
	"data/processed",
	"data/submissions",
	"notebooks",
	"src",
}

// ErrProjectExists is returned when the target directory already exists
// and force was not requested. The existing tree is left untouched.
var ErrProjectExists = errors.New("project directory already exists")

// starterFile maps an embedded template to its destination inside the
// project root. Non-rendered files are copied verbatim.
type starterFile struct {
	src    string
	dst    string
	render bool
}

var starterFiles = []starterFile{
	{src: "templates/readme.md.tmpl", dst: "README.md", render: true},
	{src: "templates/gitignore", dst: ".gitignore"},
	{src: "templates/env.example.tmpl", dst: ".env.example", render: true},
	{src: "templates/exploration.ipynb", dst: filepath.Join("notebooks", "exploration.ipynb")},
}

// templateData carries the values substituted into rendered starter files.
type templateData struct {
	Title           string
	Competition     string
	CompetitionSlug string
}

// Create materializes the project tree at project.Path: the five template
// directories with .gitkeep markers, plus rendered starter files.
//
// When the target directory already exists the call fails with
// ErrProjectExists before writing anything, unless force is true, in
// which case starter files are overwritten in place.
func Create(project *types.Project, force bool) error {
	if err := project.Validate(); err != nil {
		return err
	}
	if project.Slug == "" {
		project.Slug = types.Slugify(project.Name)
	}

	root := filepath.Clean(project.Path)
	if _, err := os.Stat(root); err == nil {
		if !force {
			return fmt.Errorf("%w: %s", ErrProjectExists, root)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat project directory: %w", err)
	}

	for _, d := range Dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", d, err)
		}
	}
	if err := writeGitkeeps(root); err != nil {
		return err
	}

	data := templateData{
		Title:           displayTitle(project.Name),
		Competition:     project.Competition,
		CompetitionSlug: project.CompetitionSlug(),
	}
	for _, sf := range starterFiles {
		if err := writeStarterFile(root, sf, data); err != nil {
			return err
		}
	}
	return writeManifest(root, project)
}

// writeGitkeeps drops a .gitkeep marker into each empty template
// directory so git tracks it.
func writeGitkeeps(root string) error {
	for _, d := range Dirs {
		dir := filepath.Join(root, d)
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("read %s: %w", d, err)
		}
		if len(entries) > 0 {
			continue
		}
		marker := filepath.Join(dir, ".gitkeep")
		if err := os.WriteFile(marker, nil, 0o644); err != nil {
			return fmt.Errorf("write .gitkeep in %s: %w", d, err)
		}
	}
	return nil
}

// writeStarterFile renders or copies one embedded starter file into the
// project root.
func writeStarterFile(root string, sf starterFile, data templateData) error {
	raw, err := templatesFS.ReadFile(sf.src)
	if err != nil {
		return fmt.Errorf("read template %s: %w", sf.src, err)
	}

	content := raw
	if sf.render {
		tmpl, err := template.New(filepath.Base(sf.src)).Parse(string(raw))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", sf.src, err)
		}
		var out strings.Builder
		if err := tmpl.Execute(&out, data); err != nil {
			return fmt.Errorf("render %s: %w", sf.dst, err)
		}
		content = []byte(out.String())
	}

	dst := filepath.Join(root, sf.dst)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", sf.dst, err)
	}
	if err := os.WriteFile(dst, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", sf.dst, err)
	}
	return nil
}

// displayTitle converts a project name or slug into a README heading:
// underscores become spaces and each word is title-cased.
func displayTitle(name string) string {
	words := strings.ReplaceAll(types.Slugify(name), "_", " ")
	return cases.Title(language.English).String(words)
}
