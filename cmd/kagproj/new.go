// New command scaffolds a competition project tree and registers it.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kagworks/kagproj/internal/scaffold"
	"github.com/kagworks/kagproj/pkg/types"
)

var (
	newCompetition string
	newForce       bool
)

var newCmd = &cobra.Command{
	Use:   "new <project_name>",
	Short: "Create a new competition project",
	Long: `New creates the standard project layout under the projects directory:

  <slug>/
  ├── data/raw
  ├── data/processed
  ├── data/submissions
  ├── notebooks
  └── src

with a README, .gitignore, .env.example, starter notebook, and project
manifest, then records the project in the registry.

The project name is slugified for the directory (lowercase, spaces to
underscores). If the directory already exists the command fails and
leaves it untouched; pass --force to overwrite the starter files.

Example:
  kagproj new titanic --competition https://www.kaggle.com/competitions/titanic`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&newCompetition, "competition", "", "URL of the Kaggle competition")
	newCmd.Flags().BoolVar(&newForce, "force", false, "overwrite starter files if the directory exists")
}

func runNew(cmd *cobra.Command, args []string) error {
	name := args[0]

	projectsDir, err := resolveProjectsDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "new:", err)
		os.Exit(exitSysError)
	}

	project := &types.Project{
		Name:        name,
		Slug:        types.Slugify(name),
		Competition: newCompetition,
	}
	if project.Slug == "" {
		fmt.Fprintln(os.Stderr, "new: project name must not be empty")
		os.Exit(exitUserError)
	}
	project.Path = filepath.Join(projectsDir, project.Slug)

	if err := scaffold.Create(project, newForce); err != nil {
		if errors.Is(err, scaffold.ErrProjectExists) {
			fmt.Fprintln(os.Stderr, "new:", err)
			os.Exit(exitUserError)
		}
		fmt.Fprintln(os.Stderr, "new:", err)
		os.Exit(exitSysError)
	}

	backend, err := attachStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "new:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.ProjectsTable)
	if err != nil {
		fmt.Fprintln(os.Stderr, "new:", err)
		os.Exit(exitSysError)
	}

	// A forced re-scaffold of a registered project updates the existing
	// record instead of failing on the slug.
	id := ""
	if existing, err := findProject(backend, project.Slug); err == nil {
		id = existing.ProjectID
		project.ProjectID = existing.ProjectID
		project.CreatedAt = existing.CreatedAt
	}

	if _, err := table.Set(id, project); err != nil {
		fmt.Fprintln(os.Stderr, "register project:", err)
		os.Exit(exitSysError)
	}

	if flagJSON {
		printJSON(project)
		return nil
	}

	fmt.Printf("Created project %q at %s\n", project.Slug, project.Path)
	if project.Competition != "" {
		fmt.Println("  competition:", project.Competition)
	}
	fmt.Printf("To get started: cd %s\n", project.Path)
	return nil
}
