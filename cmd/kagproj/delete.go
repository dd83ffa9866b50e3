// Delete command removes a project's registry record.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kagworks/kagproj/pkg/types"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <project_name>",
	Short: "Remove a project from the registry",
	Long: `Delete removes the project's registry record and its recorded
submissions. Files on disk are not touched.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	backend, err := attachStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "delete:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	project, err := findProject(backend, args[0])
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			fmt.Fprintln(os.Stderr, "delete:", err)
			os.Exit(exitUserError)
		}
		fmt.Fprintln(os.Stderr, "delete:", err)
		os.Exit(exitSysError)
	}

	table, err := backend.GetTable(types.ProjectsTable)
	if err != nil {
		fmt.Fprintln(os.Stderr, "delete:", err)
		os.Exit(exitSysError)
	}
	if err := table.Delete(project.ProjectID); err != nil {
		fmt.Fprintln(os.Stderr, "delete project:", err)
		os.Exit(exitSysError)
	}

	fmt.Printf("Removed %q from the registry (files on disk untouched)\n", project.Slug)
	return nil
}
