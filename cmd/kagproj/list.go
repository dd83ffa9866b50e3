// List command prints registered projects.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kagworks/kagproj/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list [filter...]",
	Short: "List registered projects",
	Long: `List prints the projects recorded in the registry, oldest first.

Filters are specified as key=value pairs and ANDed together.
Supported keys: name, slug, competition.

Example:
  kagproj list
  kagproj list slug=titanic
  kagproj list --json`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	filter := make(map[string]any)
	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 {
			fmt.Fprintf(os.Stderr, "invalid filter %q (expected key=value)\n", arg)
			os.Exit(exitUserError)
		}
		filter[parts[0]] = parts[1]
	}

	backend, err := attachStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "list:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.ProjectsTable)
	if err != nil {
		fmt.Fprintln(os.Stderr, "list:", err)
		os.Exit(exitSysError)
	}

	projects, err := table.Fetch(filter)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fetch projects:", err)
		os.Exit(exitUserError)
	}

	if flagJSON {
		printJSON(projects)
		return nil
	}

	if len(projects) == 0 {
		fmt.Println("No projects registered.")
		return nil
	}
	for _, raw := range projects {
		p, ok := raw.(*types.Project)
		if !ok {
			continue
		}
		line := fmt.Sprintf("%s\t%s", p.Slug, p.Path)
		if p.Competition != "" {
			line += "\t" + p.Competition
		}
		fmt.Println(line)
	}
	return nil
}
