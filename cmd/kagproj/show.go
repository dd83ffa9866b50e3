// Show command prints one project with its submissions.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kagworks/kagproj/pkg/types"
)

var showCmd = &cobra.Command{
	Use:   "show <project_name>",
	Short: "Show a registered project and its submissions",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	backend, err := attachStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "show:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	project, err := findProject(backend, args[0])
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			fmt.Fprintln(os.Stderr, "show:", err)
			os.Exit(exitUserError)
		}
		fmt.Fprintln(os.Stderr, "show:", err)
		os.Exit(exitSysError)
	}

	subsTable, err := backend.GetTable(types.SubmissionsTable)
	if err != nil {
		fmt.Fprintln(os.Stderr, "show:", err)
		os.Exit(exitSysError)
	}
	subs, err := subsTable.Fetch(map[string]any{"project_id": project.ProjectID})
	if err != nil {
		fmt.Fprintln(os.Stderr, "fetch submissions:", err)
		os.Exit(exitSysError)
	}

	if flagJSON {
		printJSON(map[string]any{
			"project":     project,
			"submissions": subs,
		})
		return nil
	}

	fmt.Println("Project:", project.Name)
	fmt.Println("  slug:       ", project.Slug)
	fmt.Println("  path:       ", project.Path)
	if project.Competition != "" {
		fmt.Println("  competition:", project.Competition)
	}
	fmt.Println("  created:    ", project.CreatedAt.Format("2006-01-02 15:04"))

	if len(subs) == 0 {
		fmt.Println("No submissions recorded.")
		return nil
	}
	fmt.Printf("Submissions (%d, newest first):\n", len(subs))
	for _, raw := range subs {
		s, ok := raw.(*types.Submission)
		if !ok {
			continue
		}
		score := "unscored"
		if s.Score != nil {
			score = fmt.Sprintf("%.5f", *s.Score)
		}
		fmt.Printf("  %s  %s  %s\n", s.CreatedAt.Format("2006-01-02 15:04"), s.File, score)
		if s.Notes != "" {
			fmt.Println("    ", s.Notes)
		}
	}
	return nil
}
