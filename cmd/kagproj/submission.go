// Submission commands record and list scored uploads for a project.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kagworks/kagproj/pkg/types"
)

var (
	submissionScore float64
	submissionNotes string
)

var submissionCmd = &cobra.Command{
	Use:   "submission",
	Short: "Record and list competition submissions",
}

var submissionAddCmd = &cobra.Command{
	Use:   "add <project_name> <file>",
	Short: "Record a submission file for a project",
	Long: `Add records a submission for the named project. The file path is
stored as given, conventionally relative to the project's
data/submissions directory.

Example:
  kagproj submission add titanic submission_001.csv --score 0.77511 --notes "baseline"`,
	Args: cobra.ExactArgs(2),
	RunE: runSubmissionAdd,
}

var submissionListCmd = &cobra.Command{
	Use:   "list <project_name>",
	Short: "List a project's submissions, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubmissionList,
}

func init() {
	submissionAddCmd.Flags().Float64Var(&submissionScore, "score", 0, "leaderboard score for the submission")
	submissionAddCmd.Flags().StringVar(&submissionNotes, "notes", "", "free-form notes about the submission")

	submissionCmd.AddCommand(submissionAddCmd)
	submissionCmd.AddCommand(submissionListCmd)
}

func runSubmissionAdd(cmd *cobra.Command, args []string) error {
	backend, err := attachStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "submission add:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	project, err := findProject(backend, args[0])
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			fmt.Fprintln(os.Stderr, "submission add:", err)
			os.Exit(exitUserError)
		}
		fmt.Fprintln(os.Stderr, "submission add:", err)
		os.Exit(exitSysError)
	}

	sub := &types.Submission{
		ProjectID: project.ProjectID,
		File:      args[1],
		Notes:     submissionNotes,
	}
	if cmd.Flags().Changed("score") {
		score := submissionScore
		sub.Score = &score
	}

	table, err := backend.GetTable(types.SubmissionsTable)
	if err != nil {
		fmt.Fprintln(os.Stderr, "submission add:", err)
		os.Exit(exitSysError)
	}
	id, err := table.Set("", sub)
	if err != nil {
		fmt.Fprintln(os.Stderr, "record submission:", err)
		os.Exit(exitUserError)
	}

	if flagJSON {
		printJSON(sub)
		return nil
	}
	fmt.Printf("Recorded submission %s for %q\n", id, project.Slug)
	return nil
}

func runSubmissionList(cmd *cobra.Command, args []string) error {
	backend, err := attachStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "submission list:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	project, err := findProject(backend, args[0])
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			fmt.Fprintln(os.Stderr, "submission list:", err)
			os.Exit(exitUserError)
		}
		fmt.Fprintln(os.Stderr, "submission list:", err)
		os.Exit(exitSysError)
	}

	table, err := backend.GetTable(types.SubmissionsTable)
	if err != nil {
		fmt.Fprintln(os.Stderr, "submission list:", err)
		os.Exit(exitSysError)
	}
	subs, err := table.Fetch(map[string]any{"project_id": project.ProjectID})
	if err != nil {
		fmt.Fprintln(os.Stderr, "fetch submissions:", err)
		os.Exit(exitSysError)
	}

	if flagJSON {
		printJSON(subs)
		return nil
	}

	if len(subs) == 0 {
		fmt.Printf("No submissions recorded for %q.\n", project.Slug)
		return nil
	}
	for _, raw := range subs {
		s, ok := raw.(*types.Submission)
		if !ok {
			continue
		}
		score := "unscored"
		if s.Score != nil {
			score = fmt.Sprintf("%.5f", *s.Score)
		}
		fmt.Printf("%s\t%s\t%s\n", s.CreatedAt.Format("2006-01-02 15:04"), s.File, score)
	}
	return nil
}
