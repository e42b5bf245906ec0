package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/storybuilder/internal/config"
	"github.com/at-ishikawa/storybuilder/internal/project"
)

func newDoctorCommand() *cobra.Command {
	var repair bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the project for broken references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				out := cmd.OutOrStdout()
				if repair {
					report := store.Repair()
					if report.Clean() {
						successColor.Fprintln(out, "Nothing to repair.")
						return nil
					}
					displayReport(out, report)
					successColor.Fprintln(out, "Repaired.")
					return nil
				}

				report := store.Diagnose()
				if report.Clean() {
					successColor.Fprintln(out, "No problems found.")
					return nil
				}
				displayReport(out, report)
				problems := len(report.DanglingThreadIDs) + len(report.DuplicateThreadIDs) + len(report.OrphanNodeIDs)
				return fmt.Errorf("found %d problem(s); run with --repair to fix them", problems)
			})
		},
	}

	cmd.Flags().BoolVar(&repair, "repair", false, "Remove dangling and duplicate thread entries and orphan scenes")
	return cmd
}

func displayReport(w io.Writer, report project.Report) {
	sections := []struct {
		title string
		ids   []string
	}{
		{"Thread entries without a scene", report.DanglingThreadIDs},
		{"Scenes listed more than once in the thread", report.DuplicateThreadIDs},
		{"Scenes whose subplot does not exist", report.OrphanNodeIDs},
	}
	for _, s := range sections {
		if len(s.ids) == 0 {
			continue
		}
		warningColor.Fprintf(w, "%s (%d):\n", s.title, len(s.ids))
		for _, id := range s.ids {
			fmt.Fprintf(w, "  - %s\n", id)
		}
	}
}
