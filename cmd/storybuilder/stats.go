package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/storybuilder/internal/config"
	"github.com/at-ishikawa/storybuilder/internal/project"
	"github.com/at-ishikawa/storybuilder/internal/statistics"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show scene counts and the intensity of the thread",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				result := statistics.CalculateStatistics(store.Subplots(), store.Nodes(), store.ThreadOrder())
				displayStatistics(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}
}

func displayStatistics(w io.Writer, result statistics.StatisticsResult) {
	boldColor.Fprintln(w, "Subplots")
	for _, sp := range result.Subplots {
		fmt.Fprintf(w, "  %-24s %3d scenes, %3d in the thread\n", sp.Name, sp.ScenesCount, sp.InThreadCount)
	}
	fmt.Fprintln(w)

	boldColor.Fprintln(w, "Thread")
	fmt.Fprintf(w, "  Scenes:     %d of %d\n", result.ThreadLength, result.ScenesCount)
	if result.ThreadLength > 0 {
		fmt.Fprintf(w, "  Intensity:  average %.1f, peak %d at scene %d\n",
			result.Intensity.Average, result.Intensity.Peak, result.Intensity.PeakPosition)
		fmt.Fprintf(w, "  Shape:      %d climbs, %d drops\n", result.Intensity.Climbs, result.Intensity.Drops)
	}

	if result.DanglingCount > 0 || result.OrphanCount > 0 {
		fmt.Fprintln(w)
		warningColor.Fprintf(w, "%d dangling thread entries, %d orphan scenes; run `storybuilder doctor --repair`\n",
			result.DanglingCount, result.OrphanCount)
	}
}
