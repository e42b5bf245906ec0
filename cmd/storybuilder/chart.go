package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/storybuilder/internal/chart"
	"github.com/at-ishikawa/storybuilder/internal/config"
	"github.com/at-ishikawa/storybuilder/internal/project"
)

func newChartCommand() *cobra.Command {
	var cellsPerPoint int
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Chart the intensity of the thread",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				_, err := fmt.Fprint(cmd.OutOrStdout(), chart.Render(store.OrderedScenes(), chart.Options{
					CellsPerPoint: cellsPerPoint,
				}))
				return err
			})
		},
	}
	cmd.Flags().IntVar(&cellsPerPoint, "scale", 2, "Bar cells per intensity point")
	return cmd
}
