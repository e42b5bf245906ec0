package main

import (
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/storybuilder/internal/cli"
	"github.com/at-ishikawa/storybuilder/internal/config"
	"github.com/at-ishikawa/storybuilder/internal/project"
)

func newBoardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(cmd.Context(), func(cfg *config.Config, store *project.Store) error {
				return cli.RunBoard(cmd.Context(), store, cli.BoardOptions{
					ThreadWidth: cfg.Board.ThreadWidth,
				})
			})
		},
	}
}
