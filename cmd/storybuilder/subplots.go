package main

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/storybuilder/internal/config"
	"github.com/at-ishikawa/storybuilder/internal/project"
)

func newSubplotsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subplots",
		Short: "Manage subplot lanes",
	}
	cmd.AddCommand(
		newSubplotsAddCommand(),
		newSubplotsRemoveCommand(),
		newSubplotsListCommand(),
	)
	return cmd
}

func newSubplotsAddCommand() *cobra.Command {
	var color string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a subplot lane",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if err := project.ValidateSubplotName(name); err != nil {
				return err
			}
			if _, err := colorful.Hex(color); err != nil {
				return fmt.Errorf("invalid color %q: use #rgb or #rrggbb", color)
			}

			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				sp := store.AddSubplot(name, strings.ToLower(color))
				successColor.Fprintf(cmd.OutOrStdout(), "Added subplot %s (%s)\n", sp.Name, sp.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&color, "color", project.DefaultSubplotColor, "Lane color as #rgb or #rrggbb")
	return cmd
}

func newSubplotsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <subplot id>",
		Aliases: []string{"remove"},
		Short:   "Remove a subplot with its scenes and their thread entries",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				sp, err := requireSubplot(store, args[0])
				if err != nil {
					return err
				}
				scenes := len(store.NodesBySubplot(sp.ID))
				store.RemoveSubplot(sp.ID)
				successColor.Fprintf(cmd.OutOrStdout(), "Removed subplot %s and %d scene(s)\n", sp.Name, scenes)
				return nil
			})
		},
	}
}

func newSubplotsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List subplot lanes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				w := cmd.OutOrStdout()
				for _, sp := range store.Subplots() {
					boldColor.Fprint(w, sp.Name)
					fmt.Fprintf(w, "  %s  %s  %d scene(s)\n", sp.ID, sp.Color, len(store.NodesBySubplot(sp.ID)))
				}
				return nil
			})
		},
	}
}
