package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/storybuilder/internal/config"
	"github.com/at-ishikawa/storybuilder/internal/project"
)

func newScenesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "Manage scenes in subplot lanes",
	}
	cmd.AddCommand(
		newScenesAddCommand(),
		newScenesUpdateCommand(),
		newScenesRemoveCommand(),
		newScenesListCommand(),
	)
	return cmd
}

func newScenesAddCommand() *cobra.Command {
	var (
		subplotID string
		text      string
		intensity int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a scene to a subplot lane",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				if _, err := requireSubplot(store, subplotID); err != nil {
					return err
				}
				n := store.AddNode(subplotID, text, project.ClampIntensity(intensity))
				successColor.Fprintf(cmd.OutOrStdout(), "Added scene %s\n", n.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&subplotID, "subplot", project.DefaultSubplotID, "Subplot id")
	cmd.Flags().StringVar(&text, "text", project.DefaultNodeText, "Scene description")
	cmd.Flags().IntVar(&intensity, "intensity", project.DefaultIntensity, "Intensity from 0 to 10")
	return cmd
}

func newScenesUpdateCommand() *cobra.Command {
	var (
		subplotID string
		text      string
		intensity int
	)
	cmd := &cobra.Command{
		Use:   "update <scene id>",
		Short: "Change the text, intensity or subplot of a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("subplot") && !flags.Changed("text") && !flags.Changed("intensity") {
				return fmt.Errorf("nothing to update: set --subplot, --text or --intensity")
			}

			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				n, err := requireNode(store, args[0])
				if err != nil {
					return err
				}

				var patch project.NodePatch
				if flags.Changed("subplot") {
					if _, err := requireSubplot(store, subplotID); err != nil {
						return err
					}
					patch.SubplotID = &subplotID
				}
				if flags.Changed("text") {
					patch.Text = &text
				}
				if flags.Changed("intensity") {
					clamped := project.ClampIntensity(intensity)
					patch.Intensity = &clamped
				}
				store.UpdateNode(n.ID, patch)
				successColor.Fprintf(cmd.OutOrStdout(), "Updated scene %s\n", n.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&subplotID, "subplot", "", "Move the scene to this subplot")
	cmd.Flags().StringVar(&text, "text", "", "Scene description")
	cmd.Flags().IntVar(&intensity, "intensity", 0, "Intensity from 0 to 10")
	return cmd
}

func newScenesRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <scene id>",
		Aliases: []string{"remove"},
		Short:   "Delete a scene and its thread entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				n, err := requireNode(store, args[0])
				if err != nil {
					return err
				}
				store.RemoveNode(n.ID)
				successColor.Fprintf(cmd.OutOrStdout(), "Removed scene %s\n", n.ID)
				return nil
			})
		},
	}
}

func newScenesListCommand() *cobra.Command {
	var subplotID string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List scenes lane by lane",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				w := cmd.OutOrStdout()
				for _, sp := range store.Subplots() {
					if subplotID != "" && sp.ID != subplotID {
						continue
					}
					boldColor.Fprintln(w, sp.Name)
					for _, n := range store.NodesBySubplot(sp.ID) {
						marker := " "
						if store.InThread(n.ID) {
							marker = "*"
						}
						fmt.Fprintf(w, "  %s %s  %2d  %s", marker, n.ID, n.Intensity, n.Text)
						if len(n.Notes) > 0 {
							dimColor.Fprintf(w, "  (%d note(s))", len(n.Notes))
						}
						fmt.Fprintln(w)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&subplotID, "subplot", "", "Only list this subplot")
	return cmd
}
