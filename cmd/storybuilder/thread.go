package main

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/storybuilder/internal/config"
	"github.com/at-ishikawa/storybuilder/internal/project"
)

func newThreadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thread",
		Short: "Arrange the common thread",
	}
	cmd.AddCommand(
		newThreadAddCommand(),
		newThreadRemoveCommand(),
		newThreadMoveCommand(),
		newThreadDropCommand(),
		newThreadShowCommand(),
	)
	return cmd
}

func newThreadAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <scene id>",
		Short: "Append a scene to the thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				n, err := requireNode(store, args[0])
				if err != nil {
					return err
				}
				if store.InThread(n.ID) {
					warningColor.Fprintf(cmd.OutOrStdout(), "Scene %s is already in the thread\n", n.ID)
					return nil
				}
				store.AddToThread(n.ID)
				successColor.Fprintf(cmd.OutOrStdout(), "Added scene %s to the thread\n", n.ID)
				return nil
			})
		},
	}
}

func newThreadRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <scene id>",
		Aliases: []string{"remove"},
		Short:   "Take a scene out of the thread, keeping it in its lane",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				if !store.InThread(args[0]) {
					return fmt.Errorf("scene %q is not in the thread", args[0])
				}
				store.RemoveFromThread(args[0])
				successColor.Fprintf(cmd.OutOrStdout(), "Removed scene %s from the thread\n", args[0])
				return nil
			})
		},
	}
}

func newThreadMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <scene id> <position>",
		Short: "Move a thread scene to a 1-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[1])
			if err != nil || position < 1 {
				return fmt.Errorf("position must be a positive integer: %q", args[1])
			}

			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				order := store.ThreadOrder()
				from := slices.Index(order, args[0])
				if from < 0 {
					return fmt.Errorf("scene %q is not in the thread", args[0])
				}
				store.ReorderThread(project.Move(order, from, position-1))
				successColor.Fprintf(cmd.OutOrStdout(), "Moved scene %s\n", args[0])
				return nil
			})
		},
	}
}

func newThreadDropCommand() *cobra.Command {
	var on string
	cmd := &cobra.Command{
		Use:   "drop <scene id>",
		Short: "Drop a scene onto the thread at the position of --on, or at the end",
		Long: "Drop a scene the way the board does: a thread member moves to the " +
			"position of --on (or the end), any other scene is inserted there.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				n, err := requireNode(store, args[0])
				if err != nil {
					return err
				}
				src := project.DragFromLane(n.ID)
				if store.InThread(n.ID) {
					src = project.DragFromThread(n.ID)
				}
				target := project.DropOnThread()
				if on != "" {
					if !store.InThread(on) {
						return fmt.Errorf("scene %q is not in the thread", on)
					}
					target = project.DropOnNode(on)
				}

				if !store.Drop(src, target, false) {
					warningColor.Fprintln(cmd.OutOrStdout(), "Nothing changed")
					return nil
				}
				successColor.Fprintf(cmd.OutOrStdout(), "Dropped scene %s\n", n.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&on, "on", "", "Thread scene to drop onto")
	return cmd
}

func newThreadShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the thread in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				w := cmd.OutOrStdout()
				scenes := store.OrderedScenes()
				if len(scenes) == 0 {
					dimColor.Fprintln(w, "The thread is empty.")
					return nil
				}
				for _, sc := range scenes {
					fmt.Fprintf(w, "%3d. %s  %2d  %s", sc.Position, sc.Node.ID, sc.Node.Intensity, sc.Node.Text)
					dimColor.Fprintf(w, "  [%s]\n", sc.SubplotName)
				}
				return nil
			})
		},
	}
}
