package main

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/storybuilder/internal/config"
	"github.com/at-ishikawa/storybuilder/internal/project"
)

func newNotesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage notes on a scene",
	}
	cmd.AddCommand(
		newNotesAddCommand(),
		newNotesRemoveCommand(),
		newNotesListCommand(),
	)
	return cmd
}

func newNotesAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <scene id> <text>",
		Short: "Append a note to a scene",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				note, ok := store.AddNote(args[0], args[1])
				if !ok {
					return fmt.Errorf("scene %q not found", args[0])
				}
				successColor.Fprintf(cmd.OutOrStdout(), "Added note %s\n", note.ID)
				return nil
			})
		},
	}
}

func newNotesRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <scene id> <note id>",
		Aliases: []string{"remove"},
		Short:   "Delete a note from a scene",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				n, err := requireNode(store, args[0])
				if err != nil {
					return err
				}
				if !slices.ContainsFunc(n.Notes, func(note project.Note) bool { return note.ID == args[1] }) {
					return fmt.Errorf("note %q not found on scene %q", args[1], n.ID)
				}
				store.RemoveNote(n.ID, args[1])
				successColor.Fprintf(cmd.OutOrStdout(), "Removed note %s\n", args[1])
				return nil
			})
		},
	}
}

func newNotesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list <scene id>",
		Aliases: []string{"ls"},
		Short:   "List the notes of a scene",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				n, err := requireNode(store, args[0])
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				boldColor.Fprintln(w, n.Text)
				if len(n.Notes) == 0 {
					dimColor.Fprintln(w, "  no notes")
				}
				for _, note := range n.Notes {
					fmt.Fprintf(w, "  %s  ", note.ID)
					dimColor.Fprint(w, note.CreatedAt.Local().Format(time.DateTime))
					fmt.Fprintf(w, "  %s\n", note.Text)
				}
				return nil
			})
		},
	}
}
