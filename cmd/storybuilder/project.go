package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/storybuilder/internal/config"
	"github.com/at-ishikawa/storybuilder/internal/project"
)

// projectFileName is the default name of a saved project.
const projectFileName = "story-project.json"

// FormatFlag selects the encoding of a project file.
type FormatFlag string

// Set implements pflag.Value.
func (f *FormatFlag) Set(v string) error {
	switch v {
	case string(FormatJSON):
		*f = FormatJSON
	case string(FormatYAML):
		*f = FormatYAML
	default:
		return fmt.Errorf("invalid value %q, valid values are %q or %q", v, FormatJSON, FormatYAML)
	}
	return nil
}

// String implements pflag.Value.
func (f *FormatFlag) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *FormatFlag) Type() string {
	return "FormatFlag"
}

var (
	_ pflag.Value = (*FormatFlag)(nil)
)

const (
	FormatJSON FormatFlag = FormatFlag(project.FormatJSON)
	FormatYAML FormatFlag = FormatFlag(project.FormatYAML)
)

// resolve returns the flag's format, or the one implied by path when unset.
func (f FormatFlag) resolve(path string) project.Format {
	if f == "" {
		return project.FormatFromPath(path)
	}
	return project.Format(f)
}

func newProjectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Save, load or clear the whole project",
	}
	cmd.AddCommand(
		newProjectExportCommand(),
		newProjectImportCommand(),
		newProjectClearCommand(),
	)
	return cmd
}

func newProjectExportCommand() *cobra.Command {
	var (
		output string
		format FormatFlag
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Save the project to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(cmd.Context(), func(cfg *config.Config, store *project.Store) error {
				path := outputPath(cfg, output, projectFileName)
				data, err := store.ExportAs(format.resolve(path))
				if err != nil {
					return fmt.Errorf("store.ExportAs() > %w", err)
				}
				return writeOutput(cmd.OutOrStdout(), path, func(w io.Writer) error {
					if _, err := w.Write(data); err != nil {
						return fmt.Errorf("w.Write() > %w", err)
					}
					return nil
				})
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, or - for stdout (default: story-project.json in the outputs directory)")
	cmd.Flags().Var(&format, "format", "File format. Options: json, yaml (default: from the file extension)")
	return cmd
}

func newProjectImportCommand() *cobra.Command {
	var format FormatFlag
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load a project file, replacing the collections it contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			var (
				data []byte
				err  error
			)
			if path == stdoutPath {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(path)
			}
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			doc, err := project.ParseDocument(data, format.resolve(path))
			if err != nil {
				return fmt.Errorf("project.ParseDocument(%s) > %w", path, err)
			}

			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				store.Load(doc)
				successColor.Fprintf(cmd.OutOrStdout(), "Loaded %s\n", path)
				if report := store.Diagnose(); !report.Clean() {
					warningColor.Fprintln(cmd.OutOrStdout(), "The project has broken references; run `storybuilder doctor` for details")
				}
				return nil
			})
		},
	}
	cmd.Flags().Var(&format, "format", "File format. Options: json, yaml (default: from the file extension)")
	return cmd
}

func newProjectClearCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset the project to a single empty Main Plot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("this deletes every subplot, scene and note; pass --yes to confirm")
			}
			return withProject(cmd.Context(), func(_ *config.Config, store *project.Store) error {
				store.Clear()
				successColor.Fprintln(cmd.OutOrStdout(), "Cleared the project")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm clearing the project")
	return cmd
}
