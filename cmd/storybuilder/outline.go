package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/storybuilder/internal/config"
	"github.com/at-ishikawa/storybuilder/internal/outline"
	"github.com/at-ishikawa/storybuilder/internal/project"
)

func newOutlineCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Export the thread as a table",
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output file, or - for stdout (default: plot_outline.<format> in the outputs directory)")

	cmd.AddCommand(
		newOutlineFormatCommand(outline.FormatCSV, "Export the thread as CSV", &output),
		newOutlineFormatCommand(outline.FormatPDF, "Export the thread as a PDF table", &output),
		newOutlineFormatCommand(outline.FormatMarkdown, "Export the thread as a Markdown table", &output),
	)
	return cmd
}

func newOutlineFormatCommand(format outline.Format, short string, output *string) *cobra.Command {
	return &cobra.Command{
		Use:   string(format),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(cmd.Context(), func(cfg *config.Config, store *project.Store) error {
				scenes := store.OrderedScenes()
				path := outputPath(cfg, *output, format.DefaultFileName())
				return writeOutput(cmd.OutOrStdout(), path, func(w io.Writer) error {
					switch format {
					case outline.FormatPDF:
						return outline.WritePDF(w, scenes)
					case outline.FormatMarkdown:
						return outline.WriteMarkdown(w, scenes, cfg.Templates.OutlineMarkdown)
					default:
						return outline.WriteCSV(w, scenes)
					}
				})
			})
		},
	}
}
