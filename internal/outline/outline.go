// Package outline renders the thread of a project as a read-only table.
package outline

import (
	"fmt"
	"strconv"

	"github.com/at-ishikawa/storybuilder/internal/project"
)

// Title heads the PDF and Markdown outlines.
const Title = "Novel Plot Outline"

// Format is an outline output format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "md"
)

// DefaultFileName returns the file name an outline of the format is saved as.
func (f Format) DefaultFileName() string {
	return "plot_outline." + string(f)
}

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatPDF, FormatMarkdown:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown outline format %q: must be one of csv, pdf, md", s)
}

var header = []string{"Order", "Subplot", "Description", "Intensity", "Notes"}

func row(sc project.Scene) []string {
	return []string{
		strconv.Itoa(sc.Position),
		sc.SubplotName,
		sc.Node.Text,
		strconv.Itoa(sc.Node.Intensity),
		sc.JoinedNotes(),
	}
}
