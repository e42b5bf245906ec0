// Package chart draws the intensity of the thread as a terminal bar chart.
package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/at-ishikawa/storybuilder/internal/project"
)

const (
	fullBlock  = "█"
	emptyBlock = "░"
)

// Options controls how a chart is drawn.
type Options struct {
	// CellsPerPoint is the bar width of one intensity point.
	CellsPerPoint int
	// Renderer decides the color profile. Nil uses the default renderer.
	Renderer *lipgloss.Renderer
}

// Label returns the axis label of a 1-based thread position.
func Label(position int) string {
	return fmt.Sprintf("Scene %d", position)
}

// Render draws one bar per scene on a fixed MinIntensity..MaxIntensity scale,
// colored with the scene's subplot color.
func Render(scenes []project.Scene, opts Options) string {
	if opts.CellsPerPoint < 1 {
		opts.CellsPerPoint = 2
	}
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	muted := r.NewStyle().Foreground(lipgloss.Color(project.UnknownSubplotColor))

	var b strings.Builder
	b.WriteString(r.NewStyle().Bold(true).Render(
		fmt.Sprintf("Intensity by scene (%d-%d)", project.MinIntensity, project.MaxIntensity)))
	b.WriteString("\n")
	if len(scenes) == 0 {
		b.WriteString(muted.Render("The thread is empty."))
		b.WriteString("\n")
		return b.String()
	}

	labelWidth := 0
	for _, sc := range scenes {
		labelWidth = max(labelWidth, len(Label(sc.Position)))
	}
	for _, sc := range scenes {
		value := project.ClampIntensity(sc.Node.Intensity)
		filled := value * opts.CellsPerPoint
		empty := (project.MaxIntensity - value) * opts.CellsPerPoint
		bar := r.NewStyle().Foreground(lipgloss.Color(sc.SubplotColor)).Render(strings.Repeat(fullBlock, filled))

		fmt.Fprintf(&b, "%-*s %s%s %2d  %s\n",
			labelWidth, Label(sc.Position),
			bar, muted.Render(strings.Repeat(emptyBlock, empty)),
			sc.Node.Intensity, sc.SubplotName)
	}
	return b.String()
}
