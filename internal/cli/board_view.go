package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/at-ishikawa/storybuilder/internal/project"
)

const laneWidth = 26

var inputPrompts = map[boardMode]string{
	subplotNameMode: "New subplot: ",
	sceneTextMode:   "Scene: ",
	noteMode:        "Note: ",
}

type boardStyles struct {
	renderer *lipgloss.Renderer
	title    lipgloss.Style
	box      lipgloss.Style
	focused  lipgloss.Style
	cursor   lipgloss.Style
	muted    lipgloss.Style
	held     lipgloss.Style
	status   lipgloss.Style
	errText  lipgloss.Style
}

func newBoardStyles(r *lipgloss.Renderer) boardStyles {
	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1)
	return boardStyles{
		renderer: r,
		title:    r.NewStyle().Bold(true),
		box:      box,
		focused:  box.BorderForeground(lipgloss.Color("51")),
		cursor:   r.NewStyle().Reverse(true),
		muted:    r.NewStyle().Foreground(lipgloss.Color("245")),
		held:     r.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		status:   r.NewStyle().Foreground(lipgloss.Color("245")).MarginTop(1),
		errText:  r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).MarginTop(1),
	}
}

func (s boardStyles) color(hex string) lipgloss.Style {
	return s.renderer.NewStyle().Foreground(lipgloss.Color(hex))
}

func (m Board) View() string {
	if m.quitting {
		return ""
	}

	lanes := m.viewLanes()
	thread := m.viewThread()
	board := lipgloss.JoinHorizontal(lipgloss.Top, lanes, " ", thread)

	var b strings.Builder
	b.WriteString(board)
	b.WriteString("\n")
	if prompt, ok := inputPrompts[m.mode]; ok {
		b.WriteString(prompt)
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		style := m.styles.status
		if m.statusErr {
			style = m.styles.errText
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Board) viewLanes() string {
	subplots := m.store.Subplots()
	if len(subplots) == 0 {
		return m.styles.box.Render(m.styles.muted.Render("No subplots. Press a to add one."))
	}

	columns := make([]string, 0, len(subplots))
	for i, sp := range subplots {
		columns = append(columns, m.viewLane(i, sp))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m Board) viewLane(index int, sp project.Subplot) string {
	focused := m.pane == lanesPane && m.lane == index
	inner := laneWidth - 4

	lines := []string{
		m.styles.color(sp.Color).Bold(true).Render(ansi.Truncate(sp.Name, inner, "…")),
	}
	nodes := m.store.NodesBySubplot(sp.ID)
	if len(nodes) == 0 {
		lines = append(lines, m.styles.muted.Render("(no scenes)"))
	}
	for row, n := range nodes {
		marker := " "
		if m.store.InThread(n.ID) {
			marker = "✓"
		}
		line := fmt.Sprintf("%s %s %2d", marker, padRight(ansi.Truncate(n.Text, inner-5, "…"), inner-5), n.Intensity)
		switch {
		case m.holding != nil && m.holding.NodeID == n.ID:
			line = m.styles.held.Render(line)
		case focused && m.row == row:
			line = m.styles.cursor.Render(line)
		}
		lines = append(lines, line)
	}

	style := m.styles.box
	if focused {
		style = m.styles.focused
	}
	return style.Width(laneWidth - 2).Render(strings.Join(lines, "\n"))
}

func (m Board) viewThread() string {
	scenes := m.store.OrderedScenes()
	if m.collapsed {
		return m.styles.box.Render(fmt.Sprintf("Thread\n(%d)", len(scenes)))
	}

	inner := m.threadWidth - 4
	focused := m.pane == threadPane
	lines := []string{m.styles.title.Render(fmt.Sprintf("Thread (%d)", len(scenes)))}
	if len(scenes) == 0 {
		lines = append(lines, m.styles.muted.Render("Promote scenes with enter."))
	}
	for i, sc := range scenes {
		bar := m.styles.color(sc.SubplotColor).Render("▌")
		text := fmt.Sprintf("%2d. %s %2d", sc.Position, padRight(ansi.Truncate(sc.Node.Text, inner-10, "…"), inner-10), sc.Node.Intensity)
		switch {
		case m.holding != nil && m.holding.NodeID == sc.Node.ID:
			text = m.styles.held.Render(text)
		case focused && m.threadRow == i:
			text = m.styles.cursor.Render(text)
		}
		lines = append(lines, bar+" "+text)
	}
	if m.holding != nil || (focused && m.threadRow == len(scenes) && len(scenes) > 0) {
		end := "   ⤓ end of thread"
		if focused && m.threadRow == len(scenes) {
			end = m.styles.cursor.Render(end)
		}
		lines = append(lines, end)
	}

	style := m.styles.box
	if focused {
		style = m.styles.focused
	}
	return style.Width(m.threadWidth - 2).Render(strings.Join(lines, "\n"))
}

func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
