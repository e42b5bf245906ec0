package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/at-ishikawa/storybuilder/internal/project"
)

const (
	MinThreadWidth  = 20
	MaxThreadWidth  = 80
	threadWidthStep = 5

	subplotNameLimit = 60
)

// Colors handed to subplots created from the board, in order.
var subplotPalette = []string{
	"#38bdf8", "#f472b6", "#a3e635", "#fbbf24", "#c084fc", "#fb7185", "#2dd4bf",
}

type boardPane int

const (
	lanesPane boardPane = iota
	threadPane
)

type boardMode int

const (
	browseMode boardMode = iota
	subplotNameMode
	sceneTextMode
	noteMode
	confirmDeleteSubplotMode
)

// errEmptyInput is reported when a scene text or note is submitted blank.
var errEmptyInput = errors.New("text must not be empty")

// BoardOptions configures the interactive board.
type BoardOptions struct {
	ThreadWidth int
	// Renderer decides the color profile. Nil uses the default renderer.
	Renderer *lipgloss.Renderer
}

// Board is the interactive board: subplot lanes on the left, the thread on
// the right. Picking a scene up and dropping it elsewhere is the keyboard
// rendition of dragging it.
type Board struct {
	store  *project.Store
	keys   boardKeyMap
	help   help.Model
	input  textinput.Model
	styles boardStyles

	mode        boardMode
	pane        boardPane
	lane        int
	row         int
	threadRow   int
	collapsed   bool
	threadWidth int
	holding     *project.DragSource
	// editing is the node a text or note prompt applies to, or the subplot
	// awaiting delete confirmation.
	editing string

	status    string
	statusErr bool
	lastErr   error
	quitting  bool
	width     int
}

// NewBoard creates a board over store.
func NewBoard(store *project.Store, opts BoardOptions) Board {
	input := textinput.New()
	input.CharLimit = subplotNameLimit

	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	width := opts.ThreadWidth
	if width == 0 {
		width = 40
	}

	return Board{
		store:       store,
		keys:        newBoardKeyMap(),
		help:        help.New(),
		input:       input,
		styles:      newBoardStyles(r),
		threadWidth: min(max(width, MinThreadWidth), MaxThreadWidth),
		lastErr:     store.Err(),
	}
}

// RunBoard runs the board until the user quits or ctx is canceled.
func RunBoard(ctx context.Context, store *project.Store, opts BoardOptions) error {
	p := tea.NewProgram(NewBoard(store, opts), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("p.Run() > %w", err)
	}
	return nil
}

func (m Board) Init() tea.Cmd {
	return nil
}

func (m Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case subplotNameMode, sceneTextMode, noteMode:
			return m.updateInput(msg)
		case confirmDeleteSubplotMode:
			return m.updateConfirmDeleteSubplot(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Board) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		m.moveLane(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveLane(1)
	case key.Matches(msg, m.keys.Up):
		m.moveRow(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveRow(1)
	case key.Matches(msg, m.keys.SwitchPane):
		m.switchPane()
	case key.Matches(msg, m.keys.Pick):
		if m.holding != nil {
			m.drop()
		} else {
			m.pick()
		}
	case key.Matches(msg, m.keys.Cancel):
		if m.holding != nil {
			m.holding = nil
			m.setStatus("Put it back")
		}
	case key.Matches(msg, m.keys.Promote):
		m.promote()
	case key.Matches(msg, m.keys.Demote):
		m.demote()
	case key.Matches(msg, m.keys.Raise):
		m.adjustIntensity(1)
	case key.Matches(msg, m.keys.Lower):
		m.adjustIntensity(-1)
	case key.Matches(msg, m.keys.AddScene):
		m.addScene()
	case key.Matches(msg, m.keys.Delete):
		m.deleteScene()
	case key.Matches(msg, m.keys.Collapse):
		m.collapsed = !m.collapsed
		if m.collapsed && m.pane == threadPane {
			m.pane = lanesPane
		}
	case key.Matches(msg, m.keys.Wider):
		m.threadWidth = min(m.threadWidth+threadWidthStep, MaxThreadWidth)
	case key.Matches(msg, m.keys.Narrower):
		m.threadWidth = max(m.threadWidth-threadWidthStep, MinThreadWidth)
	case key.Matches(msg, m.keys.AddSubplot):
		return m.startInput(subplotNameMode, "", "Subplot name", "")
	case key.Matches(msg, m.keys.EditText):
		if n, ok := m.selected(); ok {
			return m.startInput(sceneTextMode, n.ID, "Scene description", n.Text)
		}
	case key.Matches(msg, m.keys.AddNote):
		if n, ok := m.selected(); ok {
			return m.startInput(noteMode, n.ID, "Note", "")
		}
	case key.Matches(msg, m.keys.DeleteLane):
		m.confirmDeleteSubplot()
	}
	return m, nil
}

func (m Board) startInput(mode boardMode, target, placeholder, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.editing = target
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.CharLimit = 0
	if mode == subplotNameMode {
		m.input.CharLimit = subplotNameLimit
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

func (m *Board) endInput() {
	m.mode = browseMode
	m.editing = ""
	m.input.Blur()
}

func (m Board) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.endInput()
		return m, nil
	case tea.KeyEnter:
		m.submitInput(strings.TrimSpace(m.input.Value()))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitInput applies the prompt of the current mode. Invalid input keeps the
// prompt open.
func (m *Board) submitInput(value string) {
	switch m.mode {
	case subplotNameMode:
		if err := project.ValidateSubplotName(value); err != nil {
			m.setError(err)
			return
		}
		color := subplotPalette[len(m.store.Subplots())%len(subplotPalette)]
		sp := m.store.AddSubplot(value, color)
		m.endInput()
		m.pane = lanesPane
		m.lane = len(m.store.Subplots()) - 1
		m.row = 0
		m.afterMutation(fmt.Sprintf("Added subplot %q", sp.Name))
	case sceneTextMode:
		if value == "" {
			m.setError(errEmptyInput)
			return
		}
		id := m.editing
		m.endInput()
		if _, ok := m.store.Node(id); !ok {
			m.setStatus("Nothing changed")
			return
		}
		m.store.UpdateNode(id, project.NodePatch{Text: &value})
		m.afterMutation(fmt.Sprintf("Renamed the scene to %q", value))
	case noteMode:
		if value == "" {
			m.setError(errEmptyInput)
			return
		}
		id := m.editing
		m.endInput()
		n, ok := m.store.Node(id)
		if !ok {
			m.setStatus("Nothing changed")
			return
		}
		m.store.AddNote(id, value)
		m.afterMutation(fmt.Sprintf("Added a note to %q", n.Text))
	}
}

func (m *Board) confirmDeleteSubplot() {
	if m.pane != lanesPane {
		return
	}
	sp, ok := m.currentSubplot()
	if !ok {
		return
	}
	m.mode = confirmDeleteSubplotMode
	m.editing = sp.ID
	m.setStatus(fmt.Sprintf("Delete subplot %q and its %d scene(s)? y to confirm", sp.Name, len(m.store.NodesBySubplot(sp.ID))))
}

func (m Board) updateConfirmDeleteSubplot(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.editing
	m.mode = browseMode
	m.editing = ""

	sp, ok := m.store.Subplot(id)
	if !ok || !key.Matches(msg, m.keys.Confirm) {
		m.setStatus("Kept the subplot")
		return m, nil
	}
	m.store.RemoveSubplot(sp.ID)
	m.lane = min(m.lane, max(len(m.store.Subplots())-1, 0))
	m.clampCursors()
	m.afterMutation(fmt.Sprintf("Deleted subplot %q", sp.Name))
	return m, nil
}

// clampCursors keeps every cursor inside the current collections and lets go
// of a held scene that no longer exists.
func (m *Board) clampCursors() {
	m.row = min(m.row, max(len(m.laneNodes())-1, 0))
	m.threadRow = min(m.threadRow, len(m.store.OrderedScenes()))
	if m.holding != nil {
		if _, ok := m.store.Node(m.holding.NodeID); !ok {
			m.holding = nil
		}
	}
}

func (m *Board) moveLane(delta int) {
	if m.pane != lanesPane {
		return
	}
	subplots := m.store.Subplots()
	if len(subplots) == 0 {
		return
	}
	m.lane = min(max(m.lane+delta, 0), len(subplots)-1)
	m.row = min(m.row, max(len(m.laneNodes())-1, 0))
}

func (m *Board) moveRow(delta int) {
	switch m.pane {
	case lanesPane:
		m.row = min(max(m.row+delta, 0), max(len(m.laneNodes())-1, 0))
	case threadPane:
		// One slot past the last scene stands for the end of the thread.
		m.threadRow = min(max(m.threadRow+delta, 0), len(m.store.OrderedScenes()))
	}
}

func (m *Board) switchPane() {
	if m.pane == threadPane || m.collapsed {
		m.pane = lanesPane
		return
	}
	m.pane = threadPane
}

func (m *Board) currentSubplot() (project.Subplot, bool) {
	subplots := m.store.Subplots()
	if m.lane < 0 || m.lane >= len(subplots) {
		return project.Subplot{}, false
	}
	return subplots[m.lane], true
}

func (m *Board) laneNodes() []project.Node {
	sp, ok := m.currentSubplot()
	if !ok {
		return nil
	}
	return m.store.NodesBySubplot(sp.ID)
}

// selected returns the node under the cursor of the focused pane.
func (m *Board) selected() (project.Node, bool) {
	switch m.pane {
	case lanesPane:
		nodes := m.laneNodes()
		if m.row < len(nodes) {
			return nodes[m.row], true
		}
	case threadPane:
		scenes := m.store.OrderedScenes()
		if m.threadRow < len(scenes) {
			return scenes[m.threadRow].Node, true
		}
	}
	return project.Node{}, false
}

func (m *Board) pick() {
	n, ok := m.selected()
	if !ok {
		return
	}
	src := project.DragFromLane(n.ID)
	if m.pane == threadPane {
		src = project.DragFromThread(n.ID)
	}
	m.holding = &src
	m.setStatus(fmt.Sprintf("Holding %q: space to drop, esc to cancel", n.Text))
}

func (m *Board) dropTarget() project.DropTarget {
	if m.pane == lanesPane {
		if sp, ok := m.currentSubplot(); ok {
			return project.DropOnLane(sp.ID)
		}
		return project.DropNowhere()
	}
	scenes := m.store.OrderedScenes()
	if m.threadRow < len(scenes) {
		return project.DropOnNode(scenes[m.threadRow].Node.ID)
	}
	return project.DropOnThread()
}

func (m *Board) drop() {
	src := *m.holding
	m.holding = nil
	if !m.store.Drop(src, m.dropTarget(), m.collapsed) {
		m.setStatus("Nothing changed")
		return
	}
	if i := slices.IndexFunc(m.store.OrderedScenes(), func(sc project.Scene) bool {
		return sc.Node.ID == src.NodeID
	}); i >= 0 {
		m.threadRow = i
	}
	m.afterMutation("Thread updated")
}

func (m *Board) promote() {
	if m.pane != lanesPane {
		return
	}
	n, ok := m.selected()
	if !ok {
		return
	}
	if m.store.InThread(n.ID) {
		m.setStatus(fmt.Sprintf("%q is already in the thread", n.Text))
		return
	}
	m.store.AddToThread(n.ID)
	m.afterMutation(fmt.Sprintf("Added %q to the thread", n.Text))
}

func (m *Board) demote() {
	if m.pane != threadPane {
		return
	}
	n, ok := m.selected()
	if !ok {
		return
	}
	m.store.RemoveFromThread(n.ID)
	m.threadRow = min(m.threadRow, max(len(m.store.OrderedScenes())-1, 0))
	m.afterMutation(fmt.Sprintf("Removed %q from the thread", n.Text))
}

func (m *Board) adjustIntensity(delta int) {
	n, ok := m.selected()
	if !ok {
		return
	}
	intensity := project.ClampIntensity(n.Intensity + delta)
	if intensity == n.Intensity {
		return
	}
	m.store.UpdateNode(n.ID, project.NodePatch{Intensity: &intensity})
	m.afterMutation(fmt.Sprintf("Intensity of %q is %d", n.Text, intensity))
}

func (m *Board) addScene() {
	if m.pane != lanesPane {
		return
	}
	sp, ok := m.currentSubplot()
	if !ok {
		return
	}
	m.store.AddNode(sp.ID, project.DefaultNodeText, project.DefaultIntensity)
	m.row = len(m.laneNodes()) - 1
	m.afterMutation(fmt.Sprintf("Added a scene to %q", sp.Name))
}

func (m *Board) deleteScene() {
	if m.pane != lanesPane {
		return
	}
	n, ok := m.selected()
	if !ok {
		return
	}
	m.store.RemoveNode(n.ID)
	m.clampCursors()
	m.afterMutation(fmt.Sprintf("Deleted %q", n.Text))
}

// afterMutation reports a new persistence failure in place of msg.
func (m *Board) afterMutation(msg string) {
	if err := m.store.Err(); err != nil && err != m.lastErr {
		m.lastErr = err
		m.setError(fmt.Errorf("not saved: %w", err))
		return
	}
	m.setStatus(msg)
}

func (m *Board) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Board) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}
