package cli

import "github.com/charmbracelet/bubbles/key"

type boardKeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	SwitchPane key.Binding
	Pick       key.Binding
	Cancel     key.Binding
	Promote    key.Binding
	Demote     key.Binding
	Raise      key.Binding
	Lower      key.Binding
	AddScene   key.Binding
	AddSubplot key.Binding
	Delete     key.Binding
	DeleteLane key.Binding
	EditText   key.Binding
	AddNote    key.Binding
	Confirm    key.Binding
	Collapse   key.Binding
	Wider      key.Binding
	Narrower   key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev lane")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next lane")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		SwitchPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "lanes/thread")),
		Pick:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pick up/drop")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Promote:    key.NewBinding(key.WithKeys("enter", "p"), key.WithHelp("enter", "add to thread")),
		Demote:     key.NewBinding(key.WithKeys("x", "backspace"), key.WithHelp("x", "remove from thread")),
		Raise:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "intensity up")),
		Lower:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "intensity down")),
		AddScene:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new scene")),
		AddSubplot: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "new subplot")),
		Delete:     key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete scene")),
		DeleteLane: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete subplot")),
		EditText:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit scene text")),
		AddNote:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "add note")),
		Confirm:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
		Collapse:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse thread")),
		Wider:      key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "wider thread")),
		Narrower:   key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "narrower thread")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pick, k.Promote, k.Demote, k.SwitchPane, k.Help, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.SwitchPane},
		{k.Pick, k.Cancel, k.Promote, k.Demote},
		{k.Raise, k.Lower, k.EditText, k.AddNote},
		{k.AddScene, k.AddSubplot, k.Delete, k.DeleteLane},
		{k.Collapse, k.Wider, k.Narrower, k.Help, k.Quit},
	}
}
