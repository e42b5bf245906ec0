package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_storage "github.com/at-ishikawa/storybuilder/internal/mocks/storage"
	"github.com/at-ishikawa/storybuilder/internal/project"
	"github.com/at-ishikawa/storybuilder/internal/storage"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// newTestBoard builds a board over a project with "a" and "b" in Main Plot,
// "c" in Romance and the given thread.
func newTestBoard(t *testing.T, thread ...string) (Board, *project.Store, map[string]string) {
	t.Helper()
	store, err := project.Open(context.Background(), storage.NewMemoryStorage(), project.WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)

	romance := store.AddSubplot("Romance", "#ff0066")
	ids := map[string]string{
		"a": store.AddNode(project.DefaultSubplotID, "a", 5).ID,
		"b": store.AddNode(project.DefaultSubplotID, "b", 10).ID,
		"c": store.AddNode(romance.ID, "c", 0).ID,
	}
	for _, name := range thread {
		store.AddToThread(ids[name])
	}

	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return NewBoard(store, BoardOptions{ThreadWidth: 40, Renderer: r}), store, ids
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Board, keys ...string) Board {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		m = updated.(Board)
	}
	return m
}

func names(ids map[string]string, order []string) []string {
	byID := make(map[string]string, len(ids))
	for name, id := range ids {
		byID[id] = name
	}
	got := make([]string, 0, len(order))
	for _, id := range order {
		got = append(got, byID[id])
	}
	return got
}

func TestBoard_ThreadEdits(t *testing.T) {
	tests := []struct {
		name       string
		thread     []string
		keys       []string
		wantThread []string
		wantStatus string
	}{
		{
			name:       "promote lane scenes in order",
			keys:       []string{"enter", "j", "enter"},
			wantThread: []string{"a", "b"},
			wantStatus: `Added "b" to the thread`,
		},
		{
			name:       "promote is idempotent",
			thread:     []string{"a"},
			keys:       []string{"enter"},
			wantThread: []string{"a"},
			wantStatus: `"a" is already in the thread`,
		},
		{
			name:       "lane scene dropped on a member is inserted before it",
			thread:     []string{"a", "b"},
			keys:       []string{"l", "space", "tab", "space"},
			wantThread: []string{"c", "a", "b"},
			wantStatus: "Thread updated",
		},
		{
			name:       "lane scene dropped on the end slot is appended",
			thread:     []string{"a", "b"},
			keys:       []string{"l", "space", "tab", "j", "j", "space"},
			wantThread: []string{"a", "b", "c"},
			wantStatus: "Thread updated",
		},
		{
			name:       "member dropped on another member moves there",
			thread:     []string{"a", "b", "c"},
			keys:       []string{"tab", "space", "j", "j", "space"},
			wantThread: []string{"b", "c", "a"},
			wantStatus: "Thread updated",
		},
		{
			name:       "member dropped on the end slot moves last",
			thread:     []string{"a", "b"},
			keys:       []string{"tab", "space", "j", "j", "space"},
			wantThread: []string{"b", "a"},
			wantStatus: "Thread updated",
		},
		{
			name:       "member dropped on itself changes nothing",
			thread:     []string{"a", "b"},
			keys:       []string{"tab", "space", "space"},
			wantThread: []string{"a", "b"},
			wantStatus: "Nothing changed",
		},
		{
			name:       "dropping on a lane changes nothing",
			thread:     []string{"a", "b"},
			keys:       []string{"tab", "space", "tab", "space"},
			wantThread: []string{"a", "b"},
			wantStatus: "Nothing changed",
		},
		{
			name:       "escape puts a held scene back",
			thread:     []string{"a"},
			keys:       []string{"l", "space", "esc", "tab", "space", "space"},
			wantThread: []string{"a"},
			wantStatus: "Nothing changed",
		},
		{
			name:       "demote keeps the node",
			thread:     []string{"a", "b"},
			keys:       []string{"tab", "j", "x"},
			wantThread: []string{"a"},
			wantStatus: `Removed "b" from the thread`,
		},
		{
			name:       "collapsed thread cannot be focused",
			thread:     []string{"a"},
			keys:       []string{"c", "l", "space", "tab", "space"},
			wantThread: []string{"a"},
			wantStatus: "Nothing changed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, store, ids := newTestBoard(t, tt.thread...)
			m = press(t, m, tt.keys...)

			assert.Equal(t, tt.wantThread, names(ids, store.ThreadOrder()))
			assert.Equal(t, tt.wantStatus, m.status)
			assert.Nil(t, m.holding)
			assert.Len(t, store.Nodes(), 3)
		})
	}
}

func TestBoard_DropFollowsTheScene(t *testing.T) {
	m, _, _ := newTestBoard(t, "a", "b", "c")
	m = press(t, m, "tab", "space", "j", "j", "space")
	assert.Equal(t, 2, m.threadRow)
}

func TestBoard_Intensity(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		node string
		want int
	}{
		{name: "raise", keys: []string{"+"}, node: "a", want: 6},
		{name: "lower", keys: []string{"-", "-"}, node: "a", want: 3},
		{name: "clamped at the top", keys: []string{"j", "+"}, node: "b", want: 10},
		{name: "clamped at the bottom", keys: []string{"l", "-"}, node: "c", want: 0},
		{name: "from the thread", keys: []string{"tab", "+"}, node: "a", want: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, store, ids := newTestBoard(t, "a")
			press(t, m, tt.keys...)

			n, ok := store.Node(ids[tt.node])
			require.True(t, ok)
			assert.Equal(t, tt.want, n.Intensity)
		})
	}
}

func TestBoard_AddAndDeleteScenes(t *testing.T) {
	m, store, ids := newTestBoard(t, "a", "b")

	m = press(t, m, "l", "n")
	romance := store.NodesBySubplot(m.store.Subplots()[1].ID)
	require.Len(t, romance, 2)
	assert.Equal(t, project.DefaultNodeText, romance[1].Text)
	assert.Equal(t, project.DefaultIntensity, romance[1].Intensity)
	assert.Equal(t, 1, m.row)

	m = press(t, m, "h", "k", "D")
	_, ok := store.Node(ids["a"])
	assert.False(t, ok)
	assert.Equal(t, []string{"b"}, names(ids, store.ThreadOrder()))
	assert.Equal(t, `Deleted "a"`, m.status)
}

func TestBoard_AddSubplot(t *testing.T) {
	m, store, _ := newTestBoard(t)

	m = press(t, m, "a")
	assert.Equal(t, subplotNameMode, m.mode)

	m = press(t, m, "enter")
	assert.Equal(t, subplotNameMode, m.mode)
	assert.Equal(t, project.ErrEmptyName.Error(), m.status)
	assert.True(t, m.statusErr)

	m = press(t, m, "Subplot B", "enter")
	assert.Equal(t, browseMode, m.mode)
	subplots := store.Subplots()
	require.Len(t, subplots, 3)
	assert.Equal(t, "Subplot B", subplots[2].Name)
	assert.Equal(t, subplotPalette[2], subplots[2].Color)
	assert.Equal(t, 2, m.lane)

	m = press(t, m, "a", "x", "esc")
	assert.Equal(t, browseMode, m.mode)
	assert.Len(t, store.Subplots(), 3)
}

func TestBoard_ThreadWidth(t *testing.T) {
	m, _, _ := newTestBoard(t)

	m = press(t, m, ">", ">", ">")
	assert.Equal(t, 55, m.threadWidth)
	m = press(t, m, ">", ">", ">", ">", ">", ">", ">")
	assert.Equal(t, MaxThreadWidth, m.threadWidth)
	for range 20 {
		m = press(t, m, "<")
	}
	assert.Equal(t, MinThreadWidth, m.threadWidth)
}

func TestBoard_Quit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			m, _, _ := newTestBoard(t)
			updated, cmd := m.Update(keyMsg(k))
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
			assert.Equal(t, "", updated.View())
		})
	}
}

func TestBoard_View(t *testing.T) {
	m, _, _ := newTestBoard(t, "c", "a")

	got := m.View()
	assert.Contains(t, got, "Main Plot")
	assert.Contains(t, got, "Romance")
	assert.Contains(t, got, "Thread (2)")
	assert.Contains(t, got, " 1. c")
	assert.Contains(t, got, " 2. a")

	collapsed := press(t, m, "c").View()
	assert.NotContains(t, collapsed, " 1. c")
	assert.Contains(t, collapsed, "(2)")
}

func TestBoard_ReportsPersistenceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mock_storage.NewMockStorage(ctrl)
	st.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound).AnyTimes()
	st.EXPECT().Set(gomock.Any(), storage.NodesKey, gomock.Any()).Return(errors.New("disk full"))

	store, err := project.Open(context.Background(), st)
	require.NoError(t, err)
	m := NewBoard(store, BoardOptions{})

	m = press(t, m, "n")
	assert.True(t, m.statusErr)
	assert.Equal(t, "not saved: storage.Set(storybuilder_nodes) > disk full", m.status)
	assert.Len(t, store.Nodes(), 1)
}

func TestBoard_EditSceneText(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		node       string
		wantText   string
		wantStatus string
	}{
		{
			name:       "from a lane",
			keys:       []string{"e", " revised", "enter"},
			node:       "a",
			wantText:   "a revised",
			wantStatus: `Renamed the scene to "a revised"`,
		},
		{
			name:       "from the thread",
			keys:       []string{"l", "enter", "tab", "j", "e", "!", "enter"},
			node:       "c",
			wantText:   "c!",
			wantStatus: `Renamed the scene to "c!"`,
		},
		{
			name:     "escape keeps the text",
			keys:     []string{"e", "zzz", "esc"},
			node:     "a",
			wantText: "a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, store, ids := newTestBoard(t, "a")
			before, ok := store.Node(ids[tt.node])
			require.True(t, ok)

			m = press(t, m, tt.keys...)

			n, ok := store.Node(ids[tt.node])
			require.True(t, ok)
			assert.Equal(t, tt.wantText, n.Text)
			assert.Equal(t, before.Intensity, n.Intensity)
			assert.Equal(t, before.SubplotID, n.SubplotID)
			assert.Equal(t, browseMode, m.mode)
			assert.Equal(t, tt.wantStatus, m.status)
		})
	}
}

func TestBoard_EditSceneTextStartsFromCurrentText(t *testing.T) {
	m, _, _ := newTestBoard(t)
	m = press(t, m, "j", "e")
	assert.Equal(t, sceneTextMode, m.mode)
	assert.Equal(t, "b", m.input.Value())
}

func TestBoard_AddNote(t *testing.T) {
	m, store, ids := newTestBoard(t)

	m = press(t, m, "o", "enter")
	assert.Equal(t, noteMode, m.mode)
	assert.True(t, m.statusErr)

	m = press(t, m, "rain", "enter")
	assert.Equal(t, browseMode, m.mode)
	assert.Equal(t, `Added a note to "a"`, m.status)

	n, ok := store.Node(ids["a"])
	require.True(t, ok)
	assert.Equal(t, []string{"rain"}, n.NoteTexts())
	assert.Equal(t, "a", n.Text)
}

func TestBoard_DeleteSubplot(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		m, store, ids := newTestBoard(t, "a", "c")
		m = press(t, m, "tab", "j", "j", "tab", "l", "space", "X")
		assert.Equal(t, confirmDeleteSubplotMode, m.mode)
		assert.Equal(t, `Delete subplot "Romance" and its 1 scene(s)? y to confirm`, m.status)

		m = press(t, m, "y")
		assert.Equal(t, browseMode, m.mode)
		assert.Equal(t, `Deleted subplot "Romance"`, m.status)
		require.Len(t, store.Subplots(), 1)
		_, ok := store.Node(ids["c"])
		assert.False(t, ok)
		assert.Equal(t, []string{"a"}, names(ids, store.ThreadOrder()))

		assert.Equal(t, 0, m.lane)
		assert.Less(t, m.row, len(store.NodesBySubplot(project.DefaultSubplotID)))
		assert.LessOrEqual(t, m.threadRow, len(store.OrderedScenes()))
		assert.Nil(t, m.holding)
		assert.NotPanics(t, func() { m.View() })
	})

	t.Run("anything but y keeps it", func(t *testing.T) {
		m, store, _ := newTestBoard(t, "c")
		m = press(t, m, "l", "X", "n")
		assert.Equal(t, browseMode, m.mode)
		assert.Equal(t, "Kept the subplot", m.status)
		assert.Len(t, store.Subplots(), 2)
		assert.Len(t, store.Nodes(), 3)
		assert.Equal(t, 1, m.lane)
	})

	t.Run("last lane", func(t *testing.T) {
		m, store, _ := newTestBoard(t)
		m = press(t, m, "X", "y", "X", "y")
		assert.Empty(t, store.Subplots())
		assert.Empty(t, store.Nodes())
		assert.Equal(t, 0, m.lane)
		assert.Equal(t, 0, m.row)
		assert.NotPanics(t, func() { m.View() })
	})

	t.Run("not from the thread", func(t *testing.T) {
		m, store, _ := newTestBoard(t, "a")
		m = press(t, m, "tab", "X")
		assert.Equal(t, browseMode, m.mode)
		assert.Len(t, store.Subplots(), 2)
	})
}
