package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMove(t *testing.T) {
	tests := []struct {
		name  string
		order []string
		from  int
		to    int
		want  []string
	}{
		{name: "forward", order: []string{"a", "b", "c", "d"}, from: 0, to: 2, want: []string{"b", "c", "a", "d"}},
		{name: "backward to front", order: []string{"a", "b", "c", "d"}, from: 3, to: 0, want: []string{"d", "a", "b", "c"}},
		{name: "same index", order: []string{"a", "b", "c"}, from: 1, to: 1, want: []string{"a", "b", "c"}},
		{name: "past the end clamps", order: []string{"a", "b", "c"}, from: 0, to: 3, want: []string{"b", "c", "a"}},
		{name: "out of range from", order: []string{"a", "b"}, from: 5, to: 0, want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := append([]string(nil), tt.order...)
			assert.Equal(t, tt.want, Move(tt.order, tt.from, tt.to))
			assert.Equal(t, original, tt.order, "input is not modified")
		})
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name  string
		order []string
		index int
		want  []string
	}{
		{name: "middle", order: []string{"a", "b"}, index: 1, want: []string{"a", "x", "b"}},
		{name: "end", order: []string{"a", "b"}, index: 2, want: []string{"a", "b", "x"}},
		{name: "empty", order: nil, index: 0, want: []string{"x"}},
		{name: "negative clamps", order: []string{"a"}, index: -1, want: []string{"x", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Insert(tt.order, tt.index, "x"))
		})
	}
}

func TestPlanDrop(t *testing.T) {
	order := []string{"a", "b", "c", "d"}

	tests := []struct {
		name      string
		order     []string
		src       DragSource
		target    DropTarget
		collapsed bool
		want      []string
		wantOK    bool
	}{
		{
			name:   "member moved forward onto a member",
			order:  order,
			src:    DragFromThread("a"),
			target: DropOnNode("c"),
			want:   []string{"b", "c", "a", "d"},
			wantOK: true,
		},
		{
			name:   "member moved to the front",
			order:  order,
			src:    DragFromThread("d"),
			target: DropOnNode("a"),
			want:   []string{"d", "a", "b", "c"},
			wantOK: true,
		},
		{
			name:   "member dropped on the thread goes last",
			order:  order,
			src:    DragFromThread("b"),
			target: DropOnThread(),
			want:   []string{"a", "c", "d", "b"},
			wantOK: true,
		},
		{
			name:   "lane node already in the thread is moved, not duplicated",
			order:  order,
			src:    DragFromLane("d"),
			target: DropOnNode("b"),
			want:   []string{"a", "d", "b", "c"},
			wantOK: true,
		},
		{
			name:   "new node inserted before a member",
			order:  []string{"a", "b"},
			src:    DragFromLane("x"),
			target: DropOnNode("b"),
			want:   []string{"a", "x", "b"},
			wantOK: true,
		},
		{
			name:   "new node dropped on the thread is appended",
			order:  []string{"a", "b"},
			src:    DragFromLane("x"),
			target: DropOnThread(),
			want:   []string{"a", "b", "x"},
			wantOK: true,
		},
		{
			name:   "new node into an empty thread",
			order:  []string{},
			src:    DragFromLane("x"),
			target: DropOnThread(),
			want:   []string{"x"},
			wantOK: true,
		},
		{
			name:      "collapsed thread ignores drops",
			order:     []string{"a", "b"},
			src:       DragFromLane("x"),
			target:    DropOnThread(),
			collapsed: true,
		},
		{
			name:   "drop on a lane does nothing",
			order:  []string{"a", "b"},
			src:    DragFromLane("x"),
			target: DropOnLane("sub-1"),
		},
		{
			name:   "drop outside any target does nothing",
			order:  []string{"a", "b"},
			src:    DragFromThread("a"),
			target: DropNowhere(),
		},
		{
			name:   "drop on a node outside the thread does nothing",
			order:  []string{"a", "b"},
			src:    DragFromLane("x"),
			target: DropOnNode("y"),
		},
		{
			name:   "drop on itself does nothing",
			order:  []string{"a", "b"},
			src:    DragFromThread("a"),
			target: DropOnNode("a"),
		},
		{
			name:   "last member dropped on the thread does nothing",
			order:  []string{"a", "b"},
			src:    DragFromThread("b"),
			target: DropOnThread(),
		},
		{
			name:   "empty source does nothing",
			order:  []string{"a"},
			src:    DragSource{},
			target: DropOnThread(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PlanDrop(tt.order, tt.src, tt.target, tt.collapsed)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestStore_Drop(t *testing.T) {
	s, st := newTestStore(t)
	a := s.AddNode(DefaultSubplotID, "A", 1)
	b := s.AddNode(DefaultSubplotID, "B", 2)
	x := s.AddNode(DefaultSubplotID, "X", 3)
	s.AddToThread(a.ID)
	s.AddToThread(b.ID)

	assert.True(t, s.Drop(DragFromLane(x.ID), DropOnNode(b.ID), false))
	assert.Equal(t, []string{a.ID, x.ID, b.ID}, s.ThreadOrder())

	assert.True(t, s.Drop(DragFromThread(a.ID), DropOnThread(), false))
	assert.Equal(t, []string{x.ID, b.ID, a.ID}, s.ThreadOrder())

	assert.False(t, s.Drop(DragFromThread(a.ID), DropOnNode(x.ID), true))
	assert.Equal(t, []string{x.ID, b.ID, a.ID}, s.ThreadOrder())
	assert.Equal(t, s.ThreadOrder(), persisted[[]string](t, st, "storybuilder_threadOrder"))
}
