package project

import "slices"

// SourceKind says where a dragged node was picked up.
type SourceKind int

const (
	sourceNone SourceKind = iota
	// SourceThread is a node picked up from the thread panel.
	SourceThread
	// SourceLane is a node picked up from its subplot lane.
	SourceLane
)

// DragSource identifies the node being dragged and where it came from.
// It is resolved once, when the drag starts.
type DragSource struct {
	Kind   SourceKind
	NodeID string
}

func DragFromThread(nodeID string) DragSource {
	return DragSource{Kind: SourceThread, NodeID: nodeID}
}

func DragFromLane(nodeID string) DragSource {
	return DragSource{Kind: SourceLane, NodeID: nodeID}
}

// TargetKind says what a node was dropped on.
type TargetKind int

const (
	// TargetNone is a drop outside any target.
	TargetNone TargetKind = iota
	// TargetThread is the thread panel itself, past its last member.
	TargetThread
	// TargetThreadNode is an existing thread member.
	TargetThreadNode
	// TargetLane is a subplot lane.
	TargetLane
)

type DropTarget struct {
	Kind TargetKind
	// ID is the node id for TargetThreadNode and the subplot id for TargetLane.
	ID string
}

func DropOnThread() DropTarget {
	return DropTarget{Kind: TargetThread}
}

func DropOnNode(nodeID string) DropTarget {
	return DropTarget{Kind: TargetThreadNode, ID: nodeID}
}

func DropOnLane(subplotID string) DropTarget {
	return DropTarget{Kind: TargetLane, ID: subplotID}
}

func DropNowhere() DropTarget {
	return DropTarget{}
}

// PlanDrop computes the thread order that results from dropping src on
// target. It reports false when the drop does nothing: the thread panel is
// collapsed, the target is not the thread or one of its members, or the
// order would not change.
//
// A node that is already a member moves to the target index; any other node
// is inserted there. The target index is the dropped-on member's index in
// the current order, or the end of the thread for the panel itself.
// Membership comes from order, not from the source kind.
func PlanDrop(order []string, src DragSource, target DropTarget, collapsed bool) ([]string, bool) {
	if collapsed || src.NodeID == "" {
		return nil, false
	}

	var index int
	switch target.Kind {
	case TargetThread:
		index = len(order)
	case TargetThreadNode:
		index = slices.Index(order, target.ID)
		if index < 0 {
			return nil, false
		}
	default:
		return nil, false
	}

	var next []string
	if from := slices.Index(order, src.NodeID); from >= 0 {
		next = Move(order, from, index)
	} else {
		next = Insert(order, index, src.NodeID)
	}
	if slices.Equal(next, order) {
		return nil, false
	}
	return next, true
}

// Move returns a copy of order with the element at from moved so that it
// ends up at index to. Both indexes refer to the original order; moving
// forward places the element right after the one originally at to.
// An out of range from returns an unchanged copy.
func Move(order []string, from, to int) []string {
	out := slices.Clone(order)
	if from < 0 || from >= len(out) {
		return out
	}
	id := out[from]
	out = slices.Delete(out, from, from+1)
	to = min(max(to, 0), len(out))
	return slices.Insert(out, to, id)
}

// Insert returns a copy of order with id inserted at index, clamped to the
// bounds of order.
func Insert(order []string, index int, id string) []string {
	out := slices.Clone(order)
	index = min(max(index, 0), len(out))
	return slices.Insert(out, index, id)
}

// Drop applies PlanDrop to the thread and reports whether it changed.
func (s *Store) Drop(src DragSource, target DropTarget, collapsed bool) bool {
	next, ok := PlanDrop(s.threadOrder, src, target, collapsed)
	if !ok {
		return false
	}
	s.ReorderThread(next)
	return true
}
