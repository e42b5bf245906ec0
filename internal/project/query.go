package project

import (
	"slices"
	"strings"
)

// Subplots returns a copy of the subplots in lane order.
func (s *Store) Subplots() []Subplot {
	return slices.Clone(s.subplots)
}

// Nodes returns a copy of every node in creation order.
func (s *Store) Nodes() []Node {
	return cloneNodes(s.nodes)
}

// ThreadOrder returns a copy of the thread order as stored, including any
// ids that no longer resolve to a node.
func (s *Store) ThreadOrder() []string {
	return slices.Clone(s.threadOrder)
}

// Subplot looks up a subplot by id.
func (s *Store) Subplot(id string) (Subplot, bool) {
	i := slices.IndexFunc(s.subplots, func(sp Subplot) bool {
		return sp.ID == id
	})
	if i < 0 {
		return Subplot{}, false
	}
	return s.subplots[i], true
}

// Node looks up a node by id.
func (s *Store) Node(id string) (Node, bool) {
	i := s.nodeIndex(id)
	if i < 0 {
		return Node{}, false
	}
	return s.nodes[i].clone(), true
}

// NodesBySubplot returns the nodes filed under a subplot, in creation order.
func (s *Store) NodesBySubplot(subplotID string) []Node {
	var nodes []Node
	for _, n := range s.nodes {
		if n.SubplotID == subplotID {
			nodes = append(nodes, n.clone())
		}
	}
	return nodes
}

// InThread reports whether the node is a thread member.
func (s *Store) InThread(nodeID string) bool {
	return slices.Contains(s.threadOrder, nodeID)
}

// Scene is one resolved position of the thread.
type Scene struct {
	// Position is 1-based.
	Position     int
	Node         Node
	SubplotName  string
	SubplotColor string
}

// JoinedNotes returns the scene's note texts joined by "; ".
func (sc Scene) JoinedNotes() string {
	return strings.Join(sc.Node.NoteTexts(), "; ")
}

// OrderedScenes resolves the thread order into scenes, skipping ids whose
// node no longer exists.
func (s *Store) OrderedScenes() []Scene {
	return Resolve(s.subplots, s.nodes, s.threadOrder)
}

// Resolve maps order through nodes and attaches each node's subplot name and
// color. Ids without a node are dropped; nodes whose subplot is gone get
// UnknownSubplotName and UnknownSubplotColor.
func Resolve(subplots []Subplot, nodes []Node, order []string) []Scene {
	subplotByID := make(map[string]Subplot, len(subplots))
	for _, sp := range subplots {
		subplotByID[sp.ID] = sp
	}
	nodeByID := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		nodeByID[n.ID] = n
	}

	scenes := make([]Scene, 0, len(order))
	for _, id := range order {
		n, ok := nodeByID[id]
		if !ok {
			continue
		}
		sc := Scene{
			Position:     len(scenes) + 1,
			Node:         n.clone(),
			SubplotName:  UnknownSubplotName,
			SubplotColor: UnknownSubplotColor,
		}
		if sp, ok := subplotByID[n.SubplotID]; ok {
			sc.SubplotName = sp.Name
			sc.SubplotColor = sp.Color
		}
		scenes = append(scenes, sc)
	}
	return scenes
}
