package project

import (
	"slices"

	"github.com/at-ishikawa/storybuilder/internal/storage"
)

// Report lists the broken references found in a project.
type Report struct {
	// DanglingThreadIDs are thread entries without a node.
	DanglingThreadIDs []string
	// DuplicateThreadIDs are node ids listed more than once in the thread.
	DuplicateThreadIDs []string
	// OrphanNodeIDs are nodes whose subplot does not exist.
	OrphanNodeIDs []string
}

// Clean reports whether nothing was found.
func (r Report) Clean() bool {
	return len(r.DanglingThreadIDs) == 0 && len(r.DuplicateThreadIDs) == 0 && len(r.OrphanNodeIDs) == 0
}

// Diagnose checks referential integrity without changing anything.
func (s *Store) Diagnose() Report {
	var r Report

	subplotIDs := make(map[string]struct{}, len(s.subplots))
	for _, sp := range s.subplots {
		subplotIDs[sp.ID] = struct{}{}
	}
	nodeIDs := make(map[string]struct{}, len(s.nodes))
	for _, n := range s.nodes {
		nodeIDs[n.ID] = struct{}{}
		if _, ok := subplotIDs[n.SubplotID]; !ok {
			r.OrphanNodeIDs = append(r.OrphanNodeIDs, n.ID)
		}
	}

	seen := make(map[string]struct{}, len(s.threadOrder))
	for _, id := range s.threadOrder {
		if _, ok := nodeIDs[id]; !ok {
			r.DanglingThreadIDs = append(r.DanglingThreadIDs, id)
			continue
		}
		if _, ok := seen[id]; ok {
			r.DuplicateThreadIDs = append(r.DuplicateThreadIDs, id)
			continue
		}
		seen[id] = struct{}{}
	}
	return r
}

// Repair removes what Diagnose reports: orphan nodes are deleted the same
// way a subplot delete would have, then the thread keeps the first
// occurrence of every id that still has a node.
func (s *Store) Repair() Report {
	r := s.Diagnose()
	if r.Clean() {
		return r
	}

	s.nodes = slices.DeleteFunc(s.nodes, func(n Node) bool {
		return slices.Contains(r.OrphanNodeIDs, n.ID)
	})

	live := make(map[string]struct{}, len(s.nodes))
	for _, n := range s.nodes {
		live[n.ID] = struct{}{}
	}
	seen := make(map[string]struct{}, len(s.threadOrder))
	s.threadOrder = slices.DeleteFunc(s.threadOrder, func(id string) bool {
		if _, ok := live[id]; !ok {
			return true
		}
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
		return false
	})

	s.persist(storage.NodesKey, storage.ThreadOrderKey)
	return r
}
