package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/storybuilder/internal/storage"
)

// Store holds the subplots, nodes and thread order of one project and writes
// every change through to storage.
//
// Mutations never fail: unknown ids are ignored and references are not
// checked. Readers filter dangling references instead (see OrderedScenes).
// Persistence is best effort; a failed write is logged and reported by Err,
// the in-memory change stands.
//
// A Store is not safe for concurrent use.
type Store struct {
	storage      storage.Storage
	writeTimeout time.Duration
	newID        func() string
	now          func() time.Time

	subplots    []Subplot
	nodes       []Node
	threadOrder []string

	err error
}

type Option func(*Store)

// WithWriteTimeout bounds each persistence write. Zero means no timeout.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.writeTimeout = d
	}
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithClock replaces the clock used to stamp notes.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) {
		s.now = fn
	}
}

// Open loads a project from st. A key that is missing or does not parse
// falls back to its default: one "Main Plot" subplot, no nodes, empty thread.
func Open(ctx context.Context, st storage.Storage, opts ...Option) (*Store, error) {
	s := &Store{
		storage:      st,
		writeTimeout: 5 * time.Second,
		newID:        uuid.NewString,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.subplots, err = readKey(ctx, st, storage.SubplotsKey, defaultSubplots()); err != nil {
		return nil, err
	}
	nodes, err := readKey(ctx, st, storage.NodesKey, []Node{})
	if err != nil {
		return nil, err
	}
	s.nodes = cloneNodes(nodes)
	if s.threadOrder, err = readKey(ctx, st, storage.ThreadOrderKey, []string{}); err != nil {
		return nil, err
	}
	return s, nil
}

func readKey[T any](ctx context.Context, st storage.Storage, key string, fallback []T) ([]T, error) {
	raw, err := st.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage.Get(%s) > %w", key, err)
	}

	var values []T
	if err := json.Unmarshal(raw, &values); err != nil {
		slog.Default().Warn("discarding unparseable persisted value",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return fallback, nil
	}
	if values == nil {
		values = []T{}
	}
	return values, nil
}

// Err returns the most recent persistence error, or nil.
func (s *Store) Err() error {
	return s.err
}

// AddSubplot appends a subplot with a fresh id. Callers reject empty names
// with ValidateSubplotName; the store accepts any name.
func (s *Store) AddSubplot(name, color string) Subplot {
	sp := Subplot{ID: s.newID(), Name: name, Color: color}
	s.subplots = append(s.subplots, sp)
	s.persist(storage.SubplotsKey)
	return sp
}

// RemoveSubplot deletes the subplot, every node filed under it, and those
// nodes' thread entries.
func (s *Store) RemoveSubplot(id string) {
	removed := make(map[string]struct{})
	s.nodes = slices.DeleteFunc(s.nodes, func(n Node) bool {
		if n.SubplotID != id {
			return false
		}
		removed[n.ID] = struct{}{}
		return true
	})
	s.subplots = slices.DeleteFunc(s.subplots, func(sp Subplot) bool {
		return sp.ID == id
	})
	s.threadOrder = slices.DeleteFunc(s.threadOrder, func(nodeID string) bool {
		_, ok := removed[nodeID]
		return ok
	})
	s.persist(storage.SubplotsKey, storage.NodesKey, storage.ThreadOrderKey)
}

// AddNode appends a node with a fresh id and no notes. The subplot is not
// required to exist.
func (s *Store) AddNode(subplotID, text string, intensity int) Node {
	n := Node{
		ID:        s.newID(),
		SubplotID: subplotID,
		Text:      text,
		Intensity: intensity,
		Notes:     []Note{},
	}
	s.nodes = append(s.nodes, n)
	s.persist(storage.NodesKey)
	return n.clone()
}

// UpdateNode merges patch into the node with id.
func (s *Store) UpdateNode(id string, patch NodePatch) {
	i := s.nodeIndex(id)
	if i < 0 {
		return
	}
	patch.apply(&s.nodes[i])
	s.persist(storage.NodesKey)
}

// RemoveNode deletes the node and its thread entry.
func (s *Store) RemoveNode(id string) {
	s.nodes = slices.DeleteFunc(s.nodes, func(n Node) bool {
		return n.ID == id
	})
	s.threadOrder = slices.DeleteFunc(s.threadOrder, func(nodeID string) bool {
		return nodeID == id
	})
	s.persist(storage.NodesKey, storage.ThreadOrderKey)
}

// AddNote appends a note to the node. It reports false for an unknown node.
func (s *Store) AddNote(nodeID, text string) (Note, bool) {
	i := s.nodeIndex(nodeID)
	if i < 0 {
		return Note{}, false
	}
	note := Note{ID: s.newID(), Text: text, CreatedAt: s.now().UTC()}
	notes := append(slices.Clone(s.nodes[i].Notes), note)
	s.UpdateNode(nodeID, NodePatch{Notes: &notes})
	return note, true
}

// RemoveNote deletes one note from the node.
func (s *Store) RemoveNote(nodeID, noteID string) {
	i := s.nodeIndex(nodeID)
	if i < 0 {
		return
	}
	notes := slices.DeleteFunc(slices.Clone(s.nodes[i].Notes), func(n Note) bool {
		return n.ID == noteID
	})
	s.UpdateNode(nodeID, NodePatch{Notes: &notes})
}

// AddToThread appends the node id to the thread unless it is already there.
func (s *Store) AddToThread(nodeID string) {
	if slices.Contains(s.threadOrder, nodeID) {
		return
	}
	s.threadOrder = append(s.threadOrder, nodeID)
	s.persist(storage.ThreadOrderKey)
}

// RemoveFromThread takes the node out of the thread. The node itself stays.
func (s *Store) RemoveFromThread(nodeID string) {
	s.threadOrder = slices.DeleteFunc(s.threadOrder, func(id string) bool {
		return id == nodeID
	})
	s.persist(storage.ThreadOrderKey)
}

// ReorderThread replaces the thread order. The order is trusted as given.
func (s *Store) ReorderThread(order []string) {
	s.threadOrder = slices.Clone(order)
	if s.threadOrder == nil {
		s.threadOrder = []string{}
	}
	s.persist(storage.ThreadOrderKey)
}

// Clear resets the project to its default state and deletes the persisted keys.
func (s *Store) Clear() {
	s.subplots = defaultSubplots()
	s.nodes = []Node{}
	s.threadOrder = []string{}

	ctx, cancel := s.writeContext()
	defer cancel()
	for _, key := range storage.ProjectKeys() {
		if err := s.storage.Remove(ctx, key); err != nil {
			s.fail(key, fmt.Errorf("storage.Remove(%s) > %w", key, err))
		}
	}
}

func (s *Store) nodeIndex(id string) int {
	return slices.IndexFunc(s.nodes, func(n Node) bool {
		return n.ID == id
	})
}

func (s *Store) writeContext() (context.Context, context.CancelFunc) {
	if s.writeTimeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), s.writeTimeout)
}

func (s *Store) persist(keys ...string) {
	ctx, cancel := s.writeContext()
	defer cancel()

	for _, key := range keys {
		var value any
		switch key {
		case storage.SubplotsKey:
			value = s.subplots
		case storage.NodesKey:
			value = s.nodes
		case storage.ThreadOrderKey:
			value = s.threadOrder
		}
		raw, err := json.Marshal(value)
		if err != nil {
			s.fail(key, fmt.Errorf("json.Marshal(%s) > %w", key, err))
			continue
		}
		if err := s.storage.Set(ctx, key, raw); err != nil {
			s.fail(key, fmt.Errorf("storage.Set(%s) > %w", key, err))
		}
	}
}

func (s *Store) fail(key string, err error) {
	slog.Default().Warn("failed to persist project state",
		slog.String("key", key),
		slog.Any("error", err),
	)
	s.err = err
}
