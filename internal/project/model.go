// Package project holds a story project: subplot lanes, the scenes (nodes)
// filed under them, and the thread order that promotes a subset of scenes
// into the common timeline.
package project

import (
	"errors"
	"slices"
	"strings"
	"time"
)

const (
	DefaultSubplotID    = "sub-1"
	DefaultSubplotName  = "Main Plot"
	DefaultSubplotColor = "#38bdf8"

	DefaultNodeText  = "New Scene"
	DefaultIntensity = 5

	// Intensity is advisory: entry points clamp to this range, the store does not.
	MinIntensity = 0
	MaxIntensity = 10

	// Used when a node references a subplot that no longer exists.
	UnknownSubplotName  = "Unknown"
	UnknownSubplotColor = "#94a3b8"
)

// ErrEmptyName is returned by ValidateSubplotName for blank names.
var ErrEmptyName = errors.New("subplot name must not be empty")

// Subplot is a named, colored lane of scenes.
type Subplot struct {
	ID    string `json:"id" yaml:"id" validate:"required"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// Node is a scene filed under a subplot.
type Node struct {
	ID        string `json:"id" yaml:"id" validate:"required"`
	SubplotID string `json:"subplotId" yaml:"subplotId"`
	Text      string `json:"text" yaml:"text"`
	Intensity int    `json:"intensity" yaml:"intensity"`
	Notes     []Note `json:"notes" yaml:"notes" validate:"dive"`
}

// Note is a free-form annotation on a node.
type Note struct {
	ID        string    `json:"id" yaml:"id" validate:"required"`
	Text      string    `json:"text" yaml:"text"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// NodePatch lists the fields to change on a node. Nil fields are left as they are.
type NodePatch struct {
	SubplotID *string
	Text      *string
	Intensity *int
	Notes     *[]Note
}

func (p NodePatch) apply(n *Node) {
	if p.SubplotID != nil {
		n.SubplotID = *p.SubplotID
	}
	if p.Text != nil {
		n.Text = *p.Text
	}
	if p.Intensity != nil {
		n.Intensity = *p.Intensity
	}
	if p.Notes != nil {
		n.Notes = slices.Clone(*p.Notes)
		if n.Notes == nil {
			n.Notes = []Note{}
		}
	}
}

// NoteTexts returns the text of every note in order.
func (n Node) NoteTexts() []string {
	texts := make([]string, 0, len(n.Notes))
	for _, note := range n.Notes {
		texts = append(texts, note.Text)
	}
	return texts
}

func (n Node) clone() Node {
	n.Notes = slices.Clone(n.Notes)
	if n.Notes == nil {
		n.Notes = []Note{}
	}
	return n
}

// ClampIntensity limits v to [MinIntensity, MaxIntensity].
func ClampIntensity(v int) int {
	return min(max(v, MinIntensity), MaxIntensity)
}

// ValidateSubplotName rejects names that are empty after trimming.
func ValidateSubplotName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

func defaultSubplots() []Subplot {
	return []Subplot{{ID: DefaultSubplotID, Name: DefaultSubplotName, Color: DefaultSubplotColor}}
}

func cloneNodes(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.clone())
	}
	return out
}
