package graph

import (
	"math/rand/v2"

	"github.com/matzehuels/relgraph/pkg/colors"
	"github.com/matzehuels/relgraph/pkg/draw"
	"github.com/matzehuels/relgraph/pkg/errors"
)

// Edge types.
const (
	EdgeStraight = "straight"
	EdgeCurved   = "curved"
)

// DefaultNodeSize is used for nodes that do not set a size.
const DefaultNodeSize = 6

// Graph is a relationship graph.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	index map[string]int
}

// Node is a graph vertex. X and Y are in graph units; Size is the disc
// radius in pixels at camera ratio 1.
type Node struct {
	ID         string         `json:"id"`
	Label      string         `json:"label,omitempty"`
	HoverLabel string         `json:"hover_label,omitempty"` // Shown on hover when Label is empty
	X          float64        `json:"x,omitempty"`
	Y          float64        `json:"y,omitempty"`
	Size       float64        `json:"size,omitempty"`
	Color      string         `json:"color,omitempty"`
	LabelSize  float64        `json:"label_size,omitempty"`
	LabelColor string         `json:"label_color,omitempty"`
	Meta       map[string]any `json:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// NodeSize returns the size, defaulting to DefaultNodeSize.
func (n *Node) NodeSize() float64 {
	if n.Size > 0 {
		return n.Size
	}
	return DefaultNodeSize
}

// Display returns the node's draw attributes in graph space. The scene
// replaces position and size with viewport values before drawing.
func (n *Node) Display() draw.NodeDisplay {
	return draw.NodeDisplay{
		X:          n.X,
		Y:          n.Y,
		Size:       n.NodeSize(),
		Color:      n.Color,
		Label:      n.Label,
		HoverLabel: n.HoverLabel,
		LabelSize:  n.LabelSize,
		LabelColor: n.LabelColor,
	}
}

// Edge is a relationship between two nodes.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
	Type  string `json:"type,omitempty"` // EdgeStraight (default) or EdgeCurved
}

// IsCurved reports whether the edge is drawn as a curve.
func (e Edge) IsCurved() bool { return e.Type == EdgeCurved }

// Validate checks that node ids are non-empty and unique, that node colors
// parse, that edges reference existing nodes and that edge types are known. It rebuilds the
// id index used by Node.
func (g *Graph) Validate() error {
	index := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGraph, err, "node %d", i)
		}
		if _, dup := index[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidGraph, "duplicate node id %q", n.ID)
		}
		for _, c := range []string{n.Color, n.LabelColor} {
			if c == "" {
				continue
			}
			if _, err := colors.Parse(c); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidGraph, err, "node %q", n.ID)
			}
		}
		index[n.ID] = i
	}
	for i, e := range g.Edges {
		if _, ok := index[e.From]; !ok {
			return errors.New(errors.ErrCodeInvalidGraph, "edge %d: unknown source %q", i, e.From)
		}
		if _, ok := index[e.To]; !ok {
			return errors.New(errors.ErrCodeInvalidGraph, "edge %d: unknown target %q", i, e.To)
		}
		switch e.Type {
		case "", EdgeStraight, EdgeCurved:
		default:
			return errors.New(errors.ErrCodeInvalidGraph, "edge %d: unknown type %q", i, e.Type)
		}
	}
	g.index = index
	return nil
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	if g.index == nil || len(g.index) != len(g.Nodes) {
		g.reindex()
	}
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return &g.Nodes[i], true
}

func (g *Graph) reindex() {
	g.index = make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		g.index[n.ID] = i
	}
}

// HasPositions reports whether any node carries a non-origin position.
// Graphs without positions need a layout pass.
func (g *Graph) HasPositions() bool {
	for _, n := range g.Nodes {
		if n.X != 0 || n.Y != 0 {
			return true
		}
	}
	return false
}

// AssignColors gives every node without a color a random one biased by the
// theme mode.
func (g *Graph) AssignColors(mode colors.Mode, rng *rand.Rand) {
	for i := range g.Nodes {
		if g.Nodes[i].Color == "" {
			g.Nodes[i].Color = colors.RandomColor(mode, rng)
		}
	}
}

// Clone returns a deep copy of the graph structure. Meta maps are shared.
func (g *Graph) Clone() *Graph {
	out := &Graph{
		Nodes: append([]Node(nil), g.Nodes...),
		Edges: append([]Edge(nil), g.Edges...),
	}
	out.reindex()
	return out
}
