package graph

import (
	"cmp"
	"slices"
	"strings"

	"github.com/matzehuels/relgraph/pkg/interaction"
)

// Search returns node candidates whose label (or id, for unlabeled nodes)
// contains query, case-insensitively. Earlier matches rank first; ties are
// broken by label. An empty query matches nothing.
func (g *Graph) Search(query string) []interaction.Candidate {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	type hit struct {
		pos   int
		label string
		id    string
	}
	var hits []hit
	for _, n := range g.Nodes {
		label := n.DisplayLabel()
		pos := strings.Index(strings.ToLower(label), q)
		if pos < 0 && label != n.ID {
			pos = strings.Index(strings.ToLower(n.ID), q)
		}
		if pos < 0 {
			continue
		}
		hits = append(hits, hit{pos: pos, label: label, id: n.ID})
	}

	slices.SortFunc(hits, func(a, b hit) int {
		return cmp.Or(
			cmp.Compare(a.pos, b.pos),
			cmp.Compare(strings.ToLower(a.label), strings.ToLower(b.label)),
			cmp.Compare(a.id, b.id),
		)
	})

	out := make([]interaction.Candidate, len(hits))
	for i, h := range hits {
		out[i] = interaction.Candidate{Kind: interaction.KindNode, ID: h.id, Label: h.label}
	}
	return out
}
