package layout

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/relgraph/pkg/graph"
)

// pointsPerInch converts between graphviz inches and graph units.
const pointsPerInch = 72

// ToDOT converts g to an undirected DOT graph. Node discs become fixed-size
// circles so the engine keeps them apart; labels are left out because they
// are drawn beside the node, not inside it.
func ToDOT(g *graph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=circle, fixedsize=true, label=\"\"];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		d := 2 * n.NodeSize() / pointsPerInch
		fmt.Fprintf(&buf, "  %q [width=%s, height=%s];\n", n.ID, inches(d), inches(d))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func inches(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
