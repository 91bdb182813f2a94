// Package layout computes node positions for graphs that do not carry them.
//
// Layout is delegated to Graphviz through goccy/go-graphviz, which bundles
// Graphviz as WebAssembly so no system installation is needed. The graph is
// converted to an undirected DOT document ([ToDOT]), laid out with a
// force-directed engine and rendered in Graphviz's "plain" text format, from
// which positions are read back:
//
//	err := layout.Apply(ctx, g, layout.Options{Engine: layout.EngineNeato})
//
// Positions are written in points with y growing downward, matching the
// screen convention used by the scene package.
package layout
