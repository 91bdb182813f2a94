// Package graph holds the relationship graph displayed by relgraph.
//
// # Format
//
// Graphs use a node-link JSON format. Positions are optional; graphs
// without them are laid out by the layout package before rendering.
//
//	{
//	  "nodes": [
//	    {"id": "ada", "label": "Ada Lovelace", "x": 0, "y": 0, "size": 8},
//	    {"id": "babbage", "label": "Charles Babbage", "color": "#d46f4d"}
//	  ],
//	  "edges": [
//	    {"from": "ada", "to": "babbage", "label": "corresponded", "type": "curved"}
//	  ]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadFile("people.json")
//	hits := g.Search("love")               // []interaction.Candidate
//	g.AssignColors(colors.Dark, rng)       // fill in missing colors
//	_ = graph.WriteFile(g, "out.json")
//
// # Search
//
// [Graph.Search] is a case-insensitive substring match over node labels
// (falling back to ids). Results are ordered by match position, then by
// label, and are returned untruncated; callers pass them through
// interaction.TruncateResults before display.
//
// # Concurrency
//
// A Graph is safe for concurrent reads. Mutating methods (AssignColors,
// layout application) must not run concurrently with readers.
package graph
