package interaction

import "fmt"

// MaxResults is the number of node entries kept by TruncateResults.
const MaxResults = 10

// Kind distinguishes search result entries.
type Kind string

const (
	// KindNode is a result that refers to a graph node.
	KindNode Kind = "nodes"
	// KindMessage is an informational placeholder.
	KindMessage Kind = "message"
)

// Candidate is a search result entry.
type Candidate struct {
	Kind    Kind   `json:"type"`
	ID      string `json:"id,omitempty"`
	Label   string `json:"label,omitempty"`
	Message string `json:"message,omitempty"`
	Omitted int    `json:"omitted,omitempty"`
}

// NodeCandidate returns a node result for id.
func NodeCandidate(id string) *Candidate {
	return &Candidate{Kind: KindNode, ID: id}
}

// Selectable reports whether c can be focused or selected.
func (c Candidate) Selectable() bool {
	return c.Kind == KindNode && c.ID != ""
}

// TruncateResults keeps at most MaxResults entries. Longer lists get a
// trailing message entry counting the omitted matches; shorter ones are
// returned as is.
func TruncateResults(results []Candidate) []Candidate {
	if len(results) <= MaxResults {
		return results
	}
	omitted := len(results) - MaxResults
	out := make([]Candidate, 0, MaxResults+1)
	out = append(out, results[:MaxResults]...)
	return append(out, Candidate{
		Kind:    KindMessage,
		Message: fmt.Sprintf("And %d others", omitted),
		Omitted: omitted,
	})
}
