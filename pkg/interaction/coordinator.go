package interaction

import "github.com/matzehuels/relgraph/pkg/observability"

// CameraFollower is the engine's camera-follow primitive.
type CameraFollower interface {
	Follow(target string, animate bool)
}

// FollowerFunc adapts a function to CameraFollower.
type FollowerFunc func(target string, animate bool)

// Follow calls f.
func (f FollowerFunc) Follow(target string, animate bool) { f(target, animate) }

// Coordinator holds the interaction state for one view and notifies the
// camera whenever the derived instruction changes.
type Coordinator struct {
	state  State
	last   Instruction
	camera CameraFollower
}

// NewCoordinator returns a coordinator in the initial (no selection, no
// focus) state. camera may be nil.
func NewCoordinator(camera CameraFollower) *Coordinator {
	return &Coordinator{
		last:   State{}.Instruction(),
		camera: camera,
	}
}

// Restore returns a coordinator resuming from s without notifying the
// camera.
func Restore(s State, camera CameraFollower) *Coordinator {
	return &Coordinator{state: s, last: s.Instruction(), camera: camera}
}

// State returns the current state.
func (c *Coordinator) State() State { return c.state }

// Instruction returns the current camera instruction.
func (c *Coordinator) Instruction() Instruction { return c.last }

// Select handles a click selection. An empty id clears it.
func (c *Coordinator) Select(id string) Instruction {
	return c.apply("select", c.state.Select(id))
}

// Hover handles pointer hover reported as a selection, which is how the
// engine surfaces it.
func (c *Coordinator) Hover(id string) Instruction {
	return c.apply("hover", c.state.Select(id))
}

// OnFocus handles the search widget's focus event.
func (c *Coordinator) OnFocus(cand *Candidate) Instruction {
	return c.apply("focus", c.state.Focus(cand))
}

// OnChange handles the search widget's change event.
func (c *Coordinator) OnChange(cand *Candidate) Instruction {
	return c.apply("change", c.state.Change(cand))
}

// Value is the controlled value of the search widget: the selected node, or
// nil.
func (c *Coordinator) Value() *Candidate {
	if c.state.Selected == "" {
		return nil
	}
	return NodeCandidate(c.state.Selected)
}

// PostSearchResult is the search widget's result filter.
func (c *Coordinator) PostSearchResult(results []Candidate) []Candidate {
	return TruncateResults(results)
}

func (c *Coordinator) apply(event string, next State) Instruction {
	if next == c.state {
		return c.last
	}
	c.state = next
	observability.Interaction().OnTransition(event, next.Selected, next.Focused)

	in := next.Instruction()
	if in == c.last {
		return in
	}
	c.last = in
	if c.camera != nil {
		c.camera.Follow(in.Target, in.Animate)
	}
	observability.Interaction().OnCameraFollow(in.Target, in.Animate)
	return in
}
