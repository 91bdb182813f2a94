package interaction

// State is the interaction state. Empty strings mean "no node".
type State struct {
	Selected string `json:"selected,omitempty"`
	Focused  string `json:"focused,omitempty"`
}

// Select sets the selected node. An empty id clears the selection.
func (s State) Select(id string) State {
	s.Selected = id
	return s
}

// Focus applies a search focus event. A nil candidate clears the focus,
// node candidates focus their node and anything else leaves s unchanged.
func (s State) Focus(c *Candidate) State {
	switch {
	case c == nil:
		s.Focused = ""
	case c.Selectable():
		s.Focused = c.ID
	}
	return s
}

// Change applies a search change event (the user picked a result) with the
// same rules as Focus, but to the selection.
func (s State) Change(c *Candidate) State {
	switch {
	case c == nil:
		s.Selected = ""
	case c.Selectable():
		s.Selected = c.ID
	}
	return s
}

// Target returns the node the camera should follow: the focused node if
// any, otherwise the selected one.
func (s State) Target() string {
	if s.Focused != "" {
		return s.Focused
	}
	return s.Selected
}

// MoveCamera reports whether following Target should animate the camera.
// Search focus recenters in place while the user scans results.
func (s State) MoveCamera() bool {
	return s.Focused == ""
}

// Instruction returns the camera instruction derived from s.
func (s State) Instruction() Instruction {
	return Instruction{Target: s.Target(), Animate: s.MoveCamera()}
}

// Instruction is what the camera-follow primitive receives.
type Instruction struct {
	Target  string `json:"target"`
	Animate bool   `json:"animate"`
}
