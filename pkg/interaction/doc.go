// Package interaction reduces pointer, selection and search events into the
// camera instruction a rendering engine follows each frame.
//
// # State
//
// [State] is the (selected, focused) node pair. Transitions are value
// methods that always succeed:
//
//	s := interaction.State{}
//	s = s.Focus(interaction.NodeCandidate("n1"))
//	s = s.Select("n2")
//	s.Target()     // "n1": search focus wins over selection
//	s.MoveCamera() // false: search focus recenters without travel
//
// # Search Results
//
// [TruncateResults] bounds the search dropdown to [MaxResults] node entries
// plus one non-selectable summary entry. Non-node candidates are ignored by
// every transition.
//
// # Coordinator
//
// [Coordinator] owns a State and forwards each change of [Instruction] to a
// [CameraFollower] exactly once. It is meant to be driven from a single event
// loop and is not safe for concurrent use.
package interaction
