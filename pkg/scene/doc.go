// Package scene draws a graph frame by frame onto a [draw.Surface].
//
// A [Scene] plays the part of the graph-rendering engine: it fits graph
// coordinates into the viewport, applies the [Camera], draws edges and node
// discs, and invokes the node draw hooks (by default [draw.DrawLabel] and
// [draw.DrawHover]) with each node's screen-space attributes.
//
// The camera implements interaction.CameraFollower, so a Coordinator can
// drive it directly:
//
//	sc := scene.New(g, scene.WithTheme(colors.Dark), scene.WithSize(800, 600))
//	coord := interaction.NewCoordinator(sc.Camera)
//	coord.Select("ada")         // camera starts an animated move
//	sc.Camera.Advance(16 * time.Millisecond)
//	sc.Frame(surface, scene.FrameState{Highlighted: coord.Instruction().Target})
package scene
