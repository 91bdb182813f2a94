// Package draw implements the per-node label and hover drawing routines.
//
// # Overview
//
// The functions in this package are draw hooks: a rendering engine that owns
// the scene, camera and frame loop calls them once per visible (or hovered)
// node with that node's display attributes and the global [Settings]. They
// hold no state and never keep references to their arguments.
//
//   - [DrawLabel]: node label to the right of the node
//   - [DrawHover]: shadowed "pill" behind the label, or a halo when the node
//     has no label, followed by the label itself
//
// # Surfaces
//
// Drawing goes through the [Surface] interface, a subset of the HTML canvas
// 2D context. Arcs follow canvas semantics: angles in radians, swept
// clockwise in screen space. Backends live in the canvas package; [Recorder]
// captures the command stream for tests and debugging.
//
// Each routine sets every surface property it depends on (fill style, font,
// shadow) and clears the shadow it installs, so callers can treat the surface
// as scoped to a single call.
//
// # Hover Geometry
//
// [ComputeHoverGeometry] exposes the numbers behind the hover pill:
//
//	boxWidth  = round(textWidth + 5)
//	boxHeight = round(fontSize + 2*Padding)
//	radius    = max(nodeSize, fontSize/2) + Padding
//	angle     = asin((boxHeight/2) / radius)
//	xDelta    = sqrt(|radius² - (boxHeight/2)²|)
//
// When the label box is taller than the circle the arcsine argument would
// exceed 1. The angle is then pinned to π/2, the box is joined at the node
// center (xDelta = 0) and [HoverGeometry.Clamped] is set.
package draw
