// Package canvas provides [draw.Surface] implementations.
//
//   - [Raster]: fogleman/gg backed RGBA image. Shadows are rendered on a
//     separate layer and blurred with disintegration/imaging.
//   - [SVG]: vector output with shadows expressed as SVG filters.
//
// Both surfaces follow canvas conventions: y grows downward, arcs sweep
// clockwise, fillText places the alphabetic baseline at y, and fonts are CSS
// shorthands resolved through the fonts package so both produce the same
// text metrics.
//
// Surfaces are not safe for concurrent use.
package canvas
