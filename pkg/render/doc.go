// Package render turns a scene frame into image bytes.
//
// # Formats
//
//   - png: drawn with the canvas.Raster surface
//   - svg: drawn with the canvas.SVG surface
//   - pdf: the SVG converted by rsvg-convert (librsvg)
//
// Example:
//
//	sc := scene.New(g, scene.WithTheme(colors.Dark))
//	png, err := render.Render(ctx, sc, scene.FrameState{Hovered: "ada"}, render.PNG,
//	    render.WithScale(2))
//
// PDF output requires librsvg: brew install librsvg (macOS), apt install
// librsvg2-bin (Linux). [ToPDF] can also be used on its own.
package render
