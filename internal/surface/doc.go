// Package surface defines the 2D drawing surface the renderer paints on and
// its implementations:
//
//   - [Recorder]: remembers every call; used by tests and for debugging
//   - [Raster]: anti-aliased image backed by draw2d
//   - [SVG]: vector output written with svgo
//   - [Braille]: terminal canvas with 2x4 dots per character cell
//
// The call set mirrors an immediate-mode canvas: paths are built with
// BeginPath, MoveTo and LineTo, and painted with Stroke.
package surface
