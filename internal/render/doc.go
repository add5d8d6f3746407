// Package render draws sample sets onto a [surface.Surface].
//
// [Renderer.Draw] paints a curve in one stroke. [Renderer.Animate] returns an
// [Animation], an explicit state object that reveals the curve progressively
// along an easing curve; it is advanced either by wall-clock time
// ([Animation.Advance], [Animation.Run]) or by frame number
// ([Animation.AdvanceStep]).
//
// # Line breaks
//
// A sample whose y lies outside the window's vertical range is reached with
// a move instead of a line, so the curve leaves the window without being
// drawn across it. Samples that are NaN or map to a non-finite pixel are
// skipped, and the next drawable sample starts a new sub-path.
package render
