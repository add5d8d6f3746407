// Package viz is the terminal front end: an expression input box above a
// braille plot, built on Bubble Tea.
//
// # Key Bindings
//
//	Enter   - Clear and plot the typed expression
//	Ctrl+D  - Replace the plot with its derivative
//	Tab     - Replace the plot with its integral (Ctrl+I)
//	Ctrl+T  - Cycle color themes
//	Esc     - Quit
//
// The plot is drawn by a [visualizer.Visualizer] on a braille surface.
// Eased draws animate on the visualizer's goroutine; the UI copies the
// surface on every frame tick.
package viz
