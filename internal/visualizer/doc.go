// Package visualizer ties the pipeline together: it owns a drawing surface
// and plots an expression, its derivative or its integral on it.
//
//	v := visualizer.New(surf, plot.Padding{Left: 60, Top: 100, Right: 60, Bottom: 300})
//	_ = v.Visualize(ctx, "3sin(x)", visualizer.InBounds(b))
//	_ = v.Wait()
//	_ = v.Differentiate(ctx, visualizer.InBounds(b))
//
// # Animations
//
// Eased draws run on a background goroutine driven by a ticker. Starting
// any new draw, or calling Clear, cancels the animation in flight; its
// remaining steps are dropped before they touch the surface.
//
// # Parse errors
//
// With the default [FallbackZero] policy a malformed expression is logged
// and replaced by the constant zero, so the caller sees a flat line. Use
// [WithFallback]([FallbackNone]) to get the error back instead.
package visualizer
