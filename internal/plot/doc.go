// Package plot implements the numeric half of the graphing pipeline.
//
//   - [Sample]: evenly spaced (x, y) samples of a function over [Bounds]
//   - [Mapper]: domain coordinates to drawing-surface pixels
//   - [Derivative], [Integral]: finite-difference and trapezoidal transforms
//
// Every operation returns a new [Samples] value; inputs are never modified,
// so transforms compose:
//
//	s, _ := plot.SampleFunc(f, b, 1000)
//	slope := plot.Derivative(s)
//	back := plot.Integral(slope) // len(s) - 2 points
package plot
