package plot

import "errors"

var (
	// ErrDegenerateBounds indicates a window with zero or negative extent,
	// or non-finite limits.
	ErrDegenerateBounds = errors.New("plot: degenerate bounds")

	// ErrDegeneratePadding indicates padding that leaves no drawable area.
	ErrDegeneratePadding = errors.New("plot: padding leaves no drawable area")

	// ErrSampleCount indicates a non-positive sample count.
	ErrSampleCount = errors.New("plot: sample count must be positive")

	// ErrUnknownTransform indicates an unrecognized transform name.
	ErrUnknownTransform = errors.New("plot: unknown transform")
)
