package plot

import (
	"fmt"
	"math"
)

// Bounds is the visible window in function space.
type Bounds struct {
	XMin float64 `yaml:"xmin" json:"xmin"`
	XMax float64 `yaml:"xmax" json:"xmax"`
	YMin float64 `yaml:"ymin" json:"ymin"`
	YMax float64 `yaml:"ymax" json:"ymax"`
}

// UnitSquare is the default window.
var UnitSquare = Bounds{XMin: 0, XMax: 1, YMin: 0, YMax: 1}

// Validate checks XMin < XMax and YMin < YMax with finite limits.
func (b Bounds) Validate() error {
	for _, v := range []float64{b.XMin, b.XMax, b.YMin, b.YMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite limit in %v", ErrDegenerateBounds, b)
		}
	}
	if b.XMin >= b.XMax {
		return fmt.Errorf("%w: xmin %g >= xmax %g", ErrDegenerateBounds, b.XMin, b.XMax)
	}
	if b.YMin >= b.YMax {
		return fmt.Errorf("%w: ymin %g >= ymax %g", ErrDegenerateBounds, b.YMin, b.YMax)
	}
	return nil
}

// Contains reports whether y lies inside the vertical range.
func (b Bounds) Contains(y float64) bool {
	return y >= b.YMin && y <= b.YMax
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%g, %g] x [%g, %g]", b.XMin, b.XMax, b.YMin, b.YMax)
}

// Padding is the pixel margin around the plotted area.
type Padding struct {
	Left   float64 `yaml:"left" json:"left"`
	Top    float64 `yaml:"top" json:"top"`
	Right  float64 `yaml:"right" json:"right"`
	Bottom float64 `yaml:"bottom" json:"bottom"`
}

// Validate checks that the padding leaves a positive drawable area on a
// surface of the given size.
func (p Padding) Validate(width, height float64) error {
	if p.Left < 0 || p.Top < 0 || p.Right < 0 || p.Bottom < 0 {
		return fmt.Errorf("%w: negative margin in %+v", ErrDegeneratePadding, p)
	}
	if p.Left+p.Right >= width {
		return fmt.Errorf("%w: left+right %g >= width %g", ErrDegeneratePadding, p.Left+p.Right, width)
	}
	if p.Top+p.Bottom >= height {
		return fmt.Errorf("%w: top+bottom %g >= height %g", ErrDegeneratePadding, p.Top+p.Bottom, height)
	}
	return nil
}

// Sample is one evaluation. Y is NaN when evaluation failed.
type Sample struct {
	X, Y float64
}

// Samples is an ordered dataset.
type Samples []Sample

// Clone returns a copy of s.
func (s Samples) Clone() Samples {
	out := make(Samples, len(s))
	copy(out, s)
	return out
}

// Ys returns the y values in order.
func (s Samples) Ys() []float64 {
	ys := make([]float64, len(s))
	for i, p := range s {
		ys[i] = p.Y
	}
	return ys
}

// Point is a drawing-surface coordinate in pixels.
type Point struct {
	X, Y float64
}
