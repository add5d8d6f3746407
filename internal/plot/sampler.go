package plot

import "math"

// Func is a scalar function that may fail at some points.
type Func func(x float64) (float64, error)

// SampleFunc evaluates fn at n evenly spaced points starting at b.XMin. The step
// is (XMax-XMin)/n, so XMax itself is never sampled. A point where fn fails
// gets Y = NaN and sampling continues.
func SampleFunc(fn Func, b Bounds, n int) (Samples, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, ErrSampleCount
	}

	step := (b.XMax - b.XMin) / float64(n)
	out := make(Samples, n)
	for i := range out {
		x := b.XMin + float64(i)*step
		y, err := fn(x)
		if err != nil {
			y = math.NaN()
		}
		out[i] = Sample{X: x, Y: y}
	}
	return out, nil
}

// Failed counts the samples whose evaluation failed or was undefined.
func (s Samples) Failed() int {
	n := 0
	for _, p := range s {
		if math.IsNaN(p.Y) {
			n++
		}
	}
	return n
}
