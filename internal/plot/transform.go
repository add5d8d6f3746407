package plot

import (
	"fmt"
	"strings"
)

// xStep returns the spacing of a uniformly spaced dataset, or 1 when there
// are fewer than two samples.
func xStep(s Samples) float64 {
	if len(s) > 1 {
		return s[1].X - s[0].X
	}
	return 1
}

// Derivative returns the forward-difference slope between neighbouring
// samples, anchored at the left sample's x. The result has len(s)-1 points.
func Derivative(s Samples) Samples {
	if len(s) <= 1 {
		return Samples{}
	}
	step := xStep(s)
	out := make(Samples, len(s)-1)
	for i := range out {
		out[i] = Sample{X: s[i].X, Y: (s[i+1].Y - s[i].Y) / step}
	}
	return out
}

// Integral returns the trapezoidal running sum of s. Each point sits at the
// midpoint of the segment it closes. The result has len(s)-1 points.
func Integral(s Samples) Samples {
	if len(s) <= 1 {
		return Samples{}
	}
	step := xStep(s)
	out := make(Samples, len(s)-1)
	sum := 0.0
	for i := range out {
		sum += (s[i].Y + s[i+1].Y) / 2 * step
		out[i] = Sample{X: (s[i].X + s[i+1].X) / 2, Y: sum}
	}
	return out
}

// Transform is a named dataset transform.
type Transform int

const (
	Derive Transform = iota
	Integrate
)

func (t Transform) String() string {
	switch t {
	case Derive:
		return "derivative"
	case Integrate:
		return "integral"
	}
	return fmt.Sprintf("Transform(%d)", int(t))
}

// ParseTransform accepts "d", "derive", "derivative", "i", "integrate" and
// "integral".
func ParseTransform(name string) (Transform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "d", "derive", "derivative":
		return Derive, nil
	case "i", "integrate", "integral":
		return Integrate, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
}

// ParseTransforms parses a comma separated chain such as "d,i".
func ParseTransforms(chain string) ([]Transform, error) {
	if strings.TrimSpace(chain) == "" {
		return nil, nil
	}
	parts := strings.Split(chain, ",")
	out := make([]Transform, 0, len(parts))
	for _, p := range parts {
		t, err := ParseTransform(p)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Apply runs the transform on s.
func (t Transform) Apply(s Samples) Samples {
	if t == Integrate {
		return Integral(s)
	}
	return Derivative(s)
}

// ApplyAll runs ts left to right.
func ApplyAll(s Samples, ts ...Transform) Samples {
	for _, t := range ts {
		s = t.Apply(s)
	}
	return s
}
