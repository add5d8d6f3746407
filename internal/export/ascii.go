package export

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fnviz/internal/plot"
)

type ASCIIOptions struct {
	Width, Height int
	Caption       string
}

// ASCII renders samples as a terminal line chart. Samples are picked evenly
// down to Width columns; values outside b are dropped so the vertical axis
// spans exactly b.YMin..b.YMax.
func ASCII(samples plot.Samples, b plot.Bounds, o ASCIIOptions) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	ys := resample(samples.Ys(), o.Width)
	drawable := 0
	for i, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) || !b.Contains(y) {
			ys[i] = math.NaN()
			continue
		}
		drawable++
	}
	if drawable == 0 {
		return "", ErrNoData
	}

	opts := []asciigraph.Option{
		asciigraph.LowerBound(b.YMin),
		asciigraph.UpperBound(b.YMax),
		asciigraph.Precision(2),
	}
	if o.Height > 0 {
		opts = append(opts, asciigraph.Height(o.Height))
	}
	if o.Caption != "" {
		opts = append(opts, asciigraph.Caption(o.Caption))
	}
	return asciigraph.Plot(ys, opts...), nil
}

func resample(ys []float64, width int) []float64 {
	if width <= 0 || len(ys) <= width {
		out := make([]float64, len(ys))
		copy(out, ys)
		return out
	}
	out := make([]float64, width)
	for i := range out {
		out[i] = ys[i*len(ys)/width]
	}
	return out
}
