package visualizer

import (
	"log/slog"
	"time"

	"github.com/san-kum/fnviz/internal/plot"
	"github.com/san-kum/fnviz/internal/render"
	"github.com/san-kum/fnviz/internal/surface"
)

// Option configures a Visualizer at construction.
type Option func(*Visualizer)

func WithStyle(st surface.Style) Option {
	return func(v *Visualizer) { v.style = st }
}

func WithLogger(l *slog.Logger) Option {
	return func(v *Visualizer) {
		if l != nil {
			v.log = l
		}
	}
}

func WithFallback(f Fallback) Option {
	return func(v *Visualizer) { v.fallback = f }
}

// WithAnimation sets the reveal duration and tick interval.
func WithAnimation(duration, interval time.Duration) Option {
	return func(v *Visualizer) {
		if duration > 0 {
			v.duration = duration
		}
		if interval > 0 {
			v.interval = interval
		}
	}
}

func WithEasing(e render.Easing) Option {
	return func(v *Visualizer) {
		if e != nil {
			v.easing = e
		}
	}
}

// WithTicker replaces time.NewTicker as the animation clock.
func WithTicker(fn func(time.Duration) Ticker) Option {
	return func(v *Visualizer) {
		if fn != nil {
			v.newTicker = fn
		}
	}
}

// WithDefaultBounds sets the window used when a call gives none.
func WithDefaultBounds(b plot.Bounds) Option {
	return func(v *Visualizer) { v.bounds = b }
}

type renderOpts struct {
	ease    bool
	bounds  plot.Bounds
	samples int
}

// RenderOption adjusts a single Visualize, Differentiate or Integrate call.
type RenderOption func(*renderOpts)

// Eased selects the animated reveal (default) or an immediate draw.
func Eased(on bool) RenderOption {
	return func(o *renderOpts) { o.ease = on }
}

// InBounds sets the window for this call.
func InBounds(b plot.Bounds) RenderOption {
	return func(o *renderOpts) { o.bounds = b }
}

// NumSamples sets the sample count for Visualize. Ignored by transforms.
func NumSamples(n int) RenderOption {
	return func(o *renderOpts) { o.samples = n }
}

func (v *Visualizer) renderOptions(opts []RenderOption) renderOpts {
	v.mu.Lock()
	o := renderOpts{ease: true, bounds: v.bounds, samples: DefaultSamples}
	v.mu.Unlock()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
