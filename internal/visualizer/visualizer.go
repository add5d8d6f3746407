package visualizer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/fnviz/internal/expr"
	"github.com/san-kum/fnviz/internal/plot"
	"github.com/san-kum/fnviz/internal/render"
	"github.com/san-kum/fnviz/internal/surface"
)

// DefaultSamples is the sample count used when none is given.
const DefaultSamples = 1000

// Fallback decides what happens when an expression fails to parse.
type Fallback int

const (
	// FallbackZero logs the error and plots the constant zero.
	FallbackZero Fallback = iota
	// FallbackNone keeps the previous expression and returns the error.
	FallbackNone
)

// Ticker delivers animation ticks.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker wraps time.NewTicker.
func NewTimeTicker(d time.Duration) Ticker { return timeTicker{time.NewTicker(d)} }

type run struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Visualizer owns one drawing surface and the state plotted on it: style,
// padding, the compiled expression and the current dataset. Its methods are
// safe for concurrent use; surface access is serialized.
type Visualizer struct {
	mu       sync.Mutex
	surface  surface.Surface
	style    surface.Style
	padding  plot.Padding
	bounds   plot.Bounds
	expr     *expr.Expression
	samples  plot.Samples
	current  *run
	fallback Fallback
	log      *slog.Logger

	duration  time.Duration
	interval  time.Duration
	easing    render.Easing
	newTicker func(time.Duration) Ticker
}

// New binds a visualizer to s. The expression starts as constant zero and
// the dataset empty.
func New(s surface.Surface, p plot.Padding, opts ...Option) *Visualizer {
	v := &Visualizer{
		surface:   s,
		style:     surface.DefaultStyle,
		padding:   p,
		bounds:    plot.UnitSquare,
		expr:      expr.Zero(),
		samples:   plot.Samples{},
		fallback:  FallbackZero,
		log:       slog.Default(),
		duration:  render.DefaultDuration,
		interval:  render.DefaultFrameInterval,
		easing:    render.QuadInOut,
		newTicker: NewTimeTicker,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetExpression compiles src and makes it current. On a parse error the
// fallback policy applies and the error is returned.
func (v *Visualizer) SetExpression(src string) error {
	_, err := v.setExpression(src)
	return err
}

// setExpression installs src, or the fallback, and returns the expression
// that is current afterwards.
func (v *Visualizer) setExpression(src string) (*expr.Expression, error) {
	e, err := expr.Compile(src)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.log.Error("problem parsing expression", "expression", src, "error", err)
		if v.fallback == FallbackZero {
			v.expr = expr.Zero()
		}
		return v.expr, err
	}
	v.expr = e
	return e, nil
}

// Expression returns the current compiled expression.
func (v *Visualizer) Expression() *expr.Expression {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.expr
}

// Samples returns a copy of the current dataset.
func (v *Visualizer) Samples() plot.Samples {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.samples.Clone()
}

// Visualize compiles src, samples it and draws the result. Under
// FallbackZero a parse error is logged and a flat line is drawn; under
// FallbackNone the error is returned and nothing is drawn.
func (v *Visualizer) Visualize(ctx context.Context, src string, opts ...RenderOption) error {
	o := v.renderOptions(opts)
	e, err := v.setExpression(src)
	if err != nil && v.fallback == FallbackNone {
		return err
	}

	samples, err := plot.SampleFunc(e.Eval, o.bounds, o.samples)
	if err != nil {
		return err
	}
	if n := samples.Failed(); n > 0 {
		v.log.Debug("undefined samples", "expression", e.String(), "count", n, "of", len(samples))
	}
	return v.show(ctx, samples, o)
}

// Differentiate replaces the dataset with its numerical derivative and
// draws it.
func (v *Visualizer) Differentiate(ctx context.Context, opts ...RenderOption) error {
	return v.transform(ctx, plot.Derive, opts)
}

// Integrate replaces the dataset with its running trapezoidal integral and
// draws it.
func (v *Visualizer) Integrate(ctx context.Context, opts ...RenderOption) error {
	return v.transform(ctx, plot.Integrate, opts)
}

func (v *Visualizer) transform(ctx context.Context, t plot.Transform, opts []RenderOption) error {
	o := v.renderOptions(opts)
	next := t.Apply(v.Samples())
	v.log.Debug("transform", "op", t.String(), "samples", len(next))
	return v.show(ctx, next, o)
}

// show validates the target window, cancels any running animation, swaps in
// the dataset and draws it.
func (v *Visualizer) show(ctx context.Context, samples plot.Samples, o renderOpts) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	m, err := plot.NewMapper(v.surface.Width(), v.surface.Height(), v.padding, o.bounds)
	if err != nil {
		return err
	}
	r, err := render.New(v.surface, v.style)
	if err != nil {
		return err
	}

	v.cancelLocked()
	v.samples = samples

	if !o.ease {
		r.Draw(samples, m)
		return nil
	}

	anim := r.Animate(samples, m,
		render.WithEasing(v.easing),
		render.WithDuration(v.duration),
		render.WithFrameInterval(v.interval),
		render.WithLocker(&v.mu),
	)
	anim.Start(time.Now())

	actx, cancel := context.WithCancel(ctx)
	cur := &run{cancel: cancel, done: make(chan struct{})}
	v.current = cur
	go func() {
		defer close(cur.done)
		defer cancel()
		t := v.newTicker(anim.Interval())
		defer t.Stop()
		cur.err = anim.Run(actx, t.C())
		if errors.Is(cur.err, context.Canceled) {
			v.log.Debug("animation cancelled", "revealed", anim.Boundary(), "of", len(samples))
		}
	}()
	return nil
}

// cancelLocked stops the in-flight animation. Once cancelled it draws
// nothing further, because each of its steps checks the context under v.mu.
func (v *Visualizer) cancelLocked() {
	if v.current != nil {
		v.current.cancel()
	}
}

// Wait blocks until the current animation has finished and returns its
// error: nil when it ran to completion, context.Canceled when it was
// preempted.
func (v *Visualizer) Wait() error {
	v.mu.Lock()
	cur := v.current
	v.mu.Unlock()
	if cur == nil {
		return nil
	}
	<-cur.done
	return cur.err
}

// Animating reports whether an animation is still revealing samples.
func (v *Visualizer) Animating() bool {
	v.mu.Lock()
	cur := v.current
	v.mu.Unlock()
	if cur == nil {
		return false
	}
	select {
	case <-cur.done:
		return false
	default:
		return true
	}
}

// Close cancels any running animation and waits for it to stop.
func (v *Visualizer) Close() error {
	v.mu.Lock()
	v.cancelLocked()
	v.mu.Unlock()
	if err := v.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Clear cancels any animation and repaints the whole surface with the
// background color.
func (v *Visualizer) Clear() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	r, err := render.New(v.surface, v.style)
	if err != nil {
		return err
	}
	v.cancelLocked()
	r.Clear()
	return nil
}

// ClearArea cancels any animation and repaints the drawable area for b.
func (v *Visualizer) ClearArea(b plot.Bounds) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	m, err := plot.NewMapper(v.surface.Width(), v.surface.Height(), v.padding, b)
	if err != nil {
		return err
	}
	r, err := render.New(v.surface, v.style)
	if err != nil {
		return err
	}
	v.cancelLocked()
	r.ClearArea(m)
	return nil
}

// Inspect runs fn with exclusive access to the surface, e.g. to copy out a
// frame while an animation is running.
func (v *Visualizer) Inspect(fn func(surface.Surface)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(v.surface)
}

// Style returns the current style.
func (v *Visualizer) Style() surface.Style {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.style
}

// SetStyle changes colors and line width for subsequent draws.
func (v *Visualizer) SetStyle(st surface.Style) error {
	if _, _, err := st.Colors(); err != nil {
		return err
	}
	v.mu.Lock()
	v.style = st
	v.mu.Unlock()
	return nil
}

// Padding returns the current padding.
func (v *Visualizer) Padding() plot.Padding {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.padding
}

// SetPadding changes the margins for subsequent draws.
func (v *Visualizer) SetPadding(p plot.Padding) error {
	if err := p.Validate(v.surface.Width(), v.surface.Height()); err != nil {
		return err
	}
	v.mu.Lock()
	v.padding = p
	v.mu.Unlock()
	return nil
}
