package render

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/san-kum/fnviz/internal/plot"
)

const (
	DefaultDuration      = 2 * time.Second
	DefaultFrameInterval = time.Second / 60
)

// AnimOption configures an Animation.
type AnimOption func(*Animation)

// WithEasing replaces QuadInOut.
func WithEasing(e Easing) AnimOption {
	return func(a *Animation) { a.ease = e }
}

// WithDuration sets the wall-clock length of the reveal.
func WithDuration(d time.Duration) AnimOption {
	return func(a *Animation) {
		if d > 0 {
			a.duration = d
		}
	}
}

// WithFrameInterval sets the tick interval the animation is designed for.
func WithFrameInterval(d time.Duration) AnimOption {
	return func(a *Animation) {
		if d > 0 {
			a.interval = d
		}
	}
}

// WithLocker makes Run hold l around every reveal step. Use it when other
// goroutines share the surface.
func WithLocker(l sync.Locker) AnimOption {
	return func(a *Animation) { a.lock = l }
}

// Animation reveals a sample set in slices. Each step draws the samples
// between the previous and the new boundary as a separate stroke, starting
// one sample early so consecutive strokes share a point and join without a
// seam.
type Animation struct {
	r        *Renderer
	samples  plot.Samples
	mapper   plot.Mapper
	ease     Easing
	duration time.Duration
	interval time.Duration
	lock     sync.Locker

	start    time.Time
	boundary int
	started  bool
	done     bool
}

// Animate prepares an eased reveal of samples. Nothing is drawn until the
// animation is started and advanced.
func (r *Renderer) Animate(samples plot.Samples, m plot.Mapper, opts ...AnimOption) *Animation {
	a := &Animation{
		r:        r,
		samples:  samples,
		mapper:   m,
		ease:     QuadInOut,
		duration: DefaultDuration,
		interval: DefaultFrameInterval,
		lock:     noLock{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start records the start time and clears the drawable area. Calling it
// again has no effect.
func (a *Animation) Start(now time.Time) {
	if a.started {
		return
	}
	a.started = true
	a.start = now
	a.r.ClearArea(a.mapper)
	if len(a.samples) == 0 {
		a.done = true
	}
}

// Frames is the number of ticks the reveal spans at the configured interval.
func (a *Animation) Frames() int {
	n := int(math.Round(float64(a.duration) / float64(a.interval)))
	return max(n, 1)
}

// Advance draws everything revealed by wall-clock time now and reports
// whether the animation is complete.
func (a *Animation) Advance(now time.Time) bool {
	if !a.started {
		a.Start(now)
	}
	return a.advance(float64(now.Sub(a.start)) / float64(a.duration))
}

// AdvanceStep draws everything revealed by frame k of Frames and reports
// whether the animation is complete.
func (a *Animation) AdvanceStep(k int) bool {
	if !a.started {
		a.Start(time.Now())
	}
	return a.advance(float64(k) / float64(a.Frames()))
}

func (a *Animation) advance(progress float64) bool {
	if a.done {
		return true
	}
	progress = math.Max(0, math.Min(1, progress))
	n := len(a.samples)

	next := int(math.Ceil(a.ease(progress) * float64(n)))
	next = max(min(next, n), a.boundary)
	if next > a.boundary {
		from := a.boundary
		if from > 0 {
			from--
		}
		to := min(next+1, n)
		a.r.stroke(a.samples[from:to], a.mapper)
		a.boundary = next
	}
	if progress >= 1 || a.boundary >= n {
		a.done = true
	}
	return a.done
}

// Boundary is the number of samples revealed so far.
func (a *Animation) Boundary() int { return a.boundary }

// Done reports whether every sample has been drawn.
func (a *Animation) Done() bool { return a.done }

// Interval is the tick interval the animation was configured with.
func (a *Animation) Interval() time.Duration { return a.interval }

// Run advances the animation on every tick until it completes or ctx is
// cancelled. Cancellation is checked under the lock before each reveal
// step, so no slice is drawn once ctx is done.
func (a *Animation) Run(ctx context.Context, ticks <-chan time.Time) error {
	a.lock.Lock()
	err := ctx.Err()
	if err == nil && !a.started {
		a.Start(time.Now())
	}
	done := a.done
	a.lock.Unlock()
	if err != nil || done {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticks:
			if done, err := a.step(ctx, now); err != nil || done {
				return err
			}
		}
	}
}

func (a *Animation) step(ctx context.Context, now time.Time) (bool, error) {
	a.lock.Lock()
	defer a.lock.Unlock()
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return a.Advance(now), nil
}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}
