package render_test

import (
	"context"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fnviz/internal/plot"
	"github.com/san-kum/fnviz/internal/render"
	"github.com/san-kum/fnviz/internal/surface"
)

var padding = plot.Padding{Left: 60, Top: 100, Right: 60, Bottom: 300}

func kinds(ops []surface.Op) []surface.OpKind {
	out := make([]surface.OpKind, len(ops))
	for i, op := range ops {
		out[i] = op.Kind
	}
	return out
}

func linear(n int) plot.Samples {
	s, err := plot.SampleFunc(func(x float64) (float64, error) { return 0.25 + x/2, nil }, plot.UnitSquare, n)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("QuadInOut", func() {
	DescribeTable("known points",
		func(t, want float64) {
			Expect(render.QuadInOut(t)).To(BeNumerically("~", want, 1e-12))
		},
		Entry("start", 0.0, 0.0),
		Entry("quarter", 0.25, 0.125),
		Entry("half", 0.5, 0.5),
		Entry("three quarters", 0.75, 0.875),
		Entry("end", 1.0, 1.0),
	)

	It("is monotonic", func() {
		prev := -1.0
		for t := 0.0; t <= 1.0; t += 0.01 {
			v := render.QuadInOut(t)
			Expect(v).To(BeNumerically(">=", prev))
			prev = v
		}
	})
})

var _ = Describe("Renderer", func() {
	var (
		rec *surface.Recorder
		r   *render.Renderer
		m   plot.Mapper
	)

	BeforeEach(func() {
		var err error
		rec = surface.NewRecorder(800, 600)
		r, err = render.New(rec, surface.DefaultStyle)
		Expect(err).NotTo(HaveOccurred())
		m, err = plot.NewMapper(800, 600, padding, plot.UnitSquare)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects an unparseable style", func() {
		_, err := render.New(rec, surface.Style{Background: "???", Line: "black"})
		Expect(err).To(MatchError(surface.ErrColor))
	})

	Describe("Clear", func() {
		It("fills the whole surface", func() {
			r.Clear()
			ops := rec.Ops()
			Expect(kinds(ops)).To(Equal([]surface.OpKind{surface.OpClearRect, surface.OpFillStyle, surface.OpFillRect}))
			Expect(ops[2]).To(Equal(surface.Op{Kind: surface.OpFillRect, W: 800, H: 600}))
		})

		It("fills only the drawable area", func() {
			r.ClearArea(m)
			ops := rec.Ops()
			Expect(ops[0]).To(Equal(surface.Op{Kind: surface.OpClearRect, X: 60, Y: 100, W: 680, H: 200}))
			Expect(ops[2]).To(Equal(surface.Op{Kind: surface.OpFillRect, X: 60, Y: 100, W: 680, H: 200}))
		})
	})

	Describe("Draw", func() {
		It("moves to a point outside the vertical range", func() {
			r.Draw(plot.Samples{{X: 0, Y: 0.5}, {X: 0.5, Y: 3}}, m)

			ops := rec.Ops()
			Expect(kinds(ops)).To(Equal([]surface.OpKind{
				surface.OpClearRect, surface.OpFillStyle, surface.OpFillRect,
				surface.OpStrokeStyle, surface.OpLineWidth,
				surface.OpBeginPath, surface.OpMoveTo, surface.OpMoveTo,
				surface.OpStroke, surface.OpClosePath,
			}))
			p := m.Map(plot.Sample{X: 0.5, Y: 3})
			Expect(ops[7]).To(Equal(surface.Op{Kind: surface.OpMoveTo, X: p.X, Y: p.Y}))
		})

		It("draws in-range points as one stroke", func() {
			r.Draw(linear(10), m)
			strokes := rec.Strokes()
			Expect(strokes).To(HaveLen(1))
			Expect(strokes[0]).To(HaveLen(10))
			Expect(strokes[0][0].Kind).To(Equal(surface.OpMoveTo))
			for _, op := range strokes[0][1:] {
				Expect(op.Kind).To(Equal(surface.OpLineTo))
			}
		})

		It("lifts the pen over NaN and infinite samples", func() {
			s := plot.Samples{{X: 0, Y: 0.1}, {X: 0.2, Y: 0.2}, {X: 0.4, Y: math.NaN()}, {X: 0.6, Y: 0.3}, {X: 0.7, Y: math.Inf(1)}, {X: 0.8, Y: 0.4}}
			r.Draw(s, m)
			Expect(kinds(rec.Strokes()[0])).To(Equal([]surface.OpKind{
				surface.OpMoveTo, surface.OpLineTo, surface.OpMoveTo, surface.OpMoveTo,
			}))
		})

		It("draws nothing but the background for an empty set", func() {
			r.Draw(nil, m)
			Expect(rec.Count(surface.OpMoveTo)).To(BeZero())
			Expect(rec.Count(surface.OpStroke)).To(Equal(1))
		})
	})

	Describe("Animation", func() {
		It("spans the configured number of frames", func() {
			a := r.Animate(linear(10), m)
			Expect(a.Frames()).To(Equal(120))
			Expect(a.Interval()).To(Equal(render.DefaultFrameInterval))

			b := r.Animate(linear(10), m, render.WithDuration(time.Second), render.WithFrameInterval(100*time.Millisecond))
			Expect(b.Frames()).To(Equal(10))
		})

		It("reveals every sample with one sample of overlap", func() {
			samples := linear(100)
			a := r.Animate(samples, m)

			covered := map[float64]bool{}
			for k := 0; !a.Done(); k++ {
				before := a.Boundary()
				seen := len(rec.Strokes())
				a.AdvanceStep(k)
				Expect(a.Boundary()).To(BeNumerically(">=", before))

				strokes := rec.Strokes()
				if len(strokes) == seen {
					continue
				}
				Expect(strokes).To(HaveLen(seen + 1))
				slice := strokes[seen]
				if before > 0 {
					want := m.Map(samples[before-1])
					Expect(slice[0].X).To(BeNumerically("~", want.X, 1e-9))
				}
				for _, op := range slice {
					covered[op.X] = true
				}
				Expect(k).To(BeNumerically("<=", a.Frames()))
			}

			Expect(a.Boundary()).To(Equal(len(samples)))
			for _, s := range samples {
				Expect(covered).To(HaveKey(m.Map(s).X))
			}
		})

		It("follows the wall clock", func() {
			a := r.Animate(linear(100), m)
			t0 := time.Unix(0, 0)
			a.Start(t0)

			Expect(a.Advance(t0.Add(500 * time.Millisecond))).To(BeFalse())
			Expect(a.Boundary()).To(Equal(13)) // ceil(QuadInOut(0.25) * 100)

			Expect(a.Advance(t0.Add(time.Second))).To(BeFalse())
			Expect(a.Boundary()).To(Equal(50))

			Expect(a.Advance(t0.Add(5 * time.Second))).To(BeTrue())
			Expect(a.Boundary()).To(Equal(100))
		})

		It("reveals everything on the first step with Instant easing", func() {
			a := r.Animate(linear(40), m, render.WithEasing(render.Instant))
			Expect(a.AdvanceStep(0)).To(BeTrue())
			Expect(a.Boundary()).To(Equal(40))
			Expect(rec.Strokes()).To(HaveLen(1))
		})

		It("clears once and finishes immediately with no samples", func() {
			a := r.Animate(plot.Samples{}, m)
			a.Start(time.Now())
			Expect(a.Done()).To(BeTrue())
			Expect(rec.Count(surface.OpFillRect)).To(Equal(1))
		})

		It("runs to completion on a ticker", func() {
			a := r.Animate(linear(50), m, render.WithDuration(100*time.Millisecond))
			t0 := time.Now()
			a.Start(t0)

			ticks := make(chan time.Time)
			go func() {
				defer GinkgoRecover()
				for k := 1; k <= 10; k++ {
					ticks <- t0.Add(time.Duration(k) * 10 * time.Millisecond)
				}
			}()
			Expect(a.Run(context.Background(), ticks)).To(Succeed())
			Expect(a.Boundary()).To(Equal(50))
		})

		It("stops drawing once cancelled", func() {
			a := r.Animate(linear(50), m)
			ctx, cancel := context.WithCancel(context.Background())
			t0 := time.Now()
			a.Start(t0)

			ticks := make(chan time.Time, 1)
			ticks <- t0.Add(time.Second)
			a.Advance(<-ticks)
			drawn := rec.Count(surface.OpStroke)

			cancel()
			ticks <- t0.Add(2 * time.Second)
			Expect(a.Run(ctx, ticks)).To(MatchError(context.Canceled))
			Expect(rec.Count(surface.OpStroke)).To(Equal(drawn))
			Expect(a.Done()).To(BeFalse())
		})
	})
})
