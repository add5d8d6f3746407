package visualizer_test

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fnviz/internal/expr"
	"github.com/san-kum/fnviz/internal/plot"
	"github.com/san-kum/fnviz/internal/surface"
	"github.com/san-kum/fnviz/internal/visualizer"
)

var (
	padding = plot.Padding{Left: 60, Top: 100, Right: 60, Bottom: 300}
	wave    = plot.Bounds{XMin: 0, XMax: 10, YMin: -10, YMax: 10}
)

type manualTicker struct{ c chan time.Time }

func newManualTicker() *manualTicker { return &manualTicker{c: make(chan time.Time, 1)} }

func (m *manualTicker) C() <-chan time.Time { return m.c }
func (m *manualTicker) Stop()               {}

var _ = Describe("Visualizer", func() {
	var (
		ctx    context.Context
		rec    *surface.Recorder
		logBuf *bytes.Buffer
		logger *slog.Logger
	)

	BeforeEach(func() {
		ctx = context.Background()
		rec = surface.NewRecorder(800, 600)
		logBuf = &bytes.Buffer{}
		logger = slog.New(slog.NewTextHandler(logBuf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	})

	Describe("immediate draws", func() {
		var v *visualizer.Visualizer

		BeforeEach(func() {
			v = visualizer.New(rec, padding, visualizer.WithLogger(logger))
		})

		It("starts empty with a zero expression", func() {
			Expect(v.Samples()).To(BeEmpty())
			Expect(v.Expression().String()).To(Equal("0"))
			Expect(v.Wait()).To(Succeed())
			Expect(v.Animating()).To(BeFalse())
		})

		It("samples and strokes 3sin(x)", func() {
			Expect(v.Visualize(ctx, "3sin(x)", visualizer.InBounds(wave), visualizer.Eased(false))).To(Succeed())

			s := v.Samples()
			Expect(s).To(HaveLen(visualizer.DefaultSamples))
			Expect(s[0]).To(Equal(plot.Sample{X: 0, Y: 0}))
			for i, p := range s {
				Expect(p.X).To(BeNumerically("~", float64(i)*0.01, 1e-9))
				Expect(p.Y).To(BeNumerically("~", 3*math.Sin(p.X), 1e-9))
			}
			Expect(rec.Strokes()).To(HaveLen(1))
			Expect(rec.Count(surface.OpMoveTo) + rec.Count(surface.OpLineTo)).To(Equal(len(s)))
		})

		It("honours the sample count option", func() {
			Expect(v.Visualize(ctx, "x", visualizer.NumSamples(10), visualizer.Eased(false))).To(Succeed())
			Expect(v.Samples()).To(HaveLen(10))
		})

		It("returns a copy of the dataset", func() {
			Expect(v.Visualize(ctx, "x", visualizer.NumSamples(4), visualizer.Eased(false))).To(Succeed())
			s := v.Samples()
			s[0].Y = 99
			Expect(v.Samples()[0].Y).To(Equal(0.0))
		})

		It("falls back to zero on a parse error", func() {
			Expect(v.Visualize(ctx, "notanumber(", visualizer.InBounds(wave), visualizer.Eased(false))).To(Succeed())

			Expect(logBuf.String()).To(ContainSubstring("problem parsing expression"))
			Expect(logBuf.String()).To(ContainSubstring("level=ERROR"))
			for _, p := range v.Samples() {
				Expect(p.Y).To(Equal(0.0))
			}
			Expect(rec.Strokes()).To(HaveLen(1))
		})

		It("reports parse errors from SetExpression", func() {
			Expect(v.SetExpression("3sin(x)")).To(Succeed())
			Expect(v.SetExpression("notanumber(")).To(MatchError(expr.ErrParse))
			Expect(v.Expression().String()).To(Equal("0"))
		})

		It("rejects degenerate bounds", func() {
			bad := plot.Bounds{XMin: 1, XMax: 1, YMin: 0, YMax: 1}
			Expect(v.Visualize(ctx, "x", visualizer.InBounds(bad))).To(MatchError(plot.ErrDegenerateBounds))
			Expect(rec.Ops()).To(BeEmpty())
		})

		It("replaces the dataset with its derivative and integral", func() {
			Expect(v.Visualize(ctx, "3sin(x)", visualizer.InBounds(wave), visualizer.Eased(false))).To(Succeed())

			Expect(v.Differentiate(ctx, visualizer.InBounds(wave), visualizer.Eased(false))).To(Succeed())
			d := v.Samples()
			Expect(d).To(HaveLen(999))
			Expect(d[0].Y).To(BeNumerically("~", 3, 1e-3))

			Expect(v.Integrate(ctx, visualizer.InBounds(wave), visualizer.Eased(false))).To(Succeed())
			Expect(v.Samples()).To(HaveLen(998))
			Expect(rec.Strokes()).To(HaveLen(3))
		})

		It("transforms an empty dataset to an empty one", func() {
			Expect(v.Differentiate(ctx, visualizer.Eased(false))).To(Succeed())
			Expect(v.Samples()).To(BeEmpty())
		})

		It("clears the whole surface with the background", func() {
			Expect(v.Clear()).To(Succeed())
			ops := rec.Ops()
			Expect(ops).To(HaveLen(3))
			Expect(ops[0]).To(Equal(surface.Op{Kind: surface.OpClearRect, W: 800, H: 600}))
			Expect(ops[2]).To(Equal(surface.Op{Kind: surface.OpFillRect, W: 800, H: 600}))
		})

		It("clears only the drawable area", func() {
			Expect(v.ClearArea(plot.UnitSquare)).To(Succeed())
			ops := rec.Ops()
			Expect(ops[0]).To(Equal(surface.Op{Kind: surface.OpClearRect, X: 60, Y: 100, W: 680, H: 200}))
		})

		It("validates style and padding updates", func() {
			Expect(v.SetStyle(surface.Style{Background: "nope", Line: "black", LineWidth: 1})).To(MatchError(surface.ErrColor))
			Expect(v.SetPadding(plot.Padding{Left: 500, Right: 400})).To(MatchError(plot.ErrDegeneratePadding))

			st := surface.Style{Background: "#101820", Line: "#F4F5F0", LineWidth: 4}
			Expect(v.SetStyle(st)).To(Succeed())
			Expect(v.Style()).To(Equal(st))
			Expect(v.Padding()).To(Equal(padding))
		})

		It("samples the expression each concurrent call installed", func() {
			m, err := plot.NewMapper(800, 600, padding, wave)
			Expect(err).NotTo(HaveOccurred())

			var wg sync.WaitGroup
			draw := func(src string, n int) {
				defer wg.Done()
				defer GinkgoRecover()
				for i := 0; i < 50; i++ {
					Expect(v.Visualize(ctx, src, visualizer.InBounds(wave), visualizer.NumSamples(n), visualizer.Eased(false))).To(Succeed())
				}
			}
			wg.Add(2)
			go draw("1", 10)
			go draw("2", 20)
			wg.Wait()

			want := map[int]float64{10: m.Map(plot.Sample{Y: 1}).Y, 20: m.Map(plot.Sample{Y: 2}).Y}
			strokes := rec.Strokes()
			Expect(strokes).To(HaveLen(100))
			for _, stroke := range strokes {
				y, ok := want[len(stroke)]
				Expect(ok).To(BeTrue())
				for _, op := range stroke {
					Expect(op.Y).To(Equal(y))
				}
			}
		})
	})

	Describe("fallback none", func() {
		It("returns the error and draws nothing", func() {
			v := visualizer.New(rec, padding, visualizer.WithLogger(logger), visualizer.WithFallback(visualizer.FallbackNone))
			Expect(v.Visualize(ctx, "x^2", visualizer.NumSamples(5), visualizer.Eased(false))).To(Succeed())
			rec.Reset()

			Expect(v.Visualize(ctx, "notanumber(")).To(MatchError(expr.ErrParse))
			Expect(rec.Ops()).To(BeEmpty())
			Expect(v.Expression().String()).To(Equal("x^2"))
			Expect(v.Samples()).To(HaveLen(5))
		})
	})

	Describe("eased draws", func() {
		var (
			v  *visualizer.Visualizer
			tk *manualTicker
		)

		BeforeEach(func() {
			tk = newManualTicker()
			v = visualizer.New(rec, padding,
				visualizer.WithLogger(logger),
				visualizer.WithTicker(func(time.Duration) visualizer.Ticker { return tk }),
			)
		})

		AfterEach(func() {
			Expect(v.Close()).To(Succeed())
		})

		It("reveals every sample once the duration has elapsed", func() {
			Expect(v.Visualize(ctx, "3sin(x)", visualizer.InBounds(wave))).To(Succeed())
			Expect(v.Animating()).To(BeTrue())

			tk.c <- time.Now().Add(time.Hour)
			Expect(v.Wait()).To(Succeed())
			Expect(v.Animating()).To(BeFalse())
			Expect(rec.Strokes()).To(HaveLen(1))
			Expect(rec.Count(surface.OpMoveTo) + rec.Count(surface.OpLineTo)).To(Equal(visualizer.DefaultSamples))
		})

		It("cancels the previous animation when a new draw starts", func() {
			Expect(v.Visualize(ctx, "x", visualizer.NumSamples(50))).To(Succeed())
			Expect(v.Visualize(ctx, "2x", visualizer.NumSamples(50), visualizer.Eased(false))).To(Succeed())

			Expect(v.Wait()).To(MatchError(context.Canceled))
			n := len(rec.Ops())
			tk.c <- time.Now().Add(time.Hour)
			Consistently(func() int { return len(rec.Ops()) }, 50*time.Millisecond, 5*time.Millisecond).Should(Equal(n))
			Expect(v.Samples()[1].Y).To(BeNumerically("~", 2*v.Samples()[1].X, 1e-12))
		})

		It("stops when the caller's context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			Expect(v.Visualize(cctx, "x")).To(Succeed())
			cancel()
			Expect(v.Wait()).To(MatchError(context.Canceled))
		})
	})

	Describe("real clock", func() {
		It("finishes a short animation", func() {
			v := visualizer.New(rec, padding,
				visualizer.WithLogger(logger),
				visualizer.WithAnimation(30*time.Millisecond, time.Millisecond),
			)
			Expect(v.Visualize(ctx, "x", visualizer.NumSamples(100))).To(Succeed())
			Expect(v.Wait()).To(Succeed())
			Expect(v.Samples()).To(HaveLen(100))
			Expect(rec.Count(surface.OpStroke)).To(BeNumerically(">=", 1))
		})
	})
})
