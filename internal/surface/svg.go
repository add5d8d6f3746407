package surface

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"
	"sync"

	svg "github.com/ajstarks/svgo"
)

type svgElem struct {
	rect       bool
	x, y, w, h int
	d          string
	style      string
}

// SVG collects drawing calls and serializes them as an SVG document. Each
// Stroke becomes one <path>; FillRect becomes a <rect>.
type SVG struct {
	mu     sync.Mutex
	w, h   int
	elems  []svgElem
	path   strings.Builder
	fill   color.Color
	stroke color.Color
	width  float64
}

// NewSVG returns an empty w x h document.
func NewSVG(w, h int) *SVG {
	return &SVG{w: w, h: h, fill: color.Black, stroke: color.Black, width: 1}
}

func (s *SVG) Width() float64  { return float64(s.w) }
func (s *SVG) Height() float64 { return float64(s.h) }

// ClearRect drops everything painted so far when the rectangle covers the
// whole document. Partial clears are no-ops; a following FillRect paints
// over the area.
func (s *SVG) ClearRect(x, y, w, h float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if x <= 0 && y <= 0 && x+w >= float64(s.w) && y+h >= float64(s.h) {
		s.elems = nil
	}
}

func (s *SVG) FillRect(x, y, w, h float64) {
	r := pixelRect(x, y, w, h)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elems = append(s.elems, svgElem{
		rect: true,
		x:    r.Min.X, y: r.Min.Y, w: r.Dx(), h: r.Dy(),
		style: "fill:" + Hex(s.fill),
	})
}

func (s *SVG) BeginPath() {
	s.mu.Lock()
	s.path.Reset()
	s.mu.Unlock()
}

func (s *SVG) MoveTo(x, y float64) {
	s.mu.Lock()
	fmt.Fprintf(&s.path, "M%s,%s ", coord(x), coord(y))
	s.mu.Unlock()
}

func (s *SVG) LineTo(x, y float64) {
	s.mu.Lock()
	fmt.Fprintf(&s.path, "L%s,%s ", coord(x), coord(y))
	s.mu.Unlock()
}

func (s *SVG) Stroke() {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := strings.TrimSpace(s.path.String())
	if d == "" {
		return
	}
	s.elems = append(s.elems, svgElem{
		d: d,
		style: fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s;stroke-linecap:round;stroke-linejoin:round",
			Hex(s.stroke), coord(s.width)),
	})
}

func (s *SVG) ClosePath() {}

func (s *SVG) SetFillStyle(c color.Color) {
	s.mu.Lock()
	s.fill = c
	s.mu.Unlock()
}

func (s *SVG) SetStrokeStyle(c color.Color) {
	s.mu.Lock()
	s.stroke = c
	s.mu.Unlock()
}

func (s *SVG) SetLineWidth(w float64) {
	s.mu.Lock()
	s.width = w
	s.mu.Unlock()
}

// WriteTo writes the document to w.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cw := &countingWriter{w: w}
	canvas := svg.New(cw)
	canvas.Start(s.w, s.h)
	for _, e := range s.elems {
		if e.rect {
			canvas.Rect(e.x, e.y, e.w, e.h, e.style)
		} else {
			canvas.Path(e.d, e.style)
		}
	}
	canvas.End()
	return cw.n, cw.err
}

func coord(v float64) string {
	v = math.Round(v*100) / 100
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
