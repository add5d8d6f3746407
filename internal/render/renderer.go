package render

import (
	"image/color"
	"math"

	"github.com/san-kum/fnviz/internal/plot"
	"github.com/san-kum/fnviz/internal/surface"
)

// Renderer paints sample sets with a fixed style. It is not safe for
// concurrent use; callers serialize access to the surface.
type Renderer struct {
	s     surface.Surface
	bg    color.Color
	line  color.Color
	width float64
}

// New parses the style's colors and binds them to s.
func New(s surface.Surface, st surface.Style) (*Renderer, error) {
	bg, line, err := st.Colors()
	if err != nil {
		return nil, err
	}
	return &Renderer{s: s, bg: bg, line: line, width: st.LineWidth}, nil
}

// Surface returns the target surface.
func (r *Renderer) Surface() surface.Surface { return r.s }

// Clear wipes the whole surface and fills it with the background color.
func (r *Renderer) Clear() {
	w, h := r.s.Width(), r.s.Height()
	r.s.ClearRect(0, 0, w, h)
	r.s.SetFillStyle(r.bg)
	r.s.FillRect(0, 0, w, h)
}

// ClearArea wipes the drawable area of m and fills it with the background
// color. The padding around it is left untouched.
func (r *Renderer) ClearArea(m plot.Mapper) {
	x, y, w, h := m.Area()
	r.s.ClearRect(x, y, w, h)
	r.s.SetFillStyle(r.bg)
	r.s.FillRect(x, y, w, h)
}

// Draw clears the drawable area and paints samples as a single stroke.
func (r *Renderer) Draw(samples plot.Samples, m plot.Mapper) {
	r.ClearArea(m)
	r.stroke(samples, m)
}

func (r *Renderer) stroke(samples plot.Samples, m plot.Mapper) {
	r.s.SetStrokeStyle(r.line)
	r.s.SetLineWidth(r.width)
	r.s.BeginPath()
	var p pen
	b := m.Bounds()
	for _, smp := range samples {
		p.plot(r.s, smp, m.Map(smp), b)
	}
	r.s.Stroke()
	r.s.ClosePath()
}

// pen tracks whether the current sub-path has a drawable point.
type pen struct {
	down bool
}

func (p *pen) plot(s surface.Surface, smp plot.Sample, pt plot.Point, b plot.Bounds) {
	if math.IsNaN(smp.Y) || !finite(pt) {
		p.down = false
		return
	}
	if !p.down || !b.Contains(smp.Y) {
		s.MoveTo(pt.X, pt.Y)
		p.down = true
		return
	}
	s.LineTo(pt.X, pt.Y)
}

func finite(pt plot.Point) bool {
	return !math.IsNaN(pt.X) && !math.IsInf(pt.X, 0) && !math.IsNaN(pt.Y) && !math.IsInf(pt.Y, 0)
}
