package surface

import "image/color"

// Surface is an immediate-mode drawing target. Coordinates are pixels with
// the origin at the top-left corner.
type Surface interface {
	Width() float64
	Height() float64

	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()
	ClosePath()

	SetFillStyle(c color.Color)
	SetStrokeStyle(c color.Color)
	SetLineWidth(w float64)
}

// Style is the caller-settable look of a plot.
type Style struct {
	Background string  `yaml:"background" json:"background"`
	Line       string  `yaml:"line" json:"line"`
	LineWidth  float64 `yaml:"line_width" json:"line_width"`
}

// DefaultStyle is black on white, two pixels wide.
var DefaultStyle = Style{Background: "white", Line: "black", LineWidth: 2}

// Colors parses the background and line colors.
func (s Style) Colors() (bg, line color.Color, err error) {
	if bg, err = ParseColor(s.Background); err != nil {
		return nil, nil, err
	}
	if line, err = ParseColor(s.Line); err != nil {
		return nil, nil, err
	}
	return bg, line, nil
}
