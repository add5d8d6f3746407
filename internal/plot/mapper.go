package plot

// Mapper converts domain points into pixel coordinates on a surface of a
// fixed size. The vertical axis is flipped: larger y maps to a smaller pixel
// row. A Mapper is an immutable value.
type Mapper struct {
	width, height float64
	pad           Padding
	bounds        Bounds
	drawW, drawH  float64
}

// NewMapper validates the window and padding and returns the transform.
func NewMapper(width, height float64, p Padding, b Bounds) (Mapper, error) {
	if err := b.Validate(); err != nil {
		return Mapper{}, err
	}
	if err := p.Validate(width, height); err != nil {
		return Mapper{}, err
	}
	return Mapper{
		width:  width,
		height: height,
		pad:    p,
		bounds: b,
		drawW:  width - (p.Left + p.Right),
		drawH:  height - (p.Top + p.Bottom),
	}, nil
}

// Map returns the pixel position of s.
func (m Mapper) Map(s Sample) Point {
	b := m.bounds
	return Point{
		X: m.pad.Left + m.drawW*(s.X-b.XMin)/(b.XMax-b.XMin),
		Y: m.height - m.pad.Bottom - m.drawH*(s.Y-b.YMin)/(b.YMax-b.YMin),
	}
}

// Area returns the drawable rectangle as origin and size.
func (m Mapper) Area() (x, y, w, h float64) {
	return m.pad.Left, m.pad.Top, m.drawW, m.drawH
}

// Bounds returns the window the mapper was built for.
func (m Mapper) Bounds() Bounds { return m.bounds }
