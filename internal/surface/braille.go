package surface

import (
	"image/color"
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Braille is a terminal surface. Each character cell holds 2x4 dots, so a
// Cols x Rows canvas is (Cols*2) x (Rows*4) pixels. Colors are ignored: a
// stroke sets dots, a fill clears them.
type Braille struct {
	Cols, Rows int
	Grid       [][]rune

	path   [][2]float64
	starts []int
}

func NewBraille(cols, rows int) *Braille {
	c := &Braille{
		Cols: cols,
		Rows: rows,
		Grid: make([][]rune, rows),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, cols)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

func (c *Braille) Width() float64  { return float64(c.Cols * 2) }
func (c *Braille) Height() float64 { return float64(c.Rows * 4) }

// Set sets a pixel at (x, y) in sub-pixel coordinates.
func (c *Braille) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Cols || row >= c.Rows {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Unset clears a pixel.
func (c *Braille) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Cols || row >= c.Rows {
		return
	}
	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < brailleBlank {
		c.Grid[row][col] = brailleBlank
	}
}

// IsSet reports whether the pixel is on.
func (c *Braille) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Cols || y/4 >= c.Rows {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas.
func (c *Braille) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

func (c *Braille) ClearRect(x, y, w, h float64) {
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1, y1 := int(math.Ceil(x+w)), int(math.Ceil(y+h))
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.Cols*2), min(y1, c.Rows*4)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.Unset(px, py)
		}
	}
}

func (c *Braille) FillRect(x, y, w, h float64) { c.ClearRect(x, y, w, h) }

func (c *Braille) BeginPath() {
	c.path = c.path[:0]
	c.starts = c.starts[:0]
}

func (c *Braille) MoveTo(x, y float64) {
	c.starts = append(c.starts, len(c.path))
	c.path = append(c.path, [2]float64{x, y})
}

func (c *Braille) LineTo(x, y float64) {
	if len(c.path) == 0 {
		c.MoveTo(x, y)
		return
	}
	c.path = append(c.path, [2]float64{x, y})
}

// Stroke rasterizes the current path's segments.
func (c *Braille) Stroke() {
	for s, start := range c.starts {
		end := len(c.path)
		if s+1 < len(c.starts) {
			end = c.starts[s+1]
		}
		if end-start == 1 {
			p := c.path[start]
			c.Set(int(math.Round(p[0])), int(math.Round(p[1])))
			continue
		}
		for i := start + 1; i < end; i++ {
			a, b := c.path[i-1], c.path[i]
			c.segment(a[0], a[1], b[0], b[1])
		}
	}
}

func (c *Braille) ClosePath() {}

func (c *Braille) SetFillStyle(color.Color)   {}
func (c *Braille) SetStrokeStyle(color.Color) {}
func (c *Braille) SetLineWidth(float64)       {}

// segment clips a float segment to the canvas and draws it.
func (c *Braille) segment(x0, y0, x1, y1 float64) {
	x0, y0, x1, y1, ok := clip(x0, y0, x1, y1, 0, 0, c.Width()-1, c.Height()-1)
	if !ok {
		return
	}
	c.DrawLine(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Braille) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Braille) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Lines returns the rows without trailing newlines.
func (c *Braille) Lines() []string {
	out := make([]string, len(c.Grid))
	for i, row := range c.Grid {
		out[i] = string(row)
	}
	return out
}

// clip is Liang-Barsky segment clipping against [xmin,xmax] x [ymin,ymax].
func clip(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - xmin, xmax - x0, y0 - ymin, ymax - y0}
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
