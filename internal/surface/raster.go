package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
)

// Raster paints onto an RGBA image through a draw2d graphic context.
type Raster struct {
	img  *image.RGBA
	gc   *draw2dimg.GraphicContext
	fill color.Color
}

// NewRaster returns a transparent w x h raster surface.
func NewRaster(w, h int) *Raster {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	gc := draw2dimg.NewGraphicContext(img)
	gc.SetLineCap(draw2d.RoundCap)
	gc.SetLineJoin(draw2d.RoundJoin)
	return &Raster{img: img, gc: gc, fill: color.Black}
}

func (r *Raster) Width() float64  { return float64(r.img.Bounds().Dx()) }
func (r *Raster) Height() float64 { return float64(r.img.Bounds().Dy()) }

func (r *Raster) ClearRect(x, y, w, h float64) {
	draw.Draw(r.img, pixelRect(x, y, w, h).Intersect(r.img.Bounds()), image.Transparent, image.Point{}, draw.Src)
}

func (r *Raster) FillRect(x, y, w, h float64) {
	r.gc.SetFillColor(r.fill)
	r.gc.BeginPath()
	draw2dkit.Rectangle(r.gc, x, y, x+w, y+h)
	r.gc.Fill()
}

func (r *Raster) BeginPath()          { r.gc.BeginPath() }
func (r *Raster) MoveTo(x, y float64) { r.gc.MoveTo(x, y) }
func (r *Raster) LineTo(x, y float64) { r.gc.LineTo(x, y) }
func (r *Raster) Stroke()             { r.gc.Stroke() }

func (r *Raster) ClosePath() {
	if !r.gc.IsEmpty() {
		r.gc.Close()
	}
}

func (r *Raster) SetFillStyle(c color.Color)   { r.fill = c }
func (r *Raster) SetStrokeStyle(c color.Color) { r.gc.SetStrokeColor(c) }
func (r *Raster) SetLineWidth(w float64)       { r.gc.SetLineWidth(w) }

// Image returns the backing image. It aliases the surface.
func (r *Raster) Image() *image.RGBA { return r.img }

// Snapshot returns a copy of the current pixels.
func (r *Raster) Snapshot() *image.RGBA {
	out := image.NewRGBA(r.img.Bounds())
	copy(out.Pix, r.img.Pix)
	return out
}

func pixelRect(x, y, w, h float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	)
}
