package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/fnviz/internal/plot"
	"github.com/san-kum/fnviz/internal/render"
	"github.com/san-kum/fnviz/internal/surface"
)

const (
	DefaultGIFFPS = 25
	paletteSize   = 32
	holdDelay     = 100
)

type GIFOptions struct {
	Width, Height int
	Padding       plot.Padding
	Bounds        plot.Bounds
	Style         surface.Style
	Duration      time.Duration
	FPS           int
	Easing        render.Easing
}

// WriteGIF records the eased reveal of samples frame by frame and encodes
// it as a looping GIF. The last frame is held for a second.
func WriteGIF(w io.Writer, samples plot.Samples, o GIFOptions) error {
	if o.FPS < 1 {
		o.FPS = DefaultGIFFPS
	}
	if o.Easing == nil {
		o.Easing = render.QuadInOut
	}
	interval := time.Second / time.Duration(o.FPS)

	m, err := plot.NewMapper(float64(o.Width), float64(o.Height), o.Padding, o.Bounds)
	if err != nil {
		return err
	}
	raster := surface.NewRaster(o.Width, o.Height)
	r, err := render.New(raster, o.Style)
	if err != nil {
		return err
	}
	bg, line, err := o.Style.Colors()
	if err != nil {
		return err
	}
	pal := palette(bg, line, paletteSize)

	r.Clear()
	anim := r.Animate(samples, m,
		render.WithEasing(o.Easing),
		render.WithDuration(o.Duration),
		render.WithFrameInterval(interval),
	)

	out := gif.GIF{LoopCount: 0}
	delay := max(int(interval/(10*time.Millisecond)), 2)
	for k := 0; ; k++ {
		done := anim.AdvanceStep(k)
		out.Image = append(out.Image, paletted(raster.Image(), pal))
		out.Delay = append(out.Delay, delay)
		if done {
			break
		}
	}
	out.Delay[len(out.Delay)-1] = holdDelay
	return gif.EncodeAll(w, &out)
}

// palette blends from bg to line in Lab space so antialiased edges map to
// nearby entries.
func palette(bg, line color.Color, n int) color.Palette {
	from, _ := colorful.MakeColor(bg)
	to, _ := colorful.MakeColor(line)
	pal := make(color.Palette, n)
	for i := range pal {
		pal[i] = from.BlendLab(to, float64(i)/float64(n-1)).Clamped()
	}
	return pal
}

func paletted(src image.Image, pal color.Palette) *image.Paletted {
	b := src.Bounds()
	img := image.NewPaletted(b, pal)
	draw.Draw(img, b, src, b.Min, draw.Src)
	return img
}
