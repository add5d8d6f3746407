package export

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/fnviz/internal/surface"
)

type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
	GIF Format = "gif"
)

// FormatOf picks the image format from a file extension.
func FormatOf(path string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))); f {
	case PNG, SVG, GIF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, path)
}

// NewSurface returns a surface that can later be encoded as f. GIF frames
// are drawn on a raster.
func NewSurface(f Format, width, height int) (surface.Surface, error) {
	switch f {
	case PNG, GIF:
		return surface.NewRaster(width, height), nil
	case SVG:
		return surface.NewSVG(width, height), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrFormat, f)
}

// Encode writes the current contents of s: rasters as PNG, SVG surfaces as
// SVG documents.
func Encode(w io.Writer, s surface.Surface) error {
	switch s := s.(type) {
	case *surface.Raster:
		return png.Encode(w, s.Image())
	case *surface.SVG:
		_, err := s.WriteTo(w)
		return err
	}
	return fmt.Errorf("%w: %T", ErrSurface, s)
}

// EncodeFile is Encode to a newly created file.
func EncodeFile(path string, s surface.Surface) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
