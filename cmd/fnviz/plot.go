package main

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/fnviz/internal/config"
	"github.com/san-kum/fnviz/internal/export"
	"github.com/san-kum/fnviz/internal/plot"
	"github.com/san-kum/fnviz/internal/render"
	"github.com/san-kum/fnviz/internal/surface"
	"github.com/san-kum/fnviz/internal/visualizer"
)

func visualizerOptions() []visualizer.Option {
	fallback := visualizer.FallbackZero
	if strictParse {
		fallback = visualizer.FallbackNone
	}
	return []visualizer.Option{visualizer.WithFallback(fallback)}
}

// drawChain plots the expression and then applies each transform in order.
// Every step replaces the dataset and redraws immediately.
func drawChain(ctx context.Context, v *visualizer.Visualizer, cfg *config.Config) error {
	ts, err := cfg.Transforms()
	if err != nil {
		return err
	}
	opts := []visualizer.RenderOption{
		visualizer.Eased(false),
		visualizer.InBounds(cfg.Bounds),
		visualizer.NumSamples(cfg.Samples),
	}
	if err := v.Clear(); err != nil {
		return err
	}
	if err := v.Visualize(ctx, cfg.Expression, opts...); err != nil {
		return err
	}
	for _, t := range ts {
		if t == plot.Integrate {
			err = v.Integrate(ctx, opts...)
		} else {
			err = v.Differentiate(ctx, opts...)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func newVisualizer(s surface.Surface, cfg *config.Config) *visualizer.Visualizer {
	opts := append(visualizerOptions(), visualizer.WithStyle(cfg.Style), visualizer.WithDefaultBounds(cfg.Bounds))
	return visualizer.New(s, cfg.Padding, opts...)
}

// computeSamples runs the chain against a recording surface and returns the
// final dataset.
func computeSamples(ctx context.Context, cfg *config.Config) (plot.Samples, error) {
	v := newVisualizer(surface.NewRecorder(float64(cfg.Width), float64(cfg.Height)), cfg)
	defer v.Close()
	if err := drawChain(ctx, v, cfg); err != nil {
		return nil, err
	}
	return v.Samples(), nil
}

func renderFile(ctx context.Context, cfg *config.Config, path string) error {
	f, err := export.FormatOf(path)
	if err != nil {
		return err
	}
	if f == export.GIF {
		return renderGIF(ctx, cfg, path)
	}

	s, err := export.NewSurface(f, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	v := newVisualizer(s, cfg)
	defer v.Close()
	if err := drawChain(ctx, v, cfg); err != nil {
		return err
	}
	return export.EncodeFile(path, s)
}

func renderGIF(ctx context.Context, cfg *config.Config, path string) error {
	s, err := computeSamples(ctx, cfg)
	if err != nil {
		return err
	}
	opts := export.GIFOptions{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Padding:  cfg.Padding,
		Bounds:   cfg.Bounds,
		Style:    cfg.Style,
		Duration: cfg.Duration,
		FPS:      gifFPS,
	}
	if !cfg.Ease {
		opts.Easing = render.Instant
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteGIF(out, s, opts); err != nil {
		out.Close()
		return fmt.Errorf("gif: %w", err)
	}
	return out.Close()
}
