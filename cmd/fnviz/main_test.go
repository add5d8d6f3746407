package main

import (
	"context"
	"image/gif"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/fnviz/internal/config"
	"github.com/san-kum/fnviz/internal/expr"
	"github.com/san-kum/fnviz/internal/plot"
	"github.com/san-kum/fnviz/internal/surface"
)

// command returns the named subcommand of a fresh tree with args parsed.
func command(t *testing.T, name string, args ...string) *cobra.Command {
	t.Helper()
	root := newRootCmd()
	cmd := root
	if name != "" {
		var err error
		cmd, _, err = root.Find([]string{name})
		require.NoError(t, err)
	}
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Width, cfg.Height = 200, 150
	cfg.Padding = plot.Padding{Left: 10, Top: 10, Right: 10, Bottom: 10}
	cfg.Samples = 100
	cfg.Duration = 200 * time.Millisecond
	return cfg
}

func TestResolveConfig_Defaults(t *testing.T) {
	cfg, err := resolveConfig(command(t, "render"), nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestResolveConfig_Layering(t *testing.T) {
	path := writeConfig(t, "samples: 500\n")

	cmd := command(t, "render", "--preset", "parabola", "--config", path, "--ymax", "20")
	cfg, err := resolveConfig(cmd, nil)
	require.NoError(t, err)

	assert.Equal(t, "x^2 - 4", cfg.Expression, "preset survives a file that omits it")
	assert.Equal(t, plot.Bounds{XMin: -4, XMax: 4, YMin: -5, YMax: 20}, cfg.Bounds)
	assert.Equal(t, 500, cfg.Samples, "file overrides preset")

	cfg, err = resolveConfig(cmd, []string{"cos(x)"})
	require.NoError(t, err)
	assert.Equal(t, "cos(x)", cfg.Expression, "positional argument wins")
}

func TestResolveConfig_FileOverridesPreset(t *testing.T) {
	path := writeConfig(t, "expression: x^3\nbounds:\n  xmin: -2\n  xmax: 2\n  ymin: -8\n  ymax: 8\n")

	cfg, err := resolveConfig(command(t, "ascii", "--preset", "damped", "--config", path), nil)
	require.NoError(t, err)
	assert.Equal(t, "x^3", cfg.Expression)
	assert.Equal(t, plot.Bounds{XMin: -2, XMax: 2, YMin: -8, YMax: 8}, cfg.Bounds)
	assert.Equal(t, config.Presets["damped"].Samples, cfg.Samples)
}

func TestResolveConfig_Errors(t *testing.T) {
	_, err := resolveConfig(command(t, "render", "--preset", "nope"), nil)
	assert.ErrorIs(t, err, config.ErrUnknownPreset)

	_, err = resolveConfig(command(t, "render", "--xmin", "5", "--xmax", "5"), nil)
	assert.ErrorIs(t, err, plot.ErrDegenerateBounds)

	_, err = resolveConfig(command(t, "render", "--config", filepath.Join(t.TempDir(), "missing.yaml")), nil)
	assert.Error(t, err)
}

func TestDrawChain(t *testing.T) {
	command(t, "")
	cfg := smallConfig()
	cfg.Expression = "x^2"
	cfg.Ops = "d,i"

	rec := surface.NewRecorder(float64(cfg.Width), float64(cfg.Height))
	v := newVisualizer(rec, cfg)
	defer v.Close()
	require.NoError(t, drawChain(context.Background(), v, cfg))

	assert.Len(t, v.Samples(), 98)
	assert.Len(t, rec.Strokes(), 3, "plot, derivative and integral each draw once")
	assert.Equal(t, surface.Op{Kind: surface.OpClearRect, W: 200, H: 150}, rec.Ops()[0])
}

func TestComputeSamples_Strict(t *testing.T) {
	cfg := smallConfig()
	cfg.Expression = "notanumber("

	command(t, "samples")
	s, err := computeSamples(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, s, cfg.Samples)
	for _, p := range s {
		assert.Equal(t, 0.0, p.Y)
	}

	command(t, "samples", "--strict")
	_, err = computeSamples(context.Background(), cfg)
	assert.ErrorIs(t, err, expr.ErrParse)
}

func TestRenderFile(t *testing.T) {
	command(t, "render")
	cfg := smallConfig()
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "plot.png")
	require.NoError(t, renderFile(context.Background(), cfg, pngPath))
	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())

	svgPath := filepath.Join(dir, "plot.svg")
	require.NoError(t, renderFile(context.Background(), cfg, svgPath))
	data, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "<path"))

	err = renderFile(context.Background(), cfg, filepath.Join(dir, "plot.bmp"))
	assert.Error(t, err)
}

func decodeGIF(t *testing.T, path string) *gif.GIF {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	g, err := gif.DecodeAll(f)
	require.NoError(t, err)
	return g
}

func TestRenderFile_GIF(t *testing.T) {
	command(t, "render")
	cfg := smallConfig()
	dir := t.TempDir()

	eased := filepath.Join(dir, "eased.gif")
	require.NoError(t, renderFile(context.Background(), cfg, eased))
	// 200ms at 25 fps is 5 frames after the blank first one
	assert.Len(t, decodeGIF(t, eased).Image, 6)

	cfg.Ease = false
	flat := filepath.Join(dir, "flat.gif")
	require.NoError(t, renderFile(context.Background(), cfg, flat))
	g := decodeGIF(t, flat)
	require.Len(t, g.Image, 1)
	assert.Equal(t, 200, g.Image[0].Bounds().Dx())
}

func TestSetupLogging_File(t *testing.T) {
	command(t, "")
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		logOut = nil
	})

	logFile = filepath.Join(t.TempDir(), "fnviz.log")
	require.NoError(t, setupLogging())
	require.NotNil(t, logOut)
	slog.Warn("plot written", "output", "plot.png")
	require.NoError(t, logOut.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "plot written")

	logLevel = "loud"
	assert.Error(t, setupLogging())
}
