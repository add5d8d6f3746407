package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fnviz/internal/plot"
	"github.com/san-kum/fnviz/internal/surface"
)

const (
	DefaultExpression = "3sin(x)"
	DefaultSamples    = 1000
	DefaultDuration   = 2 * time.Second
	DefaultFPS        = 60
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultTheme      = "chalk"
)

var (
	DefaultBounds  = plot.Bounds{XMin: 0, XMax: 10, YMin: -10, YMax: 10}
	DefaultPadding = plot.Padding{Left: 60, Top: 100, Right: 60, Bottom: 300}
	DefaultStyle   = surface.Style{Background: "#101820", Line: "#F4F5F0", LineWidth: 4}
)

type Config struct {
	Expression string        `yaml:"expression"`
	Bounds     plot.Bounds   `yaml:"bounds"`
	Samples    int           `yaml:"samples"`
	Ops        string        `yaml:"ops,omitempty"`
	Ease       bool          `yaml:"ease"`
	Duration   time.Duration `yaml:"duration"`
	FPS        int           `yaml:"fps"`
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	Padding    plot.Padding  `yaml:"padding"`
	Style      surface.Style `yaml:"style"`
	Theme      string        `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Expression: DefaultExpression,
		Bounds:     DefaultBounds,
		Samples:    DefaultSamples,
		Ease:       true,
		Duration:   DefaultDuration,
		FPS:        DefaultFPS,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Padding:    DefaultPadding,
		Style:      DefaultStyle,
		Theme:      DefaultTheme,
	}
}

// Load reads a YAML file on top of DefaultConfig and validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto reads the YAML file at path over base and validates the result.
// Keys the file does not mention keep the values already in base.
func LoadInto(path string, base *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	if err := base.Validate(); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks everything but the expression, which is parsed at plot
// time under the visualizer's fallback policy.
func (c *Config) Validate() error {
	if err := c.Bounds.Validate(); err != nil {
		return err
	}
	if c.Samples < 1 {
		return fmt.Errorf("%w: samples must be positive, got %d", ErrInvalid, c.Samples)
	}
	if c.FPS < 1 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	}
	if c.Ease && c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %s", ErrInvalid, c.Duration)
	}
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if err := c.Padding.Validate(float64(c.Width), float64(c.Height)); err != nil {
		return err
	}
	if _, _, err := c.Style.Colors(); err != nil {
		return err
	}
	if c.Style.LineWidth <= 0 {
		return fmt.Errorf("%w: line width must be positive, got %g", ErrInvalid, c.Style.LineWidth)
	}
	if _, err := c.Transforms(); err != nil {
		return err
	}
	return nil
}

// Transforms parses Ops, e.g. "d,i".
func (c *Config) Transforms() ([]plot.Transform, error) {
	return plot.ParseTransforms(c.Ops)
}

// FrameInterval is the animation tick period for FPS.
func (c *Config) FrameInterval() time.Duration {
	if c.FPS < 1 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.FPS)
}

// Frames is the number of animation frames in Duration.
func (c *Config) Frames() int {
	return max(int(c.Duration/c.FrameInterval()), 1)
}
