package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/fnviz/internal/plot"
)

func preset(expression string, b plot.Bounds) *Config {
	cfg := DefaultConfig()
	cfg.Expression = expression
	cfg.Bounds = b
	return cfg
}

var Presets = map[string]*Config{
	"sine":     preset("3sin(x)", DefaultBounds),
	"parabola": preset("x^2 - 4", plot.Bounds{XMin: -4, XMax: 4, YMin: -5, YMax: 12}),
	"gauss":    preset("exp(-x^2/2)", plot.Bounds{XMin: -4, XMax: 4, YMin: -0.2, YMax: 1.2}),
	"sinc":     preset("sin(x)/x", plot.Bounds{XMin: -20, XMax: 20, YMin: -0.4, YMax: 1.1}),
	"log":      preset("log(x)", plot.Bounds{XMin: 0, XMax: 10, YMin: -3, YMax: 3}),
	"damped": func() *Config {
		cfg := preset("exp(-x/4)cos(3x)", plot.Bounds{XMin: 0, XMax: 12, YMin: -1.2, YMax: 1.2})
		cfg.Samples = 2000
		return cfg
	}(),
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	cfg := *p
	return &cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
