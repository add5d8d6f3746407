package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/fnviz/internal/config"
	"github.com/san-kum/fnviz/internal/export"
	"github.com/san-kum/fnviz/internal/viz"
)

var (
	logLevel string
	logFile  string
	// Plot settings, applied over preset and config file when set
	xmin, xmax   float64
	ymin, ymax   float64
	samples      int
	ops          string
	ease         bool
	duration     time.Duration
	width        int
	height       int
	theme        string
	background   string
	lineColor    string
	lineWidth    float64
	configFile   string
	preset       string
	output       string
	gifFPS       int
	format       string
	asciiWidth   int
	asciiHeight  int
	strictParse  bool
	tuiCols      int
	tuiRows      int

	logOut *os.File
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if logOut != nil {
		logOut.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Registering the flags resets the
// package-level flag variables to their defaults.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "fnviz [expression]",
		Short:        "function graph visualizer",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}
			if logFile == "" {
				slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
			}
			return viz.Run(cmd.Context(), viz.Options{
				Expression: cfg.Expression,
				Bounds:     cfg.Bounds,
				Samples:    cfg.Samples,
				Cols:       tuiCols,
				Rows:       tuiRows,
				Theme:      cfg.Theme,
				Eased:      cfg.Ease,
				Duration:   cfg.Duration,
				Visualizer: visualizerOptions(),
			})
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Float64Var(&xmin, "xmin", config.DefaultBounds.XMin, "left edge of the window")
	rootCmd.PersistentFlags().Float64Var(&xmax, "xmax", config.DefaultBounds.XMax, "right edge of the window")
	rootCmd.PersistentFlags().Float64Var(&ymin, "ymin", config.DefaultBounds.YMin, "bottom edge of the window")
	rootCmd.PersistentFlags().Float64Var(&ymax, "ymax", config.DefaultBounds.YMax, "top edge of the window")
	rootCmd.PersistentFlags().IntVar(&samples, "samples", config.DefaultSamples, "number of samples")
	rootCmd.PersistentFlags().StringVar(&ops, "ops", "", "transform chain, e.g. d,i")
	rootCmd.PersistentFlags().BoolVar(&strictParse, "strict", false, "fail on parse errors instead of plotting zero")
	rootCmd.Flags().BoolVar(&ease, "ease", true, "animate the reveal")
	rootCmd.Flags().DurationVar(&duration, "duration", config.DefaultDuration, "animation length")
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	rootCmd.Flags().IntVar(&tuiCols, "cols", viz.DefaultCols, "plot width in terminal cells")
	rootCmd.Flags().IntVar(&tuiRows, "rows", viz.DefaultRows, "plot height in terminal cells")

	renderCmd := &cobra.Command{
		Use:   "render [expression]",
		Short: "render a plot to png, svg or gif",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	addImageFlags(renderCmd)
	renderCmd.Flags().BoolVar(&ease, "ease", true, "record the eased reveal (gif only)")
	renderCmd.Flags().DurationVar(&duration, "duration", config.DefaultDuration, "animation length (gif only)")
	renderCmd.Flags().IntVar(&gifFPS, "fps", export.DefaultGIFFPS, "gif frame rate")

	asciiCmd := &cobra.Command{
		Use:   "ascii [expression]",
		Short: "print an ascii chart",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runASCII,
	}
	asciiCmd.Flags().IntVar(&asciiWidth, "width", 80, "chart width in columns")
	asciiCmd.Flags().IntVar(&asciiHeight, "height", 15, "chart height in rows")

	samplesCmd := &cobra.Command{
		Use:   "samples [expression]",
		Short: "print samples as csv or json",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSamples,
	}
	samplesCmd.Flags().StringVar(&format, "format", "csv", "output format (csv|json)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEXPRESSION\tBOUNDS\tSAMPLES")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", name, p.Expression, p.Bounds, p.Samples)
			}
			return w.Flush()
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch [config]",
		Short: "re-render whenever the config file changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
	addImageFlags(watchCmd)

	rootCmd.AddCommand(renderCmd, asciiCmd, samplesCmd, presetsCmd, watchCmd)
	return rootCmd
}

func addImageFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&output, "output", "o", "plot.png", "output file (.png, .svg or .gif)")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "image width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "image height")
	cmd.Flags().StringVar(&theme, "theme", "", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	cmd.Flags().StringVar(&background, "background", config.DefaultStyle.Background, "background color")
	cmd.Flags().StringVar(&lineColor, "line", config.DefaultStyle.Line, "line color")
	cmd.Flags().Float64Var(&lineWidth, "line-width", config.DefaultStyle.LineWidth, "line width")
}

func setupLogging() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	var w io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		logOut, w = f, f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

// resolveConfig layers defaults, preset, config file, changed flags and the
// positional expression, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	applyFlags(cmd, cfg)
	if len(args) > 0 {
		cfg.Expression = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("xmin") {
		cfg.Bounds.XMin = xmin
	}
	if flags.Changed("xmax") {
		cfg.Bounds.XMax = xmax
	}
	if flags.Changed("ymin") {
		cfg.Bounds.YMin = ymin
	}
	if flags.Changed("ymax") {
		cfg.Bounds.YMax = ymax
	}
	if flags.Changed("samples") {
		cfg.Samples = samples
	}
	if flags.Changed("ops") {
		cfg.Ops = ops
	}
	if flags.Changed("ease") {
		cfg.Ease = ease
	}
	if flags.Changed("duration") {
		cfg.Duration = duration
	}
	if flags.Changed("width") && flags.Lookup("output") != nil {
		cfg.Width = width
	}
	if flags.Changed("height") && flags.Lookup("output") != nil {
		cfg.Height = height
	}
	if flags.Changed("theme") && theme != "" {
		cfg.Theme = theme
		if flags.Lookup("background") != nil {
			cfg.Style = viz.GetTheme(theme).Style()
		}
	}
	if flags.Changed("background") {
		cfg.Style.Background = background
	}
	if flags.Changed("line") {
		cfg.Style.Line = lineColor
	}
	if flags.Changed("line-width") {
		cfg.Style.LineWidth = lineWidth
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := renderFile(cmd.Context(), cfg, output); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", output)
	return nil
}

func runASCII(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	s, err := computeSamples(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	chart, err := export.ASCII(s, cfg.Bounds, export.ASCIIOptions{
		Width:   asciiWidth,
		Height:  asciiHeight,
		Caption: caption(cfg),
	})
	if err != nil {
		return err
	}
	fmt.Println(chart)
	return nil
}

func runSamples(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	s, err := computeSamples(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	switch format {
	case "csv":
		return export.WriteCSV(os.Stdout, s)
	case "json":
		return export.WriteJSON(os.Stdout, export.NewSampleData(cfg.Expression, cfg.Ops, cfg.Bounds, s))
	}
	return fmt.Errorf("%w: %q", export.ErrFormat, format)
}

func runWatch(cmd *cobra.Command, args []string) error {
	configFile = args[0]
	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}
	if err := renderFile(cmd.Context(), cfg, output); err != nil {
		return err
	}
	slog.Info("rendered", "output", output)

	err = config.Watch(cmd.Context(), configFile, func(_ *config.Config, err error) {
		if err != nil {
			slog.Error("reload failed", "path", configFile, "error", err)
			return
		}
		cfg, err := resolveConfig(cmd, nil)
		if err != nil {
			slog.Error("reload failed", "path", configFile, "error", err)
			return
		}
		if err := renderFile(cmd.Context(), cfg, output); err != nil {
			slog.Error("render failed", "output", output, "error", err)
			return
		}
		slog.Info("rendered", "output", output, "expression", cfg.Expression)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func caption(cfg *config.Config) string {
	ts, _ := cfg.Transforms()
	c := "f(x) = " + cfg.Expression
	for _, t := range ts {
		c += " | " + t.String()
	}
	return c
}
