package viz

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fnviz/internal/expr"
	"github.com/san-kum/fnviz/internal/plot"
	"github.com/san-kum/fnviz/internal/surface"
	"github.com/san-kum/fnviz/internal/visualizer"
)

const (
	DefaultCols = 100
	DefaultRows = 25
	frameRate   = time.Second / 60
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(36)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

type TickMsg time.Time

// plotMsg asks the app to plot whatever is in the input box.
type plotMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

type Options struct {
	Expression string
	Bounds     plot.Bounds
	Samples    int
	Cols, Rows int
	Theme      string
	Eased      bool
	Duration   time.Duration
	Visualizer []visualizer.Option
}

// App is the interactive plotter: an expression input above a braille plot.
type App struct {
	ctx     context.Context
	input   textinput.Model
	vis     *visualizer.Visualizer
	canvas  *surface.Braille
	bounds  plot.Bounds
	samples int
	eased   bool
	theme   int
	history []string
	status  string
	failed  bool
	frame   []string
}

func NewApp(ctx context.Context, o Options) *App {
	if o.Cols <= 0 {
		o.Cols = DefaultCols
	}
	if o.Rows <= 0 {
		o.Rows = DefaultRows
	}
	if o.Samples <= 0 {
		o.Samples = visualizer.DefaultSamples
	}
	if o.Bounds == (plot.Bounds{}) {
		o.Bounds = plot.Bounds{XMin: 0, XMax: 10, YMin: -10, YMax: 10}
	}

	ti := textinput.New()
	ti.Prompt = "f(x) = "
	ti.Placeholder = "3sin(x)"
	ti.CharLimit = 256
	ti.Width = o.Cols - len(ti.Prompt)
	ti.SetValue(o.Expression)
	ti.Focus()

	canvas := surface.NewBraille(o.Cols, o.Rows)
	theme := themeIndex(o.Theme)
	opts := append([]visualizer.Option{
		visualizer.WithStyle(Themes[theme].Style()),
		visualizer.WithDefaultBounds(o.Bounds),
	}, o.Visualizer...)
	if o.Duration > 0 {
		opts = append(opts, visualizer.WithAnimation(o.Duration, frameRate))
	}

	return &App{
		ctx:     ctx,
		input:   ti,
		vis:     visualizer.New(canvas, plotPadding, opts...),
		canvas:  canvas,
		bounds:  o.Bounds,
		samples: o.Samples,
		eased:   o.Eased,
		theme:   theme,
		status:  "ready",
	}
}

// plotPadding keeps one braille cell of margin on each side.
var plotPadding = plot.Padding{Left: 2, Top: 4, Right: 2, Bottom: 4}

// Init starts the cursor and frame ticks and plots the starting expression,
// if there is one.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, tick()}
	if strings.TrimSpace(a.input.Value()) != "" {
		cmds = append(cmds, func() tea.Msg { return plotMsg{} })
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			a.vis.Close()
			return a, tea.Quit
		case tea.KeyEnter:
			a.visualize()
			return a, nil
		case tea.KeyCtrlD:
			a.transform(plot.Derive)
			return a, nil
		case tea.KeyTab:
			a.transform(plot.Integrate)
			return a, nil
		case tea.KeyCtrlT:
			a.cycleTheme()
			return a, nil
		}
	case plotMsg:
		a.visualize()
		return a, nil
	case TickMsg:
		a.vis.Inspect(func(surface.Surface) { a.frame = a.canvas.Lines() })
		return a, tick()
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) renderOptions() []visualizer.RenderOption {
	return []visualizer.RenderOption{
		visualizer.Eased(a.eased),
		visualizer.InBounds(a.bounds),
		visualizer.NumSamples(a.samples),
	}
}

func (a *App) visualize() {
	src := strings.TrimSpace(a.input.Value())
	a.failed = false
	a.history = a.history[:0]
	if _, err := expr.Compile(src); err != nil {
		a.status, a.failed = err.Error(), true
	} else {
		a.status = "plotting " + src
	}
	a.history = append(a.history, src)

	if err := a.vis.Clear(); err != nil {
		a.status, a.failed = err.Error(), true
		return
	}
	if err := a.vis.Visualize(a.ctx, src, a.renderOptions()...); err != nil {
		a.status, a.failed = err.Error(), true
	}
}

func (a *App) transform(t plot.Transform) {
	var err error
	if t == plot.Integrate {
		err = a.vis.Integrate(a.ctx, a.renderOptions()...)
	} else {
		err = a.vis.Differentiate(a.ctx, a.renderOptions()...)
	}
	if err != nil {
		a.status, a.failed = err.Error(), true
		return
	}
	a.history = append(a.history, t.String())
	a.status, a.failed = t.String(), false
}

func (a *App) cycleTheme() {
	a.theme = (a.theme + 1) % len(Themes)
	if err := a.vis.SetStyle(Themes[a.theme].Style()); err != nil {
		a.status, a.failed = err.Error(), true
		return
	}
	a.status = "theme " + Themes[a.theme].Name
}

func (a *App) Theme() Theme { return Themes[a.theme] }

func (a *App) Status() string { return a.status }

// Samples returns the plotted dataset.
func (a *App) Samples() plot.Samples { return a.vis.Samples() }

func (a *App) View() string {
	th := Themes[a.theme]
	title := GradientText("FNVIZ", th.Primary, th.Secondary)

	plotStyle := lipgloss.NewStyle().Foreground(th.Primary)
	frame := a.frame
	if frame == nil {
		frame = a.canvas.Lines()
	}
	plotView := canvasStyle.Render(plotStyle.Render(strings.Join(frame, "\n")))

	stats := statsStyle.Render(a.viewStats(th))
	body := lipgloss.JoinHorizontal(lipgloss.Top, plotView, stats)

	statusStyle := lipgloss.NewStyle().Foreground(th.Success)
	if a.failed {
		statusStyle = lipgloss.NewStyle().Foreground(th.Error)
	}

	var b strings.Builder
	b.WriteString("\n  " + title + "  " + Subtle.Render("function plotter") + "\n\n")
	b.WriteString("  " + a.input.View() + "\n")
	b.WriteString(body + "\n")
	b.WriteString("  " + statusStyle.Render(a.status) + "\n\n")
	b.WriteString("  " + keyHints(th) + "\n")
	return b.String()
}

func (a *App) viewStats(th Theme) string {
	s := a.vis.Samples()
	lo, hi := yRange(s)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(th.Accent).Bold(true).Render("DATASET") + "\n\n")
	b.WriteString(labelStyle.Render("Chain") + valueStyle.Render(strings.Join(a.history, " → ")) + "\n")
	b.WriteString(labelStyle.Render("Samples") + valueStyle.Render(fmt.Sprintf("%d", len(s))) + "\n")
	b.WriteString(labelStyle.Render("Undefined") + valueStyle.Render(fmt.Sprintf("%d", s.Failed())) + "\n")
	b.WriteString(labelStyle.Render("x") + valueStyle.Render(fmt.Sprintf("[%g, %g]", a.bounds.XMin, a.bounds.XMax)) + "\n")
	b.WriteString(labelStyle.Render("y window") + valueStyle.Render(fmt.Sprintf("[%g, %g]", a.bounds.YMin, a.bounds.YMax)) + "\n")
	if len(s) > 0 {
		b.WriteString(labelStyle.Render("y range") + valueStyle.Render(fmt.Sprintf("[%.3g, %.3g]", lo, hi)) + "\n")
	}
	b.WriteString(labelStyle.Render("Theme") + valueStyle.Render(th.Name) + "\n")
	if a.vis.Animating() {
		b.WriteString("\n" + StatusRunning.Render("● drawing") + "\n")
	}
	return b.String()
}

func yRange(s plot.Samples) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range s {
		if math.IsNaN(p.Y) {
			continue
		}
		lo, hi = math.Min(lo, p.Y), math.Max(hi, p.Y)
	}
	return lo, hi
}

func keyHints(th Theme) string {
	key := lipgloss.NewStyle().Foreground(th.Secondary).Bold(true)
	pairs := [][2]string{{"enter", "plot"}, {"ctrl+d", "derivative"}, {"tab", "integral"}, {"ctrl+t", "theme"}, {"esc", "quit"}}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = key.Render(p[0]) + KeyHint.Render(" "+p[1])
	}
	return strings.Join(parts, "  ")
}

// Run starts the terminal UI and blocks until the user quits.
func Run(ctx context.Context, o Options) error {
	_, err := tea.NewProgram(NewApp(ctx, o), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
