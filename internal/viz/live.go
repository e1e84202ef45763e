package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/waypointctl/internal/replay"
	"github.com/san-kum/waypointctl/internal/vehicle"
)

const (
	width           = 72
	height          = 22
	historyCapacity = 600
	sparkWidth      = 36
)

type TickMsg time.Time

// Model steps a replay runner through a trace, one record per tick.
type Model struct {
	runner        *replay.Runner
	trace         []vehicle.State
	pos           int
	fps           int
	running       bool
	done          bool
	canvas        *Canvas
	trail         [][2]float64
	steerHistory  []float64
	cteHistory    []float64
	last          replay.Cycle
	errCount      int
	lastErr       error
	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
	title         string
	pathLen       int
	pathLength    float64
}

// NewModel builds a live view over runner. The runner's loop must already
// have a path.
func NewModel(runner *replay.Runner, trace []vehicle.State, fps int, title string) Model {
	if fps <= 0 {
		fps = 30
	}
	loop := runner.Loop()
	params := loop.GetParams()
	keys := make([]string, 0, len(params))
	initial := make(map[string]float64, len(params))
	for k, v := range params {
		keys = append(keys, k)
		initial[k] = v
	}
	sort.Strings(keys)

	c := NewCanvas(width, height)
	c.Fit(loop.Path())

	return Model{
		runner:        runner,
		trace:         trace,
		fps:           fps,
		running:       true,
		canvas:        c,
		trail:         make([][2]float64, 0, historyCapacity),
		steerHistory:  make([]float64, 0, historyCapacity),
		cteHistory:    make([]float64, 0, historyCapacity),
		params:        params,
		initialParams: initial,
		paramKeys:     keys,
		title:         title,
		pathLen:       loop.Path().Len(),
		pathLength:    loop.Path().Length(),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the replay.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			if !m.running {
				m.step()
			}
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		}
	case TickMsg:
		if m.running && !m.done {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step runs the next trace record through the loop.
func (m *Model) step() {
	if m.pos >= len(m.trace) {
		m.done = true
		return
	}
	c := m.runner.Step(m.pos, m.trace[m.pos])
	m.pos++
	m.last = c
	if c.Err != nil {
		m.errCount++
		m.lastErr = c.Err
	}

	m.trail = pushBounded(m.trail, [2]float64{c.State.X, c.State.Y})
	m.steerHistory = pushBounded(m.steerHistory, c.Command.Steer)
	m.cteHistory = pushBounded(m.cteHistory, c.Diagnostics.CrossTrackError)
	if m.pos >= len(m.trace) {
		m.done = true
	}
}

func pushBounded[T any](s []T, v T) []T {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

// adjustParam scales the selected gain. Values the loop rejects are dropped.
func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	val := m.params[key] * factor
	if err := m.runner.Loop().SetParam(key, val); err != nil {
		m.lastErr = err
		return
	}
	m.params[key] = val
}

func (m *Model) draw() {
	loop := m.runner.Loop()
	p := loop.Path()
	m.canvas.Clear()
	m.canvas.DrawPath(p)
	for _, pt := range m.trail {
		m.canvas.Plot(pt[0], pt[1])
	}
	if m.pos == 0 {
		return
	}
	d := m.last.Diagnostics
	if d.LookAhead >= 0 && d.LookAhead < p.Len() {
		w := p.At(d.LookAhead)
		m.canvas.Cross(w.X, w.Y)
	}
	m.canvas.Cross(m.last.State.X, m.last.State.Y)
}

// View renders the canvas and the stats panel.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status() + "\n\n")

	d := m.last.Diagnostics
	cmd := m.last.Command
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Cycle", fmt.Sprintf("%d/%d", m.pos, len(m.trace)))
	row("Path", fmt.Sprintf("%d wps, %.1f m", m.pathLen, m.pathLength))
	row("Frame", fmt.Sprintf("%d", m.last.State.Frame))
	row("Phase", d.Phase.String())
	row("Waypoint", fmt.Sprintf("%d → %d", d.Nearest, d.LookAhead))
	row("Speed", fmt.Sprintf("%.2f / %.2f", m.last.State.Speed, d.DesiredSpeed))
	row("Cross-track", fmt.Sprintf("%+.3f", d.CrossTrackError))
	row("Heading err", fmt.Sprintf("%+.3f rad", d.HeadingError))
	row("Command", cmd.String())
	if m.errCount > 0 {
		row("Errors", StatusError.Render(fmt.Sprintf("%d", m.errCount)))
	}

	s.WriteString("\n" + labelStyle.Render("steer") + Sparkline(m.steerHistory, sparkWidth) + "\n")
	s.WriteString(labelStyle.Render("cte") + Sparkline(m.cteHistory, sparkWidth) + "\n")
	if len(m.cteHistory) > 1 {
		chart := asciigraph.Plot(m.cteHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Cross-track"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\nGAINS\n")
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-16s %.4f", k, m.params[k])
		if m.params[k] != m.initialParams[k] {
			line += "*"
		}
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.UnsetWidth().Render(line) + "\n")
		}
	}
	if m.lastErr != nil {
		s.WriteString("\n" + StatusError.Render(truncate(m.lastErr.Error(), 42)) + "\n")
	}
	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause N:Step Q:Quit\nTab:Gain ↑↓:Tune"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

func (m Model) status() string {
	switch {
	case m.done:
		return StatusPaused.Render("FINISHED")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	default:
		return StatusRunning.Render("RUNNING")
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Run starts the live view and blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
