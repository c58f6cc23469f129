package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/collisim/internal/dynamo"
	"github.com/san-kum/collisim/internal/metrics"
	"github.com/san-kum/collisim/internal/sim"
)

const (
	canvasRows      = 24
	canvasCols      = 2 * canvasRows
	historyCapacity = 300
	// frames longer than this are stepped as if they took maxFrameDt
	maxFrameDt = 0.1
)

type TickMsg time.Time

// Model holds the world, the canvas and whatever input arrived since the
// last frame.
type Model struct {
	world  *sim.World
	logger *log.Logger
	canvas *Canvas
	fps    int

	running bool
	last    time.Time

	impulse bool
	attract bool
	repel   bool
	mouse   dynamo.Vec

	stats         sim.FrameStats
	energy        *metrics.KineticEnergy
	energyHistory []float64
	contacts      []float64
	measured      float64
	frameCount    int
	fpsWindow     time.Time
	err           error
}

func NewModel(world *sim.World, logger *log.Logger, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	return Model{
		world:         world,
		logger:        logger,
		canvas:        NewCanvas(canvasCols, canvasRows),
		fps:           fps,
		energy:        metrics.NewKineticEnergy(),
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		contacts:      make([]float64, 0, historyCapacity),
	}
}

// Run starts the terminal driver and blocks until the user quits.
func Run(world *sim.World, logger *log.Logger, fps int) error {
	p := tea.NewProgram(NewModel(world, logger, fps), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.impulse = true
		case "up", "k":
			m.world.SetGravity(false)
		case "down", "j":
			m.world.SetGravity(true)
		case "p":
			m.running = !m.running
			m.last = time.Time{}
		case "r":
			m.reset()
		case "t":
			NextTheme()
		}

	case tea.MouseMsg:
		m.mouse = m.canvas.CellToWorld(msg.X, msg.Y)
		switch msg.Action {
		case tea.MouseActionPress:
			switch msg.Button {
			case tea.MouseButtonLeft:
				m.repel = true
			case tea.MouseButtonRight:
				m.attract = true
			}
		case tea.MouseActionRelease:
			m.repel, m.attract = false, false
		}

	case TickMsg:
		now := time.Time(msg)
		if m.running && m.err == nil {
			m.step(now)
		}
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

// step measures elapsed time since the previous tick and advances the world.
func (m *Model) step(now time.Time) {
	dt := 1.0 / float64(m.fps)
	if !m.last.IsZero() {
		dt = min(now.Sub(m.last).Seconds(), maxFrameDt)
	}
	m.last = now

	in := sim.Input{
		Impulse: m.impulse,
		Attract: m.attract,
		Repel:   m.repel,
		Mouse:   m.mouse,
	}
	m.impulse = false

	stats, err := m.world.Frame(dt, in)
	if err != nil {
		m.err = err
		m.logger.Error("frame failed", "frame", stats.Frame, "err", err)
		return
	}
	m.stats = stats

	m.energy.Observe(m.world.Set, m.world.Time())
	m.energyHistory = appendCapped(m.energyHistory, m.energy.Value())
	m.contacts = appendCapped(m.contacts, float64(stats.Step.Contacts.Touching))

	m.frameCount++
	if m.fpsWindow.IsZero() {
		m.fpsWindow = now
	}
	if elapsed := now.Sub(m.fpsWindow); elapsed >= time.Second {
		m.measured = float64(m.frameCount) / elapsed.Seconds()
		m.logger.Debug("fps", "fps", m.measured, "frame", stats.Frame, "step", stats.Step.Elapsed)
		m.frameCount = 0
		m.fpsWindow = now
	}
}

func appendCapped(xs []float64, v float64) []float64 {
	xs = append(xs, v)
	if len(xs) > historyCapacity {
		xs = xs[1:]
	}
	return xs
}

func (m *Model) reset() {
	m.world.Reset()
	m.energyHistory = m.energyHistory[:0]
	m.contacts = m.contacts[:0]
	m.last = time.Time{}
	m.err = nil
}

func (m *Model) draw() {
	m.canvas.Clear()
	w := float64(m.canvas.Width*2 - 1)
	h := float64(m.canvas.Height*4 - 1)
	m.canvas.DrawLine(0, 0, int(w), 0)
	m.canvas.DrawLine(0, int(h), int(w), int(h))
	m.canvas.DrawLine(0, 0, 0, int(h))
	m.canvas.DrawLine(int(w), 0, int(w), int(h))

	radius := m.world.Params().Radius
	for _, p := range m.world.Set.Pos {
		m.canvas.Particle(p, radius)
	}
	if m.attract || m.repel {
		m.canvas.Ring(m.mouse, m.world.Params().MouseRadius)
	}
}

// View renders the canvas with a stats panel to its right.
func (m Model) View() string {
	st := themed()

	var s strings.Builder
	s.WriteString(st.header.Render("COLLISIM") + "\n")

	status := st.active.Render("RUNNING")
	if !m.running {
		status = st.muted.Render("PAUSED")
	}
	if m.err != nil {
		status = st.err.Render("HALTED")
	}
	s.WriteString(status + "\n\n")

	gravity := "off"
	if m.world.Gravity() {
		gravity = "on"
	}
	mouse := "-"
	switch {
	case m.repel:
		mouse = "repel"
	case m.attract:
		mouse = "attract"
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("particles", fmt.Sprintf("%d", m.world.Set.Len()))
	row("backend", m.world.Backend().Name())
	row("frame", fmt.Sprintf("%d", m.stats.Frame))
	row("time", fmt.Sprintf("%.2fs", m.world.Time()))
	row("fps", fmt.Sprintf("%.0f", m.measured))
	row("step", m.stats.Step.Elapsed.Round(time.Microsecond).String())
	row("tasks", fmt.Sprintf("%d", m.stats.Step.Tasks))
	row("contacts", fmt.Sprintf("%d", m.stats.Step.Contacts.Touching))
	row("walls", fmt.Sprintf("%d", m.stats.Step.BorderHits))
	row("gravity", gravity)
	row("mouse", mouse)

	s.WriteString("\n" + st.muted.Render("contacts") + "\n")
	s.WriteString(st.value.Render(Sparkline(m.contacts, 32)) + "\n")

	if len(m.energyHistory) > 1 {
		graph := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(6),
			asciigraph.Width(28),
			asciigraph.Caption("kinetic energy"),
		)
		s.WriteString(st.graph.Render(graph) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + st.err.Render(m.err.Error()) + "\n")
	}
	s.WriteString("\n" + st.muted.Render("space kick · ↑/↓ gravity · p pause · r reset · t theme · q quit"))

	canvas := st.canvas.Render(m.canvas.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, st.panel.Render(s.String()))
}
