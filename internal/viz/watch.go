package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/chemlab/internal/kinetics"
	"github.com/san-kum/chemlab/internal/sim"
)

const (
	canvasWidth     = 60
	canvasHeight    = 14
	historyCapacity = 600
	addAmount       = 0.1
	offsetStep      = 10.0
)

// Snapshot is one recorded frame.
type Snapshot struct {
	Amounts     []float64
	Time        float64
	Temperature float64
	Volume      float64
	Reward      float64
	Absorbance  []float64
}

type TickMsg time.Time

// Model steps a reaction once per tick and renders its state.
type Model struct {
	reaction   *kinetics.Reaction
	thermostat sim.Thermostat
	name       string
	dt, t      float64
	duration   float64
	offset     float64
	running    bool
	canvas     *SpectrumCanvas
	peaks      []float64
	history    []Snapshot
	rewards    []float64
	playHead   int
	lastErr    error
	showHelp   bool
	logger     *slog.Logger
}

// NewModel watches reaction under thermostat with step dt. A positive
// duration pauses the model once it is reached.
func NewModel(reaction *kinetics.Reaction, thermostat sim.Thermostat, dt, duration float64, name string, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var peaks []float64
	for _, set := range reaction.Spectra() {
		for _, p := range set {
			peaks = append(peaks, p.Center)
		}
	}
	return Model{
		reaction:   reaction,
		thermostat: thermostat,
		name:       name,
		dt:         dt,
		duration:   duration,
		running:    true,
		canvas:     NewSpectrumCanvas(canvasWidth, canvasHeight),
		peaks:      peaks,
		history:    make([]Snapshot, 0, historyCapacity),
		rewards:    make([]float64, 0, historyCapacity),
		playHead:   -1,
		logger:     logger,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "space":
			m.running = !m.running
		case "r":
			m.reset()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "up", "k":
			m.offset += offsetStep
		case "down", "j":
			m.offset -= offsetStep
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		default:
			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				m.add(int(key[0] - '1'))
			}
		}
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				m.step()
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		return m, tick()
	}
	return m, nil
}

// step advances the reaction once; a failed step pauses the model.
func (m *Model) step() {
	if m.duration > 0 && m.t >= m.duration {
		m.running = false
		return
	}

	c := m.conditions()
	reward, err := m.reaction.Update(c.Temperature, c.Volume, m.dt)
	if err != nil {
		m.lastErr = err
		m.running = false
		m.logger.Warn("watch step failed", slog.Float64("t", m.t), slog.Any("error", err))
		return
	}
	m.lastErr = nil
	m.t += m.dt
	m.record(c, reward)
}

func (m *Model) conditions() sim.Conditions {
	c := m.thermostat.Compute(sim.State(m.reaction.Amounts()), m.t)
	c.Temperature = max(c.Temperature+m.offset, 1)
	return c
}

func (m *Model) record(c sim.Conditions, reward float64) {
	absorbance, err := m.reaction.Spectrum(c.Volume)
	if err != nil {
		absorbance = nil
	}
	snap := Snapshot{
		Amounts:     m.reaction.Amounts(),
		Time:        m.t,
		Temperature: c.Temperature,
		Volume:      c.Volume,
		Reward:      reward,
		Absorbance:  absorbance,
	}
	m.history = append(m.history, snap)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
	m.rewards = append(m.rewards, reward)
	if len(m.rewards) > historyCapacity {
		m.rewards = m.rewards[1:]
	}
}

func (m *Model) add(i int) {
	if _, err := m.reaction.Add(i, addAmount); err != nil {
		m.lastErr = err
	}
}

// scrub moves the replay position through history; leaving the end
// returns to live stepping.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

func (m *Model) reset() {
	m.reaction.Reset()
	m.t = 0
	m.offset = 0
	m.history = m.history[:0]
	m.rewards = m.rewards[:0]
	m.playHead = -1
	m.lastErr = nil
	m.running = true
}

// current returns the frame to display: the replay frame if scrubbing,
// otherwise the latest live frame.
func (m Model) current() (Snapshot, bool) {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		return m.history[m.playHead], true
	}
	if len(m.history) > 0 {
		return m.history[len(m.history)-1], true
	}
	return Snapshot{}, false
}

func (m Model) View() string {
	snap, ok := m.current()

	m.canvas.Clear()
	for _, p := range m.peaks {
		m.canvas.Mark(p)
	}
	if ok && snap.Absorbance != nil {
		m.canvas.Draw(snap.Absorbance)
	}
	spectrumView := panelStyle().Render(
		fg(CurrentTheme.Primary).Render(m.canvas.String()) +
			valueStyle().Render(fmt.Sprintf("%-30s%30s", "200 nm", "800 nm")))

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(m.status() + "\n\n")

	s.WriteString(labelStyle().Render("Time") + valueStyle().Render(fmt.Sprintf("%.2f", snap.Time)) + "\n")
	s.WriteString(labelStyle().Render("Temp") + valueStyle().Render(fmt.Sprintf("%.1f K (%+.0f)", snap.Temperature, m.offset)) + "\n")
	s.WriteString(labelStyle().Render("Volume") + valueStyle().Render(fmt.Sprintf("%.4g", snap.Volume)) + "\n\n")

	labels, nmax := m.reaction.Labels(), m.reaction.NMax()
	amounts := snap.Amounts
	if !ok {
		amounts = m.reaction.Amounts()
	}
	for i, label := range labels {
		frac := 0.0
		if nmax[i] > 0 {
			frac = amounts[i] / nmax[i]
		}
		s.WriteString(labelStyle().Render(label) + FillBar(frac, 16) + valueStyle().Render(fmt.Sprintf(" %.4f", amounts[i])) + "\n")
	}

	stock := m.reaction.AmountInHand()
	if len(stock) > 0 {
		parts := make([]string, len(stock))
		for i, v := range stock {
			parts[i] = fmt.Sprintf("%d:%s %.2f", i+1, labels[i], v)
		}
		s.WriteString(labelStyle().Render("Stock") + valueStyle().Render(strings.Join(parts, "  ")) + "\n")
	}

	if len(m.rewards) > 1 {
		s.WriteString("\n" + asciigraph.Plot(m.rewards, asciigraph.Height(4), asciigraph.Width(36), asciigraph.Caption("reward / step")) + "\n")
		s.WriteString(Sparkline(m.rewards, 36) + "\n")
	}
	if m.lastErr != nil {
		s.WriteString("\n" + fg(CurrentTheme.Error).Render(m.lastErr.Error()) + "\n")
	}
	s.WriteString(helpStyle().Render("SP:Pause R:Reset Q:Quit 1-9:Add\n↑↓:Temp [ ]:Replay T:Theme ?:Help"))

	statsView := lipgloss.NewStyle().Padding(0, 2).Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, spectrumView, statsView)
	if m.showHelp {
		return panelStyle().Render(helpText) + "\n" + mainView
	}
	return mainView
}

func (m Model) status() string {
	switch {
	case m.lastErr != nil:
		return fg(CurrentTheme.Error).Bold(true).Render("HALTED")
	case m.playHead != -1 && len(m.history) > 0:
		back := m.history[m.playHead].Time - m.history[len(m.history)-1].Time
		return fg(CurrentTheme.Warning).Bold(true).Render(fmt.Sprintf("REPLAY (%.2f)", back))
	case !m.running:
		return fg(CurrentTheme.Warning).Bold(true).Render("PAUSED")
	}
	return fg(CurrentTheme.Success).Bold(true).Render("RUNNING")
}

const helpText = `Space     pause / resume
R         reset the reaction
1-9       add 0.1 mol of reactant N from stock
Up/K      raise temperature offset by 10 K
Down/J    lower temperature offset by 10 K
[ / ]     step through recorded frames
T         cycle themes
Q         quit`
