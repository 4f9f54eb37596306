package viz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/rdlab/internal/metrics"
	"github.com/san-kum/rdlab/internal/rd"
	"github.com/san-kum/rdlab/internal/sim"
)

// paramSteps sets the left/right adjustment increment per parameter.
var paramSteps = map[string]float64{
	rd.ParamDu: 0.01,
	rd.ParamDv: 0.01,
	rd.ParamF:  0.001,
	rd.ParamK:  0.001,
	rd.ParamDt: 0.05,
}

type liveModel struct {
	ctrl *sim.Controller
	seed sim.SeedSpec

	stepsPerTick int
	paused       bool
	diverged     bool
	divergedMsg  string
	species      string

	paramNames  []string
	paramCursor int
	editing     bool
	editBuf     string

	history   []float64
	lastFrame time.Time
	fps       float64

	width  int
	height int
}

// NewLive wires a running controller into a terminal view. The controller
// keeps sole ownership of the simulation; the view only calls Advance,
// SetParameter and Reset.
func NewLive(ctrl *sim.Controller, seed sim.SeedSpec, stepsPerTick int) *liveModel {
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}
	return &liveModel{
		ctrl:         ctrl,
		seed:         seed,
		stepsPerTick: stepsPerTick,
		species:      "v",
		paramNames:   rd.ParamNames(),
		history:      make([]float64, 0, 120),
		width:        80,
		height:       24,
	}
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m liveModel) Init() tea.Cmd { return tick() }

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if !m.paused && !m.diverged {
			now := time.Now()
			if !m.lastFrame.IsZero() {
				dt := now.Sub(m.lastFrame).Seconds()
				if dt > 0 {
					m.fps = 1.0 / dt
				}
			}
			m.lastFrame = now

			if err := m.ctrl.Advance(context.Background(), m.stepsPerTick); err != nil {
				var derr *rd.DivergenceError
				if errors.As(err, &derr) {
					m.diverged = true
					m.divergedMsg = derr.Error()
				} else {
					m.diverged = true
					m.divergedMsg = err.Error()
				}
			}

			frame := m.ctrl.CurrentFrame()
			sum := metrics.Summarize(frame.Step, frame.U, frame.V)
			m.history = append(m.history, sum.V.Mean)
			if len(m.history) > 120 {
				m.history = m.history[1:]
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m liveModel) handleKey(msg tea.KeyMsg) (liveModel, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%f", &val); err == nil {
				m.ctrl.SetParameter(m.paramNames[m.paramCursor], val)
			}
			m.editing = false
			m.editBuf = ""
		case "escape":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c", "escape":
		return m, tea.Quit
	case " ", "p":
		m.paused = !m.paused
	case "r":
		m.ctrl.Reset(m.seed)
		m.history = m.history[:0]
		m.diverged = false
		m.divergedMsg = ""
	case "tab", "s":
		if m.species == "v" {
			m.species = "u"
		} else {
			m.species = "v"
		}
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter":
		name := m.paramNames[m.paramCursor]
		if v, err := m.ctrl.Params().Get(name); err == nil {
			m.editing = true
			m.editBuf = fmt.Sprintf("%.3f", v)
		}
	case "left", "h":
		m.adjustParam(-1)
	case "right", "l":
		m.adjustParam(1)
	case "+", "=":
		if m.stepsPerTick < 256 {
			m.stepsPerTick *= 2
		}
	case "-", "_":
		if m.stepsPerTick > 1 {
			m.stepsPerTick /= 2
		}
	}
	return m, nil
}

func (m *liveModel) adjustParam(dir float64) {
	name := m.paramNames[m.paramCursor]
	cur, err := m.ctrl.Params().Get(name)
	if err != nil {
		return
	}
	m.ctrl.SetParameter(name, cur+dir*paramSteps[name])
}

func (m liveModel) View() string {
	frame := m.ctrl.CurrentFrame()
	grid := m.ctrl.Grid()

	cw := m.width - 6
	ch := m.height - 11
	if cw < 40 {
		cw = 40
	}
	if ch < 10 {
		ch = 10
	}

	field := frame.V
	if m.species == "u" {
		field = frame.U
	}

	var b strings.Builder

	statusIcon := green.Render("●")
	statusText := green.Render("running")
	if m.paused {
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("paused")
	}
	if m.diverged {
		statusIcon = red.Render("✕")
		statusText = red.Render("diverged")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n",
		statusIcon, cyan.Render(m.ctrl.Kinetics().Name()), statusText,
		dim.Render(fmt.Sprintf("step %d  %dx/tick  %.0ffps", frame.Step, m.stepsPerTick, m.fps))))
	b.WriteString(dimmer.Render("   "+strings.Repeat("─", cw)) + "\n")

	view := FieldView(grid, field, cw, ch)
	for _, row := range strings.Split(view, "\n") {
		b.WriteString("   " + row + "\n")
	}
	b.WriteString(dimmer.Render("   "+strings.Repeat("─", cw)) + "\n")

	if m.diverged {
		b.WriteString("   " + red.Render(m.divergedMsg) + "\n")
	}

	b.WriteString(m.viewParams())
	b.WriteString(m.viewStats(frame))

	b.WriteString("\n" + dim.Render("   space pause  ↑↓ param  ←→ adjust  enter edit  tab species  ± speed  r reseed  q quit") + "\n")
	return b.String()
}

func (m liveModel) viewParams() string {
	var b strings.Builder
	p := m.ctrl.Params()
	b.WriteString("   ")
	for i, name := range m.paramNames {
		v, _ := p.Get(name)
		val := fmt.Sprintf("%.3f", v)
		if m.editing && i == m.paramCursor {
			val = m.editBuf + "▋"
		}
		if i == m.paramCursor {
			b.WriteString(cyan.Render("▸") + white.Render(name) + "=" + magenta.Render(val) + "  ")
		} else {
			b.WriteString(dim.Render(name+"="+val) + "  ")
		}
	}
	b.WriteString(dim.Render(fmt.Sprintf("species:%s", m.species)) + "\n")
	return b.String()
}

func (m liveModel) viewStats(frame sim.Frame) string {
	sum := metrics.Summarize(frame.Step, frame.U, frame.V)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("   %s u[%.3f %.3f] μ=%.3f   %s v[%.3f %.3f] μ=%.3f\n",
		dim.Render("stats"),
		sum.U.Min, sum.U.Max, sum.U.Mean,
		dim.Render("·"),
		sum.V.Min, sum.V.Max, sum.V.Mean))
	if len(m.history) > 1 {
		b.WriteString(fmt.Sprintf("   %s %s\n", dim.Render("v̄"), cyan.Render(sparkline(m.history, 48))))
	}
	return b.String()
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		idx := int((data[i*step] - minVal) / rang * 7)
		if idx > 7 {
			idx = 7
		}
		if idx < 0 {
			idx = 0
		}
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}

// RunLive starts the interactive view in the alternate screen buffer.
func RunLive(ctrl *sim.Controller, seed sim.SeedSpec, stepsPerTick int) error {
	p := tea.NewProgram(NewLive(ctrl, seed, stepsPerTick), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
