package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/roberte777/miniphys/internal/cloth"
	"github.com/roberte777/miniphys/internal/geom"
	"github.com/roberte777/miniphys/internal/physics"
	"github.com/roberte777/miniphys/internal/sim"
)

const (
	canvasCols      = 80
	canvasRows      = 24
	historyCapacity = 600
)

var (
	canvasStyle      = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives the live terminal view. For cloth systems the cursor acts as
// the pointer: it selects, drags, and cuts through the mesh's mutation API.
// Other systems render read-only with the shared pause/reset/tune controls.
type Model struct {
	sys       sim.System
	build     func() (sim.System, error)
	modelName string
	dt        time.Duration
	t         float64
	canvas    *Canvas
	running   bool
	showHelp  bool

	// cloth interaction
	cursor   geom.Vec2
	dragging bool

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int

	history []float64
	trail   []struct{ x, y int }

	err error
}

// NewModel builds the live view around a freshly constructed system. The
// build function recreates the system on reset, so runtime damage (cuts,
// removed constraints) is undone.
func NewModel(build func() (sim.System, error), modelName string, dt time.Duration) (Model, error) {
	sys, err := build()
	if err != nil {
		return Model{}, err
	}

	m := Model{
		sys:       sys,
		build:     build,
		modelName: modelName,
		dt:        dt,
		canvas:    NewCanvas(canvasCols, canvasRows),
		running:   true,
		history:   make([]float64, 0, historyCapacity),
		trail:     make([]struct{ x, y int }, 0, 200),
	}
	m.loadParams()
	m.centerCursor()
	return m, nil
}

func (m *Model) loadParams() {
	m.params = make(map[string]float64)
	m.initialParams = make(map[string]float64)
	if c, ok := m.sys.(sim.Configurable); ok {
		for k, v := range c.GetParams() {
			m.params[k] = v
			if v == 0 {
				v = 1e-6
			}
			m.initialParams[k] = v
		}
	}
	m.paramKeys = make([]string, 0, len(m.params))
	for k := range m.params {
		m.paramKeys = append(m.paramKeys, k)
	}
	sort.Strings(m.paramKeys)
	m.selected = 0
}

func (m *Model) centerCursor() {
	if mesh, ok := m.sys.(*cloth.Mesh); ok {
		w := float64(mesh.Width()-1) * mesh.Spacing()
		h := float64(mesh.Height()-1) * mesh.Spacing()
		m.cursor = geom.V(w/2, h/2)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "+", "=":
			m.adjustParam(1.05)
		case "-", "_":
			m.adjustParam(0.95)
		case "up", "k":
			m.moveCursor(0, -1)
		case "down", "j":
			m.moveCursor(0, 1)
		case "left", "h":
			m.moveCursor(-1, 0)
		case "right", "l":
			m.moveCursor(1, 0)
		case "enter", "d":
			m.toggleDrag()
		case "c":
			m.cut()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	newVal := m.params[key] * factor
	if c, ok := m.sys.(sim.Configurable); ok {
		if err := c.SetParam(key, newVal); err != nil {
			return
		}
	}
	m.params[key] = newVal
}

// moveCursor shifts the cloth pointer by half a grid spacing per press and,
// while dragging, tows the selected particles along.
func (m *Model) moveCursor(dx, dy int) {
	mesh, ok := m.sys.(*cloth.Mesh)
	if !ok {
		return
	}
	step := mesh.Spacing() / 2
	m.cursor = m.cursor.Add(geom.V(float64(dx)*step, float64(dy)*step))
	if m.dragging {
		mesh.MoveSelected(m.cursor)
	}
}

func (m *Model) toggleDrag() {
	mesh, ok := m.sys.(*cloth.Mesh)
	if !ok {
		return
	}
	if m.dragging {
		mesh.ClearSelection()
		m.dragging = false
		return
	}
	mesh.Select(m.cursor, mesh.Spacing()*1.5)
	m.dragging = true
}

func (m *Model) cut() {
	if mesh, ok := m.sys.(*cloth.Mesh); ok {
		mesh.CutAt(m.cursor)
	}
}

func (m *Model) step() {
	m.sys.Step(m.dt)
	m.t += m.dt.Seconds()

	m.history = append(m.history, m.observe())
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// observe picks the quantity charted in the sidebar: stretch ratio for cloth
// and energy for systems that expose it.
func (m *Model) observe() float64 {
	switch s := m.sys.(type) {
	case *cloth.Mesh:
		return s.MaxStretch()
	case interface{ Energy() float64 }:
		return s.Energy()
	default:
		state := m.sys.State()
		if len(state) > 0 {
			return state[0]
		}
		return 0
	}
}

func (m *Model) reset() {
	sys, err := m.build()
	if err != nil {
		m.err = err
		return
	}
	m.sys = sys
	m.t = 0
	m.dragging = false
	m.history = m.history[:0]
	m.trail = m.trail[:0]
	m.loadParams()
	m.centerCursor()
}

// View renders the canvas next to the stats panel.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.modelName)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	if m.dragging {
		status += " · DRAGGING"
	}
	s.WriteString(status + "\n\n")

	if len(m.history) > 1 {
		caption := "Energy"
		if _, ok := m.sys.(*cloth.Mesh); ok {
			caption = "Max stretch"
		}
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption(caption))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	if mesh, ok := m.sys.(*cloth.Mesh); ok {
		s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", len(mesh.Particles()))) + "\n")
		s.WriteString(labelStyle.Render("Constraints") + valueStyle.Render(fmt.Sprintf("%d", len(mesh.Constraints()))) + "\n")
	}
	if m.err != nil {
		s.WriteString(labelStyle.Render("Error") + valueStyle.Render(m.err.Error()) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	if len(m.paramKeys) > 0 {
		for i, k := range m.paramKeys {
			val, initial := m.params[k], m.initialParams[k]
			barWidth, ratio := 10, val/(2.0*initial)
			if ratio > 1 {
				ratio = 1
			} else if ratio < 0 {
				ratio = 0
			}
			filled := int(ratio * float64(barWidth))
			bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
			line := fmt.Sprintf("%-12s %s %.3f", k, bar, val)
			if i == m.selected {
				s.WriteString(activeParamStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + labelStyle.Render(line) + "\n")
			}
		}
	} else {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\n←↑↓→:Cursor D:Drag C:Cut\nTab:Param +/-:Tune ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space     - Pause/Resume            ║
║  R         - Reset simulation        ║
║  Q         - Quit                    ║
║  Arrows/HJKL - Move pointer (cloth)  ║
║  D/Enter   - Grab / release cloth    ║
║  C         - Cut at pointer          ║
║  Tab       - Cycle parameters        ║
║  + / -     - Adjust parameter (5%)   ║
║  ?         - Toggle this help        ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// draw renders the current system onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	switch s := m.sys.(type) {
	case *cloth.Mesh:
		m.drawCloth(s)
	case *physics.Pendulum:
		m.drawPendulum(s)
	case *physics.Projectile:
		m.drawProjectile(s)
	case *physics.Oscillator:
		m.drawOscillator(s)
	default:
		m.drawGeneric()
	}
}

// clothTransform maps cloth world coordinates to canvas sub-pixels, leaving
// vertical headroom below the mesh so dropped fragments stay visible.
func (m *Model) clothTransform(mesh *cloth.Mesh) (scale, offX, offY float64) {
	pw, ph := float64(m.canvas.PixelWidth()), float64(m.canvas.PixelHeight())
	worldW := float64(mesh.Width()-1) * mesh.Spacing()
	worldH := float64(mesh.Height()-1) * mesh.Spacing()
	if worldW <= 0 {
		worldW = mesh.Spacing()
	}
	if worldH <= 0 {
		worldH = mesh.Spacing()
	}
	sx := (pw - 8) / worldW
	sy := (ph - 8) / (worldH * 1.8)
	scale = math.Min(sx, sy)
	offX = (pw - worldW*scale) / 2
	offY = 4
	return scale, offX, offY
}

func (m *Model) drawCloth(mesh *cloth.Mesh) {
	scale, offX, offY := m.clothTransform(mesh)
	toScreen := func(p geom.Vec2) (int, int) {
		return int(p.X*scale + offX), int(p.Y*scale + offY)
	}

	particles := mesh.Particles()
	for _, c := range mesh.Constraints() {
		ax, ay := toScreen(particles[c.A].Position)
		bx, by := toScreen(particles[c.B].Position)
		m.canvas.DrawLine(ax, ay, bx, by)
	}
	for _, idx := range mesh.Selected() {
		x, y := toScreen(particles[idx].Position)
		m.canvas.FillRect(x-1, y-1, 3, 3)
	}

	cx, cy := toScreen(m.cursor)
	m.canvas.DrawLine(cx-2, cy, cx+2, cy)
	m.canvas.DrawLine(cx, cy-2, cx, cy+2)
}

func (m *Model) drawPendulum(p *physics.Pendulum) {
	ch := m.canvas.PixelHeight()
	cx, cy := m.canvas.PixelWidth()/2, 8
	length := float64(ch) * 0.75
	bx := cx + int(length*math.Sin(p.Angle))
	by := cy + int(length*math.Cos(p.Angle))

	m.trail = append(m.trail, struct{ x, y int }{bx, by})
	if len(m.trail) > 100 {
		m.trail = m.trail[1:]
	}
	for _, pt := range m.trail {
		m.canvas.Set(pt.x, pt.y)
	}

	m.canvas.Set(cx, cy)
	m.canvas.DrawLine(cx, cy, bx, by)
	m.canvas.FillRect(bx-1, by-1, 3, 3)
}

func (m *Model) drawProjectile(p *physics.Projectile) {
	pw, ph := m.canvas.PixelWidth(), m.canvas.PixelHeight()
	groundY := ph - 4
	m.canvas.DrawLine(0, groundY, pw-1, groundY)

	// fixed 160x60 world window, launch point at the left edge
	px := 4 + int(p.Position.X*float64(pw-8)/160)
	py := groundY - int(p.Position.Y*float64(ph-8)/60)

	m.trail = append(m.trail, struct{ x, y int }{px, py})
	if len(m.trail) > 200 {
		m.trail = m.trail[1:]
	}
	for _, pt := range m.trail {
		m.canvas.Set(pt.x, pt.y)
	}
	m.canvas.FillRect(px-1, py-1, 3, 3)
}

func (m *Model) drawOscillator(o *physics.Oscillator) {
	cy := m.canvas.PixelHeight() / 2
	wallX := 20
	m.canvas.DrawLine(wallX, cy-10, wallX, cy+10)

	massX := wallX + 50 + int(o.Position*4)
	if massX < wallX+8 {
		massX = wallX + 8
	}
	m.canvas.FillRect(massX-4, cy-4, 9, 9)

	numCoils, prevX, prevY := 10, wallX, cy
	step := float64(massX-wallX-4) / float64(numCoils)
	for i := 1; i <= numCoils; i++ {
		currX, currY := wallX+int(float64(i)*step), cy+6
		if i%2 == 0 {
			currY = cy - 6
		}
		m.canvas.DrawLine(prevX, prevY, currX, currY)
		prevX, prevY = currX, currY
	}
	m.canvas.DrawLine(prevX, prevY, massX-4, cy)
}

func (m *Model) drawGeneric() {
	cy := m.canvas.PixelHeight() / 2
	state := m.sys.State()
	barWidth, gap := 8, 4
	totalW := len(state) * (barWidth + gap)
	startX := (m.canvas.PixelWidth() - totalW) / 2
	for i, v := range state {
		h, bx := int(v*10), startX+i*(barWidth+gap)
		if h >= 0 {
			m.canvas.FillRect(bx, cy-h, barWidth, h+1)
		} else {
			m.canvas.FillRect(bx, cy, barWidth, -h+1)
		}
	}
}
