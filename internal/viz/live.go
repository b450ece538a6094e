package viz

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/starfield/internal/config"
	"github.com/san-kum/starfield/internal/cursor"
	"github.com/san-kum/starfield/internal/field"
)

const (
	panelWidth      = 32
	historyCapacity = 120
	minCols         = 8
	minRows         = 4

	thresholdStep = 0.05
	minThreshold  = 0.05
	maxThreshold  = 1.0
)

type TickMsg time.Time

// Model hosts a starfield in the terminal. Bubble Tea's tick message is the
// frame signal; the animator registers itself on the frame queue after
// every frame.
type Model struct {
	field  *field.Field
	anim   *field.Animator
	queue  *field.FrameQueue
	canvas *Canvas
	cursor *cursor.Cursor

	theme      Theme
	interval   time.Duration
	showCursor bool
	showHelp   bool

	width, height int // terminal cells
	cols, rows    int // canvas cells

	streakHistory []float64
	fps           float64
	lastTick      time.Time
}

// NewModel wires a field onto a Braille canvas using cfg.
func NewModel(cfg *config.Config, rnd field.Random) (Model, error) {
	th, err := LookupTheme(cfg.View.Theme)
	if err != nil {
		return Model{}, err
	}

	canvas := NewCanvas(0, 0, cfg.View.DotThreshold)
	opts := cfg.FieldOptions()
	// a Braille dot is the physical pixel; high-density scaling would only
	// push stars off the grid
	opts.PixelRatio = 1
	f := field.New(canvas, rnd, opts)
	q := field.NewFrameQueue()

	return Model{
		field:         f,
		anim:          field.NewAnimator(f, q),
		queue:         q,
		canvas:        canvas,
		cursor:        cursor.New(0, 0, cfg.View.CursorEase),
		theme:         th,
		interval:      time.Second / time.Duration(cfg.View.FPS),
		showCursor:    cfg.View.Cursor,
		streakHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Field() *field.Field       { return m.field }
func (m Model) Animator() *field.Animator { return m.anim }
func (m Model) Canvas() *Canvas           { return m.canvas }
func (m Model) Theme() Theme              { return m.theme }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	m.anim.Start()
	return m.tick()
}

// Update handles input events and drives the frame loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.anim.Stop()
			return m, tea.Quit
		case " ":
			m.anim.SetPaused(!m.anim.Paused())
		case "s":
			m.field.SpawnStreak()
		case "a":
			m.field.SetSpawning(!m.field.Spawning())
		case "r":
			m.anim.Resize(float64(m.cols*2), float64(m.rows*4))
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "c":
			m.showCursor = !m.showCursor
		case "+", "=":
			m.adjustThreshold(thresholdStep)
		case "-":
			m.adjustThreshold(-thresholdStep)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.pointer(msg)
	case TickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			if dt := now.Sub(m.lastTick).Seconds(); dt > 0 {
				m.fps = 0.9*m.fps + 0.1/dt
			}
		}
		m.lastTick = now
		m.queue.Fire(now)
		m.cursor.Step()
		m.record()
		return m, m.tick()
	}
	return m, nil
}

// resize is the viewport notification: the field reseeds synchronously.
func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.cols = max(w-panelWidth-3, minCols)
	m.rows = max(h-1, minRows)
	m.anim.Resize(float64(m.cols*2), float64(m.rows*4))
	if !m.cursor.Visible {
		m.cursor = cursor.New(float64(m.cols*2), float64(m.rows*4), m.cursor.Ease())
	}
	log.Printf("resize: %dx%d cells, field %dx%d dots", w, h, m.cols*2, m.rows*4)
}

// adjustThreshold moves the alpha a Braille dot needs to light and repaints
// so a paused field shows the change.
func (m *Model) adjustThreshold(delta float64) {
	t := math.Round((m.canvas.Threshold()+delta)*100) / 100
	t = math.Min(math.Max(t, minThreshold), maxThreshold)
	m.canvas.SetThreshold(t)
	m.field.Redraw()
}

func (m *Model) pointer(msg tea.MouseMsg) {
	// canvas padding shifts the grid one cell right
	col := msg.X - 1
	if col < 0 || col >= m.cols || msg.Y >= m.rows {
		m.cursor.Hover = false
		return
	}
	m.cursor.Hover = true
	m.cursor.Move(float64(col*2+1), float64(msg.Y*4+2))
	switch msg.Action {
	case tea.MouseActionPress:
		m.cursor.Pressed = true
	case tea.MouseActionRelease:
		m.cursor.Pressed = false
	}
}

func (m *Model) record() {
	m.streakHistory = append(m.streakHistory, float64(m.field.StreakCount()))
	if len(m.streakHistory) > historyCapacity {
		m.streakHistory = m.streakHistory[1:]
	}
}

func (m Model) overlays() []Overlay {
	if !m.showCursor || !m.cursor.Visible {
		return nil
	}
	ringGlyph := '○'
	if m.cursor.Pressed {
		ringGlyph = '◎'
	}
	style := lipgloss.NewStyle().Foreground(m.theme.Cursor)
	return []Overlay{
		{Col: int(m.cursor.Ring.X) / 2, Row: int(m.cursor.Ring.Y) / 4, Glyph: ringGlyph, Style: style},
		{Col: int(m.cursor.Dot.X) / 2, Row: int(m.cursor.Dot.Y) / 4, Glyph: '•', Style: style.Bold(true)},
	}
}

// View renders the canvas and the status panel.
func (m Model) View() string {
	if m.cols == 0 {
		return "initializing..."
	}
	canvasView := canvasStyle.Render(m.canvas.Render(m.theme, m.overlays()...))
	if m.showHelp {
		return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle(m.theme).Render(m.help()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle(m.theme).Render(m.stats()))
}

func (m Model) stats() string {
	th := m.theme
	label, value := labelStyle(th), valueStyle(th)
	st := m.field.Stats()

	var s strings.Builder
	s.WriteString(GradientText("STARFIELD", th.Accent, th.StarBright) + "\n")
	s.WriteString(Separator(panelWidth-4, th) + "\n")

	status := lipgloss.NewStyle().Foreground(th.Accent).Bold(true).Render("RUNNING")
	if m.anim.Paused() {
		status = lipgloss.NewStyle().Foreground(th.Cursor).Bold(true).Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	spawn := "manual"
	if m.field.Spawning() {
		spawn = fmt.Sprintf("%.1f/s", m.field.Options().StreakRate)
	}
	rows := [][2]string{
		{"Stars", fmt.Sprintf("%d", st.Stars)},
		{"Streaks", fmt.Sprintf("%d", st.Streaks)},
		{"Spawn", spawn},
		{"Spawned", fmt.Sprintf("%d", st.Spawned)},
		{"Clock", fmt.Sprintf("%.1fs", st.Clock)},
		{"FPS", fmt.Sprintf("%.0f", m.fps)},
		{"Twinkle", fmt.Sprintf("%.3f", st.MeanOpacity)},
		{"Dots", fmt.Sprintf(">= %.2f", m.canvas.Threshold())},
		{"Theme", th.Name},
	}
	for _, r := range rows {
		s.WriteString(label.Render(r[0]) + value.Render(r[1]) + "\n")
	}

	if len(m.streakHistory) > 1 {
		chart := asciigraph.Plot(m.streakHistory,
			asciigraph.Height(4),
			asciigraph.Width(panelWidth-10),
			asciigraph.Caption("streaks"),
		)
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(th.Star).Render(chart) + "\n")
	}

	s.WriteString("\n" + hintStyle(th).Render("SP:Pause S:Streak A:Auto\nT:Theme C:Cursor ?:Help Q:Quit"))
	return s.String()
}

func (m Model) help() string {
	lines := []string{
		"KEYBOARD SHORTCUTS",
		"",
		"Space  pause / resume",
		"S      spawn one streak",
		"A      toggle auto spawning",
		"R      reseed stars",
		"T      cycle themes",
		"C      toggle cursor ring",
		"+ / -  dot threshold",
		"?      toggle this help",
		"Q      quit",
	}
	return lipgloss.NewStyle().Foreground(m.theme.Text).Render(strings.Join(lines, "\n"))
}

// Run starts the terminal host and blocks until the user quits.
func Run(cfg *config.Config, rnd field.Random) error {
	m, err := NewModel(cfg, rnd)
	if err != nil {
		return err
	}
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.View.Cursor {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	final, err := tea.NewProgram(m, opts...).Run()
	if fm, ok := final.(Model); ok {
		fm.anim.Stop()
	}
	return err
}
