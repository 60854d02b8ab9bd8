package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/candle-rush/internal/config"
	"github.com/vovakirdan/candle-rush/internal/core"
	"github.com/vovakirdan/candle-rush/internal/games/candles"
	"github.com/vovakirdan/candle-rush/internal/storage"
)

// floatLife is how long a feedback text stays on screen, in round seconds.
const floatLife = 0.7

// Options configures a game model.
type Options struct {
	Game    config.CandlesConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // Optional; without it the best score lives in memory
	Logger  *log.Logger
	Player  string // Shown in logs, e.g. the SSH user
}

// Model is the Bubble Tea model for one player's game.
type Model struct {
	session  *candles.Session
	board    *board
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	tickRate int
	ticking  bool // A TickMsg is scheduled
	quitting bool
}

// board collects the observer events the view needs between frames and
// records finished rounds.
type board struct {
	candles.NopObserver

	session *candles.Session
	store   *storage.Store
	logger  *log.Logger
	player  string
	floats  []floatText
}

type floatText struct {
	fb    candles.Feedback
	until float64
}

func (b *board) Feedback(fb candles.Feedback) {
	b.floats = append(b.floats, floatText{fb: fb, until: b.session.Elapsed() + floatLife})
}

func (b *board) PhaseChanged(from, to candles.Phase) {
	if to == candles.PhaseRunning && from != candles.PhasePaused {
		b.floats = b.floats[:0]
	}
	b.logger.Debug("phase", "player", b.player, "from", from, "to", to)
}

func (b *board) GameOver(sum candles.Summary) {
	b.logger.Info("round over", "player", b.player, "score", sum.FinalScore, "best", sum.BestScore)
	if b.store == nil {
		return
	}
	if _, err := b.store.SaveSummary(sum); err != nil {
		b.logger.Warn("could not save score", "error", err)
	}
}

// expire drops feedback texts whose time is up.
func (b *board) expire(now float64) {
	kept := b.floats[:0]
	for _, f := range b.floats {
		if f.until > now {
			kept = append(kept, f)
		}
	}
	b.floats = kept
}

// NewModel creates a game model with its own Session.
func NewModel(opts Options) (Model, error) {
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	b := &board{store: opts.Store, logger: logger, player: opts.Player}

	var best candles.BestScoreStore = candles.NewMemoryBestStore(0)
	if opts.Store != nil {
		best = opts.Store
	}

	session, err := candles.NewSession(opts.Game,
		candles.WithSeed(rt.Seed),
		candles.WithObserver(b),
		candles.WithLogger(logger),
		candles.WithBestStore(best),
	)
	if err != nil {
		return Model{}, err
	}
	b.session = session

	h := help.New()
	h.Width = rt.ScreenW

	return Model{
		session:  session,
		board:    b,
		screen:   core.NewScreen(rt.ScreenW, playHeight(rt.ScreenH)),
		keys:     DefaultKeyMap(),
		help:     h,
		tickRate: rt.TickRate,
	}, nil
}

// playHeight reserves the last terminal row for the help line.
func playHeight(h int) int {
	return core.Max(h-1, 4)
}

// Session exposes the model's session.
func (m Model) Session() *candles.Session {
	return m.session
}

// Init does nothing: frames only run while a round is active.
func (m Model) Init() tea.Cmd {
	return nil
}

// active reports whether the session needs frames.
func (m Model) active() bool {
	p := m.session.Phase()
	return p == candles.PhaseRunning || p == candles.PhasePaused
}

// ensureTick schedules the next frame unless one is already pending.
func (m *Model) ensureTick() tea.Cmd {
	if m.ticking || !m.active() {
		return nil
	}
	m.ticking = true
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, playHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.ticking = false
		m.session.Tick()
		m.board.expire(m.session.Elapsed())
		// The frame loop stops once the round is over or abandoned.
		cmd := m.ensureTick()
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.keys.MapKey(msg) {
	case core.ActionExit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionQuit:
		if !m.session.Quit() {
			// Nothing to abandon: leave the program.
			m.quitting = true
			return m, tea.Quit
		}
	case core.ActionStart:
		m.session.Start()
	case core.ActionPause:
		m.session.TogglePause()
	case core.ActionRestart:
		m.session.Quit()
		m.session.Start()
	}
	cmd := m.ensureTick()
	return m, cmd
}

// handleMouse turns a left click on the playfield into a tap.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	vp := m.session.Viewport(m.screen.Width(), m.screen.Height())
	if !vp.InField(msg.X, msg.Y) {
		return m, nil
	}
	m.session.TapAt(vp.ToField(msg.X, msg.Y))
	return m, nil
}

var floatColors = map[candles.FeedbackKind]core.Color{
	candles.FeedbackGood: core.ColorBrightGreen,
	candles.FeedbackBad:  core.ColorBrightRed,
	candles.FeedbackTime: core.ColorBrightCyan,
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)
	m.drawFloats()

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// drawFloats overlays feedback texts, rising one row over their life.
func (m Model) drawFloats() {
	vp := m.session.Viewport(m.screen.Width(), m.screen.Height())
	now := m.session.Elapsed()
	for _, f := range m.board.floats {
		col, row := vp.ToCell(f.fb.At)
		if now > f.until-floatLife/2 {
			row--
		}
		if !vp.InField(col, row) {
			continue
		}
		text := f.fb.Text
		m.screen.DrawTextColored(col-len([]rune(text))/2, row, text, floatColors[f.fb.Kind])
	}
}

// Run starts the Bubble Tea program with a new model.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks are taps
	)

	_, err = p.Run()
	return err
}
