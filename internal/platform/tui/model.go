package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/pong"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// Broadcaster receives every frame, e.g. a spectator hub.
type Broadcaster interface {
	Broadcast(s pong.Snapshot)
	Count() int
}

// ModelOptions wires optional collaborators into a Model.
type ModelOptions struct {
	Store      *storage.Store // Match history and the mute preference
	Logger     *log.Logger
	Spectators Broadcaster
}

// MatchSetup is everything needed to start a match.
type MatchSetup struct {
	Width, Height float64
	Options       pong.Options
	Cues          pong.CueSink
}

// NewMatch starts a match for the given number of human players (0, 1 or
// 2), replacing the configured sides. Only zero-player matches keep the
// configured attract mode.
func (s MatchSetup) NewMatch(players int) (*pong.Match, error) {
	opts := s.Options
	opts.RedIsPlayer = players >= 2
	opts.BlueIsPlayer = players >= 1
	opts.Attract = players == 0 && s.Options.Attract
	return s.start(opts)
}

// NewConfiguredMatch starts a match with the sides the config chose.
func (s MatchSetup) NewConfiguredMatch() (*pong.Match, error) {
	opts := s.Options
	opts.Attract = opts.Players() == 0 && opts.Attract
	return s.start(opts)
}

// start fills in a zero seed with the current time.
func (s MatchSetup) start(opts pong.Options) (*pong.Match, error) {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return pong.NewMatch(s.Width, s.Height, opts, s.Cues)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model that runs one match.
type Model struct {
	match      *pong.Match
	screen     *core.Screen
	vp         viewport
	store      *storage.Store
	logger     *log.Logger
	spectators Broadcaster
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	frame      int64
	roundOver  bool
	saved      bool // Whether the current game over has been recorded
	quitting   bool
	backToMenu bool
}

// NewModel creates a model around an existing match.
func NewModel(match *pong.Match, cfg core.RuntimeConfig, opts ModelOptions) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		match:      match,
		store:      opts.Store,
		logger:     logger,
		spectators: opts.Spectators,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.fieldRows())
	m.vp = newViewport(m.screen.Width(), m.screen.Height(), match.Width(), match.Height())
	m.help.Width = cfg.ScreenW
	return m
}

// fieldRows is the screen height left after the help bar.
func (m Model) fieldRows() int {
	rows := 1
	if m.help.ShowAll {
		for _, col := range m.keyMapper.Keys().FullHelp() {
			rows = core.Max(rows, len(col))
		}
	}
	return core.Max(0, m.config.ScreenH-rows)
}

func (m *Model) layout() {
	m.screen.Resize(m.config.ScreenW, m.fieldRows())
	m.vp = newViewport(m.screen.Width(), m.screen.Height(), m.match.Width(), m.match.Height())
	m.help.Width = m.config.ScreenW
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.logger.Debug("match started", "players", m.match.Options().Players(), "seed", m.match.Options().Seed)
	return tickCmd(0)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Match actions are queued for the
// next tick; navigation takes effect at once.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.backToMenu = true
		return m, tea.Quit
	case action == core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleMouse turns clicks and drags over the field into pointer events.
func (m Model) handleMouse(msg tea.MouseMsg) {
	if !m.vp.contains(msg.X, msg.Y) {
		return
	}

	var kind pong.PointerKind
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		kind = pong.PointerDown
	case msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonLeft:
		kind = pong.PointerMove
	default:
		return
	}

	fx, fy := m.vp.toField(msg.X, msg.Y)
	m.match.HandlePointer(pong.PointerEvent{
		Kind:   kind,
		Points: []pong.Point{{X: fx, Y: fy}},
	})
}

// handleTick applies queued input, advances the match and schedules the
// next tick with the rest of the frame budget.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.applyInput()
	m.match.Tick(now)
	m.frame++

	s := m.match.Snapshot()
	m.observe(s)
	if m.spectators != nil {
		m.spectators.Broadcast(s)
	}

	return m, tickCmd(m.match.FrameDelay(time.Since(now)))
}

// applyInput feeds the queued actions to the match and clears the frame.
func (m *Model) applyInput() {
	f := &m.inputFrame
	if n := f.Count(core.ActionRedRight) - f.Count(core.ActionRedLeft); n != 0 {
		m.match.HandleAxis(pong.SideRed, float64(n)*axisStep)
	}
	if n := f.Count(core.ActionBlueRight) - f.Count(core.ActionBlueLeft); n != 0 {
		m.match.HandleAxis(pong.SideBlue, float64(n)*axisStep)
	}
	if f.Count(core.ActionPause)%2 == 1 {
		m.match.TogglePause()
	}
	if f.Count(core.ActionMute)%2 == 1 {
		m.toggleMute()
	}
	if f.Has(core.ActionRestart) {
		m.match.NewGame()
		m.saved = false
		m.logger.Debug("new game", "players", m.match.Options().Players())
	}
	f.Clear()
}

func (m *Model) toggleMute() {
	muted := !m.match.Muted()
	m.match.SetMuted(muted)
	if m.store != nil {
		if err := m.store.SetMuted(muted); err != nil {
			m.logger.Warn("could not save mute preference", "err", err)
		}
	}
}

// observe logs round and game transitions and records finished games once.
func (m *Model) observe(s pong.Snapshot) {
	pending := m.match.NewRoundPending()
	if pending && !m.roundOver && s.Running {
		m.logger.Debug("round over", "red", s.Red.Lives, "blue", s.Blue.Lives, "tick", s.Tick)
	}
	m.roundOver = pending

	if s.Running {
		m.saved = false
		return
	}
	if m.saved {
		return
	}
	m.saved = true
	m.logger.Info("game over", "winner", s.Winner, "ticks", s.Tick)
	m.saveResult(s)
}

// saveResult records a finished game. Computer-only games are not kept.
func (m *Model) saveResult(s pong.Snapshot) {
	if m.store == nil || (!s.Red.Player && !s.Blue.Player) {
		return
	}

	opts := m.match.Options()
	rec := storage.MatchRecord{
		Winner:    s.Winner,
		RedLives:  s.Red.Lives,
		BlueLives: s.Blue.Lives,
		RedHuman:  s.Red.Player,
		BlueHuman: s.Blue.Player,
		Strategy:  opts.Strategy.String(),
		Ticks:     s.Tick,
		Seed:      opts.Seed,
	}
	if m.spectators != nil {
		rec.Spectators = m.spectators.Count()
	}
	if _, err := m.store.SaveMatch(rec); err != nil {
		m.logger.Warn("could not save match", "err", err)
	}
}

// View renders the field and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	drawMatch(m.screen, m.match.Snapshot(), m.vp, fieldView{
		frame: m.frame,
		muted: m.match.Muted(),
		hints: true,
	})
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Match returns the match the model drives.
func (m Model) Match() *pong.Match {
	return m.match
}

// Run plays match in a full-screen program. It reports whether the user
// asked to go back to the menu rather than quit.
func Run(match *pong.Match, cfg core.RuntimeConfig, opts ModelOptions) (backToMenu bool, err error) {
	model := NewModel(match, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("tui: %w", err)
	}
	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
