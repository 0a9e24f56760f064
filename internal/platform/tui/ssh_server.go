package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/multiplayer"
	"github.com/vovakirdan/tui-pong/internal/pong"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.pong/host_key.
	HostKeyPath string

	// DBPath is the path to the match history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Setup describes the match every session plays. Sessions never get
	// a speaker; audio stays on the host.
	Setup MatchSetup
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.pong/pong.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server that gives each session its own match
// and pairs sessions for online play.
type SSHServer struct {
	config      SSHServerConfig
	server      *ssh.Server
	store       *storage.Store
	logger      *log.Logger
	sessions    *multiplayer.SessionRegistry
	coordinator *multiplayer.Coordinator
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "pong-ssh",
		})
	}
	cfg.Setup.Cues = nil

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open match database", "error", err)
		store = nil
	}

	sessions := multiplayer.NewSessionRegistry()
	setup := cfg.Setup
	coordinator := multiplayer.NewCoordinator(
		multiplayer.DefaultCoordinatorConfig(),
		func() (*pong.Match, error) { return setup.NewMatch(2) },
		sessions,
		logger.WithPrefix("lobby"),
	)
	if store != nil {
		coordinator.SetResultSaver(storeSaver{store: store})
	}

	srv := &SSHServer{
		config:      cfg,
		store:       store,
		logger:      logger,
		sessions:    sessions,
		coordinator: coordinator,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".pong", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW: pty.Window.Width,
		ScreenH: pty.Window.Height,
	}

	logger := s.logger.With("user", sshSession.User())
	session := multiplayer.NewChannelSession(sessionID(sshSession), 0)
	s.sessions.Register(session)

	model := NewSessionModel(s.store, cfg, s.config.Setup, logger).WithOnline(s.coordinator, session)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

func sessionID(sshSession ssh.Session) multiplayer.SessionID {
	return multiplayer.SessionID(sshSession.Context().SessionID())
}

// loggingMiddleware logs SSH session events and releases the session's
// lobby or match once the program exits.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.release(sessionID(sshSession))
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

func (s *SSHServer) release(id multiplayer.SessionID) {
	if h, ok := s.sessions.Get(id); ok {
		if cs, ok := h.(*multiplayer.ChannelSession); ok {
			cs.Close()
		}
		s.sessions.Unregister(id)
	}
	s.coordinator.Send(multiplayer.SessionDisconnectedMsg{SessionID: id})
}

// ListenAndServe starts the SSH server and blocks until ctx is cancelled.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)
	s.coordinator.Start()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.coordinator.Stop()
		s.closeStore()
		if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown()
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.coordinator.Stop()
	s.closeStore()
	return s.server.Shutdown(ctx)
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// storeSaver records finished online matches in the history database.
type storeSaver struct {
	store *storage.Store
}

func (s storeSaver) SaveResult(r multiplayer.MatchResult) error {
	_, err := s.store.SaveMatch(storage.MatchRecord{
		Winner:    r.Winner.String(),
		RedLives:  r.RedLives,
		BlueLives: r.BlueLives,
		RedHuman:  true,
		BlueHuman: true,
		Strategy:  "online",
		Ticks:     r.Ticks,
		Seed:      r.Seed,
	})
	return err
}

// SessionModel manages the full session flow: menu -> match or history -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	setup    MatchSetup
	logger   *log.Logger
	menu     MenuModel
	game     *Model
	history  *HistoryModel
	online   *OnlineModel
	errMsg   string
	quitting bool

	// Set for sessions that can pair with others
	coordinator Sender
	session     *multiplayer.ChannelSession
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, setup MatchSetup, logger *log.Logger) SessionModel {
	return SessionModel{
		store:  store,
		config: cfg,
		setup:  setup,
		logger: logger,
		menu:   NewMenuModel(cfg),
	}
}

// WithOnline offers online play through coordinator.
func (m SessionModel) WithOnline(coordinator Sender, session *multiplayer.ChannelSession) SessionModel {
	m.coordinator = coordinator
	m.session = session
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	menu := NewMenuModel(m.config)
	if m.coordinator != nil && m.session != nil {
		menu = menu.WithOnline()
	}
	return menu
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.game != nil:
		return m.updateGame(msg)
	case m.history != nil:
		return m.updateHistory(msg)
	case m.online != nil:
		return m.updateOnline(msg)
	}
	if _, ok := msg.(multiplayer.SessionEvent); ok {
		// Left over from an abandoned online flow.
		return m, nil
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsHistory() {
		h := NewHistoryModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.history = &h
		return m, h.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		if selected.Online {
			o := NewOnlineModel(m.coordinator, m.session, m.config.ScreenW, m.config.ScreenH)
			m.online = &o
			m.errMsg = ""
			return m, o.Init()
		}

		match, err := m.setup.NewMatch(selected.Players)
		if err != nil {
			m.logger.Error("cannot start match", "err", err)
			m.errMsg = err.Error()
			m.menu = m.newMenu()
			return m, nil
		}

		game := NewModel(match, m.config, ModelOptions{Store: m.store, Logger: m.logger})
		m.game = &game
		m.errMsg = ""
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates while a match is running.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateOnline handles updates in the online lobby or match.
func (m SessionModel) updateOnline(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.online.Update(msg)
	if o, ok := newModel.(OnlineModel); ok {
		m.online = &o
	}

	if m.online.BackToMenu() {
		m.online = nil
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	if m.online.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateHistory handles updates on the history screen.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if h, ok := newModel.(HistoryModel); ok {
		m.history = &h
	}

	if m.history.IsGoingBack() {
		m.history = nil
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.game != nil:
		return m.game.View()
	case m.history != nil:
		return m.history.View()
	case m.online != nil:
		return m.online.View()
	}

	v := m.menu.View()
	if m.errMsg != "" {
		v += "\n" + centerText("error: "+m.errMsg, m.config.ScreenW)
	}
	return v
}
