package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/multiplayer"
	"github.com/vovakirdan/tui-pong/internal/pong"
)

// joinCodeLen matches the codes the coordinator hands out.
const joinCodeLen = 6

// OnlineState represents the current state of the online matchmaking flow.
type OnlineState int

const (
	OnlineStateChooseMode    OnlineState = iota // Choose Host or Join
	OnlineStateHostWaiting                      // Hosting, waiting for joiner
	OnlineStateJoinEnterCode                    // Entering join code
	OnlineStateJoinWaiting                      // Waiting to connect to host
	OnlineStateInMatch                          // In active match
	OnlineStateMatchEnded                       // Match has ended
)

// Sender delivers messages to the coordinator.
type Sender interface {
	Send(msg multiplayer.CoordinatorMessage)
}

// OnlineModel runs the lobby flow and the match for one SSH session.
type OnlineModel struct {
	state       OnlineState
	width       int
	height      int
	keyMapper   *KeyMapper
	sessionID   multiplayer.SessionID
	coordinator Sender
	events      <-chan multiplayer.SessionEvent
	done        <-chan struct{}

	// Host state
	lobbyCode string

	// Join state
	joinCodeInput string
	errMsg        string

	// Match state
	matchID  multiplayer.MatchID
	side     pong.Side
	snapshot *pong.Snapshot
	screen   *core.Screen
	ended    *multiplayer.MatchEndedEvent

	backToMenu bool
	quitting   bool
}

// NewOnlineModel creates the lobby flow for session.
func NewOnlineModel(coordinator Sender, session *multiplayer.ChannelSession, width, height int) OnlineModel {
	return OnlineModel{
		state:       OnlineStateChooseMode,
		width:       width,
		height:      height,
		keyMapper:   NewKeyMapper(),
		sessionID:   session.ID(),
		coordinator: coordinator,
		events:      session.Events(),
		done:        session.Done(),
		screen:      core.NewScreen(width, core.Max(0, height-1)),
	}
}

// Init starts listening for coordinator events.
func (m OnlineModel) Init() tea.Cmd {
	return m.waitForEvent()
}

// waitForEvent returns a command that waits for the next coordinator event.
func (m OnlineModel) waitForEvent() tea.Cmd {
	events, done := m.events, m.done
	return func() tea.Msg {
		select {
		case evt := <-events:
			return evt
		case <-done:
			return nil
		}
	}
}

// Update handles messages.
func (m OnlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, core.Max(0, msg.Height-1))
		return m, nil

	case multiplayer.LobbyCreatedEvent:
		m.lobbyCode = msg.Code
		m.errMsg = ""
		m.state = OnlineStateHostWaiting
		return m, m.waitForEvent()

	case multiplayer.LobbyErrorEvent:
		m.errMsg = msg.Message
		switch m.state {
		case OnlineStateHostWaiting:
			m.state = OnlineStateChooseMode
		case OnlineStateJoinWaiting:
			m.state = OnlineStateJoinEnterCode
		}
		return m, m.waitForEvent()

	case multiplayer.MatchStartedEvent:
		m.matchID = msg.MatchID
		m.side = msg.Side
		m.snapshot = nil
		m.ended = nil
		m.errMsg = ""
		m.state = OnlineStateInMatch
		return m, m.waitForEvent()

	case multiplayer.SnapshotEvent:
		if msg.MatchID == m.matchID && m.state == OnlineStateInMatch {
			s := msg.Snapshot
			m.snapshot = &s
		}
		return m, m.waitForEvent()

	case multiplayer.MatchEndedEvent:
		if msg.MatchID == m.matchID && m.state == OnlineStateInMatch {
			m.ended = &msg
			m.state = OnlineStateMatchEnded
		}
		return m, m.waitForEvent()
	}

	return m, nil
}

func (m OnlineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case OnlineStateChooseMode:
		return m.handleChooseModeKey(msg)
	case OnlineStateHostWaiting:
		return m.handleHostWaitingKey(msg)
	case OnlineStateJoinEnterCode:
		return m.handleJoinCodeKey(msg)
	case OnlineStateJoinWaiting:
		return m.handleJoinWaitingKey(msg)
	case OnlineStateInMatch:
		return m.handleMatchKey(msg)
	case OnlineStateMatchEnded:
		return m.handleMatchEndedKey(msg)
	}

	return m, nil
}

// leave withdraws from whatever lobby or match the session is in.
func (m *OnlineModel) leave() {
	switch m.state {
	case OnlineStateHostWaiting:
		m.coordinator.Send(multiplayer.CancelLobbyMsg{
			SessionID: m.sessionID,
			Code:      m.lobbyCode,
		})
	case OnlineStateInMatch:
		m.coordinator.Send(multiplayer.LeaveMatchMsg{
			SessionID: m.sessionID,
			MatchID:   m.matchID,
		})
	}
}

func (m OnlineModel) handleChooseModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "H", "1":
		m.errMsg = ""
		m.coordinator.Send(multiplayer.CreateLobbyMsg{SessionID: m.sessionID})
	case "j", "J", "2":
		m.state = OnlineStateJoinEnterCode
		m.joinCodeInput = ""
		m.errMsg = ""
	case "esc", "b":
		m.backToMenu = true
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m OnlineModel) handleHostWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.leave()
		m.state = OnlineStateChooseMode
		m.lobbyCode = ""
	case "q":
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m OnlineModel) handleJoinCodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc":
		m.state = OnlineStateChooseMode
		m.errMsg = ""
	case "enter":
		if m.joinCodeInput != "" {
			m.state = OnlineStateJoinWaiting
			m.errMsg = ""
			m.coordinator.Send(multiplayer.JoinLobbyMsg{
				SessionID: m.sessionID,
				Code:      m.joinCodeInput,
			})
		}
	case "backspace":
		if m.joinCodeInput != "" {
			m.joinCodeInput = m.joinCodeInput[:len(m.joinCodeInput)-1]
		}
	default:
		if len(key) == 1 && len(m.joinCodeInput) < joinCodeLen {
			c := strings.ToUpper(key)
			if (c[0] >= 'A' && c[0] <= 'Z') || (c[0] >= '0' && c[0] <= '9') {
				m.joinCodeInput += c
			}
		}
	}
	return m, nil
}

func (m OnlineModel) handleJoinWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.state = OnlineStateJoinEnterCode
	}
	return m, nil
}

// handleMatchKey sends paddle movement straight to the coordinator. Either
// set of movement keys steers the paddle this session holds.
func (m OnlineModel) handleMatchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.leave()
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.leave()
		m.backToMenu = true
	case action == core.ActionRedLeft, action == core.ActionBlueLeft:
		m.sendAxis(-axisStep)
	case action == core.ActionRedRight, action == core.ActionBlueRight:
		m.sendAxis(axisStep)
	}
	return m, nil
}

func (m OnlineModel) sendAxis(axis float64) {
	m.coordinator.Send(multiplayer.PlayerInputMsg{
		SessionID: m.sessionID,
		MatchID:   m.matchID,
		Axis:      axis,
	})
}

func (m OnlineModel) handleMatchEndedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		m.state = OnlineStateChooseMode
		m.snapshot = nil
		m.ended = nil
	case "enter", "esc", "b":
		m.backToMenu = true
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the current state.
func (m OnlineModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case OnlineStateHostWaiting:
		return m.viewHostWaiting()
	case OnlineStateJoinEnterCode:
		return m.viewJoinEnterCode()
	case OnlineStateJoinWaiting:
		return m.viewJoinWaiting()
	case OnlineStateInMatch, OnlineStateMatchEnded:
		return m.viewMatch()
	}
	return m.viewChooseMode()
}

func (m OnlineModel) viewChooseMode() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("ONLINE PONG"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("[H] Host a game", m.width))
	b.WriteString("\n")
	b.WriteString(centerText("[J] Join a game", m.width))
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(centerText("Error: "+m.errMsg, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

func (m OnlineModel) viewHostWaiting() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("HOSTING GAME"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Share this code with your opponent:", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("[ %s ]", m.lobbyCode), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("You play blue. Waiting for red to join...", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuHintStyle.Render("Esc: Cancel  |  Q: Quit"), m.width))

	return b.String()
}

func (m OnlineModel) viewJoinEnterCode() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("JOIN GAME"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Enter the game code:", m.width))
	b.WriteString("\n\n")

	code := m.joinCodeInput
	if len(code) < joinCodeLen {
		code += "_" + strings.Repeat(" ", joinCodeLen-1-len(m.joinCodeInput))
	}
	b.WriteString(centerText(fmt.Sprintf("[ %s ]", code), m.width))
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(centerText("Error: "+m.errMsg, m.width))
	}

	b.WriteString("\n\n")
	b.WriteString(centerText(menuHintStyle.Render("Enter: Connect  |  Esc: Back"), m.width))

	return b.String()
}

func (m OnlineModel) viewJoinWaiting() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("CONNECTING"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Joining game: "+m.joinCodeInput, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuHintStyle.Render("Esc: Cancel"), m.width))

	return b.String()
}

func (m OnlineModel) viewMatch() string {
	if m.snapshot == nil {
		return "\n" + centerText(fmt.Sprintf("Match starting, you play %s...", m.side), m.width)
	}

	s := *m.snapshot
	vp := newViewport(m.screen.Width(), m.screen.Height(), s.Width, s.Height)
	drawMatch(m.screen, s, vp, fieldView{frame: s.Tick, you: m.side})

	help := "←/→ move  ·  esc leave  ·  q quit"
	if m.ended != nil {
		title, c := "YOU LOSE", core.ColorRed
		if m.ended.Winner == m.side {
			title, c = "YOU WIN", core.ColorGreen
		}
		sub := "r again  ·  esc menu"
		if m.ended.Reason == multiplayer.MatchEndReasonDisconnect {
			sub = m.ended.Reason.String() + "  ·  " + sub
		}
		drawCenteredMessage(m.screen, title, sub, c)
		help = "r again  ·  esc menu  ·  q quit"
	}

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(help)
}

// State returns the current online state.
func (m OnlineModel) State() OnlineState {
	return m.state
}

// BackToMenu returns true if user wants to go back to menu.
func (m OnlineModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user wants to quit entirely.
func (m OnlineModel) IsQuitting() bool {
	return m.quitting
}

// Side returns the paddle this session plays.
func (m OnlineModel) Side() pong.Side {
	return m.side
}

// LobbyCode returns the hosted lobby code.
func (m OnlineModel) LobbyCode() string {
	return m.lobbyCode
}
