package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// MenuItem is one entry of the title menu.
type MenuItem struct {
	Title   string
	Players int
	Hint    string
	Online  bool // Pair with another session instead of playing locally
}

// DefaultMenuItems lists the zero, one and two player modes.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{Title: "One player", Players: 1, Hint: "you are blue, the computer is red"},
		{Title: "Two players", Players: 2, Hint: "blue: ←/→  red: j/l"},
		{Title: "Zero players", Players: 0, Hint: "watch the computer play itself"},
	}
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the title menu.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	width       int
	height      int
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	quitting    bool
	selected    *MenuItem // Set when user selects a mode
	openHistory bool      // True if user pressed Tab for match history
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     DefaultMenuItems(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// WithOnline adds the online entry, for sessions that share a server.
func (m MenuModel) WithOnline() MenuModel {
	m.items = append(m.items, MenuItem{
		Title:   "Online",
		Players: 1,
		Hint:    "play someone connected to this server",
		Online:  true,
	})
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case core.ActionQuit, core.ActionBack:
		m.quitting = true
		return m, tea.Quit

	case core.ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case core.ActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case core.ActionConfirm:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case core.ActionHistory:
		m.openHistory = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	top := core.Max(0, m.height/2-len(m.items)-4)
	b.WriteString(strings.Repeat("\n", top))

	b.WriteString(centerText(menuTitleStyle.Render("P  O  N  G"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-12s", cursor, item.Title), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(m.items) > 0 {
		b.WriteString(centerText(menuHintStyle.Render(m.items[m.cursor].Hint), m.width))
		b.WriteString("\n\n")
	}

	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: History  |  Q: Quit"
	b.WriteString(centerText(menuHintStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the match history.
func (m MenuModel) WantsHistory() bool {
	return m.openHistory
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Players      int
	Config       core.RuntimeConfig
	WantsHistory bool
	Quit         bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsHistory():
		result.WantsHistory = true
	case m.Selected() != nil:
		result.Players = m.Selected().Players
	default:
		result.Quit = true
	}
	return result, nil
}
