// Package tui provides the terminal user interface for browsing and writing
// journal entries.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/jot/internal/service"
	"github.com/xolan/jot/internal/tui/ui"
	"github.com/xolan/jot/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabEntries Tab = iota
	TabCompose
	TabConfig
)

var tabNames = []string{"Entries", "Compose", "Config"}

// Model is the root TUI model
type Model struct {
	services *service.Services

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool
	saveErr   error

	// View models
	entriesView views.EntriesModel
	composeView views.ComposeModel
	configView  views.ConfigModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model. ctx bounds entry analysis and git sync.
func New(ctx context.Context, services *service.Services) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:      services,
		activeTab:     TabEntries,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		entriesView:   views.NewEntriesModel(services, styles, keys),
		composeView:   views.NewComposeModel(ctx, services, styles, keys),
		configView:    views.NewConfigModel(services, themeProvider, styles, keys),
	}
}

// themeSavedMsg reports the result of persisting a theme change
type themeSavedMsg struct {
	err error
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.entriesView.Init(),
		m.configView.Init(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// modalInput blocks every global key except ctrl+c, which the
		// compose editor would otherwise swallow
		modalInput := m.isModalInputMode()
		if modalInput && msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch {
		case key.Matches(msg, m.keys.Quit) && !modalInput:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help) && !modalInput:
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab) && !modalInput:
			m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.PrevTab) && !modalInput:
			m.activeTab = Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab1) && !modalInput:
			m.activeTab = TabEntries
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab2) && !modalInput:
			m.activeTab = TabCompose
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab3) && !modalInput:
			m.activeTab = TabConfig
			return m, m.initCurrentView()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // tabs and status bar
		m.entriesView.SetSize(m.width, contentHeight)
		m.composeView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()
		m.styles = m.themeProvider.Styles()

		themeMsg := ui.ThemeChangedMsg{ThemeName: newTheme, Styles: m.styles}
		m.entriesView, _ = m.entriesView.Update(themeMsg)
		m.composeView, _ = m.composeView.Update(themeMsg)
		m.configView, _ = m.configView.Update(themeMsg)

		return m, m.saveThemeConfig(newTheme)

	case themeSavedMsg:
		m.saveErr = msg.err
		return m, nil

	case ui.JournalChangedMsg:
		// the entries view reloads even while another tab is active
		m.entriesView, cmd = m.entriesView.Update(msg)
		return m, cmd
	}

	if _, ok := msg.(tea.KeyMsg); ok {
		switch m.activeTab {
		case TabEntries:
			m.entriesView, cmd = m.entriesView.Update(msg)
		case TabCompose:
			m.composeView, cmd = m.composeView.Update(msg)
		case TabConfig:
			m.configView, cmd = m.configView.Update(msg)
		}
		return m, cmd
	}

	// results of background commands reach their view whatever tab is active
	var entriesCmd, composeCmd, configCmd tea.Cmd
	m.entriesView, entriesCmd = m.entriesView.Update(msg)
	m.composeView, composeCmd = m.composeView.Update(msg)
	m.configView, configCmd = m.configView.Update(msg)
	return m, tea.Batch(entriesCmd, composeCmd, configCmd)
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabEntries:
		b.WriteString(m.entriesView.View())
	case TabCompose:
		b.WriteString(m.composeView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	switch {
	case m.activeTab == TabCompose && m.composeView.IsInputMode():
		parts = append(parts, m.renderKeyHelp("Ctrl+S", "save"))
		parts = append(parts, m.renderKeyHelp("Esc", "stop editing"))
	case m.activeTab == TabEntries && m.entriesView.IsInputMode():
		parts = append(parts, m.renderKeyHelp("Enter", "search"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	default:
		switch m.activeTab {
		case TabEntries:
			if m.entriesView.InDetail() {
				parts = append(parts, m.renderKeyHelp("j/k", "scroll"))
				parts = append(parts, m.renderKeyHelp("i", "raw input"))
				parts = append(parts, m.renderKeyHelp("Esc", "back"))
			} else {
				parts = append(parts, m.renderKeyHelp("Enter", "open"))
				parts = append(parts, m.renderKeyHelp("/", "search"))
				parts = append(parts, m.renderKeyHelp("T", "type"))
				parts = append(parts, m.renderKeyHelp("a/t/w/m", "range"))
			}
		case TabCompose:
			parts = append(parts, m.renderKeyHelp("Enter", "edit"))
			parts = append(parts, m.renderKeyHelp("T", "type"))
		case TabConfig:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
		}

		parts = append(parts, m.renderKeyHelp("1-3", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	if m.saveErr != nil {
		parts = append(parts, m.styles.Error.Render("theme not saved: "+m.saveErr.Error()))
	}

	content := strings.Join(parts, "  ")
	if padding := m.width - lipgloss.Width(content); padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isModalInputMode checks if the current view is capturing keyboard input
func (m Model) isModalInputMode() bool {
	switch m.activeTab {
	case TabEntries:
		return m.entriesView.IsInputMode()
	case TabCompose:
		return m.composeView.IsInputMode()
	}
	return false
}

// initCurrentView initializes the current view when switching tabs
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabEntries:
		return m.entriesView.Init()
	case TabCompose:
		return m.composeView.Init()
	case TabConfig:
		return m.configView.Init()
	}
	return nil
}

// saveThemeConfig saves the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	configService := m.services.Config
	return func() tea.Msg {
		cfg := configService.Get()
		cfg.Theme = themeName
		return themeSavedMsg{err: configService.Update(cfg)}
	}
}

// renderHelpOverlay renders the keyboard shortcuts of the active view
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.Label.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-3    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabEntries:
		help.WriteString(m.styles.Label.Render("Entries:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  Enter      Open entry\n")
		help.WriteString("  i          Toggle raw input\n")
		help.WriteString("  / or s     Search entries\n")
		help.WriteString("  T          Next journal type\n")
		help.WriteString("  a          All entries\n")
		help.WriteString("  t/y        Today/Yesterday\n")
		help.WriteString("  w/W        This/Last week\n")
		help.WriteString("  m/M        This/Last month\n")
		help.WriteString("  r          Refresh\n")
	case TabCompose:
		help.WriteString(m.styles.Label.Render("Compose:"))
		help.WriteString("\n")
		help.WriteString("  Enter      Start editing\n")
		help.WriteString("  T          Next journal type\n")
		help.WriteString("  Ctrl+S     Save entry\n")
		help.WriteString("  Esc        Stop editing\n")
	case TabConfig:
		help.WriteString(m.styles.Label.Render("Config:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  j/k        Navigate themes\n")
		help.WriteString("  Enter      Select theme\n")
		help.WriteString("  Esc        Cancel\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.Label.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run starts the TUI application
func Run(ctx context.Context, services *service.Services) error {
	p := tea.NewProgram(New(ctx, services), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
