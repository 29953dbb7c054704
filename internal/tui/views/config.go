package views

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/jot/internal/config"
	"github.com/xolan/jot/internal/service"
	"github.com/xolan/jot/internal/tui/ui"
)

// themeWindow is how many theme names the picker shows at once.
const themeWindow = 10

// ConfigModel shows the effective configuration and lets the user pick a theme.
type ConfigModel struct {
	services      *service.Services
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap

	width  int
	height int

	config    config.Config
	path      string
	exists    bool
	themeName string

	selectingTheme bool
	themes         []string
	cursor         int
	top            int
}

type configLoadedMsg struct {
	config config.Config
	path   string
	exists bool
}

type configField struct {
	label string
	value string
}

// NewConfigModel creates the config view
func NewConfigModel(services *service.Services, themeProvider *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) ConfigModel {
	m := ConfigModel{
		services:      services,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		themes:        themeProvider.AvailableThemes(),
		themeName:     themeProvider.CurrentName(),
	}
	m.cursor = m.themeIndex(m.themeName)
	return m
}

// Init implements tea.Model
func (m ConfigModel) Init() tea.Cmd {
	services := m.services
	return func() tea.Msg {
		return configLoadedMsg{
			config: services.Config.Get(),
			path:   services.Config.GetPath(),
			exists: services.Config.Exists(),
		}
	}
}

// Update implements tea.Model
func (m ConfigModel) Update(msg tea.Msg) (ConfigModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.selectingTheme {
			return m.updatePicker(msg)
		}
		if key.Matches(msg, m.keys.Select) || msg.String() == "t" {
			m.selectingTheme = true
			m.scrollToCursor()
		}

	case configLoadedMsg:
		m.config, m.path, m.exists = msg.config, msg.path, msg.exists
		m.themeName = msg.config.Theme
		if m.themeName == "" {
			m.themeName = ui.DefaultTheme
		}
		m.cursor = m.themeIndex(m.themeName)

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.themeName = msg.ThemeName
	}

	return m, nil
}

func (m ConfigModel) updatePicker(msg tea.KeyMsg) (ConfigModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, len(m.themes)-1)
	case key.Matches(msg, m.keys.Select):
		m.selectingTheme = false
		if len(m.themes) == 0 {
			return m, nil
		}
		name := m.themes[m.cursor]
		return m, func() tea.Msg { return ui.ThemeChangeRequestMsg{ThemeName: name} }
	case key.Matches(msg, m.keys.Back):
		m.selectingTheme = false
		m.cursor = m.themeIndex(m.themeName)
	}
	m.scrollToCursor()
	return m, nil
}

// themeIndex returns the position of name in the theme list, or 0.
func (m ConfigModel) themeIndex(name string) int {
	return max(slices.Index(m.themes, name), 0)
}

func (m *ConfigModel) scrollToCursor() {
	switch {
	case m.cursor < m.top:
		m.top = m.cursor
	case m.cursor >= m.top+themeWindow:
		m.top = m.cursor - themeWindow + 1
	}
}

// SetSize sets the view dimensions
func (m *ConfigModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m ConfigModel) fields() []configField {
	return []configField{
		{"format", m.config.Format},
		{"storage_dir", valueOr(m.config.StorageDir, "(default)")},
		{"week_start_day", m.config.WeekStartDay},
		{"timezone", m.config.Timezone},
		{"entry_types", strings.Join(m.config.TypeNames(), ", ")},
		{"analysis", m.analysisStatus()},
		{"git sync", m.gitStatus()},
	}
}

// View implements tea.Model
func (m ConfigModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Configuration") + "\n\n")
	b.WriteString(m.line("Config file", m.path))

	status := m.styles.Warning.Render("Using defaults (no config file)")
	if m.exists {
		status = m.styles.Success.Render("File exists")
	}
	b.WriteString(m.styles.Label.Render("Status:") + " " + status + "\n\n")
	b.WriteString(strings.Repeat("─", min(50, m.width)) + "\n\n")

	for _, f := range m.fields() {
		b.WriteString(m.line(f.label, f.value))
	}

	if m.selectingTheme {
		b.WriteString(m.renderPicker())
		return b.String()
	}
	b.WriteString(m.line("theme", m.themeName))
	b.WriteString("\n" + m.styles.Label.Render("Press Enter or 't' to change theme"))
	return b.String()
}

func (m ConfigModel) renderPicker() string {
	var b strings.Builder

	b.WriteString(m.styles.Label.Render("theme:") + " " + m.styles.Value.Render("Select a theme") + "\n\n")

	end := min(m.top+themeWindow, len(m.themes))
	if m.top > 0 {
		b.WriteString(m.styles.Label.Render("  ↑ more themes above") + "\n")
	}
	for i, name := range m.themes[m.top:end] {
		label := name
		if name == m.themeName {
			label += " (current)"
		}
		if m.top+i == m.cursor {
			b.WriteString(m.styles.EntrySelected.Render("▸ "+label) + "\n")
			continue
		}
		style := m.styles.Value
		if name == m.themeName {
			style = m.styles.Success
		}
		b.WriteString("  " + style.Render(label) + "\n")
	}
	if end < len(m.themes) {
		b.WriteString(m.styles.Label.Render("  ↓ more themes below") + "\n")
	}

	b.WriteString("\n" + m.styles.Label.Render("↑/↓ navigate  Enter select  Esc cancel"))
	return b.String()
}

func (m ConfigModel) line(label, value string) string {
	return m.styles.Label.Render(label+":") + " " + m.styles.Value.Render(value) + "\n"
}

func (m ConfigModel) analysisStatus() string {
	if m.config.GeminiToken == "" {
		return "off (set " + config.EnvGeminiToken + ")"
	}
	return "gemini " + m.config.AI.Model
}

func (m ConfigModel) gitStatus() string {
	if !m.config.GitEnabled() {
		return "off"
	}
	return m.config.GitRemoteURL()
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
