package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/jot/internal/config"
	"github.com/xolan/jot/internal/entry"
	"github.com/xolan/jot/internal/filter"
	"github.com/xolan/jot/internal/service"
	"github.com/xolan/jot/internal/tui/ui"
)

// entryMode represents the current mode of the entries view
type entryMode int

const (
	entryModeList entryMode = iota
	entryModeSearch
	entryModeDetail
)

// EntriesModel browses the parsed entries of one journal
type EntriesModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	cursor  int
	entries []entry.Entry
	loading bool
	err     error

	// Query
	types      []config.EntryType
	typeIdx    int
	rangeExpr  string
	rangeLabel string
	keyword    string

	mode        entryMode
	searchInput textinput.Model
	detail      viewport.Model
	showRaw     bool
}

// NewEntriesModel creates a new entries view model showing every entry of
// the default journal.
func NewEntriesModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) EntriesModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search entries..."
	searchInput.CharLimit = 100
	searchInput.Width = 40

	types := services.Journal.Types()
	typeIdx := 0
	for i, et := range types {
		if et.Name == config.DefaultEntryType {
			typeIdx = i
		}
	}

	return EntriesModel{
		services:    services,
		styles:      styles,
		keys:        keys,
		loading:     true,
		types:       types,
		typeIdx:     typeIdx,
		rangeLabel:  "all time",
		searchInput: searchInput,
		detail:      viewport.New(0, 0),
	}
}

// entriesLoadedMsg is sent when entries are loaded
type entriesLoadedMsg struct {
	entries []entry.Entry
	label   string
	err     error
}

// Init implements tea.Model
func (m EntriesModel) Init() tea.Cmd {
	return m.loadEntries()
}

// Update implements tea.Model
func (m EntriesModel) Update(msg tea.Msg) (EntriesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case entryModeSearch:
			return m.handleSearchMode(msg)
		case entryModeDetail:
			return m.handleDetailMode(msg)
		}
		return m.handleListMode(msg)

	case entriesLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.entries = msg.entries
			m.rangeLabel = msg.label
			if m.cursor >= len(m.entries) {
				m.cursor = max(0, len(m.entries)-1)
			}
		}
		return m, nil

	case ui.JournalChangedMsg:
		if msg.Type == m.TypeName() {
			return m, m.loadEntries()
		}
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		if m.mode == entryModeDetail {
			m.refreshDetail()
		}
		return m, nil
	}

	if m.mode == entryModeSearch {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m EntriesModel) handleListMode(msg tea.KeyMsg) (EntriesModel, tea.Cmd) {
	if expr, ok := m.keys.RangeExpr(msg); ok {
		m.rangeExpr = expr
		m.cursor = 0
		return m, m.loadEntries()
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(m.entries) {
			m.mode = entryModeDetail
			m.showRaw = false
			m.refreshDetail()
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadEntries()
	case key.Matches(msg, m.keys.NextType):
		if len(m.types) > 1 {
			m.typeIdx = (m.typeIdx + 1) % len(m.types)
			m.cursor = 0
			return m, m.loadEntries()
		}
	case key.Matches(msg, m.keys.Search):
		m.mode = entryModeSearch
		m.searchInput.SetValue(m.keyword)
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Back):
		if m.keyword != "" {
			m.keyword = ""
			m.cursor = 0
			return m, m.loadEntries()
		}
	}
	return m, nil
}

// handleSearchMode edits the keyword; Enter applies it and Esc discards it
func (m EntriesModel) handleSearchMode(msg tea.KeyMsg) (EntriesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		m.keyword = strings.TrimSpace(m.searchInput.Value())
		m.mode = entryModeList
		m.searchInput.Blur()
		m.cursor = 0
		return m, m.loadEntries()
	case key.Matches(msg, m.keys.Back):
		m.mode = entryModeList
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m EntriesModel) handleDetailMode(msg tea.KeyMsg) (EntriesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = entryModeList
		return m, nil
	case key.Matches(msg, m.keys.Raw):
		m.showRaw = !m.showRaw
		m.refreshDetail()
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// refreshDetail renders the selected entry into the detail viewport
func (m *EntriesModel) refreshDetail() {
	if m.cursor >= len(m.entries) {
		m.detail.SetContent("")
		return
	}
	e := m.entries[m.cursor]
	syntax := m.services.Journal.Syntax()

	var b strings.Builder
	b.WriteString(RenderOutline(e.Content, syntax, m.styles, m.detail.Width))
	if m.showRaw && e.RawInput != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.SubHeading.Render("Raw Input"))
		b.WriteString("\n")
		b.WriteString(m.styles.RawInput.Render(e.RawInput))
	}
	m.detail.SetContent(b.String())
	m.detail.GotoTop()
}

// View implements tea.Model
func (m EntriesModel) View() string {
	if m.mode == entryModeDetail && m.cursor < len(m.entries) {
		return m.renderDetail()
	}

	var b strings.Builder

	title := fmt.Sprintf("%s entries: %s", m.TypeName(), m.rangeLabel)
	if m.keyword != "" {
		title += fmt.Sprintf(" matching %q", m.keyword)
	}
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n")

	if m.mode == entryModeSearch {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	if len(m.entries) == 0 {
		b.WriteString(m.styles.Label.Render("No entries found"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Label.Render("Press 2 to write a new entry"))
		return b.String()
	}

	b.WriteString(RenderEntryList(m.entries, m.styles, EntryRenderOptions{
		Syntax: m.services.Journal.Syntax(),
		Width:  m.width,
		Cursor: m.cursor,
	}))

	b.WriteString(strings.Repeat("─", min(50, m.width)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d %s", len(m.entries), pluralize("entry", len(m.entries))))

	return b.String()
}

func (m EntriesModel) renderDetail() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render(m.entries[m.cursor].Date))
	b.WriteString("\n")
	b.WriteString(m.detail.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render(fmt.Sprintf("%3.f%%  i raw input  Esc back", m.detail.ScrollPercent()*100)))
	return b.String()
}

// SetSize sets the view dimensions
func (m *EntriesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.detail.Width = width
	m.detail.Height = max(height-4, 1)
	if m.mode == entryModeDetail {
		m.refreshDetail()
	}
}

// TypeName returns the name of the journal being browsed
func (m EntriesModel) TypeName() string {
	if m.typeIdx < len(m.types) {
		return m.types[m.typeIdx].Name
	}
	return config.DefaultEntryType
}

// RangeExpr returns the active date range expression
func (m EntriesModel) RangeExpr() string {
	return m.rangeExpr
}

// Selected returns the entry under the cursor
func (m EntriesModel) Selected() (entry.Entry, bool) {
	if m.cursor < len(m.entries) {
		return m.entries[m.cursor], true
	}
	return entry.Entry{}, false
}

// loadEntries creates a command to load the entries matching the query
func (m EntriesModel) loadEntries() tea.Cmd {
	journal := m.services.Journal
	typeName, expr, keyword := m.TypeName(), m.rangeExpr, m.keyword
	return func() tea.Msg {
		r, err := journal.ParseRange(expr)
		if err != nil {
			return entriesLoadedMsg{err: err}
		}
		entries, err := journal.Entries(typeName, filter.NewFilter(keyword, r))
		if err != nil {
			return entriesLoadedMsg{err: err}
		}
		label := "all time"
		if r != nil {
			label = r.Label
		}
		return entriesLoadedMsg{entries: entries, label: label}
	}
}

// IsInputMode returns true when the view is capturing keyboard input
func (m EntriesModel) IsInputMode() bool {
	return m.mode == entryModeSearch
}

// InDetail returns true while a single entry is shown
func (m EntriesModel) InDetail() bool {
	return m.mode == entryModeDetail
}
