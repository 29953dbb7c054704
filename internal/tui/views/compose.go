package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/jot/internal/config"
	"github.com/xolan/jot/internal/service"
	"github.com/xolan/jot/internal/tui/ui"
)

// ComposeModel is a free-text editor that writes a new entry to a journal
type ComposeModel struct {
	ctx      context.Context
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int

	types   []config.EntryType
	typeIdx int
	editor  textarea.Model
	saving  bool
	result  *service.ComposeResult
	err     error
}

// NewComposeModel creates a compose view writing to the default journal
func NewComposeModel(ctx context.Context, services *service.Services, styles ui.Styles, keys ui.KeyMap) ComposeModel {
	editor := textarea.New()
	editor.Placeholder = "How was your day?"
	editor.ShowLineNumbers = false
	editor.CharLimit = 0

	types := services.Journal.Types()
	typeIdx := 0
	for i, et := range types {
		if et.Name == config.DefaultEntryType {
			typeIdx = i
		}
	}

	return ComposeModel{
		ctx:      ctx,
		services: services,
		styles:   styles,
		keys:     keys,
		types:    types,
		typeIdx:  typeIdx,
		editor:   editor,
	}
}

// composedMsg is sent when a compose finished
type composedMsg struct {
	result *service.ComposeResult
	err    error
}

// Init implements tea.Model
func (m ComposeModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m ComposeModel) Update(msg tea.Msg) (ComposeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.saving {
			return m, nil
		}
		if m.editor.Focused() {
			return m.handleEditing(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Select):
			m.err = nil
			m.result = nil
			return m, m.editor.Focus()
		case key.Matches(msg, m.keys.NextType):
			if len(m.types) > 1 {
				m.typeIdx = (m.typeIdx + 1) % len(m.types)
			}
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}
		return m, nil

	case composedMsg:
		m.saving = false
		m.err = msg.err
		m.result = msg.result
		if msg.err != nil {
			return m, nil
		}
		m.editor.Reset()
		typeName := msg.result.Type
		return m, func() tea.Msg { return ui.JournalChangedMsg{Type: typeName} }

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.editor.Focused() {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ComposeModel) handleEditing(msg tea.KeyMsg) (ComposeModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.editor.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// submit validates the editor content and composes it in the background
func (m ComposeModel) submit() (ComposeModel, tea.Cmd) {
	sub, err := m.services.Journal.NewSubmission(m.TypeName(), m.editor.Value())
	if err != nil {
		m.err = err
		return m, nil
	}

	m.editor.Blur()
	m.saving = true
	m.err = nil
	m.result = nil

	ctx, journal := m.ctx, m.services.Journal
	return m, func() tea.Msg {
		res, err := journal.Compose(ctx, sub)
		return composedMsg{result: res, err: err}
	}
}

// View implements tea.Model
func (m ComposeModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("New entry"))
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Type:"))
	b.WriteString(" ")
	b.WriteString(m.styles.Value.Render(m.TypeName()))
	b.WriteString("\n\n")

	box := m.styles.Input
	if m.editor.Focused() {
		box = m.styles.InputFocused
	}
	b.WriteString(box.Render(m.editor.View()))
	b.WriteString("\n\n")

	switch {
	case m.saving:
		b.WriteString(m.styles.Warning.Render("Analysing and saving..."))
	case m.err != nil:
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.result != nil:
		b.WriteString(m.styles.Success.Render(fmt.Sprintf("Saved under %s in %s", m.result.DateHeader, m.result.Path)))
		if m.result.SyncErr != nil {
			b.WriteString("\n")
			b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Git sync failed: %v", m.result.SyncErr)))
		} else if m.result.Synced {
			b.WriteString("\n")
			b.WriteString(m.styles.Success.Render("Pushed to git"))
		}
	}
	b.WriteString("\n")

	if m.editor.Focused() {
		b.WriteString(m.styles.Label.Render("Ctrl+S save  Esc stop editing"))
	} else {
		b.WriteString(m.styles.Label.Render("Enter edit  T next type  Ctrl+S save"))
	}
	return b.String()
}

// SetSize sets the view dimensions
func (m *ComposeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.editor.SetWidth(max(width-4, 20))
	m.editor.SetHeight(max(height-10, 3))
}

// TypeName returns the name of the journal new entries are written to
func (m ComposeModel) TypeName() string {
	if m.typeIdx < len(m.types) {
		return m.types[m.typeIdx].Name
	}
	return config.DefaultEntryType
}

// Value returns the current editor content
func (m ComposeModel) Value() string {
	return m.editor.Value()
}

// SetValue replaces the editor content
func (m *ComposeModel) SetValue(s string) {
	m.editor.SetValue(s)
}

// IsInputMode returns true when the view is capturing keyboard input
func (m ComposeModel) IsInputMode() bool {
	return m.editor.Focused() || m.saving
}
