package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestDefaultStyles(t *testing.T) {
	styles := DefaultStyles()

	tests := []struct {
		name  string
		style lipgloss.Style
	}{
		{"App", styles.App},
		{"TabBar", styles.TabBar},
		{"TabActive", styles.TabActive},
		{"TabInactive", styles.TabInactive},
		{"ViewTitle", styles.ViewTitle},
		{"StatusBar", styles.StatusBar},
		{"StatusKey", styles.StatusKey},
		{"EntrySelected", styles.EntrySelected},
		{"EntryNormal", styles.EntryNormal},
		{"EntryIndex", styles.EntryIndex},
		{"EntryDate", styles.EntryDate},
		{"EntryPreview", styles.EntryPreview},
		{"Heading", styles.Heading},
		{"SubHeading", styles.SubHeading},
		{"Bullet", styles.Bullet},
		{"RawInput", styles.RawInput},
		{"Label", styles.Label},
		{"Value", styles.Value},
		{"Input", styles.Input},
		{"InputFocused", styles.InputFocused},
		{"Dialog", styles.Dialog},
		{"Error", styles.Error},
		{"Warning", styles.Warning},
		{"Success", styles.Success},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.style.Render("test"), "test") {
				t.Errorf("style %s did not render its content", tt.name)
			}
		})
	}
}

func TestNewStylesFromRegistry(t *testing.T) {
	tp := NewThemeProvider("nord")
	styles := NewStylesFromRegistry(tp.Registry())

	if !strings.Contains(styles.Heading.Render("Morning"), "Morning") {
		t.Error("Heading style did not render its content")
	}
	if !strings.Contains(styles.Error.Render("failed"), "failed") {
		t.Error("Error style did not render its content")
	}
}
