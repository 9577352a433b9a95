package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/hacktwin/internal/tui/styles"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(styles.ColorPrimary).
		Bold(true).
		Render("Help")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	panels := []string{
		"  Ideas          Project ideas for a theme",
		"  Rubric         Judging rubric for your goals",
		"  Announcements  Drafts for participants, judges, mentors",
		"  Teams          Balanced teams from a skills list",
		"  Judging        Summary and scores for a submission",
	}

	panelsBox := styleBox.
		Width(60).
		Render(strings.Join(panels, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, panelsBox))
	b.WriteString("\n\n")

	bindings := []keyHelp{
		{keys.NextTab, "Next panel"},
		{keys.PrevTab, "Previous panel"},
		{keys.NextField, "Next field"},
		{keys.PrevField, "Previous field"},
		{keys.Submit, "Run the panel"},
		{keys.Settings, "Settings"},
		{keys.Quit, "Back / Quit"},
	}
	shortcuts := make([]string, len(bindings))
	for i, kh := range bindings {
		shortcuts[i] = "  " + padRight(kh.binding.Help().Key, 15) + kh.desc
	}

	shortcutsTitle := styleSubtitle.Render("Keyboard Shortcuts")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsTitle))
	b.WriteString("\n\n")

	shortcutsBox := styleBox.
		Width(60).
		Render(strings.Join(shortcuts, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

type keyHelp struct {
	binding key.Binding
	desc    string
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s + " "
	}
	return s + strings.Repeat(" ", n-len(s))
}
