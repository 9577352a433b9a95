package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/hacktwin/internal/config"
	"github.com/sant0-9/hacktwin/internal/tui/styles"
)

func (a *App) renderSetup() string {
	switch a.state.setupStep {
	case 0:
		return a.renderProviderSelection()
	case 1:
		return a.renderAPIKeyEntry()
	default:
		return ""
	}
}

func (a *App) renderProviderSelection() string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleLogo.Render(logo)))
	b.WriteString("\n\n")

	title := styleTitle.Render("Welcome! Choose the model provider for your panels:")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	var providerLines []string
	for i, p := range config.Providers {
		var line string
		if i == a.state.selectedProvider {
			line = lipgloss.NewStyle().
				Foreground(styles.ColorSecondary).
				Bold(true).
				Render(fmt.Sprintf("> [x] %-12s %s", p.Name, p.Description))
		} else {
			line = lipgloss.NewStyle().
				Foreground(styles.ColorMuted).
				Render(fmt.Sprintf("  [ ] %-12s %s", p.Name, p.Description))
		}
		providerLines = append(providerLines, line)
	}

	providerBox := styleBox.
		Width(56).
		Render(strings.Join(providerLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, providerBox))
	b.WriteString("\n\n")

	if a.state.setupErr != nil {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.renderErrorBox(a.state.setupErr)))
		b.WriteString("\n\n")
	}

	instructions := styleStatusBar.Render("[j/k] Navigate  [Enter] Select  [Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderAPIKeyEntry() string {
	var b strings.Builder

	provider := config.GetProvider(a.state.config.Provider)

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleLogo.Render(logo)))
	b.WriteString("\n\n")

	title := styleTitle.Render(fmt.Sprintf("Enter your %s API key:", provider.Name))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	if provider.SignupURL != "" {
		link := styleSubtitle.Render(fmt.Sprintf("Get one at: %s", provider.SignupURL))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, link))
		b.WriteString("\n\n")
	}

	inputBox := styleBox.
		Width(60).
		BorderForeground(styles.ColorSecondary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	if a.state.setupErr != nil {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.renderErrorBox(a.state.setupErr)))
		b.WriteString("\n\n")
	}

	instructions := styleStatusBar.Render("[Enter] Save  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := max((a.height-lines)/2, 0)
	return strings.Repeat("\n", padding) + content
}
