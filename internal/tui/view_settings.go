package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/hacktwin/internal/config"
	"github.com/sant0-9/hacktwin/internal/tui/styles"
)

func (a *App) renderSettings() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(styles.ColorPrimary).
		Bold(true).
		Render("Settings")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	cfg := a.state.config
	providerName := cfg.Provider
	if p := config.GetProvider(cfg.Provider); p != nil {
		providerName = p.Name
	}

	status := "checking..."
	switch {
	case a.state.providerReady:
		status = "connected"
	case a.state.providerError != nil:
		status = "unreachable"
	}

	path := a.state.configPath
	if path == "" {
		path, _ = config.ConfigPath()
	}

	configLines := []string{
		fmt.Sprintf("  Provider: %s (%s)", providerName, status),
		fmt.Sprintf("  Model:    %s", cfg.Model),
		fmt.Sprintf("  API Key:  %s", maskKey(cfg.APIKey)),
	}
	if cfg.BaseURL != "" {
		configLines = append(configLines, fmt.Sprintf("  Base URL: %s", cfg.BaseURL))
	}
	configLines = append(configLines,
		fmt.Sprintf("  Timeout:  %s", cfg.RequestTimeout),
		"",
		fmt.Sprintf("  Config:   %s", truncate(path, 50)),
	)

	configBox := styleBox.
		Width(64).
		Render(strings.Join(configLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, configBox))
	b.WriteString("\n\n")

	hint := styleSubtitle.Render("Edit the config file or set HACKTWIN_* variables, then restart.")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, hint))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func maskKey(k string) string {
	switch {
	case k == "":
		return "Not set"
	case len(k) > 8:
		return k[:4] + "****" + k[len(k)-4:]
	default:
		return "****"
	}
}
