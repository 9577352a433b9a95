package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/hacktwin/internal/tui/styles"
)

// truncate shortens text to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

var (
	styleLogo      = styles.Logo
	styleSubtitle  = styles.Subtitle
	styleBox       = styles.Box
	styleStatusBar = styles.StatusBar

	styleTitle = lipgloss.NewStyle().
			Foreground(styles.ColorWhite).
			Bold(true)

	styleTabActive = lipgloss.NewStyle().
			Foreground(styles.ColorPrimary).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	styleTabInactive = lipgloss.NewStyle().
				Foreground(styles.ColorMuted).
				Padding(0, 1)

	styleLabel = lipgloss.NewStyle().
			Foreground(styles.ColorMuted)

	styleLabelFocused = lipgloss.NewStyle().
				Foreground(styles.ColorSecondary).
				Bold(true)

	styleResultBox = styleBox.
			BorderForeground(styles.ColorSuccess)

	styleWarningBox = styleBox.
			BorderForeground(styles.ColorWarning)

	styleErrorBox = styleBox.
			BorderForeground(styles.ColorError)

	styleSpinner = lipgloss.NewStyle().
			Foreground(styles.ColorSecondary)
)
