package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const logo = `
 ██╗  ██╗ █████╗  ██████╗██╗  ██╗████████╗██╗    ██╗██╗███╗   ██╗
 ██║  ██║██╔══██╗██╔════╝██║ ██╔╝╚══██╔══╝██║    ██║██║████╗  ██║
 ███████║███████║██║     █████╔╝    ██║   ██║ █╗ ██║██║██╔██╗ ██║
 ██╔══██║██╔══██║██║     ██╔═██╗    ██║   ██║███╗██║██║██║╚██╗██║
 ██║  ██║██║  ██║╚██████╗██║  ██╗   ██║   ╚███╔███╔╝██║██║ ╚████║
 ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝   ╚═╝    ╚══╝╚══╝ ╚═╝╚═╝  ╚═══╝
`

// renderWelcome is shown while the provider is checked.
func (a *App) renderWelcome() string {
	logoRendered := styleLogo.Render(logo)
	subtitle := styleSubtitle.Render("Hackathon organizer studio")

	var status, keysHint string
	if a.state.providerError != nil {
		status = a.renderErrorBox(a.state.providerError)
		keysHint = "[Enter] Continue anyway  [F2] Settings  [Esc] Quit"
		if a.state.provider == nil {
			keysHint = "[Enter] Run setup  [F2] Settings  [Esc] Quit"
		}
	} else {
		status = styleSubtitle.Render(fmt.Sprintf("\nConnecting to %s...", a.state.config.Provider))
		keysHint = "[Esc] Quit"
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		logoRendered,
		subtitle,
		status,
	)

	mainArea := lipgloss.Place(
		a.width,
		a.height-2,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	statusLine := lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render(keysHint))

	return lipgloss.JoinVertical(lipgloss.Left, mainArea, statusLine)
}
