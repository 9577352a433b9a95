package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderStudio() string {
	var b strings.Builder

	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")

	p := a.state.panel
	b.WriteString(styleBox.Width(a.boxWidth()).Render(a.state.forms[p].View()))
	b.WriteString("\n")

	switch out := a.state.outputs[p]; {
	case a.state.busy:
		b.WriteString("\n" + a.state.spinner.View() + styleSubtitle.Render(" Working..."))
		b.WriteString("\n")
	case out.err != nil:
		b.WriteString(a.renderErrorBox(out.err))
		b.WriteString("\n")
	case out.outcome != nil && out.outcome.Result == nil:
		b.WriteString(styleWarningBox.Width(a.boxWidth()).Render(out.outcome.Warning))
		b.WriteString("\n")
	}

	if text := a.renderOutput(p); text != "" && !a.state.busy {
		b.WriteString(styleResultBox.Width(a.boxWidth()).Render(text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.renderStatusBar())

	return b.String()
}

func (a *App) renderTabs() string {
	tabs := make([]string, panelCount)
	for i, title := range panelTitles {
		if panel(i) == a.state.panel {
			tabs[i] = styleTabActive.Render(title)
		} else {
			tabs[i] = styleTabInactive.Render(title)
		}
	}
	return styleLogo.Render("HackTwin") + "  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *App) renderStatusBar() string {
	parts := []string{
		"[ctrl+n/p] Panel",
		"[tab] Field",
		"[ctrl+s] Run",
		"[F1] Help",
		"[Esc] Quit",
	}

	info := a.state.config.Provider
	if a.state.config.Model != "" {
		info += "/" + a.state.config.Model
	}
	if a.state.panel == panelJudging {
		info += "  " + a.submissionBudget()
	}

	return styleStatusBar.Render(strings.Join(parts, "  ") + "  |  " + info)
}

// submissionBudget estimates how much of the model's context the judging
// submission uses.
func (a *App) submissionBudget() string {
	submission := a.state.forms[panelJudging].Value(0)
	used := estimateTokens(submission)
	limit := getContextLimit(a.state.config.Model)
	return fmt.Sprintf("~%d/%d tokens", used, limit)
}

func (a *App) boxWidth() int {
	if a.width <= 0 {
		return 70
	}
	return min(90, max(a.width-4, 20))
}
