package tui

import (
	"errors"
	"strings"

	"github.com/sant0-9/hacktwin/internal/llm"
	"github.com/sant0-9/hacktwin/internal/studio"
)

// renderErrorBox shows err with hints for the failures organizers hit most.
func (a *App) renderErrorBox(err error) string {
	msg := err.Error()
	suggestions := suggestionsFor(err)

	body := msg
	if len(suggestions) > 0 {
		body += "\n\n" + strings.Join(suggestions, "\n")
	}

	return styleErrorBox.
		Width(min(70, max(a.width-4, 20))).
		Render(body)
}

func suggestionsFor(err error) []string {
	if errors.Is(err, studio.ErrInvalidInput) ||
		errors.Is(err, studio.ErrNoParticipants) ||
		errors.Is(err, studio.ErrEmptySubmission) {
		return nil
	}

	errLower := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errLower, "api key") || strings.Contains(errLower, "401") || strings.Contains(errLower, "unauthorized"):
		return []string{
			"Check your API key in ~/.config/hacktwin/config.yaml",
			"or set HACKTWIN_API_KEY / GEMINI_API_KEY",
		}
	case strings.Contains(errLower, "ollama"):
		return []string{
			"Make sure Ollama is running: ollama serve",
			"Or switch to a hosted provider in the config file",
		}
	case strings.Contains(errLower, "rate limit") || strings.Contains(errLower, "429") || strings.Contains(errLower, "quota"):
		return []string{
			"You've hit the provider's rate limit",
			"Wait a moment and run the panel again",
		}
	case strings.Contains(errLower, "connect") || strings.Contains(errLower, "deadline") || strings.Contains(errLower, "timeout"):
		return []string{
			"Check your internet connection",
			"Or raise request_timeout in the config file",
		}
	case errors.Is(err, llm.ErrEmptyResponse):
		return []string{"The model answered with nothing; try again"}
	}

	return nil
}
