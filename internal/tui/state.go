package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sant0-9/hacktwin/internal/config"
	"github.com/sant0-9/hacktwin/internal/llm"
	"github.com/sant0-9/hacktwin/internal/session"
	"github.com/sant0-9/hacktwin/internal/studio"
)

type state struct {
	// Config
	config     *config.Config
	configPath string
	needsSetup bool
	setupErr   error

	// Setup wizard state
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model

	// Provider
	provider      llm.Provider
	providerReady bool
	providerError error

	// Studio
	service *studio.Service
	session *session.Session
	panel   panel
	forms   [panelCount]*form
	outputs [panelCount]output

	// Running operation
	busy    bool
	spinner spinner.Model

	log *slog.Logger
}

// output is the last result of a panel run.
type output struct {
	text    string
	outcome *studio.Outcome
	err     error
}

func newState() *state {
	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleSpinner

	return &state{
		apiKeyInput: apiKey,
		forms:       newForms(),
		spinner:     sp,
	}
}
