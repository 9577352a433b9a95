package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sant0-9/hacktwin/internal/config"
	"github.com/sant0-9/hacktwin/internal/llm"
	"github.com/sant0-9/hacktwin/internal/session"
	"github.com/sant0-9/hacktwin/internal/studio"
)

type view int

const (
	viewWelcome view = iota
	viewSetup
	viewStudio
	viewSettings
	viewHelp
)

// ConnectFunc builds a provider from config.
type ConnectFunc func(ctx context.Context, cfg *config.Config) (llm.Provider, error)

type Options struct {
	// Config is the resolved config; nil or one lacking an API key starts the
	// setup wizard.
	Config     *config.Config
	ConfigPath string
	Connect    ConnectFunc
	Log        *slog.Logger
}

type App struct {
	width    int
	height   int
	view     view
	prevView view
	state    *state
	connect  ConnectFunc
	quitting bool
}

func NewApp(opts Options) *App {
	s := newState()
	s.configPath = opts.ConfigPath
	s.session = session.New(uuid.NewString())
	s.log = opts.Log
	if s.log == nil {
		s.log = slog.Default()
	}

	if opts.Config == nil {
		s.needsSetup = true
		s.config = config.DefaultConfig()
	} else {
		s.config = opts.Config
		s.needsSetup = opts.Config.NeedsSetup()
	}

	connect := opts.Connect
	if connect == nil {
		connect = func(ctx context.Context, cfg *config.Config) (llm.Provider, error) {
			return llm.NewProvider(ctx, cfg)
		}
	}

	return &App{
		view:    viewWelcome,
		state:   s,
		connect: connect,
	}
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		a.view = viewSetup
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}

	return tea.Batch(
		tea.WindowSize(),
		a.testProvider(),
	)
}

func (a *App) testProvider() tea.Cmd {
	cfg := *a.state.config
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		provider, err := a.connect(ctx, &cfg)
		if err != nil {
			return providerErrorMsg{err: err}
		}

		if err := provider.Ping(ctx); err != nil {
			return providerErrorMsg{provider: provider, err: err}
		}

		return providerReadyMsg{provider: provider}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := a.handleKey(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if handled {
			return a, tea.Batch(cmds...)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.state.setupErr = nil
		a.view = viewWelcome
		return a, a.testProvider()

	case setupErrorMsg:
		a.state.setupErr = msg.error
		return a, nil

	case providerReadyMsg:
		a.state.providerReady = true
		a.state.providerError = nil
		return a, a.startStudio(msg.provider)

	case providerErrorMsg:
		a.state.provider = msg.provider
		a.state.providerError = msg.err
		a.state.log.Warn("provider check failed", "provider", a.state.config.Provider, "error", msg.err)
		return a, nil

	case spinner.TickMsg:
		if !a.state.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd

	case resultMsg:
		a.state.busy = false
		a.state.session = msg.session
		a.state.outputs[msg.panel] = output{text: msg.text, outcome: msg.outcome, err: msg.err}
		if msg.err != nil {
			a.state.log.Warn("panel run failed", "panel", panelTitles[msg.panel], "error", msg.err)
		} else {
			a.state.log.Info("panel run complete", "panel", panelTitles[msg.panel])
		}
		return a, nil
	}

	// Route remaining input to the focused field
	switch {
	case a.view == viewSetup && a.state.setupStep == 1:
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewStudio:
		cmds = append(cmds, a.state.forms[a.state.panel].Update(msg))
	}

	return a, tea.Batch(cmds...)
}

// startStudio wires the service to provider and opens the panels.
func (a *App) startStudio(provider llm.Provider) tea.Cmd {
	a.state.provider = provider
	gen := llm.NewGenerator(provider, a.state.config.RequestTimeout, a.state.log)
	a.state.service = studio.NewService(gen, a.state.log)
	a.view = viewStudio
	return a.state.forms[a.state.panel].Focus()
}

// handleKey reports whether the key was consumed before reaching the
// focused input.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		if a.view == viewSettings || a.view == viewHelp {
			a.view = a.prevView
			return nil, true
		}
		if a.view == viewSetup && a.state.setupStep == 1 {
			// back to provider selection
			a.state.setupStep = 0
			a.state.apiKeyInput.Reset()
			return nil, true
		}
		a.quitting = true
		return tea.Quit, true

	case key.Matches(msg, keys.Help):
		if a.view != viewHelp && a.view != viewSetup {
			a.prevView = a.view
			a.view = viewHelp
		}
		return nil, true

	case key.Matches(msg, keys.Settings):
		if a.view != viewSettings && a.view != viewSetup {
			a.prevView = a.view
			a.view = viewSettings
		}
		return nil, true
	}

	switch a.view {
	case viewSetup:
		return a.handleSetupKey(msg)
	case viewWelcome:
		return a.handleWelcomeKey(msg)
	case viewStudio:
		return a.handleStudioKey(msg)
	}

	return nil, false
}

func (a *App) handleWelcomeKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !key.Matches(msg, keys.Enter) || a.state.providerError == nil {
		return nil, false
	}
	if a.state.provider != nil {
		// reachable enough to build; let the panels report failures
		return a.startStudio(a.state.provider), true
	}
	// nothing to connect with; redo setup
	a.state.setupStep = 0
	a.view = viewSetup
	return nil, true
}

func (a *App) handleStudioKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	f := a.state.forms[a.state.panel]

	switch {
	case key.Matches(msg, keys.NextTab):
		return a.switchPanel(1), true
	case key.Matches(msg, keys.PrevTab):
		return a.switchPanel(-1), true
	case key.Matches(msg, keys.NextField):
		return f.Move(1), true
	case key.Matches(msg, keys.PrevField):
		return f.Move(-1), true
	case key.Matches(msg, keys.Submit):
		if a.state.busy || a.state.service == nil {
			return nil, true
		}
		a.state.busy = true
		a.state.outputs[a.state.panel].err = nil
		return tea.Batch(a.submit(), a.state.spinner.Tick), true
	}

	return nil, false
}

func (a *App) switchPanel(delta int) tea.Cmd {
	a.state.forms[a.state.panel].Blur()
	n := int(panelCount)
	a.state.panel = panel(((int(a.state.panel)+delta)%n + n) % n)
	return a.state.forms[a.state.panel].Focus()
}

func (a *App) handleSetupKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch a.state.setupStep {
	case 0: // provider selection
		switch {
		case key.Matches(msg, keys.Up):
			if a.state.selectedProvider > 0 {
				a.state.selectedProvider--
			}
		case key.Matches(msg, keys.Down):
			if a.state.selectedProvider < len(config.Providers)-1 {
				a.state.selectedProvider++
			}
		case key.Matches(msg, keys.Enter):
			provider := config.Providers[a.state.selectedProvider]
			a.state.config.Provider = provider.ID
			a.state.config.Model = provider.DefaultModel

			if provider.NeedsAPIKey {
				a.state.setupStep = 1
				return a.state.apiKeyInput.Focus(), true
			}
			return a.finishSetup(), true
		}
		return nil, true

	case 1: // API key entry
		if key.Matches(msg, keys.Enter) {
			a.state.config.APIKey = a.state.apiKeyInput.Value()
			return a.finishSetup(), true
		}
	}

	return nil, false
}

func (a *App) finishSetup() tea.Cmd {
	cfg := *a.state.config
	path := a.state.configPath
	return func() tea.Msg {
		if err := cfg.Save(path); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }
type providerReadyMsg struct{ provider llm.Provider }
type providerErrorMsg struct {
	provider llm.Provider
	err      error
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewSetup:
		return a.renderSetup()
	case viewStudio:
		return a.renderStudio()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	default:
		return a.renderWelcome()
	}
}
