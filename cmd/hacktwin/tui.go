package main

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sant0-9/hacktwin/internal/config"
	"github.com/sant0-9/hacktwin/internal/logging"
	"github.com/sant0-9/hacktwin/internal/tui"
	"github.com/spf13/cobra"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the organizer studio in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// logs go to a file so the screen stays clean
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	log, logFile, err := logging.OpenFile(dir, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()

	app := tui.NewApp(tui.Options{
		Config:     cfg,
		ConfigPath: path,
		Log:        log,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
