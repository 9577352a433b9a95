package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sant0-9/hacktwin/internal/config"
	"github.com/spf13/cobra"
)

var version = "dev"

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// configError marks failures caused by bad flags or configuration.
type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(code)
}

func run(args []string) (int, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		var cfgErr configError
		if errors.As(err, &cfgErr) {
			return exitConfig, err
		}
		return exitRuntime, err
	}
	return exitOK, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hacktwin",
		Short: "Prototyping studio for hackathon organizers",
		Long: `HackTwin helps hackathon organizers brainstorm project ideas, build judging
rubrics, draft announcements, match participants into teams and pre-score
submissions. Run it as a local web app (serve) or in the terminal (tui).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/hacktwin/config.yaml)")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return configError{err}
	})

	root.AddCommand(newServeCmd(), newTUICmd())
	return root
}

// loadConfig resolves the config named by --config (or the default path).
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, "", configError{err}
	}
	return cfg, path, nil
}
