package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sant0-9/hacktwin/internal/llm"
	"github.com/sant0-9/hacktwin/internal/logging"
	"github.com/sant0-9/hacktwin/internal/session"
	"github.com/sant0-9/hacktwin/internal/studio"
	"github.com/sant0-9/hacktwin/internal/web"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the organizer studio in the browser",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().String("addr", "", "listen address (default from config, :8501)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}

	log := logging.New(os.Stderr, cfg.LogLevel)

	provider, err := llm.NewProvider(ctx, cfg)
	if err != nil {
		return configError{fmt.Errorf("provider %s: %w", cfg.Provider, err)}
	}

	store, err := session.OpenBadgerStore(cfg.SessionTTL, log)
	if err != nil {
		return err
	}
	defer func() {
		log.Info("closing session store")
		_ = store.Close()
	}()

	svc := studio.NewService(llm.NewGenerator(provider, cfg.RequestTimeout, log), log)
	h := web.New(svc, store, cfg.SessionTTL, log)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.Addr, "provider", provider.Name(), "model", cfg.Model)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("shutting down server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}
	return nil
}
