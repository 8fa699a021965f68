// Package main implements the frontend binary: it serves the browser
// client and proxies its API calls to the backend server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/config"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/frontend"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/platform/logger"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/service/auth"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "frontend",
		Short:         "Serve the task helper web client and proxy API calls",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "",
		"path to a YAML config file (default: ./config.yaml if present)")
	return cmd
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	var tokens auth.TokenService
	if cfg.Auth.AdminSecret != "" {
		tokens, err = auth.NewTokenService(cfg.Auth)
		if err != nil {
			return fmt.Errorf("failed to initialize admin token service: %w", err)
		}
	}

	proxy, err := frontend.NewProxy(cfg.Frontend.BackendURL, cfg.Frontend.StaticDir, tokens, log)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Frontend.Port),
		Handler:           proxy.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting frontend",
			"addr", server.Addr,
			"backend_url", cfg.Frontend.BackendURL,
			"signed_config_calls", tokens != nil)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("frontend server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
