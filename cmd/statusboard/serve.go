package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/statusboard/internal/app"
	"github.com/okian/statusboard/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().String("addr", "", "listen address (overrides config addr)")
	cmd.Flags().String("backend-url", "", "backend base URL (overrides config backend_url)")
	cmd.Flags().Duration("timeout", 0, "per-request backend timeout, 0 for none")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := setup(ctx, cmd)
	if err != nil {
		return err
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithBackendURL(cfg.BackendURL),
		app.WithRequestTimeout(cfg.RequestTimeout),
		app.WithTitle(cfg.Title),
		app.WithVersion(version),
	)
	defer svc.Stop()

	// No WriteTimeout: refresh handlers wait on backend calls that have no
	// deadline unless request_timeout is set.
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           svc.Handler(ctx),
		ReadTimeout:       readTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	// The mount load must not hold up the listener.
	svc.StartAsync(ctx)
	return listenAndShutdown(ctx, srv, log)
}

// listenAndShutdown serves until ctx is cancelled, then shuts down gracefully.
func listenAndShutdown(ctx context.Context, srv *http.Server, log logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info(ctx, "shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}
	log.Info(ctx, "server stopped")
	return nil
}
