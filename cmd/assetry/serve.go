package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sagarc03/assetry/config"
	assetryhttp "github.com/sagarc03/assetry/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the assetry HTTP server.

Each request is matched to a configured host by its Host header, mapped to
a file under that host's root, and answered with the best pre-encoded
variant the client accepts. Missing hosts get 400, everything else that
cannot be served gets 404.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8888, "HTTP server port (env: ASSETRY_SERVER_PORT or PORT)")
	serveCmd.Flags().Bool("access-log", false, "log every request")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	service, types, err := newService(cfg)
	if err != nil {
		return err
	}

	for _, root := range service.Hosts().Roots() {
		if info, statErr := os.Stat(root); statErr != nil || !info.IsDir() {
			slog.Warn("document root is not a directory", "root", root)
		}
	}

	handlerConfig := assetryhttp.HandlerConfig{
		Production:    cfg.Production(),
		CachePolicies: cfg.CachePolicies,
		CORS:          cfg.CORS,
		AccessLog:     cfg.AccessLog,
	}

	handler := assetryhttp.NewHandler(&handlerConfig, service)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
		case <-ctx.Done():
			return
		}

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server",
		"addr", addr,
		"hosts", service.Hosts().Hosts(),
		"file_types", types.Len(),
		"env", cfg.Env,
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
