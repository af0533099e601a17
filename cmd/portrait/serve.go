package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	httpadapter "github.com/aretw0/portrait/pkg/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serves the engine as a JSON API described by /openapi.yaml, with Prometheus metrics on /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger, err := loadConfig(cmd)
		exitOnError("invalid configuration", err)
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg, logger)
		exitOnError("failed to start", err)
		defer a.Close()

		srv := newHTTPServer(a, cfg.HTTPAddr)

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("HTTP server listening", "address", cfg.HTTPAddr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error("HTTP server failed", "err", err)
				os.Exit(1)
			}
		case <-ctx.Done():
			logger.Info("shutdown signal received")
			shutdownHTTP(srv, logger)
		}
	},
}

func newHTTPServer(a *app, addr string) *http.Server {
	handler := httpadapter.NewHandler(a.sessions, a.engine.Graph(),
		httpadapter.WithLogger(a.logger),
		httpadapter.WithTexts(a.engine.Texts()),
		httpadapter.WithStore(a.engine.Store()),
		httpadapter.WithMetricsHandler(promhttp.Handler()),
	)
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func shutdownHTTP(srv *http.Server, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
		if err := srv.Close(); err != nil {
			logger.Error("failed to close server", "err", err)
		}
		return
	}
	logger.Info("HTTP server stopped gracefully")
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (overrides HTTP_ADDR)")
}
