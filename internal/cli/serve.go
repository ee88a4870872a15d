package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"hostdash/internal/config"
	"hostdash/internal/core/metrics"
	"hostdash/internal/exporter"
	"hostdash/internal/logger"
	"hostdash/internal/transport/rest"
	"hostdash/internal/transport/websocket"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Address = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger.New(cfg))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides HTTP_ADDR")

	return cmd
}

// newHandler wires every route over one real sampler.
func newHandler(ctx context.Context, cfg *config.Config, log logger.Logger) http.Handler {
	sampler := metrics.NewSampler(cfg, log)

	return rest.NewRouter(cfg, log, &rest.RouterDeps{
		Dashboard: rest.NewDashboardHandler(sampler, log),
		Metrics:   rest.NewMetricsHandler(sampler),
		WS:        websocket.NewHandler(ctx, sampler, cfg, log),
		Exporter:  exporter.New(sampler, metrics.CollectTimeout(cfg), log),
	})
}

func serve(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	srv := rest.NewServer(newHandler(ctx, cfg, log), cfg.Address)

	ln, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		log.Error("http server bind failed", "address", cfg.Address, "error", err)
		return fmt.Errorf("listen on %s: %w", cfg.Address, err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting http server", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http server shutdown error", "error", err)
		}

	case err, ok := <-errCh:
		if ok {
			log.Error("http server error", "error", err)
			return err
		}
	}

	log.Info("server stopped")
	return nil
}
