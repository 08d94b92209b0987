package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/pendant"
	"github.com/aretw0/pendant/internal/presentation/tui"
	httpAdapter "github.com/aretw0/pendant/pkg/adapters/http"
	"github.com/aretw0/pendant/pkg/adapters/sim"
	"github.com/aretw0/pendant/pkg/observability"
	"github.com/aretw0/pendant/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the bench HTTP server",
		Long: `Serves the behaviours of a simulated coprocessor over HTTP in wall-clock time.
Prometheus metrics are on /metrics and, when metrics.addr is set, on a dedicated listener.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}
			simOpts, err := simOptions(cmd, logger)
			if err != nil {
				return err
			}
			port, _ := cmd.Flags().GetString("port")

			store, locker, closeStore := openStore(cfg)
			defer func() {
				if err := closeStore(); err != nil {
					logger.Warn("failed to close report store", "err", err)
				}
			}()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			metrics := observability.NewMetrics(reg)
			metricsHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

			opts := append(deviceOptions(cfg, logger, ports.SystemClock{}, store, locker), pendant.WithMetrics(metrics))
			dev, err := pendant.New(sim.New(simOpts...), opts...)
			if err != nil {
				return err
			}

			servers := []*http.Server{{
				Addr: ":" + port,
				Handler: httpAdapter.NewHandler(dev,
					httpAdapter.WithMetricsHandler(metricsHandler),
					httpAdapter.WithVersion(pendant.Version),
					httpAdapter.WithLogger(logger),
				),
			}}
			if cfg.Metrics.Addr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", metricsHandler)
				servers = append(servers, &http.Server{Addr: cfg.Metrics.Addr, Handler: mux})
			}

			tui.NewPrinter(cmd.OutOrStdout()).PrintBanner()

			// Channel to listen for errors coming from the listeners.
			serverErrors := make(chan error, len(servers))
			for _, srv := range servers {
				go func(srv *http.Server) {
					logger.Info("listening", "addr", srv.Addr, "device", dev.ID())
					serverErrors <- srv.ListenAndServe()
				}(srv)
			}

			// Channel to listen for interrupt or terminate signals.
			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(shutdown)

			select {
			case err := <-serverErrors:
				return fmt.Errorf("server error: %w", err)

			case sig := <-shutdown:
				logger.Info("shutting down", "signal", sig.String())

				// Give outstanding requests a deadline for completion.
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				for _, srv := range servers {
					if err := srv.Shutdown(ctx); err != nil {
						logger.Warn("graceful shutdown did not complete", "addr", srv.Addr, "timeout", shutdownTimeout, "err", err)
						if err := srv.Close(); err != nil {
							logger.Error("failed to kill server", "addr", srv.Addr, "err", err)
						}
					}
				}
				logger.Info("server stopped gracefully")
				return nil
			}
		},
	}

	addSimFlags(cmd)
	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	return cmd
}
