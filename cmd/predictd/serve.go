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

	"github.com/aetherdrive/prediction-service/internal/application/usecase"
	"github.com/aetherdrive/prediction-service/internal/infrastructure/config"
	"github.com/aetherdrive/prediction-service/internal/presentation/rest"
	"github.com/aetherdrive/prediction-service/pkg/observability"
)

const (
	shutdownTimeout  = 15 * time.Second
	readinessTimeout = 2 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the admin listener",
		Long:  "Start POST /predict on HTTP_HOST:HTTP_PORT and health probes plus metrics on ADMIN_PORT. Configuration comes from the environment.",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := observability.InitLogger(observability.LogConfig{
		Output:  os.Stderr,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: config.ServiceName,
	})

	logger.Info("starting prediction-service",
		"version", Version,
		"http_address", cfg.HTTPAddress(),
		"admin_address", cfg.AdminAddress(),
		"environment", cfg.Environment,
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: config.ServiceName,
		Environment: cfg.Environment,
		Exporter:    cfg.TracesExporter,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: config.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	// Wire infrastructure adapters.
	sink, err := newEventSink(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create event publisher: %w", err)
	}
	if cfg.KafkaEnabled() {
		logger.Info("publishing prediction events", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	}

	// Wire use case and handlers.
	predict, err := newPredict(sink.publisher, usecase.Telemetry{
		Meter:  meterProvider.Meter(config.ServiceName),
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create predict use case: %w", err)
	}

	health := rest.NewHealthHandler(config.ServiceName, logger)
	if sink.ping != nil {
		health.AddCheck("kafka", func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
			defer cancel()
			return sink.ping(ctx)
		})
	}

	servers := []*http.Server{{
		Addr:              cfg.HTTPAddress(),
		Handler:           rest.NewRouter(rest.NewPredictHandler(predict, logger), logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}}
	if addr := cfg.AdminAddress(); addr != "" {
		servers = append(servers, &http.Server{
			Addr:              addr,
			Handler:           rest.NewAdminRouter(health, metricsHandler),
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	// Start servers.
	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			logger.Info("HTTP server starting", "address", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP server %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	// Graceful shutdown once a signal arrives or a server fails.
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down prediction-service")
		health.SetReady(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("HTTP server %s shutdown: %w", srv.Addr, err))
			}
		}
		return errors.Join(errs...)
	})

	health.SetReady(true)
	serveErr := g.Wait()

	// Flush what is left once no more requests arrive.
	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := sink.close(); err != nil {
		logger.Error("event publisher close error", "error", err)
	}
	if err := meterProvider.Shutdown(flushCtx); err != nil {
		logger.Error("meter provider shutdown error", "error", err)
	}
	if err := shutdownTracer(flushCtx); err != nil {
		logger.Error("tracer shutdown error", "error", err)
	}

	if serveErr != nil {
		logger.Error("server error", "error", serveErr)
		return serveErr
	}
	logger.Info("prediction-service stopped")
	return nil
}
