package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"payment-kiosk/pkg/api"
	"payment-kiosk/pkg/clock"
	"payment-kiosk/pkg/config"
	"payment-kiosk/pkg/kiosk"
	"payment-kiosk/pkg/logging"
	promMetrics "payment-kiosk/pkg/metrics/prometheus"
	"payment-kiosk/pkg/payment"
	"payment-kiosk/pkg/scan"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logConfig := logging.DefaultConfig()
	logConfig.Level = cfg.LogLevel
	logConfig.Format = cfg.LogFormat
	logConfig.Development = cfg.LogDev
	logger, err := logging.NewLogger(logConfig)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("kiosk stopped with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(cfg config.Config, logger *logging.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	collector := promMetrics.NewPrometheusCollector(cfg.MetricsNamespace)
	if err := collector.Register(registry); err != nil {
		return err
	}

	var ids payment.IDProvider = payment.UUIDProvider{}
	if cfg.IDSource == config.IDSourceSequence {
		ids = payment.NewSequenceProvider("txn-")
	}

	controller := kiosk.New(kiosk.Config{
		Clock: clock.Real(),
		Payment: payment.SimulatorConfig{
			Delay: cfg.PaymentDelay,
			IDs:   ids,
		},
		Scan: scan.Config{
			TickInterval:    cfg.ScanTick,
			Step:            cfg.ScanStep,
			CompletionPause: cfg.ScanPause,
		},
		Logger:  logger.Named("controller").Logger,
		Metrics: collector,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Address = cfg.Address
	serverConfig.Gatherer = registry
	serverConfig.Logger = logger.Named("api").Logger
	server := api.NewServer(controller, serverConfig)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(server.ListenAndServe)
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		return multierr.Combine(
			server.Shutdown(shutdownCtx),
			controller.Close(),
		)
	})

	logger.Info("kiosk started",
		zap.String("address", cfg.Address),
		zap.Duration("payment_delay", cfg.PaymentDelay),
		zap.String("id_source", cfg.IDSource),
	)
	return g.Wait()
}
