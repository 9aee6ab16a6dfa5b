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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"passenger-stats/config"
	"passenger-stats/console"
	"passenger-stats/metrics"
	"passenger-stats/models"
	"passenger-stats/services"
	"passenger-stats/storage"
	"passenger-stats/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("=== Passenger statistics starting ===")
	logger.Info("Config — source: %s | concurrency: %d | retries: %d",
		cfg.DataSource, cfg.MaxConcurrency, cfg.MaxRetries)

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		logger.WithError(err).Error("Failed to register metrics")
		os.Exit(1)
	}
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	records, err := loadRecords(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to load passenger data")
		os.Exit(1)
	}
	if len(records) == 0 {
		logger.Error("No records loaded. Exiting.")
		os.Exit(1)
	}
	logger.Info("Loaded %d records", len(records))

	writers, err := openWriters(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to open result writers")
		os.Exit(1)
	}
	defer func() {
		for _, w := range writers {
			if err := w.Close(); err != nil {
				logger.WithError(err).Warn("Closing result writer failed")
			}
		}
	}()

	analyzer := services.NewAnalyzer(records, logger)

	if len(cfg.Periods) > 0 {
		runBatch(analyzer, cfg, writers, logger)
		return
	}

	session := console.NewSession(os.Stdin, os.Stdout, analyzer, logger, writers...)
	if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("Session ended with an error")
	}
}

func loadRecords(ctx context.Context, cfg *config.Config, logger *utils.Logger) ([]*models.Record, error) {
	retry := &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   time.Duration(cfg.RetryBaseMs) * time.Millisecond,
		Logger:      logger,
	}

	var src storage.Source
	switch cfg.DataSource {
	case config.SourceHTTP:
		src = storage.NewHTTPSource(cfg.DataURL, time.Duration(cfg.HTTPTimeoutMs)*time.Millisecond, retry)
	case config.SourcePostgres:
		pg, err := storage.NewPostgresSource(ctx, cfg.DSN(), cfg.PostgresTable, cfg.PostgresColumn, retry)
		if err != nil {
			return nil, err
		}
		src = pg
	default:
		src = storage.NewFileSource(cfg.DataPath)
	}
	defer src.Close()

	text, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("Read %d bytes from %s source", len(text), cfg.DataSource)

	return services.NewLoader(logger).Load(text)
}

func openWriters(cfg *config.Config) ([]storage.ResultWriter, error) {
	var writers []storage.ResultWriter
	if cfg.CSVOutputPath != "" {
		w, err := storage.NewCSVWriter(cfg.CSVOutputPath)
		if err != nil {
			return nil, err
		}
		writers = append(writers, w)
	}
	if cfg.XLSXOutputPath != "" {
		w, err := storage.NewXLSXWriter(cfg.XLSXOutputPath)
		if err != nil {
			for _, open := range writers {
				_ = open.Close()
			}
			return nil, err
		}
		writers = append(writers, w)
	}
	return writers, nil
}

func runBatch(analyzer *services.Analyzer, cfg *config.Config, writers []storage.ResultWriter, logger *utils.Logger) {
	var periods []string
	for _, p := range cfg.Periods {
		if !console.ValidQuery(p) {
			logger.Warn("Skipping invalid period %q", p)
			continue
		}
		periods = append(periods, p)
	}

	results := analyzer.AnalyzeAll(periods, cfg.MaxConcurrency)
	for _, r := range results {
		fmt.Printf("\n%s", services.Format(r))
	}
	fmt.Println()

	for _, w := range writers {
		if err := w.WriteResults(results); err != nil {
			logger.WithError(err).Error("Result export failed")
		}
	}
}

func serveMetrics(addr string, logger *utils.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("Metrics listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("Metrics server stopped")
		}
	}()
	return srv
}
