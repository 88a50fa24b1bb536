package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"sitecheck/internal/api"
	"sitecheck/internal/api/handler/v1handler"
	"sitecheck/internal/config"
	"sitecheck/internal/scanner"
	"sitecheck/pkg/analysis/openai"
	"sitecheck/pkg/logger"
	"sitecheck/pkg/metrics"
	"sitecheck/pkg/pagefetch/httpfetch"
	"sitecheck/pkg/storage"
)

func setupScanner(ctx context.Context, cfg *config.Config, strg storage.Storage) (scanner.Scanner, func(ctx context.Context)) {
	mp, err := metrics.NewMeterProvider(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
	}
	otel.SetMeterProvider(mp)

	tp := metrics.NewTracerProvider()
	otel.SetTracerProvider(tp)

	fetcher := httpfetch.New(nil, httpfetch.Options{
		Timeout:      cfg.Fetcher.Timeout,
		UserAgent:    cfg.Fetcher.UserAgent,
		MaxBodyBytes: cfg.Fetcher.MaxBodyBytes,
		MaxRedirects: cfg.Fetcher.MaxRedirects,
	})
	if cfg.Analysis.APIKey == "" {
		logger.Warn(ctx, "analysis api key is empty, scans will fail")
	}
	analyzer := openai.New(nil, openai.Options{
		BaseURL: cfg.Analysis.BaseURL,
		APIKey:  cfg.Analysis.APIKey,
		Model:   cfg.Analysis.Model,
		Timeout: cfg.Analysis.Timeout,
	})

	sc, err := scanner.New(scanner.Deps{
		Storage:        strg,
		Fetcher:        fetcher,
		Analyzer:       analyzer,
		MeterProvider:  mp,
		TracerProvider: tp,
	}, scanner.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create scanner", zap.Error(err))
	}

	return sc, func(ctx context.Context) {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "could not shutdown tracer provider", zap.Error(err))
		}
		if err := mp.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "could not shutdown meter provider", zap.Error(err))
		}
	}
}

func setupServer(ctx context.Context, cfg *config.Config, sc scanner.Scanner) func(ctx context.Context) {
	server, err := api.NewServer(api.Deps{
		Deps: v1handler.Deps{Scanner: sc},
	}, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			sc, stopScanner := setupScanner(ctx, cfg, strg)
			stopWebserver := setupServer(ctx, cfg, sc)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			stopScanner(shutdownCtx)
		},
	}

	return cmd
}
