package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sscweb/internal/config"
	"sscweb/internal/fetchers"
	"sscweb/internal/logger"
	"sscweb/internal/metrics"
	"sscweb/internal/mocks"
	"sscweb/internal/session"
	"sscweb/internal/storage"
)

// app is the shared state built once per invocation
type app struct {
	cfg        *config.Config
	log        *logger.Logger
	fetcher    *fetchers.SSCFetcher
	session    *session.Session
	mock       *httptest.Server
	metricsSrv *http.Server
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	logger.Configure(cfg.LogLevel, cfg.LogFormat)
	a := &app{cfg: cfg, log: logger.Component("cli")}

	baseURL := cfg.BaseURL
	if cfg.MockupMode {
		srv, err := mocks.NewServer()
		if err != nil {
			return nil, fmt.Errorf("failed to start mock service: %w", err)
		}
		a.mock = srv
		baseURL = srv.URL
		a.log.Info("Mockup mode enabled", logger.Fields{"base_url": baseURL})
	}

	a.fetcher = fetchers.NewSSCFetcher(fetchers.Options{
		BaseURL:   baseURL,
		UserAgent: cfg.FullUserAgent(),
		Timeout:   cfg.Timeout,
	}, logger.Component("fetcher"))
	a.session = session.New(a.fetcher, logger.Component("session"))

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		a.metricsSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := a.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.Error("Metrics server failed", err)
			}
		}()
	}

	return a, nil
}

// newPlotSink opens the configured output for downloaded plots
func (a *app) newPlotSink(ctx context.Context) (storage.PlotSink, error) {
	return storage.NewPlotSink(ctx, a.cfg)
}

func (a *app) Close() {
	if a.metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = a.metricsSrv.Shutdown(ctx)
	}
	if a.mock != nil {
		a.mock.Close()
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
