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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"finitefield.org/vurel-web/internal/catalog"
	"finitefield.org/vurel-web/internal/config"
	"finitefield.org/vurel-web/internal/format"
	"finitefield.org/vurel-web/internal/observability"
	"finitefield.org/vurel-web/internal/remote"
	"finitefield.org/vurel-web/internal/settings"
	"finitefield.org/vurel-web/internal/storefront"
)

const apiTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	baseLogger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("web")

	client := remote.NewClient(cfg.API.BaseURL, remote.WithTimeout(cfg.API.Timeout))
	deps := storefront.Deps{
		Settings:      settings.NewClient(client),
		Catalog:       catalog.NewClient(client),
		Prices:        format.NewPrices(cfg.Storefront.Currency, cfg.Storefront.Locale),
		Placeholder:   cfg.Storefront.PlaceholderImage,
		HeroInterval:  cfg.Storefront.HeroInterval,
		CountdownTick: cfg.Storefront.CountdownTick,
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(logger, deps, cfg.Dev),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		// Zero by default: /events/home streams for the life of the connection.
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(
		zap.String("addr", server.Addr),
		zap.String("api_base_url", client.BaseURL()),
		zap.Bool("dev", cfg.Dev),
	)
	go func() {
		serverLogger.Info("storefront web listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newRouter wires middleware and routes. Compression and the request timeout
// apply to the JSON routes only so the event stream can flush and stay open.
func newRouter(logger *zap.Logger, deps storefront.Deps, dev bool) http.Handler {
	h := &handlers{deps: deps}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// RealIP trusts X-Forwarded-For; deploy behind a proxy that overwrites it.
	r.Use(middleware.RealIP)
	r.Use(observability.InjectLoggerMiddleware(logger))
	r.Use(observability.TraceMiddleware)
	r.Use(observability.RequestLoggerMiddleware)
	r.Use(observability.RecoveryMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5))
		r.Use(middleware.Timeout(apiTimeout))
		r.Get("/api/home", h.home)
		r.Get("/api/shop", h.shop)
		r.Get("/api/collections", h.collections)
		r.Get("/api/collections/{id}", h.collection)
		r.Get("/api/products/{id}", h.product)
	})

	r.Get("/events/home", h.homeEvents)

	if dev {
		r.Mount("/debug", middleware.Profiler())
	}
	return r
}
