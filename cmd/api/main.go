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

	"libraryapi/internal/book"
	"libraryapi/internal/config"
	"libraryapi/internal/httpx"
	"libraryapi/internal/platform/googlebooks"
	"libraryapi/internal/platform/metacache"
	"libraryapi/internal/store/memstore"
	"libraryapi/internal/store/pgstore"
)

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		repos repositories
		ready readiness = alwaysReady
	)
	switch cfg.StoreDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory store with demo data")
		repos = memoryRepositories(memstore.NewWithDataset(memstore.DemoDataset()))
	default:
		pool, err := pgstore.Open(ctx, cfg.DatabaseDSN, logger)
		if err != nil {
			return err
		}
		defer pool.Close()
		repos = postgresRepositories(pool, cfg)
		ready = pool.Ping
	}

	var resolver book.Resolver = googlebooks.NewClient(googlebooks.Config{
		BaseURL:    cfg.MetadataBaseURL,
		APIKey:     cfg.MetadataAPIKey,
		UserAgent:  "libraryapi/1.0",
		RPS:        cfg.MetadataRPS,
		MaxRetries: cfg.MetadataMaxRetries,
		Timeout:    cfg.MetadataTimeout,
	})
	if cfg.RedisURL != "" {
		client, err := metacache.Connect(ctx, cfg.RedisURL, logger)
		if err != nil {
			return err
		}
		defer client.Close()
		resolver = metacache.NewResolver(client, resolver, cfg.MetadataCacheTTL, logger)
	}

	limiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)
	router := newRouter(newHandlers(repos, resolver, cfg), cfg, logger, limiter, ready)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logStartup(logger, cfg)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
