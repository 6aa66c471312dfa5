package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/bilgisen/contentfeed/internal/api"
	"github.com/bilgisen/contentfeed/internal/cache"
	"github.com/bilgisen/contentfeed/internal/config"
	"github.com/bilgisen/contentfeed/internal/feed"
	"github.com/bilgisen/contentfeed/internal/gallery"
	"github.com/bilgisen/contentfeed/internal/logger"
	"github.com/bilgisen/contentfeed/internal/media"
	"github.com/bilgisen/contentfeed/internal/metrics"
	"github.com/bilgisen/contentfeed/internal/pages"
	"github.com/bilgisen/contentfeed/internal/sources"
	"github.com/bilgisen/contentfeed/internal/storage"
	"github.com/bilgisen/contentfeed/internal/translation"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: cfg.LogFile,
		Pretty: cfg.LogPretty,
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().
		Str("env", cfg.Env).
		Str("store", cfg.StoreBackend).
		Str("cache", cfg.CacheBackend).
		Msg("Starting application...")

	ctx := context.Background()

	// Record store
	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize record store")
	}
	defer func() {
		log.Info().Msg("Closing record store...")
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing record store")
		}
	}()

	// Cache store
	cacheStore, closeCache, err := openCache(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache store")
	}
	defer closeCache()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	layer := cache.NewLayer(cacheStore, cache.Options{
		Version: cfg.CacheSchemaVersion,
		Tiers: cache.Tiers{
			Short:  cfg.CacheTTLShort,
			Medium: cfg.CacheTTLMedium,
			Long:   cfg.CacheTTLLong,
		},
		SingleFlight: cfg.CacheSingleFlight,
		Metrics:      m,
	})

	// Media URLs
	var objects media.ObjectURLs = media.NewPublicBase(cfg.MediaBaseURL)
	if cfg.R2Enabled() {
		presigner, err := media.NewR2Presigner(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 presigner")
		}
		objects = presigner
		log.Info().Str("bucket", cfg.R2Bucket).Msg("Serving uploads through presigned R2 URLs")
	}
	urls := media.NewResolver(objects)
	translations := translation.NewResolver(store, m)

	handlers := api.NewHandlers(
		feed.NewHome(store, translations, urls, layer, feed.HomeOptions{
			MediaLimit:        cfg.HomeMediaLimit,
			OrganizationLimit: cfg.HomeOrganizationLimit,
		}),
		gallery.NewPaginator(store, translations, urls, layer),
		pages.NewService(store, translations, layer),
		store,
		cacheStore,
	)
	app := api.NewApp(cfg, handlers, registry)

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Create a deadline for graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func openStore(ctx context.Context, cfg *config.Config) (sources.Store, error) {
	if cfg.StoreBackend == "file" {
		return storage.NewFileStore(cfg.DataDir)
	}
	pg, err := storage.OpenPostgres(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.DBAutoMigrate {
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			return nil, err
		}
	}
	return pg, nil
}

func openCache(cfg *config.Config) (cache.Store, func(), error) {
	if cfg.CacheBackend == "memory" {
		return cache.NewMemoryStore(cfg.CacheMemoryCapacity), func() {}, nil
	}
	redisStore, err := cache.NewRedisStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return redisStore, func() {
		logger.Info().Msg("Closing Redis client...")
		if err := redisStore.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing Redis client")
		}
	}, nil
}
