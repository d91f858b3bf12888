package main

import (
	"context"
	"time"

	"pricewatcher/config"
	"pricewatcher/internal/crawler"
	"pricewatcher/logger"
	"pricewatcher/services/cache"
	"pricewatcher/services/notifier"
	"pricewatcher/services/publisher"
	"pricewatcher/services/snapshot"
	"pricewatcher/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("base_url", cfg.BaseURL).
		Strs("roots", cfg.RootURLs()).
		Msg("Starting catalogue price monitor")

	ctx := context.Background()

	// Optional fetch-block cache
	var cacheSvc cache.CacheService
	if cfg.MemcacheAddr != "" {
		cacheSvc = cache.NewMemcacheService(cfg.MemcacheAddr)
		logger.Info("Using Memcache fetch-block cache at %s", cfg.MemcacheAddr)
	}

	// Optional diff stream publisher
	var pub publisher.Publisher
	if cfg.RedisAddr != "" {
		redisPub := publisher.NewRedisPublisher(
			ctx,
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamCount,
			cfg.RedisStreamMaxLength,
		)
		defer redisPub.Close()
		pub = redisPub
		logger.Info("Publishing diffs to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	fetcher := crawler.NewFetcher(cfg.RequestTimeout, cacheSvc, cfg.FetchBlockTime)
	discoverer := crawler.NewDiscoverer(fetcher, cfg.BaseURL, cfg.RootURLs(), cfg.MaxPages)
	catalogue := crawler.NewCatalogueCrawler(fetcher, discoverer, cfg.FetchConcurrency)
	store := snapshot.NewFileStore(cfg.SnapshotFile)
	discord := notifier.NewDiscordNotifier(cfg.DiscordWebhook, cfg.MaxChunkLength, cfg.RatePause, cfg.RequestTimeout)

	w := worker.NewWorker(catalogue, store, discord, pub)

	if err := w.Run(); err != nil {
		log.Fatal().Err(err).Msg("Monitor run failed")
	}

	log.Info().
		Str("completed_at", time.Now().Format("2006-01-02 15:04:05")).
		Msg("Scan complete")
}
