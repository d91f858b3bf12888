package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "pricewatcher/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Catalogue configuration
	BaseURL      string
	CatalogRoots []string
	MaxPages     int

	// Snapshot configuration
	SnapshotFile string

	// Notification configuration
	DiscordWebhook string
	MaxChunkLength int
	RatePause      time.Duration

	// Fetcher configuration
	RequestTimeout   time.Duration
	FetchConcurrency int

	// Memcache configuration (optional fetch-block cache)
	MemcacheAddr   string
	FetchBlockTime time.Duration

	// Redis configuration (optional diff stream publisher)
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	maxPages, _ := strconv.Atoi(getEnv("MAX_PAGES", "50"))
	maxChunk, _ := strconv.Atoi(getEnv("MAX_CHUNK_LENGTH", "2000"))
	ratePauseMs, _ := strconv.Atoi(getEnv("RATE_PAUSE_MS", "300"))
	timeoutSec, _ := strconv.Atoi(getEnv("REQUEST_TIMEOUT_SECONDS", "15"))
	concurrency, _ := strconv.Atoi(getEnv("FETCH_CONCURRENCY", "4"))
	blockSec, _ := strconv.Atoi(getEnv("FETCH_BLOCK_SECONDS", "300"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAXLEN", "500"))

	return Config{
		BaseURL:              getEnv("BASE_URL", "https://rsvpcigars.com"),
		CatalogRoots:         splitList(getEnv("CATALOG_ROOTS", "/en/cubans/,/en/non-cubans/")),
		MaxPages:             maxPages,
		SnapshotFile:         getEnv("SNAPSHOT_FILE", "previous_products.json"),
		DiscordWebhook:       getEnv("DISCORD_WEBHOOK", ""),
		MaxChunkLength:       maxChunk,
		RatePause:            time.Duration(ratePauseMs) * time.Millisecond,
		RequestTimeout:       time.Duration(timeoutSec) * time.Second,
		FetchConcurrency:     concurrency,
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", ""),
		FetchBlockTime:       time.Duration(blockSec) * time.Second,
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "pricediffs"),
		RedisStreamCount:     streamCount,
		RedisStreamMaxLength: streamMaxLen,
		Environment:          getEnv("PRICEWATCH_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values the monitor cannot run with
func (c *Config) Validate() error {
	base, err := url.Parse(c.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return apperrors.NewConfiguration("BASE_URL must be an absolute URL", err)
	}
	if len(c.CatalogRoots) == 0 {
		return apperrors.NewConfiguration("CATALOG_ROOTS must list at least one catalogue root", nil)
	}
	if c.SnapshotFile == "" {
		return apperrors.NewConfiguration("SNAPSHOT_FILE must not be empty", nil)
	}
	if c.MaxPages <= 0 {
		return apperrors.NewConfiguration("MAX_PAGES must be positive", nil)
	}
	if c.MaxChunkLength <= 0 {
		return apperrors.NewConfiguration("MAX_CHUNK_LENGTH must be positive", nil)
	}
	if c.FetchConcurrency <= 0 {
		return apperrors.NewConfiguration("FETCH_CONCURRENCY must be positive", nil)
	}
	if c.RequestTimeout <= 0 {
		return apperrors.NewConfiguration("REQUEST_TIMEOUT_SECONDS must be positive", nil)
	}
	return nil
}

// RootURLs resolves the configured catalogue roots against the base URL.
// Roots may be given as absolute URLs or as paths.
func (c *Config) RootURLs() []string {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return c.CatalogRoots
	}

	roots := make([]string, 0, len(c.CatalogRoots))
	for _, root := range c.CatalogRoots {
		ref, err := url.Parse(root)
		if err != nil {
			continue
		}
		roots = append(roots, base.ResolveReference(ref).String())
	}
	return roots
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitList splits a comma-separated value, dropping empty entries
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
