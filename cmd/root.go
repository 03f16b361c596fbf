package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dataset-collector/config"
	"dataset-collector/sources/httpx"
	"dataset-collector/storage"
	"dataset-collector/utils"
)

var rootCmd = &cobra.Command{
	Use:           "dataset-collector",
	Short:         "dataset-collector builds the holiday, restaurant review and weather datasets.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExecuteContext runs the selected subcommand and exits non-zero on failure.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is the shared setup of every subcommand.
type env struct {
	cfg    *config.Config
	logger *utils.Logger
	cache  storage.ResponseCache
	http   *httpx.Client
}

// newEnv loads the config and opens the response cache. A cache that cannot
// be opened is replaced by a no-op one.
func newEnv(ctx context.Context) *env {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.LogLevel)

	cache, err := storage.OpenCache(ctx, storage.CacheOptions{
		Backend:       cfg.CacheBackend,
		Path:          cfg.CachePath,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
	})
	if err != nil {
		logger.Warn("Response cache unavailable, continuing without it: %v", err)
		cache = storage.NoopCache{}
	}

	client := httpx.New(httpx.Options{
		Timeout:     cfg.HTTPTimeout(),
		MaxRetries:  cfg.MaxRetries,
		BaseBackoff: cfg.RetryBackoff(),
		CacheTTL:    cfg.CacheTTL(),
	}, cache, logger)

	return &env{cfg: cfg, logger: logger, cache: cache, http: client}
}

func (e *env) Close() {
	if err := e.cache.Close(); err != nil {
		e.logger.Warn("Closing response cache: %v", err)
	}
}
