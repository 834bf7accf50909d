package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MSubhan6/open-moniker-sub000/catalog"
	"github.com/MSubhan6/open-moniker-sub000/internal/cache"
	"github.com/MSubhan6/open-moniker-sub000/internal/cli/config"
	"github.com/MSubhan6/open-moniker-sub000/internal/loader"
	"github.com/MSubhan6/open-moniker-sub000/internal/web"
	"github.com/MSubhan6/open-moniker-sub000/resolver"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the moniker resolution HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.Log.Level)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			res, err := buildResolver(cfg, logger)
			if err != nil {
				return err
			}

			reload := func(ctx context.Context) (int, error) {
				nodes, err := loader.LoadCatalog(cfg.Catalog.Path)
				if err != nil {
					return 0, err
				}
				return res.Reload(ctx, nodes)
			}

			server := web.NewServer(web.Config{
				Addr:         cfg.Server.Addr,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				IdleTimeout:  cfg.Server.IdleTimeout,
			}, res, reload, logger)

			errCh := make(chan error, 1)
			go func() { errCh <- server.Start() }()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("signal received", zap.String("signal", sig.String()))
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(ctx)
			}
		},
	}
}

// buildResolver loads the catalog and domains and assembles the resolution
// pipeline with the configured cache backend.
func buildResolver(cfg *config.Config, logger *zap.Logger) (*resolver.Resolver, error) {
	nodes, err := loader.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	var domains catalog.DomainMap
	if cfg.Catalog.DomainsPath != "" {
		domains, err = loader.LoadDomains(cfg.Catalog.DomainsPath)
		if err != nil {
			return nil, err
		}
	}

	registry := catalog.NewRegistry()
	if _, err := registry.AtomicReplace(nodes); err != nil {
		return nil, err
	}
	logger.Info("catalog loaded",
		zap.Int("nodes", len(nodes)),
		zap.Int("domains", len(domains)))

	cacheCfg := cache.DefaultConfig()
	cacheCfg.DefaultTTL = cfg.Cache.TTL
	cacheCfg.MaxEntries = cfg.Cache.MaxEntries

	var backend cache.Cache
	if cfg.Cache.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:   cfg.Cache.RedisAddr,
			Config: cacheCfg,
		})
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		backend = redisCache
	} else {
		backend = cache.NewMemoryCacheWithConfig(cacheCfg)
	}

	opts := []resolver.Option{
		resolver.WithCache(backend, cfg.Cache.TTL, cfg.Cache.StaleGrace),
		resolver.WithLogger(logger),
	}
	if domains != nil {
		opts = append(opts, resolver.WithDomains(domains))
	}
	return resolver.New(registry, opts...), nil
}

func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.Set(level); err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
