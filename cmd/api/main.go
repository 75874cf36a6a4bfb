package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bookshop/internal/catalog"
	"bookshop/internal/config"
	"bookshop/internal/httpx"
	"bookshop/internal/platform/catalogapi"
	"bookshop/internal/platform/logger"
	"bookshop/internal/user"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnvFiles()
	cfg := config.Load()
	log := logger.New(cfg.AppName, cfg)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if cfg.CatalogSource == config.CatalogSourcePostgres || cfg.UserStore == config.UserStorePostgres {
		p, err := openDB(ctx, cfg.DBDSN)
		if err != nil {
			return err
		}
		defer p.Close()
		pool = p
		log.Info("database connection OK")
	}

	var rdb *redis.Client
	if cfg.UserStore == config.UserStoreRedis {
		rdb = user.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("cannot ping redis at %s: %w", cfg.RedisAddr, err)
		}
	}

	source, err := catalogSource(cfg, pool)
	if err != nil {
		return err
	}
	entries, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	store, err := catalog.NewStore(entries)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}
	log.WithFields(logrus.Fields{"source": cfg.CatalogSource, "books": store.Len()}).Info("catalog loaded")

	users, err := userRepository(cfg, pool, rdb)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	rateLimiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rateLimiter.Close()

	handler := newRouter(routerDeps{
		cfg:         cfg,
		log:         log,
		store:       store,
		users:       users,
		upstream:    catalogapi.NewClient(cfg.UpstreamBaseURL, cfg.AppName, cfg.UpstreamTimeout, cfg.UpstreamRPS),
		registry:    reg,
		rateLimiter: rateLimiter,
		ready:       readiness(pool, rdb),
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.RetrievalDelay + cfg.UpstreamTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func catalogSource(cfg *config.Config, pool *pgxpool.Pool) (catalog.Source, error) {
	switch cfg.CatalogSource {
	case config.CatalogSourceDefault, "":
		return catalog.DefaultSource{}, nil
	case config.CatalogSourceFile:
		if cfg.CatalogFile == "" {
			return nil, errors.New("CATALOG_FILE is required when CATALOG_SOURCE=file")
		}
		return catalog.FileSource{Path: cfg.CatalogFile}, nil
	case config.CatalogSourcePostgres:
		return catalog.NewPostgresRepo(pool, cfg.DBTimeout), nil
	}
	return nil, fmt.Errorf("unknown CATALOG_SOURCE %q", cfg.CatalogSource)
}

func userRepository(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client) (user.Repository, error) {
	switch cfg.UserStore {
	case config.UserStoreMemory, "":
		return user.NewMemoryRepo(), nil
	case config.UserStorePostgres:
		return user.NewPostgresRepo(pool, cfg.DBTimeout), nil
	case config.UserStoreRedis:
		return user.NewRedisRepo(rdb), nil
	}
	return nil, fmt.Errorf("unknown USER_STORE %q", cfg.UserStore)
}

// readiness pings whichever backing services are configured.
func readiness(pool *pgxpool.Pool, rdb *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if pool != nil {
			if err := pool.Ping(ctx); err != nil {
				return fmt.Errorf("db not ready: %w", err)
			}
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis not ready: %w", err)
			}
		}
		return nil
	}
}

func openDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("cannot ping database (%s): %w", redactDSN(dsn), err)
	}
	return pool, nil
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
