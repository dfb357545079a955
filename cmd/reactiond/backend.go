package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"reaction-counter/config"
	"reaction-counter/logger"
	"reaction-counter/reactions/domain"
	"reaction-counter/reactions/infra"
)

// backend é o store escolhido por STORE_BACKEND e o que for preciso para
// migrá-lo e fechá-lo.
type backend struct {
	store domain.Store
	// sql é nil fora dos backends sqlite/postgres.
	sql   *infra.SQLStore
	close func() error
}

var errNotSQL = errors.New("migrate only applies to sqlite and postgres backends")

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		log.Warn("using in-memory store; counts are lost on restart")
		return &backend{store: infra.NewMemoryStore(), close: func() error { return nil }}, nil

	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:        cfg.Store.Redis.Addr,
			Password:    cfg.Store.Secret,
			DB:          cfg.Store.Redis.DB,
			DialTimeout: 5 * time.Second,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		store := infra.NewRedisStore(rdb, infra.WithKeyPrefix(cfg.Store.Redis.Prefix))
		return &backend{store: store, close: rdb.Close}, nil

	case config.BackendSQLite, config.BackendPostgres:
		dsn := cfg.Store.SQLite.Path
		if cfg.Store.Backend == config.BackendPostgres {
			dsn = cfg.PostgresDSN()
		}
		db, err := infra.OpenSQL(cfg.Store.Backend, dsn)
		if err != nil {
			return nil, err
		}
		store := infra.NewSQLStore(db)
		return &backend{store: store, sql: store, close: store.Close}, nil
	}
	return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Store.Backend)
}

func (b *backend) migrate(ctx context.Context) error {
	if b.sql == nil {
		return errNotSQL
	}
	return b.sql.Migrate(ctx)
}
