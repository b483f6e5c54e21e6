package bootstrap

import (
	"context"
	"fmt"

	"github.com/Domenick1991/eventra/config"
	"github.com/Domenick1991/eventra/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OpenKV connects the configured storage backend. The returned func releases it.
func OpenKV(ctx context.Context, cfg *config.Config) (store.KV, func(), error) {
	switch cfg.Storage.Backend {
	case "memory":
		return store.NewMemoryKV(), func() {}, nil

	case "redis":
		kv := store.NewRedisKV(cfg.Redis)
		if err := kv.Ping(ctx); err != nil {
			kv.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return kv, func() { kv.Close() }, nil

	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		kv := store.NewPGKV(pool)
		if err := kv.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("prepare postgres schema: %w", err)
		}
		return kv, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
