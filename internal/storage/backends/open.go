// Package backends opens the key/value store selected by configuration.
package backends

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/shared"
	"hotel_booking/internal/storage/memory"
	mysqlrepo "hotel_booking/internal/storage/mysql"
	"hotel_booking/internal/storage/sqlite"
)

type CloseFunc func() error

func noop() error { return nil }

// Open returns the persistent store named by cfg.StorageDriver.
func Open(ctx context.Context, cfg shared.Config) (domain.KeyValueStore, CloseFunc, error) {
	switch cfg.StorageDriver {
	case "memory":
		return memory.New(), noop, nil
	case "sqlite":
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("sql.Open: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("db.Ping: %w", err)
		}
		log.Info().Msg("database connection ok")
		return mysqlrepo.New(db), db.Close, nil
	case "redis":
		return openRedis(ctx, cfg, cfg.RedisPrefix, 0)
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// OpenSession returns the per-visitor store. Redis entries expire after
// cfg.SessionTTL; anything else is process memory.
func OpenSession(ctx context.Context, cfg shared.Config) (domain.KeyValueStore, CloseFunc, error) {
	switch cfg.SessionDriver {
	case "memory", "":
		return memory.New(), noop, nil
	case "redis":
		return openRedis(ctx, cfg, cfg.RedisPrefix+"session:", cfg.SessionTTL)
	}
	return nil, nil, fmt.Errorf("unknown session driver %q", cfg.SessionDriver)
}

func openRedis(ctx context.Context, cfg shared.Config, prefix string, ttl time.Duration) (domain.KeyValueStore, CloseFunc, error) {
	r := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, prefix, ttl)
	if err := r.Ping(ctx); err != nil {
		_ = r.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}
	return r, r.Close, nil
}
