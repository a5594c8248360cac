package redisad

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a KeyValueStore over Redis. Keys are namespaced with prefix; a
// non-zero ttl makes every write expire (session scope).
type Store struct {
	c      *redis.Client
	prefix string
	ttl    time.Duration
}

func New(addr, pass string, db int, prefix string, ttl time.Duration) *Store {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), prefix, ttl)
}

func NewWithClient(c *redis.Client, prefix string, ttl time.Duration) *Store {
	return &Store{c: c, prefix: prefix, ttl: ttl}
}

func (r *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := r.c.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (r *Store) Set(ctx context.Context, key string, value []byte) error {
	return r.c.Set(ctx, r.prefix+key, value, r.ttl).Err()
}

func (r *Store) Del(ctx context.Context, key string) error {
	return r.c.Del(ctx, r.prefix+key).Err()
}

func (r *Store) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *Store) Close() error { return r.c.Close() }
