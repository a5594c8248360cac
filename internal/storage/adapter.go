// Package storage marshals JSON blobs in and out of a key/value store under
// fixed keys. It performs no schema validation and no locking: every write
// replaces the whole blob.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

type Adapter struct {
	kv      domain.KeyValueStore
	backend string
}

// NewAdapter wraps kv; backend labels log lines and metrics.
func NewAdapter(kv domain.KeyValueStore, backend string) *Adapter {
	return &Adapter{kv: kv, backend: backend}
}

// Read decodes the blob under key into dst. A missing key or a blob that is
// not valid JSON both report false with a nil error; dst is unspecified then.
// Only backend failures are returned as errors.
func (a *Adapter) Read(ctx context.Context, key string, dst any) (bool, error) {
	b, ok, err := a.ReadRaw(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		a.corrupt(key, err)
		return false, nil
	}
	return true, nil
}

func (a *Adapter) ReadRaw(ctx context.Context, key string) ([]byte, bool, error) {
	b, ok, err := a.kv.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("storage: read %q: %w", key, err)
	}
	if !ok {
		observability.ObserveStorage(a.backend, "miss")
		return nil, false, nil
	}
	observability.ObserveStorage(a.backend, "hit")
	return b, true, nil
}

func (a *Adapter) Write(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode %q: %w", key, err)
	}
	if err := a.kv.Set(ctx, key, b); err != nil {
		return fmt.Errorf("storage: write %q: %w", key, err)
	}
	observability.ObserveStorage(a.backend, "set")
	return nil
}

func (a *Adapter) Remove(ctx context.Context, key string) error {
	if err := a.kv.Del(ctx, key); err != nil {
		return fmt.Errorf("storage: delete %q: %w", key, err)
	}
	observability.ObserveStorage(a.backend, "del")
	return nil
}

func (a *Adapter) corrupt(key string, err error) {
	observability.ObserveStorage(a.backend, "corrupt")
	log.Warn().Err(err).Str("backend", a.backend).Str("key", key).Msg("stored blob is unreadable; treating as empty")
}
