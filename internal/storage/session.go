package storage

import (
	"context"

	"hotel_booking/internal/domain"
)

type sessionKey struct{}

// WithSessionID scopes session reads and writes made with ctx to one client.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// SessionStore prefixes every key with the session id carried by ctx
// ("<sid>:searchCriteria"). Calls without a session id use the bare key.
type SessionStore struct{ kv domain.KeyValueStore }

func NewSessionStore(kv domain.KeyValueStore) *SessionStore { return &SessionStore{kv: kv} }

func (s *SessionStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.kv.Get(ctx, scoped(ctx, key))
}

func (s *SessionStore) Set(ctx context.Context, key string, value []byte) error {
	return s.kv.Set(ctx, scoped(ctx, key), value)
}

func (s *SessionStore) Del(ctx context.Context, key string) error {
	return s.kv.Del(ctx, scoped(ctx, key))
}

func scoped(ctx context.Context, key string) string {
	if id := SessionID(ctx); id != "" {
		return id + ":" + key
	}
	return key
}
