// Package auth is the single-password admin login. The authenticated flag is
// persisted under admin_authenticated in the caller's session, so one client
// logging in never authenticates another.
package auth

import (
	"context"
	"crypto/subtle"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/storage"
)

type Service struct {
	a        *storage.Adapter
	password string
}

// New takes the session-scoped adapter. An empty password disables login.
func New(a *storage.Adapter, password string) *Service {
	return &Service{a: a, password: password}
}

// Login compares password with the configured one; the comparison is plain
// text. A mismatch is (false, nil).
func (s *Service) Login(ctx context.Context, password string) (bool, error) {
	if s.password == "" || subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		log.Warn().Str("session", storage.SessionID(ctx)).Msg("admin login rejected")
		return false, nil
	}
	if err := s.a.Write(ctx, storage.KeyAdminAuth, true); err != nil {
		return false, err
	}
	log.Info().Str("session", storage.SessionID(ctx)).Msg("admin logged in")
	return true, nil
}

func (s *Service) Logout(ctx context.Context) error {
	return s.a.Remove(ctx, storage.KeyAdminAuth)
}

// IsAuthenticated reports the flag of the session carried by ctx. Both the
// boolean and the legacy "true" string count.
func (s *Service) IsAuthenticated(ctx context.Context) (bool, error) {
	var flag any
	ok, err := s.a.Read(ctx, storage.KeyAdminAuth, &flag)
	if err != nil || !ok {
		return false, err
	}
	return flag == true || flag == "true", nil
}
