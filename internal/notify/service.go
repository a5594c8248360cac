// Package notify keeps the list of transient toasts shown to the admin.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/clock"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/reactive"
)

// Default display time per toast type.
const (
	DefaultSuccess = 3000 * time.Millisecond
	DefaultError   = 5000 * time.Millisecond
	DefaultInfo    = 3000 * time.Millisecond
	DefaultWarning = 4000 * time.Millisecond
)

type Service struct {
	clk    clock.Clock
	toasts *reactive.Signal[[]domain.Toast]

	mu     sync.Mutex
	seq    int
	timers map[string]clock.Timer
	closed bool
}

var _ domain.Notifier = (*Service)(nil)

func New(clk clock.Clock) *Service {
	s := &Service{
		clk:    clk,
		toasts: reactive.New([]domain.Toast{}),
		timers: make(map[string]clock.Timer),
	}
	s.toasts.Subscribe(func(ts []domain.Toast) { observability.SetToasts(len(ts)) })
	return s
}

func (s *Service) Success(message string, d ...time.Duration) {
	s.Show(message, domain.ToastSuccess, pick(d, DefaultSuccess))
}

func (s *Service) Error(message string, d ...time.Duration) {
	s.Show(message, domain.ToastError, pick(d, DefaultError))
}

func (s *Service) Info(message string, d ...time.Duration) {
	s.Show(message, domain.ToastInfo, pick(d, DefaultInfo))
}

func (s *Service) Warning(message string, d ...time.Duration) {
	s.Show(message, domain.ToastWarning, pick(d, DefaultWarning))
}

// Show appends a toast and, unless d is zero, schedules its removal.
// It returns the new toast id, or "" once the service is closed.
func (s *Service) Show(message string, typ domain.ToastType, d time.Duration) string {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ""
	}
	s.seq++
	t := domain.Toast{ID: fmt.Sprintf("toast-%d", s.seq), Message: message, Type: typ, Duration: d}
	s.mu.Unlock()

	log.Debug().Str("toast", t.ID).Str("type", string(typ)).Msg(message)
	s.toasts.Update(func(cur []domain.Toast) []domain.Toast {
		next := make([]domain.Toast, 0, len(cur)+1)
		return append(append(next, cur...), t)
	})

	// The timer is armed only once the toast is in the list, so an expiry
	// can never run before the append it is meant to undo.
	if d > 0 {
		s.mu.Lock()
		if !s.closed {
			s.timers[t.ID] = s.clk.AfterFunc(d, func() { s.Remove(t.ID) })
		}
		s.mu.Unlock()
	}
	return t.ID
}

// Remove drops the toast with id; unknown ids are ignored.
func (s *Service) Remove(id string) {
	s.mu.Lock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()

	s.toasts.Update(func(cur []domain.Toast) []domain.Toast {
		next := make([]domain.Toast, 0, len(cur))
		for _, t := range cur {
			if t.ID != id {
				next = append(next, t)
			}
		}
		return next
	})
}

func (s *Service) Clear() {
	s.stopTimers()
	s.toasts.Set([]domain.Toast{})
}

func (s *Service) List() []domain.Toast { return s.toasts.Get() }

// Toasts is the observable list.
func (s *Service) Toasts() reactive.Readable[[]domain.Toast] { return s.toasts.ReadOnly() }

// Close stops every pending expiry; the current list is kept and later
// Show calls are ignored.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.stopTimers()
}

func (s *Service) stopTimers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func pick(d []time.Duration, def time.Duration) time.Duration {
	if len(d) > 0 {
		return d[0]
	}
	return def
}
