// Package reactive provides observable values: the current value can be read
// synchronously and every change is pushed to subscribers.
package reactive

import "sync"

// Readable is the read-only view handed to consumers.
type Readable[T any] interface {
	Get() T
	Subscribe(fn func(T)) (unsubscribe func())
}

// Signal holds a value of T. Subscribers run synchronously, in subscription
// order, after the write that triggered them has been committed.
type Signal[T any] struct {
	mu   sync.RWMutex
	v    T
	next int
	subs map[int]func(T)
	ids  []int
}

func New[T any](v T) *Signal[T] {
	return &Signal[T]{v: v, subs: make(map[int]func(T))}
}

func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v
}

func (s *Signal[T]) Set(v T) {
	s.Update(func(T) T { return v })
}

// Update replaces the value with fn(current).
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.v = fn(s.v)
	v := s.v
	handlers := make([]func(T), 0, len(s.ids))
	for _, id := range s.ids {
		handlers = append(handlers, s.subs[id])
	}
	s.mu.Unlock()

	for _, h := range handlers {
		h(v)
	}
}

func (s *Signal[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := s.next
	s.subs[id] = fn
	s.ids = append(s.ids, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			for i, x := range s.ids {
				if x == id {
					s.ids = append(s.ids[:i], s.ids[i+1:]...)
					break
				}
			}
		})
	}
}

// ReadOnly hides Set and Update from callers.
func (s *Signal[T]) ReadOnly() Readable[T] { return readOnly[T]{s} }

type readOnly[T any] struct{ s *Signal[T] }

func (r readOnly[T]) Get() T                      { return r.s.Get() }
func (r readOnly[T]) Subscribe(fn func(T)) func() { return r.s.Subscribe(fn) }
