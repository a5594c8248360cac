package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/clock"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/ids"
	"hotel_booking/internal/reactive"
	"hotel_booking/internal/storage"
)

const DefaultDelay = 500 * time.Millisecond

// Store is the admin console's state: observable hotels, rooms, reservations
// and a loading flag, mirrored to storage after every change.
//
// Create/update/delete go through a simulated latency, then validation, then
// a commit that persists the whole catalog. Commits are serialized;
// subscribers run inside the commit and must not call back into the Store.
type Store struct {
	a     *storage.Adapter
	n     domain.Notifier
	clk   clock.Clock
	delay time.Duration
	shape domain.HotelShape

	hotels       *reactive.Signal[[]domain.Hotel]
	rooms        *reactive.Signal[[]domain.AdminRoom]
	reservations *reactive.Signal[[]domain.Reservation]
	loading      *reactive.Signal[bool]

	commit sync.Mutex

	pendingMu sync.Mutex
	pending   int

	life   context.Context
	cancel context.CancelFunc
}

type Option func(*Store)

func WithClock(c clock.Clock) Option        { return func(s *Store) { s.clk = c } }
func WithDelay(d time.Duration) Option      { return func(s *Store) { s.delay = d } }
func WithShape(sh domain.HotelShape) Option { return func(s *Store) { s.shape = sh } }

func NewStore(a *storage.Adapter, n domain.Notifier, opts ...Option) *Store {
	s := &Store{
		a:            a,
		n:            n,
		clk:          clock.NewSystem(),
		delay:        DefaultDelay,
		shape:        domain.ShapeCatalog,
		hotels:       reactive.New([]domain.Hotel{}),
		rooms:        reactive.New([]domain.AdminRoom{}),
		reservations: reactive.New([]domain.Reservation{}),
		loading:      reactive.New(false),
	}
	for _, o := range opts {
		o(s)
	}
	s.life, s.cancel = context.WithCancel(context.Background())
	return s
}

// Load replaces the in-memory state with what storage holds.
func (s *Store) Load(ctx context.Context) error {
	cat, err := s.a.LoadCatalog(ctx)
	if err != nil {
		return err
	}
	var res []domain.Reservation
	if _, err := s.a.Read(ctx, storage.KeyReservations, &res); err != nil {
		return err
	}
	if res == nil {
		res = []domain.Reservation{}
	}
	s.commit.Lock()
	defer s.commit.Unlock()
	s.hotels.Set(cat.Hotels)
	s.rooms.Set(RoomsFromHotels(cat.Hotels))
	s.reservations.Set(res)
	log.Debug().Int("hotels", len(cat.Hotels)).Int("reservations", len(res)).Msg("admin store loaded")
	return nil
}

// RefreshReservations re-reads reservations written by the guest flow.
func (s *Store) RefreshReservations(ctx context.Context) error {
	var res []domain.Reservation
	if _, err := s.a.Read(ctx, storage.KeyReservations, &res); err != nil {
		return err
	}
	if res == nil {
		res = []domain.Reservation{}
	}
	s.commit.Lock()
	s.reservations.Set(res)
	s.commit.Unlock()
	return nil
}

// Close cancels pending mutations; they return context.Canceled and leave
// the state untouched.
func (s *Store) Close() { s.cancel() }

func (s *Store) Hotels() reactive.Readable[[]domain.Hotel]    { return s.hotels.ReadOnly() }
func (s *Store) Rooms() reactive.Readable[[]domain.AdminRoom] { return s.rooms.ReadOnly() }
func (s *Store) Reservations() reactive.Readable[[]domain.Reservation] {
	return s.reservations.ReadOnly()
}
func (s *Store) Loading() reactive.Readable[bool] { return s.loading.ReadOnly() }

/********** hotels **********/

func (s *Store) AddHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	var created domain.Hotel
	err := s.mutate(ctx, "hotel.create", "Error al crear hotel", func() (string, error) {
		if err := ValidateNewHotel(h, s.shape); err != nil {
			return "", err
		}
		hotels := s.hotels.Get()
		now := s.clk.Now()
		h.ID = ids.New("hotel-", now, func(id string) bool { return hotelIndex(hotels, id) >= 0 })
		h.CreatedAt = now
		h.IsActive = true
		h.Rooms = nil
		next := append(append(make([]domain.Hotel, 0, len(hotels)+1), hotels...), h)
		if err := s.persist(ctx, next, s.rooms.Get()); err != nil {
			return "", err
		}
		created = h
		created.Rooms = []domain.Room{}
		return "✓ Hotel creado exitosamente", nil
	})
	return created, err
}

func (s *Store) UpdateHotel(ctx context.Context, id string, p domain.HotelPatch) (domain.Hotel, error) {
	var updated domain.Hotel
	err := s.mutate(ctx, "hotel.update", "Error al actualizar hotel", func() (string, error) {
		if err := ValidateHotelPatch(p); err != nil {
			return "", err
		}
		hotels := s.hotels.Get()
		i := hotelIndex(hotels, id)
		if i < 0 {
			return "", fmt.Errorf("hotel %q: %w", id, domain.ErrNotFound)
		}
		next := append([]domain.Hotel(nil), hotels...)
		next[i] = p.Apply(next[i])
		if err := s.persist(ctx, next, s.rooms.Get()); err != nil {
			return "", err
		}
		updated = s.hotels.Get()[i]
		return "✓ Hotel actualizado exitosamente", nil
	})
	return updated, err
}

// DeleteHotel removes the hotel. Its admin rooms stay in memory; the
// persisted catalog no longer embeds them.
func (s *Store) DeleteHotel(ctx context.Context, id string) error {
	return s.mutate(ctx, "hotel.delete", "Error al eliminar hotel", func() (string, error) {
		hotels := s.hotels.Get()
		i := hotelIndex(hotels, id)
		if i < 0 {
			return "", fmt.Errorf("hotel %q: %w", id, domain.ErrNotFound)
		}
		next := append(append(make([]domain.Hotel, 0, len(hotels)-1), hotels[:i]...), hotels[i+1:]...)
		if err := s.persist(ctx, next, s.rooms.Get()); err != nil {
			return "", err
		}
		return "✓ Hotel eliminado exitosamente", nil
	})
}

// ToggleHotel flips isActive immediately, without the simulated latency.
// Unknown ids are ignored.
func (s *Store) ToggleHotel(ctx context.Context, id string) error {
	s.commit.Lock()
	defer s.commit.Unlock()
	hotels := s.hotels.Get()
	i := hotelIndex(hotels, id)
	if i < 0 {
		return nil
	}
	next := append([]domain.Hotel(nil), hotels...)
	next[i].IsActive = !next[i].IsActive
	err := s.persist(ctx, next, s.rooms.Get())
	observability.ObserveMutation("hotel.toggle", err)
	return err
}

func (s *Store) GetHotel(id string) (domain.Hotel, bool) {
	hotels := s.hotels.Get()
	if i := hotelIndex(hotels, id); i >= 0 {
		return hotels[i], true
	}
	return domain.Hotel{}, false
}

/********** rooms **********/

func (s *Store) AddRoom(ctx context.Context, r domain.AdminRoom) (domain.AdminRoom, error) {
	var created domain.AdminRoom
	err := s.mutate(ctx, "room.create", "Error al crear habitación", func() (string, error) {
		if err := ValidateNewRoom(r); err != nil {
			return "", err
		}
		rooms := s.rooms.Get()
		now := s.clk.Now()
		r.ID = ids.New("room-", now, func(id string) bool { return roomIndex(rooms, id) >= 0 })
		r.CreatedAt = now
		next := append(append(make([]domain.AdminRoom, 0, len(rooms)+1), rooms...), r)
		if err := s.persist(ctx, s.hotels.Get(), next); err != nil {
			return "", err
		}
		created = r
		return "✓ Habitación creada exitosamente", nil
	})
	return created, err
}

func (s *Store) UpdateRoom(ctx context.Context, id string, p domain.RoomPatch) (domain.AdminRoom, error) {
	var updated domain.AdminRoom
	err := s.mutate(ctx, "room.update", "Error al actualizar habitación", func() (string, error) {
		if err := ValidateRoomPatch(p); err != nil {
			return "", err
		}
		rooms := s.rooms.Get()
		i := roomIndex(rooms, id)
		if i < 0 {
			return "", fmt.Errorf("room %q: %w", id, domain.ErrNotFound)
		}
		next := append([]domain.AdminRoom(nil), rooms...)
		next[i] = p.Apply(next[i])
		if err := s.persist(ctx, s.hotels.Get(), next); err != nil {
			return "", err
		}
		updated = next[i]
		return "✓ Habitación actualizada exitosamente", nil
	})
	return updated, err
}

func (s *Store) DeleteRoom(ctx context.Context, id string) error {
	return s.mutate(ctx, "room.delete", "Error al eliminar habitación", func() (string, error) {
		rooms := s.rooms.Get()
		i := roomIndex(rooms, id)
		if i < 0 {
			return "", fmt.Errorf("room %q: %w", id, domain.ErrNotFound)
		}
		next := append(append(make([]domain.AdminRoom, 0, len(rooms)-1), rooms[:i]...), rooms[i+1:]...)
		if err := s.persist(ctx, s.hotels.Get(), next); err != nil {
			return "", err
		}
		return "✓ Habitación eliminada exitosamente", nil
	})
}

func (s *Store) ToggleRoom(ctx context.Context, id string) error {
	s.commit.Lock()
	defer s.commit.Unlock()
	rooms := s.rooms.Get()
	i := roomIndex(rooms, id)
	if i < 0 {
		return nil
	}
	next := append([]domain.AdminRoom(nil), rooms...)
	next[i].IsActive = !next[i].IsActive
	err := s.persist(ctx, s.hotels.Get(), next)
	observability.ObserveMutation("room.toggle", err)
	return err
}

func (s *Store) GetRoomsByHotel(hotelID string) []domain.AdminRoom {
	out := []domain.AdminRoom{}
	for _, r := range s.rooms.Get() {
		if r.HotelID == hotelID {
			out = append(out, r)
		}
	}
	return out
}

/********** reservations **********/

func (s *Store) GetReservationsByHotel(hotelID string) []domain.Reservation {
	out := []domain.Reservation{}
	for _, r := range s.reservations.Get() {
		if r.HotelID == hotelID {
			out = append(out, r)
		}
	}
	return out
}

/********** internals **********/

// mutate runs the latency/validate/commit protocol around fn. fn runs under
// the commit lock and returns the success message.
func (s *Store) mutate(ctx context.Context, op, fallback string, fn func() (string, error)) error {
	s.begin()

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	unlink := context.AfterFunc(s.life, stop)
	defer unlink()

	err := clock.Sleep(ctx, s.clk, s.delay)
	var msg string
	if err == nil {
		s.commit.Lock()
		if err = s.life.Err(); err == nil {
			msg, err = fn()
		}
		s.commit.Unlock()
	}
	observability.ObserveMutation(op, err)

	if err != nil {
		s.end()
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Debug().Str("op", op).Err(err).Msg("admin mutation abandoned")
			return err
		}
		log.Warn().Str("op", op).Err(err).Msg("admin mutation failed")
		s.n.Error(userMessage(err, fallback))
		return err
	}
	s.n.Success(msg)
	s.end()
	return nil
}

// persist writes the synced catalog and then publishes the new state.
func (s *Store) persist(ctx context.Context, hotels []domain.Hotel, rooms []domain.AdminRoom) error {
	synced := SyncRooms(hotels, rooms)
	if err := s.a.SaveCatalog(ctx, synced); err != nil {
		return err
	}
	s.hotels.Set(synced)
	s.rooms.Set(rooms)
	return nil
}

func (s *Store) begin() {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	s.pending++
	if s.pending == 1 {
		s.loading.Set(true)
	}
}

func (s *Store) end() {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	s.pending--
	if s.pending == 0 {
		s.loading.Set(false)
	}
}

func userMessage(err error, fallback string) string {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, domain.ErrNotFound):
		return "El registro no existe"
	default:
		return fallback
	}
}

func hotelIndex(hs []domain.Hotel, id string) int {
	for i := range hs {
		if hs[i].ID == id {
			return i
		}
	}
	return -1
}

func roomIndex(rs []domain.AdminRoom, id string) int {
	for i := range rs {
		if rs[i].ID == id {
			return i
		}
	}
	return -1
}
