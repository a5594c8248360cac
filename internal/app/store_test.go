package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_booking/internal/app"
	"hotel_booking/internal/clock"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/storage"
	"hotel_booking/internal/storage/memory"
)

// ---- fakes ----

type recorder struct {
	mu       sync.Mutex
	success  []string
	failures []string
}

func (r *recorder) Success(m string, _ ...time.Duration) { r.add(&r.success, m) }
func (r *recorder) Error(m string, _ ...time.Duration)   { r.add(&r.failures, m) }
func (r *recorder) Info(string, ...time.Duration)        {}
func (r *recorder) Warning(string, ...time.Duration)     {}

func (r *recorder) add(dst *[]string, m string) {
	r.mu.Lock()
	*dst = append(*dst, m)
	r.mu.Unlock()
}

func (r *recorder) errs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.failures...)
}

func ptr[T any](v T) *T { return &v }

var t0 = time.UnixMilli(1717171717000).UTC()

type fixture struct {
	store *app.Store
	a     *storage.Adapter
	clk   *clock.Fake
	notes *recorder
}

func newFixture(t *testing.T, opts ...app.Option) fixture {
	t.Helper()
	clk := clock.NewFake(t0)
	a := storage.NewAdapter(memory.New(), "memory")
	notes := &recorder{}
	opts = append([]app.Option{app.WithClock(clk), app.WithDelay(0)}, opts...)
	s := app.NewStore(a, notes, opts...)
	t.Cleanup(s.Close)
	return fixture{store: s, a: a, clk: clk, notes: notes}
}

func seedTwoHotels(t *testing.T, f fixture) (domain.Hotel, domain.Hotel) {
	t.Helper()
	ctx := context.Background()
	h1, err := f.store.AddHotel(ctx, domain.Hotel{Name: "Hotel Paraíso", Location: "Madrid", Description: "Centro"})
	require.NoError(t, err)
	f.clk.Advance(time.Millisecond)
	h2, err := f.store.AddHotel(ctx, domain.Hotel{Name: "Hotel Mediterráneo", Location: "Barcelona", Description: "Playa"})
	require.NoError(t, err)
	return h1, h2
}

func waitPending(t *testing.T, f *clock.Fake, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for f.Pending() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d pending timers", n)
		}
		time.Sleep(time.Millisecond)
	}
}

// ---- hotels ----

func TestStore_AddHotel_ValidInputGrowsByOneAndIsActive(t *testing.T) {
	f := newFixture(t)
	h, err := f.store.AddHotel(context.Background(), domain.Hotel{Name: "Uno", Location: "Cali", Description: "x", IsActive: false})
	require.NoError(t, err)

	assert.Equal(t, "hotel-1717171717000", h.ID)
	assert.True(t, h.IsActive)
	assert.Equal(t, t0, h.CreatedAt)
	assert.Len(t, f.store.Hotels().Get(), 1)
	assert.Equal(t, []string{"✓ Hotel creado exitosamente"}, f.notes.success)

	cat, err := f.a.LoadCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, cat.Hotels, 1)
	assert.Equal(t, h.ID, cat.Hotels[0].ID)
}

func TestStore_AddHotel_InvalidInputRejected(t *testing.T) {
	cases := []struct {
		name  string
		shape domain.HotelShape
		in    domain.Hotel
		field string
	}{
		{"no name", domain.ShapeCatalog, domain.Hotel{Location: "Cali", Description: "d"}, "name"},
		{"blank location", domain.ShapeCatalog, domain.Hotel{Name: "n", Location: "  ", Description: "d"}, "location"},
		{"no description", domain.ShapeCatalog, domain.Hotel{Name: "n", Location: "l", Email: "e@x.co"}, "description"},
		{"contact shape needs email", domain.ShapeContact, domain.Hotel{Name: "n", Location: "l", Description: "d"}, "email"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, app.WithShape(tc.shape))
			_, err := f.store.AddHotel(context.Background(), tc.in)

			require.ErrorIs(t, err, domain.ErrValidation)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
			assert.Empty(t, f.store.Hotels().Get())
			assert.Len(t, f.notes.errs(), 1)
			assert.False(t, f.store.Loading().Get())
		})
	}
}

func TestStore_AddHotel_SameMillisecondGetsUniqueID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, err := f.store.AddHotel(ctx, domain.Hotel{Name: "a", Location: "l", Description: "d"})
	require.NoError(t, err)
	b, err := f.store.AddHotel(ctx, domain.Hotel{Name: "b", Location: "l", Description: "d"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestStore_UpdateHotel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	h1, _ := seedTwoHotels(t, f)

	got, err := f.store.UpdateHotel(ctx, h1.ID, domain.HotelPatch{Name: ptr("Paraíso Real")})
	require.NoError(t, err)
	assert.Equal(t, "Paraíso Real", got.Name)
	assert.Equal(t, "Madrid", got.Location)

	_, err = f.store.UpdateHotel(ctx, h1.ID, domain.HotelPatch{Name: ptr("   ")})
	require.ErrorIs(t, err, domain.ErrValidation)
	cur, _ := f.store.GetHotel(h1.ID)
	assert.Equal(t, "Paraíso Real", cur.Name)

	_, err = f.store.UpdateHotel(ctx, "hotel-missing", domain.HotelPatch{Name: ptr("x")})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, f.notes.errs(), "El registro no existe")
}

func TestStore_DeleteHotel_LeavesTheOther(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	h1, h2 := seedTwoHotels(t, f)

	require.NoError(t, f.store.DeleteHotel(ctx, h1.ID))

	hotels := f.store.Hotels().Get()
	require.Len(t, hotels, 1)
	assert.Equal(t, h2.ID, hotels[0].ID)
	_, ok := f.store.GetHotel(h1.ID)
	assert.False(t, ok)

	require.ErrorIs(t, f.store.DeleteHotel(ctx, h1.ID), domain.ErrNotFound)
}

func TestStore_ToggleHotel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	h1, h2 := seedTwoHotels(t, f)

	require.NoError(t, f.store.ToggleHotel(ctx, h1.ID))
	got, _ := f.store.GetHotel(h1.ID)
	assert.False(t, got.IsActive)
	assert.Equal(t, h1.ID, got.ID)
	assert.Equal(t, h1.Name, got.Name)
	assert.Equal(t, h1.Location, got.Location)
	other, _ := f.store.GetHotel(h2.ID)
	assert.True(t, other.IsActive)

	cat, _ := f.a.LoadCatalog(ctx)
	assert.False(t, cat.Hotels[0].IsActive)

	before := f.store.Hotels().Get()
	require.NoError(t, f.store.ToggleHotel(ctx, "nope"))
	assert.Equal(t, before, f.store.Hotels().Get())
}

// ---- rooms ----

func TestStore_AddRoom_ConcreteScenario(t *testing.T) {
	f := newFixture(t)
	before := len(f.store.Rooms().Get())

	r, err := f.store.AddRoom(context.Background(), domain.AdminRoom{
		HotelID: "hotel-1", RoomType: "Suite", BaseCost: 150, Tax: 19, Location: "Piso 5", IsActive: true,
	})
	require.NoError(t, err)

	rooms := f.store.Rooms().Get()
	assert.Len(t, rooms, before+1)
	assert.Equal(t, 150.0, r.BaseCost)
	assert.Equal(t, 150.0, rooms[len(rooms)-1].BaseCost)
	assert.Equal(t, []domain.AdminRoom{r}, f.store.GetRoomsByHotel("hotel-1"))
}

func TestStore_AddRoom_Validation(t *testing.T) {
	cases := map[string]domain.AdminRoom{
		"missing hotel": {RoomType: "Suite", BaseCost: 1, Location: "p"},
		"missing type":  {HotelID: "h", BaseCost: 1, Location: "p"},
		"missing place": {HotelID: "h", RoomType: "Suite", BaseCost: 1},
		"zero cost":     {HotelID: "h", RoomType: "Suite", Location: "p"},
		"negative tax":  {HotelID: "h", RoomType: "Suite", BaseCost: 1, Tax: -1, Location: "p"},
		"tax above 100": {HotelID: "h", RoomType: "Suite", BaseCost: 1, Tax: 100.5, Location: "p"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.store.AddRoom(context.Background(), in)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, f.store.Rooms().Get())
		})
	}
}

func TestStore_UpdateRoom_CostAndTaxRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r, err := f.store.AddRoom(ctx, domain.AdminRoom{HotelID: "h", RoomType: "Doble", BaseCost: 120, Tax: 21, Location: "Piso 3", IsActive: true})
	require.NoError(t, err)

	_, err = f.store.UpdateRoom(ctx, r.ID, domain.RoomPatch{BaseCost: ptr(-5.0)})
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.store.UpdateRoom(ctx, r.ID, domain.RoomPatch{BaseCost: ptr(0.0)})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 120.0, f.store.Rooms().Get()[0].BaseCost)

	_, err = f.store.UpdateRoom(ctx, r.ID, domain.RoomPatch{Tax: ptr(150.0)})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 21.0, f.store.Rooms().Get()[0].Tax)

	got, err := f.store.UpdateRoom(ctx, r.ID, domain.RoomPatch{Tax: ptr(50.0)})
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.Tax)
	assert.Equal(t, 50.0, f.store.Rooms().Get()[0].Tax)

	_, err = f.store.UpdateRoom(ctx, "room-x", domain.RoomPatch{Tax: ptr(1.0)})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_RoomsSyncIntoPersistedHotels(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	h1, h2 := seedTwoHotels(t, f)

	r, err := f.store.AddRoom(ctx, domain.AdminRoom{HotelID: h1.ID, RoomType: "Suite Deluxe", BaseCost: 250, Tax: 21, Location: "Piso 5", IsActive: true})
	require.NoError(t, err)

	cat, err := f.a.LoadCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, cat.Hotels[0].Rooms, 1)
	assert.Empty(t, cat.Hotels[1].Rooms)
	g := cat.Hotels[0].Rooms[0]
	assert.Equal(t, r.ID, g.ID)
	assert.Equal(t, "Suite Deluxe", g.Name)
	assert.Equal(t, 250.0, g.PricePerNight)
	assert.Equal(t, domain.DefaultRoomCapacity, g.Capacity)
	assert.Equal(t, domain.DefaultRoomAmenities(), g.Amenities)
	assert.Equal(t, float64(domain.DefaultRoomSize), g.Size)

	// move the room to the other hotel and change its price
	_, err = f.store.UpdateRoom(ctx, r.ID, domain.RoomPatch{HotelID: ptr(h2.ID), BaseCost: ptr(300.0)})
	require.NoError(t, err)
	cat, _ = f.a.LoadCatalog(ctx)
	assert.Empty(t, cat.Hotels[0].Rooms)
	require.Len(t, cat.Hotels[1].Rooms, 1)
	assert.Equal(t, 300.0, cat.Hotels[1].Rooms[0].PricePerNight)

	require.NoError(t, f.store.ToggleRoom(ctx, r.ID))
	cat, _ = f.a.LoadCatalog(ctx)
	assert.False(t, cat.Hotels[1].Rooms[0].IsActive)

	require.NoError(t, f.store.DeleteRoom(ctx, r.ID))
	cat, _ = f.a.LoadCatalog(ctx)
	assert.Empty(t, cat.Hotels[1].Rooms)
	assert.Empty(t, f.store.Rooms().Get())
}

func TestStore_ReloadKeepsRoomCreationTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	h1, _ := seedTwoHotels(t, f)
	f.clk.Advance(time.Hour)
	r, err := f.store.AddRoom(ctx, domain.AdminRoom{HotelID: h1.ID, RoomType: "Suite", BaseCost: 250, Location: "Piso 5", IsActive: true})
	require.NoError(t, err)
	require.True(t, r.CreatedAt.After(h1.CreatedAt))

	again := app.NewStore(f.a, f.notes, app.WithClock(f.clk), app.WithDelay(0))
	t.Cleanup(again.Close)
	require.NoError(t, again.Load(ctx))
	rooms := again.GetRoomsByHotel(h1.ID)
	require.Len(t, rooms, 1)
	assert.True(t, rooms[0].CreatedAt.Equal(r.CreatedAt))
}

func TestStore_LoadPreservesGuestOnlyFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.a.SaveCatalog(ctx, []domain.Hotel{{
		ID: "hotel-1", Name: "Casa", Location: "Cali", IsActive: true,
		Rooms: []domain.Room{{
			ID: "room-1", Type: domain.RoomFamily, Name: "Familiar", PricePerNight: 400,
			Capacity: 5, Available: 3, Amenities: []string{"Cocina"}, Size: 60, IsActive: true,
		}},
	}}))
	require.NoError(t, f.a.Write(ctx, storage.KeyReservations, []domain.Reservation{
		{ID: "RES-1", HotelID: "hotel-1"}, {ID: "RES-2", HotelID: "hotel-2"},
	}))
	require.NoError(t, f.store.Load(ctx))

	rooms := f.store.GetRoomsByHotel("hotel-1")
	require.Len(t, rooms, 1)
	assert.Equal(t, "Familiar", rooms[0].RoomType)
	assert.Equal(t, 400.0, rooms[0].BaseCost)
	assert.Len(t, f.store.GetReservationsByHotel("hotel-1"), 1)

	_, err := f.store.UpdateRoom(ctx, "room-1", domain.RoomPatch{BaseCost: ptr(450.0)})
	require.NoError(t, err)

	cat, _ := f.a.LoadCatalog(ctx)
	g := cat.Hotels[0].Rooms[0]
	assert.Equal(t, 450.0, g.PricePerNight)
	assert.Equal(t, 5, g.Capacity)
	assert.Equal(t, 3, g.Available)
	assert.Equal(t, []string{"Cocina"}, g.Amenities)
	assert.Equal(t, 60.0, g.Size)
	assert.Equal(t, domain.RoomFamily, g.Type)
}

func TestStore_RefreshReservations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	assert.Empty(t, f.store.Reservations().Get())

	require.NoError(t, f.a.Write(ctx, storage.KeyReservations, []domain.Reservation{{ID: "RES-1", HotelID: "h"}}))
	require.NoError(t, f.store.RefreshReservations(ctx))
	assert.Len(t, f.store.GetReservationsByHotel("h"), 1)
}

// ---- latency, loading and teardown ----

func TestStore_LoadingFlagAcrossDelay(t *testing.T) {
	f := newFixture(t, app.WithDelay(500*time.Millisecond))
	var seen []bool
	var mu sync.Mutex
	f.store.Loading().Subscribe(func(v bool) { mu.Lock(); seen = append(seen, v); mu.Unlock() })

	done := make(chan error, 1)
	go func() {
		_, err := f.store.AddHotel(context.Background(), domain.Hotel{Name: "n", Location: "l", Description: "d"})
		done <- err
	}()
	waitPending(t, f.clk, 1)
	assert.True(t, f.store.Loading().Get())
	assert.Empty(t, f.store.Hotels().Get())

	f.clk.Advance(499 * time.Millisecond)
	assert.Equal(t, 1, f.clk.Pending())
	f.clk.Advance(time.Millisecond)

	require.NoError(t, <-done)
	assert.False(t, f.store.Loading().Get())
	assert.Len(t, f.store.Hotels().Get(), 1)
	mu.Lock()
	assert.Equal(t, []bool{true, false}, seen)
	mu.Unlock()
}

func TestStore_CloseCancelsPendingMutation(t *testing.T) {
	f := newFixture(t, app.WithDelay(time.Second))

	done := make(chan error, 1)
	go func() {
		_, err := f.store.AddHotel(context.Background(), domain.Hotel{Name: "n", Location: "l", Description: "d"})
		done <- err
	}()
	waitPending(t, f.clk, 1)
	f.store.Close()

	require.ErrorIs(t, <-done, context.Canceled)
	assert.Empty(t, f.store.Hotels().Get())
	assert.False(t, f.store.Loading().Get())
	assert.Empty(t, f.notes.errs(), "teardown is not reported to the user")

	_, found, _ := memoryHotels(t, f)
	assert.False(t, found)
}

func TestStore_CallerContextCancels(t *testing.T) {
	f := newFixture(t, app.WithDelay(time.Second))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- f.store.DeleteHotel(ctx, "whatever") }()
	waitPending(t, f.clk, 1)
	cancel()

	require.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, 0, f.clk.Pending())
}

func memoryHotels(t *testing.T, f fixture) ([]byte, bool, error) {
	t.Helper()
	raw, ok, err := f.a.ReadRaw(context.Background(), storage.KeyHotels)
	return raw, ok, err
}
