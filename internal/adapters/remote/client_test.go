package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hotel_booking/internal/adapters/remote"
	"hotel_booking/internal/domain"
)

func TestHotelRepo_GetHotels_MigratesLegacyPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hotels.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"count":1,"pages":1,"hotels":[{"id":"h1","name":"Sol","location":"Cali","rooms":[{"id":"r1","type":"Doble","price":90000}]}]}`)
	}))
	defer ts.Close()

	repo := remote.NewHotelRepo(remote.New(ts.URL, 100, 2))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := repo.GetHotels(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Count != 1 || !got.Hotels[0].IsActive || got.Hotels[0].Rooms[0].PricePerNight != 90000 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestHotelRepo_404IsAbsent(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	repo := remote.NewHotelRepo(remote.New(ts.URL, 100, 2))
	ctx := context.Background()

	h, err := repo.GetHotelByID(ctx, "missing")
	if err != nil || h != nil {
		t.Fatalf("GetHotelByID: h=%v err=%v", h, err)
	}
	name := "x"
	u, err := repo.UpdateHotel(ctx, "missing", domain.HotelPatch{Name: &name})
	if err != nil || u != nil {
		t.Fatalf("UpdateHotel: u=%v err=%v", u, err)
	}
	ok, err := repo.DeleteHotel(ctx, "missing")
	if err != nil || ok {
		t.Fatalf("DeleteHotel: ok=%v err=%v", ok, err)
	}
	resp, err := remote.NewReservationRepo(remote.New(ts.URL, 100, 2)).CancelReservation(ctx, "missing")
	if err != nil || resp.Success {
		t.Fatalf("CancelReservation: %+v err=%v", resp, err)
	}
}

func TestClient_NoRetryOnServerError(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	repo := remote.NewHotelRepo(remote.New(ts.URL, 100, 2))
	_, err := repo.GetHotels(context.Background())

	var se *remote.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected StatusError 503, got %v", err)
	}
	if err.Error() != "remote: http 503" {
		t.Fatalf("message = %q", err.Error())
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected exactly one call, got %d", n)
	}
}

func TestReservationRepo_RequestsAndBodies(t *testing.T) {
	type call struct{ method, uri string }
	var (
		mu    sync.Mutex
		calls []call
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, call{r.Method, r.URL.RequestURI()})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/reservations":
			var in domain.Reservation
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				t.Errorf("decode body: %v", err)
			}
			_ = json.NewEncoder(w).Encode(domain.ReservationResponse{Success: true, Message: "ok", Reservation: &in})
		case r.Method == http.MethodGet && r.URL.Path == "/reservations":
			_ = json.NewEncoder(w).Encode([]domain.Reservation{{ID: "RES-1"}})
		case r.Method == http.MethodPost && r.URL.Path == "/reservations/RES-1/cancel":
			_ = json.NewEncoder(w).Encode(domain.ReservationResponse{Success: true, Reservation: &domain.Reservation{ID: "RES-1", Status: domain.StatusCancelled}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	repo := remote.NewReservationRepo(remote.New(ts.URL, 100, 2))
	ctx := context.Background()

	created, err := repo.CreateReservation(ctx, domain.Reservation{ID: "RES-1", HotelID: "h1"})
	if err != nil || !created.Success || created.Reservation.HotelID != "h1" {
		t.Fatalf("create: %+v err=%v", created, err)
	}
	list, err := repo.GetReservationsByEmail(ctx, "a+b@example.com")
	if err != nil || len(list) != 1 {
		t.Fatalf("by email: %+v err=%v", list, err)
	}
	marked, err := repo.MarkReservationCancelled(ctx, "RES-1")
	if err != nil || marked.Reservation.Status != domain.StatusCancelled {
		t.Fatalf("mark cancelled: %+v err=%v", marked, err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 3 || calls[1].uri != "/reservations?email=a%2Bb%40example.com" {
		t.Fatalf("calls = %+v", calls)
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := remote.NewHotelRepo(remote.New(ts.URL, 100, 2)).GetHotelByID(ctx, "h1")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
