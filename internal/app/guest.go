package app

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/clock"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/ids"
	"hotel_booking/internal/storage"
)

const day = 24 * time.Hour

// GuestService is the public booking flow. It talks to the repositories
// directly, not through the admin Store.
type GuestService struct {
	hotels       domain.HotelRepository
	reservations domain.ReservationRepository
	session      *storage.Adapter
	clk          clock.Clock
}

func NewGuestService(h domain.HotelRepository, r domain.ReservationRepository, session *storage.Adapter, clk clock.Clock) *GuestService {
	return &GuestService{hotels: h, reservations: r, session: session, clk: clk}
}

type SearchInput struct {
	City         string     `json:"city"`
	CheckInDate  *time.Time `json:"checkInDate"`
	CheckOutDate *time.Time `json:"checkOutDate,omitempty"`
}

func (g *GuestService) ActiveHotels(ctx context.Context) ([]domain.Hotel, error) {
	resp, err := g.hotels.GetHotels(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Hotel{}
	for _, h := range resp.Hotels {
		if h.IsActive {
			out = append(out, h)
		}
	}
	return out, nil
}

// Search filters active hotels whose location contains the city
// (case-insensitive) and remembers the criteria for the booking step.
func (g *GuestService) Search(ctx context.Context, in SearchInput) ([]domain.Hotel, error) {
	if strings.TrimSpace(in.City) == "" {
		return nil, domain.Invalid("city", "city es obligatorio")
	}
	if in.CheckInDate == nil || in.CheckInDate.IsZero() {
		return nil, domain.Invalid("checkInDate", "checkInDate es obligatorio")
	}
	crit := domain.SearchCriteria{
		City:         strings.ToLower(strings.TrimSpace(in.City)),
		CheckInDate:  *in.CheckInDate,
		CheckOutDate: in.CheckOutDate,
	}
	active, err := g.ActiveHotels(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Hotel{}
	for _, h := range active {
		if strings.Contains(strings.ToLower(h.Location), crit.City) {
			out = append(out, h)
		}
	}
	if err := g.session.Write(ctx, storage.KeySearchCriteria, crit); err != nil {
		return nil, err
	}
	return out, nil
}

// HotelDetail returns an active hotel with only its active rooms.
func (g *GuestService) HotelDetail(ctx context.Context, id string) (domain.Hotel, error) {
	h, err := g.hotels.GetHotelByID(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if h == nil || !h.IsActive {
		return domain.Hotel{}, fmt.Errorf("hotel %q: %w", id, domain.ErrNotFound)
	}
	rooms := []domain.Room{}
	for _, r := range h.Rooms {
		if r.IsActive {
			rooms = append(rooms, r)
		}
	}
	h.Rooms = rooms
	return *h, nil
}

// Book creates a pending reservation for the room. Overlapping stays are
// not checked.
func (g *GuestService) Book(ctx context.Context, hotelID, roomID string, form GuestForm) (domain.Reservation, error) {
	if err := ValidateGuestForm(form); err != nil {
		return domain.Reservation{}, err
	}
	h, err := g.hotels.GetHotelByID(ctx, hotelID)
	if err != nil {
		return domain.Reservation{}, err
	}
	if h == nil {
		return domain.Reservation{}, fmt.Errorf("hotel %q: %w", hotelID, domain.ErrNotFound)
	}
	var room *domain.Room
	for i := range h.Rooms {
		if h.Rooms[i].ID == roomID {
			room = &h.Rooms[i]
			break
		}
	}
	if room == nil {
		return domain.Reservation{}, fmt.Errorf("room %q: %w", roomID, domain.ErrNotFound)
	}

	crit, err := g.criteria(ctx, *h)
	if err != nil {
		return domain.Reservation{}, err
	}
	checkOut := StayEnd(crit)
	now := g.clk.Now()
	res := domain.Reservation{
		ID: ids.New("RES-", now, func(id string) bool {
			r, err := g.reservations.GetReservation(ctx, id)
			return err == nil && r != nil
		}),
		HotelID:        hotelID,
		RoomID:         roomID,
		GuestData:      form.guestData(),
		SearchCriteria: crit,
		CheckInDate:    crit.CheckInDate,
		CheckOutDate:   checkOut,
		TotalPrice:     TotalPrice(room.PricePerNight, crit.CheckInDate, checkOut),
		CreatedAt:      now,
		Status:         domain.StatusPending,
	}

	resp, err := g.reservations.CreateReservation(ctx, res)
	if err != nil {
		return domain.Reservation{}, err
	}
	if !resp.Success {
		return domain.Reservation{}, fmt.Errorf("create reservation: %s", resp.Message)
	}
	if resp.Reservation != nil {
		res = *resp.Reservation
	}
	if err := g.session.Write(ctx, storage.KeyLastReservation, res); err != nil {
		log.Warn().Err(err).Str("reservation", res.ID).Msg("could not remember last reservation")
	}
	log.Info().Str("reservation", res.ID).Str("hotel", hotelID).Str("room", roomID).Msg("reservation created")
	return res, nil
}

// criteria returns the stored search or a default for the hotel's city
// starting now.
func (g *GuestService) criteria(ctx context.Context, h domain.Hotel) (domain.SearchCriteria, error) {
	var crit domain.SearchCriteria
	ok, err := g.session.Read(ctx, storage.KeySearchCriteria, &crit)
	if err != nil {
		return crit, err
	}
	if ok && !crit.CheckInDate.IsZero() {
		return crit, nil
	}
	return domain.SearchCriteria{City: h.Location, CheckInDate: g.clk.Now()}, nil
}

func (g *GuestService) LastReservation(ctx context.Context) (*domain.Reservation, error) {
	var r domain.Reservation
	ok, err := g.session.Read(ctx, storage.KeyLastReservation, &r)
	if err != nil || !ok {
		return nil, err
	}
	return &r, nil
}

// Confirmation looks the reservation up in the session first, then in the
// repository.
func (g *GuestService) Confirmation(ctx context.Context, id string) (domain.Reservation, error) {
	last, err := g.LastReservation(ctx)
	if err != nil {
		return domain.Reservation{}, err
	}
	if last != nil && last.ID == id {
		return *last, nil
	}
	r, err := g.reservations.GetReservation(ctx, id)
	if err != nil {
		return domain.Reservation{}, err
	}
	if r == nil {
		return domain.Reservation{}, fmt.Errorf("reservation %q: %w", id, domain.ErrNotFound)
	}
	return *r, nil
}

// StayEnd is the requested check-out or one day after check-in.
func StayEnd(c domain.SearchCriteria) time.Time {
	if c.CheckOutDate != nil && !c.CheckOutDate.IsZero() {
		return *c.CheckOutDate
	}
	return c.CheckInDate.Add(day)
}

// TotalPrice charges whole nights, at least one.
func TotalPrice(pricePerNight float64, checkIn, checkOut time.Time) float64 {
	nights := math.Ceil(checkOut.Sub(checkIn).Hours() / 24)
	return pricePerNight * math.Max(nights, 1)
}
