package domain

import (
	"context"
	"time"
)

// KeyValueStore is the raw byte store standing in for browser storage.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// HotelRepository has a local (storage-backed) and a remote (HTTP) implementation.
// Lookups of unknown ids return nil and no error.
type HotelRepository interface {
	GetHotels(ctx context.Context) (HotelResponse, error)
	GetHotelByID(ctx context.Context, id string) (*Hotel, error)
	CreateHotel(ctx context.Context, h Hotel) (Hotel, error)
	UpdateHotel(ctx context.Context, id string, p HotelPatch) (*Hotel, error)
	DeleteHotel(ctx context.Context, id string) (bool, error)
}

type ReservationRepository interface {
	CreateReservation(ctx context.Context, r Reservation) (ReservationResponse, error)
	GetReservation(ctx context.Context, id string) (*Reservation, error)
	GetReservationsByEmail(ctx context.Context, email string) ([]Reservation, error)
	// CancelReservation removes the record entirely.
	CancelReservation(ctx context.Context, id string) (ReservationResponse, error)
	// MarkReservationCancelled keeps the record and sets its status to cancelled.
	MarkReservationCancelled(ctx context.Context, id string) (ReservationResponse, error)
}

// Notifier receives user-facing messages; an optional duration overrides the default.
type Notifier interface {
	Success(message string, duration ...time.Duration)
	Error(message string, duration ...time.Duration)
	Info(message string, duration ...time.Duration)
	Warning(message string, duration ...time.Duration)
}
