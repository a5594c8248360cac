package remote

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"hotel_booking/internal/domain"
)

var notFoundResponse = domain.ReservationResponse{Success: false, Message: "Reserva no encontrada"}

type ReservationRepo struct{ c *Client }

func NewReservationRepo(c *Client) *ReservationRepo { return &ReservationRepo{c: c} }

func (r *ReservationRepo) CreateReservation(ctx context.Context, res domain.Reservation) (domain.ReservationResponse, error) {
	var out domain.ReservationResponse
	if err := r.c.do(ctx, http.MethodPost, "reservations.create", "/reservations", res, &out); err != nil {
		return domain.ReservationResponse{}, err
	}
	return out, nil
}

func (r *ReservationRepo) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	var out domain.Reservation
	err := r.c.do(ctx, http.MethodGet, "reservations.get", "/reservations/"+url.PathEscape(id), nil, &out)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ReservationRepo) GetReservationsByEmail(ctx context.Context, email string) ([]domain.Reservation, error) {
	out := []domain.Reservation{}
	q := url.Values{"email": {email}}
	if err := r.c.do(ctx, http.MethodGet, "reservations.by_email", "/reservations?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CancelReservation asks the API to delete the reservation.
func (r *ReservationRepo) CancelReservation(ctx context.Context, id string) (domain.ReservationResponse, error) {
	return r.cancel(ctx, http.MethodDelete, "reservations.delete", "/reservations/"+url.PathEscape(id))
}

func (r *ReservationRepo) MarkReservationCancelled(ctx context.Context, id string) (domain.ReservationResponse, error) {
	return r.cancel(ctx, http.MethodPost, "reservations.cancel", "/reservations/"+url.PathEscape(id)+"/cancel")
}

func (r *ReservationRepo) cancel(ctx context.Context, method, endpoint, path string) (domain.ReservationResponse, error) {
	var out domain.ReservationResponse
	err := r.c.do(ctx, method, endpoint, path, nil, &out)
	if errors.Is(err, ErrNotFound) {
		return notFoundResponse, nil
	}
	if err != nil {
		return domain.ReservationResponse{}, err
	}
	return out, nil
}
