package local

import (
	"context"

	"hotel_booking/internal/clock"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/ids"
	"hotel_booking/internal/storage"
)

const (
	msgCreated   = "Reserva creada exitosamente"
	msgCancelled = "Reserva cancelada exitosamente"
	msgNotFound  = "Reserva no encontrada"
)

type ReservationRepo struct {
	a   *storage.Adapter
	clk clock.Clock
}

func NewReservationRepo(a *storage.Adapter, clk clock.Clock) *ReservationRepo {
	return &ReservationRepo{a: a, clk: clk}
}

func (r *ReservationRepo) load(ctx context.Context) ([]domain.Reservation, error) {
	var out []domain.Reservation
	if _, err := r.a.Read(ctx, storage.KeyReservations, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// All returns every stored reservation.
func (r *ReservationRepo) All(ctx context.Context) ([]domain.Reservation, error) {
	return r.load(ctx)
}

// CreateReservation appends res, keeping its id or minting "res-<millis>".
// No overlap or availability check is made.
func (r *ReservationRepo) CreateReservation(ctx context.Context, res domain.Reservation) (domain.ReservationResponse, error) {
	all, err := r.load(ctx)
	if err != nil {
		return domain.ReservationResponse{}, err
	}
	if res.ID == "" {
		res.ID = ids.New("res-", r.clk.Now(), func(id string) bool { return find(all, id) >= 0 })
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = r.clk.Now()
	}
	if err := r.a.Write(ctx, storage.KeyReservations, append(all, res)); err != nil {
		return domain.ReservationResponse{}, err
	}
	return domain.ReservationResponse{Success: true, Message: msgCreated, Reservation: &res}, nil
}

func (r *ReservationRepo) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := find(all, id); i >= 0 {
		return &all[i], nil
	}
	return nil, nil
}

func (r *ReservationRepo) GetReservationsByEmail(ctx context.Context, email string) ([]domain.Reservation, error) {
	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Reservation{}
	for _, res := range all {
		if res.GuestData.Email == email {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *ReservationRepo) CancelReservation(ctx context.Context, id string) (domain.ReservationResponse, error) {
	all, err := r.load(ctx)
	if err != nil {
		return domain.ReservationResponse{}, err
	}
	i := find(all, id)
	if i < 0 {
		return domain.ReservationResponse{Success: false, Message: msgNotFound}, nil
	}
	if err := r.a.Write(ctx, storage.KeyReservations, append(all[:i:i], all[i+1:]...)); err != nil {
		return domain.ReservationResponse{}, err
	}
	return domain.ReservationResponse{Success: true, Message: msgCancelled}, nil
}

func (r *ReservationRepo) MarkReservationCancelled(ctx context.Context, id string) (domain.ReservationResponse, error) {
	all, err := r.load(ctx)
	if err != nil {
		return domain.ReservationResponse{}, err
	}
	i := find(all, id)
	if i < 0 {
		return domain.ReservationResponse{Success: false, Message: msgNotFound}, nil
	}
	all[i].Status = domain.StatusCancelled
	if err := r.a.Write(ctx, storage.KeyReservations, all); err != nil {
		return domain.ReservationResponse{}, err
	}
	res := all[i]
	return domain.ReservationResponse{Success: true, Message: msgCancelled, Reservation: &res}, nil
}

func find(rs []domain.Reservation, id string) int {
	for i := range rs {
		if rs[i].ID == id {
			return i
		}
	}
	return -1
}
