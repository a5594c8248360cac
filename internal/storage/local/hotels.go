// Package local implements the repositories on top of the storage adapter.
// Every call reads and writes the whole blob; nothing is cached.
package local

import (
	"context"

	"hotel_booking/internal/clock"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/ids"
	"hotel_booking/internal/storage"
)

type HotelRepo struct {
	a   *storage.Adapter
	clk clock.Clock
}

func NewHotelRepo(a *storage.Adapter, clk clock.Clock) *HotelRepo {
	return &HotelRepo{a: a, clk: clk}
}

func (r *HotelRepo) GetHotels(ctx context.Context) (domain.HotelResponse, error) {
	return r.a.LoadCatalog(ctx)
}

func (r *HotelRepo) GetHotelByID(ctx context.Context, id string) (*domain.Hotel, error) {
	cat, err := r.a.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	for i := range cat.Hotels {
		if cat.Hotels[i].ID == id {
			h := cat.Hotels[i]
			return &h, nil
		}
	}
	return nil, nil
}

// CreateHotel assigns a fresh id, overriding any id on h.
func (r *HotelRepo) CreateHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	cat, err := r.a.LoadCatalog(ctx)
	if err != nil {
		return domain.Hotel{}, err
	}
	now := r.clk.Now()
	h.ID = ids.New("hotel-", now, func(id string) bool { return indexOf(cat.Hotels, id) >= 0 })
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}
	if h.Rooms == nil {
		h.Rooms = []domain.Room{}
	}
	if err := r.a.SaveCatalog(ctx, append(cat.Hotels, h)); err != nil {
		return domain.Hotel{}, err
	}
	return h, nil
}

func (r *HotelRepo) UpdateHotel(ctx context.Context, id string, p domain.HotelPatch) (*domain.Hotel, error) {
	cat, err := r.a.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(cat.Hotels, id)
	if i < 0 {
		return nil, nil
	}
	updated := p.Apply(cat.Hotels[i])
	cat.Hotels[i] = updated
	if err := r.a.SaveCatalog(ctx, cat.Hotels); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *HotelRepo) DeleteHotel(ctx context.Context, id string) (bool, error) {
	cat, err := r.a.LoadCatalog(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(cat.Hotels, id)
	if i < 0 {
		return false, nil
	}
	rest := append(cat.Hotels[:i:i], cat.Hotels[i+1:]...)
	if err := r.a.SaveCatalog(ctx, rest); err != nil {
		return false, err
	}
	return true, nil
}

func indexOf(hs []domain.Hotel, id string) int {
	for i := range hs {
		if hs[i].ID == id {
			return i
		}
	}
	return -1
}
